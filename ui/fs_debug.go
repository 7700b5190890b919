//go:build debug

package ui

import (
	"io/fs"
	"os"
)

// DistFS reads the console bundle from disk instead of the embedded copy,
// so frontend rebuilds show up without recompiling the Go binary. Run the
// server from the repository root or dist/ will not resolve.
func DistFS() fs.FS {
	return os.DirFS("ui")
}
