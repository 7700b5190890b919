package ui

import (
	"io/fs"
	"strings"
	"testing"
)

// TestDistFSEmbedded verifies that the UI dist directory is properly embedded
func TestDistFSEmbedded(t *testing.T) {
	distFS, err := fs.Sub(DistFS(), "dist")
	if err != nil {
		t.Fatalf("Failed to access dist subdirectory: %v", err)
	}

	indexData, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		t.Fatalf("Failed to read index.html from embedded filesystem: %v", err)
	}

	content := string(indexData)
	if len(content) == 0 {
		t.Fatal("index.html is empty")
	}

	if !strings.Contains(content, "<!DOCTYPE") && !strings.Contains(content, "<html") {
		t.Error("index.html does not appear to be valid HTML (missing DOCTYPE or <html>)")
	}
}

// TestAssetsDirectoryEmbedded verifies that the assets subdirectory is embedded
func TestAssetsDirectoryEmbedded(t *testing.T) {
	distFS, err := fs.Sub(DistFS(), "dist")
	if err != nil {
		t.Fatalf("Failed to access dist subdirectory: %v", err)
	}

	entries, err := fs.ReadDir(distFS, "assets")
	if err != nil {
		t.Fatalf("Failed to read assets directory: %v", err)
	}

	if len(entries) == 0 {
		t.Error("assets directory is empty, expected at least some compiled assets")
	}
}
