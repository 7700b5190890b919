// Package idgen generates the timestamp-based entity IDs used throughout
// the catalogue, e.g. "furnisher-1724380800000" for the "furnishers"
// collection.
package idgen

import (
	"strconv"
	"sync"
	"time"

	"github.com/jinzhu/inflection"
)

var (
	mu     sync.Mutex
	lastMS int64
)

// New returns an ID of the form "<singular>-<unix-ms>" for the given
// collection name. Successive calls within the same millisecond are bumped
// forward so IDs stay unique in-process (bulk creates would otherwise
// collide).
func New(collection string) string {
	mu.Lock()
	defer mu.Unlock()

	ms := time.Now().UnixMilli()
	if ms <= lastMS {
		ms = lastMS + 1
	}
	lastMS = ms

	return inflection.Singular(collection) + "-" + strconv.FormatInt(ms, 10)
}
