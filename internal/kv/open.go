package kv

import (
	"fmt"
	"strings"

	"github.com/faizmokh/mood/internal/files"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open builds the named backend rooted at manager's base path.
func Open(backend string, manager *files.Manager) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFile(manager)
	case BackendDiskv:
		dir, err := manager.EnsureDir("diskv")
		if err != nil {
			return nil, err
		}
		return NewDiskv(dir)
	case BackendSQLite:
		if _, err := manager.EnsureDir(); err != nil {
			return nil, err
		}
		return NewSQLite(manager.Path("mood.db"))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected file|diskv|sqlite|memory)", backend)
	}
}
