package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFile signals on the returned channel whenever path is created, written
// or renamed into place. The parent directory is watched because atomic
// writers replace the file rather than modify it.
func watchFile(ctx context.Context, path string) (<-chan struct{}, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: ensure watch directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("kv: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("kv: watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !matchesWatched(evt.Name, base) {
					continue
				}
				if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Rename) {
					continue
				}
				// Coalesce bursts; one pending signal is enough to trigger a reload.
				select {
				case changes <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

// matchesWatched also accepts SQLite's -wal and -journal siblings.
func matchesWatched(name, base string) bool {
	got := filepath.Base(name)
	return got == base || got == base+"-wal" || got == base+"-journal"
}
