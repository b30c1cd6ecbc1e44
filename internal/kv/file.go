package kv

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/faizmokh/mood/internal/files"
)

// File stores each key as <key>.json beneath the manager's base path. Writes
// go through files.WriteFile so a crash never leaves a torn value behind.
//
// CompareAndSwap is serialized inside the process and re-checks the content
// hash right before the rename; two separate processes can still interleave
// between that check and the rename.
type File struct {
	mu      sync.Mutex
	manager *files.Manager
}

// NewFile returns a file-per-key store rooted at manager.
func NewFile(manager *files.Manager) (*File, error) {
	if _, err := manager.EnsureDir(); err != nil {
		return nil, err
	}
	return &File{manager: manager}, nil
}

// Path returns the file that holds key.
func (f *File) Path(key string) string {
	return f.manager.Path(key + ".json")
}

func (f *File) Get(ctx context.Context, key string) (Record, error) {
	if err := checkKey(ctx, key); err != nil {
		return Record{}, err
	}
	return f.read(key)
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return files.WriteFile(f.Path(key), value)
}

func (f *File) CompareAndSwap(ctx context.Context, key string, expected Version, value []byte) (Version, error) {
	if err := checkKey(ctx, key); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read(key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if current.Version != expected {
		return "", ErrConflict
	}
	if err := files.WriteFile(f.Path(key), value); err != nil {
		return "", err
	}
	return contentVersion(value), nil
}

func (f *File) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	if err := checkKey(ctx, key); err != nil {
		return nil, err
	}
	return watchFile(ctx, f.Path(key))
}

func (f *File) Close() error { return nil }

func (f *File) read(key string) (Record, error) {
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return Record{Value: data, Version: contentVersion(data)}, nil
}
