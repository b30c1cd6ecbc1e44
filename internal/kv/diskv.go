package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores values through peterbourgon/diskv in a flat directory. The
// read cache is disabled so CompareAndSwap always sees what is on disk.
type Diskv struct {
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

// NewDiskv opens a diskv store under basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("kv: diskv base path required")
	}
	tempDir := filepath.Join(basePath, ".tmp")
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: ensure diskv directory: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      tempDir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 0,
	})
	return &Diskv{d: d, basePath: basePath}, nil
}

// Path returns the file diskv uses for key.
func (s *Diskv) Path(key string) string {
	return filepath.Join(s.basePath, key)
}

func (s *Diskv) Get(ctx context.Context, key string) (Record, error) {
	if err := checkKey(ctx, key); err != nil {
		return Record{}, err
	}
	return s.read(key)
}

func (s *Diskv) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.Write(key, value)
}

func (s *Diskv) CompareAndSwap(ctx context.Context, key string, expected Version, value []byte) (Version, error) {
	if err := checkKey(ctx, key); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if current.Version != expected {
		return "", ErrConflict
	}
	if err := s.d.Write(key, value); err != nil {
		return "", err
	}
	return contentVersion(value), nil
}

func (s *Diskv) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	if err := checkKey(ctx, key); err != nil {
		return nil, err
	}
	return watchFile(ctx, s.Path(key))
}

func (s *Diskv) Close() error { return nil }

func (s *Diskv) read(key string) (Record, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return Record{Value: val, Version: contentVersion(val)}, nil
}
