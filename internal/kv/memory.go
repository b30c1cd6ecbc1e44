package kv

import (
	"context"
	"strconv"
	"sync"
)

// Memory keeps values in process memory. It is used by tests and the
// "memory" backend.
type Memory struct {
	mu      sync.RWMutex
	values  map[string][]byte
	version map[string]uint64
	closed  bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values:  make(map[string][]byte),
		version: make(map[string]uint64),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return Record{}, ErrClosed
	}
	val, ok := m.values[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{
		Value:   append([]byte(nil), val...),
		Version: memoryVersion(m.version[key]),
	}, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.put(key, value)
	return nil
}

func (m *Memory) CompareAndSwap(ctx context.Context, key string, expected Version, value []byte) (Version, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", ErrClosed
	}
	var current Version
	if _, ok := m.values[key]; ok {
		current = memoryVersion(m.version[key])
	}
	if current != expected {
		return "", ErrConflict
	}
	return m.put(key, value), nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *Memory) put(key string, value []byte) Version {
	m.values[key] = append([]byte(nil), value...)
	m.version[key]++
	return memoryVersion(m.version[key])
}

func memoryVersion(n uint64) Version {
	return Version(strconv.FormatUint(n, 10))
}
