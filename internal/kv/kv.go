// Package kv provides the key-value slots mood persists its log in.
//
// Every backend offers plain Get/Set plus CompareAndSwap on an opaque version
// stamp, which lets read-modify-write callers detect a concurrent writer.
package kv

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("kv: key not found")
	// ErrConflict is returned by CompareAndSwap when the stored version moved.
	ErrConflict = errors.New("kv: version conflict")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("kv: store closed")
	// ErrWatchUnsupported is returned when a backend cannot report changes.
	ErrWatchUnsupported = errors.New("kv: watch not supported")
	// ErrInvalidKey is returned for keys that cannot name a single slot.
	ErrInvalidKey = errors.New("kv: invalid key")
)

// ValidateKey rejects keys that are empty or could resolve outside the
// backend's directory.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case key == ".", strings.Contains(key, ".."), strings.ContainsAny(key, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func checkKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ValidateKey(key)
}

// Version identifies one stored value. The zero Version means "absent".
type Version string

// Record is a stored value together with its version.
type Record struct {
	Value   []byte
	Version Version
}

// Store is a persistent key-value slot store.
type Store interface {
	Get(ctx context.Context, key string) (Record, error)
	Set(ctx context.Context, key string, value []byte) error
	// CompareAndSwap writes value only if the current version equals expected.
	// Passing the zero Version requires the key to be absent.
	CompareAndSwap(ctx context.Context, key string, expected Version, value []byte) (Version, error)
	Close() error
}

// Watcher is implemented by backends that can signal external modifications.
// The channel is closed once ctx is done.
type Watcher interface {
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

func contentVersion(data []byte) Version {
	sum := sha256.Sum256(data)
	return Version(hex.EncodeToString(sum[:8]))
}
