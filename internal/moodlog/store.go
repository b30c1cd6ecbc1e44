package moodlog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/faizmokh/mood/internal/kv"
)

// DefaultKey is the slot the log lives in, matching the browser widget.
const DefaultKey = "moodEntries"

const defaultAttempts = 3

// Store owns the mood log kept under a single key. It only appends; there is
// no way to change or remove an entry once written.
type Store struct {
	backend  kv.Store
	key      string
	logger   *log.Logger
	attempts int
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger routes store diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAttempts bounds how many times Append retries after losing a
// compare-and-swap race.
func WithAttempts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// NewStore wires a Store on top of backend.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		key:      DefaultKey,
		logger:   log.New(io.Discard),
		attempts: defaultAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot name the log is stored under.
func (s *Store) Key() string {
	return s.key
}

// LoadAll returns every entry in the order they were appended. A missing key
// is an empty log.
func (s *Store) LoadAll(ctx context.Context) ([]Entry, error) {
	if s == nil || s.backend == nil {
		return nil, errors.New("store not initialized with backend")
	}

	rec, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorage, s.key, err)
	}

	entries, err := decodeLog(rec.Value)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	return entries, nil
}

// Append adds entry at the tail of the log. Records already in the log are
// written back exactly as they were read.
func (s *Store) Append(ctx context.Context, entry Entry) error {
	if s == nil || s.backend == nil {
		return errors.New("store not initialized with backend")
	}
	if !entry.Mood.Valid() {
		return ErrInvalidMood
	}

	encoded, err := encodeEntry(entry)
	if err != nil {
		return fmt.Errorf("%w: encode entry: %w", ErrStorage, err)
	}

	for attempt := 1; ; attempt++ {
		rec, err := s.backend.Get(ctx, s.key)
		if err != nil && !errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("%w: read %s: %w", ErrStorage, s.key, err)
		}

		items, err := decodeRaw(rec.Value)
		if err != nil {
			return fmt.Errorf("append to %s: %w", s.key, err)
		}
		items = append(items, encoded)

		data := joinRaw(items)

		_, err = s.backend.CompareAndSwap(ctx, s.key, rec.Version, data)
		if err == nil {
			s.logger.Debug("appended entry", "key", s.key, "date", entry.Date, "mood", int(entry.Mood), "entries", len(items))
			return nil
		}
		if errors.Is(err, kv.ErrConflict) && attempt < s.attempts {
			s.logger.Debug("log changed during append, retrying", "key", s.key, "attempt", attempt)
			continue
		}
		return fmt.Errorf("%w: write %s: %w", ErrStorage, s.key, err)
	}
}

// Changes reports external modifications of the log when the backend can
// watch for them; otherwise it returns kv.ErrWatchUnsupported.
func (s *Store) Changes(ctx context.Context) (<-chan struct{}, error) {
	w, ok := s.backend.(kv.Watcher)
	if !ok {
		return nil, kv.ErrWatchUnsupported
	}
	return w.Watch(ctx, s.key)
}
