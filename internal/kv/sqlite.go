package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key     TEXT PRIMARY KEY,
	value   BLOB NOT NULL,
	version INTEGER NOT NULL
)`

// SQLite stores values in a single-table SQLite database. The version column
// makes CompareAndSwap atomic across processes sharing the same file.
type SQLite struct {
	db   *sql.DB
	path string
}

// sqliteBusyTimeout is how long a connection waits on another process's
// write lock before reporting SQLITE_BUSY.
const sqliteBusyTimeout = 5 * time.Second

func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, sqliteBusyTimeout.Milliseconds())
}

// NewSQLite opens (and creates if needed) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("kv: create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("kv: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv: connect to database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv: create schema: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) Get(ctx context.Context, key string) (Record, error) {
	var (
		value   []byte
		version int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT value, version FROM kv WHERE key = ?`, key).Scan(&value, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return Record{Value: value, Version: sqliteVersion(version)}, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, version) VALUES (?, ?, 1)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, version = kv.version + 1`,
		key, value)
	return err
}

func (s *SQLite) CompareAndSwap(ctx context.Context, key string, expected Version, value []byte) (Version, error) {
	if expected == "" {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO kv (key, value, version) VALUES (?, ?, 1) ON CONFLICT(key) DO NOTHING`,
			key, value)
		if err != nil {
			return "", err
		}
		if n, err := res.RowsAffected(); err != nil {
			return "", err
		} else if n == 0 {
			return "", ErrConflict
		}
		return sqliteVersion(1), nil
	}

	want, err := strconv.ParseInt(string(expected), 10, 64)
	if err != nil {
		return "", ErrConflict
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE kv SET value = ?, version = version + 1 WHERE key = ? AND version = ?`,
		value, key, want)
	if err != nil {
		return "", err
	}
	if n, err := res.RowsAffected(); err != nil {
		return "", err
	} else if n == 0 {
		return "", ErrConflict
	}
	return sqliteVersion(want + 1), nil
}

func (s *SQLite) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	return watchFile(ctx, s.path)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func sqliteVersion(n int64) Version {
	return Version(strconv.FormatInt(n, 10))
}
