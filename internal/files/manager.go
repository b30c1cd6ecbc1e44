package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Manager centralizes where mood keeps its files and how they are written.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If basePath
// is empty, it falls back to ~/.mood (or another location determined by
// ResolveBasePath).
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the root directory storing all data files.
func (m *Manager) BasePath() string {
	return m.basePath
}

// Path resolves name relative to the base path. The file may not exist yet.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.basePath, name)
}

// EnsureDir creates the base directory, and any named subdirectory, if missing.
// It returns the absolute path of the ensured directory.
func (m *Manager) EnsureDir(sub ...string) (string, error) {
	if m == nil {
		return "", errors.New("files.Manager is nil")
	}
	dir := filepath.Join(append([]string{m.basePath}, sub...)...)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("create directories: %w", err)
	}
	return dir, nil
}

// OpenAppend opens name under the base path for appending, creating it when needed.
func (m *Manager) OpenAppend(name string) (*os.File, error) {
	if _, err := m.EnsureDir(); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(m.Path(name), os.O_WRONLY|os.O_APPEND|os.O_CREATE, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return file, nil
}

// WriteFile replaces path with data via a temp file and rename so readers never
// observe a partially written file. Existing permissions are preserved.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".mood-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	mode := os.FileMode(filePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(temp.Name(), mode); err != nil {
		return err
	}

	return os.Rename(temp.Name(), path)
}
