package files

import (
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	// DefaultDirName defines the folder under the user's home directory.
	DefaultDirName = ".mood"

	// HomeEnv overrides where mood keeps its data.
	HomeEnv = "MOOD_HOME"
)

// ResolveBasePath determines where mood stores its data, defaulting to ~/.mood.
// The location can be overridden by exporting MOOD_HOME.
func ResolveBasePath() (string, error) {
	if override, ok := os.LookupEnv(HomeEnv); ok {
		override = strings.TrimSpace(override)
		if override != "" {
			return normalizePath(override)
		}
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

func normalizePath(input string) (string, error) {
	expanded, err := homedir.Expand(input)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}
