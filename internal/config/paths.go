package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "siaga"

// DefaultConfigPath resolves the config file path in priority order:
// 1. SIAGA_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/siaga/config.yaml
// 3. ~/.config/siaga/config.yaml
func DefaultConfigPath() (string, error) {
	if p := os.Getenv("SIAGA_CONFIG"); p != "" {
		return p, nil
	}
	return xdgPath("XDG_CONFIG_HOME", ".config", "config.yaml")
}

// DefaultModelPath resolves where the model artifact is expected:
// $XDG_DATA_HOME/siaga/model.json, or ~/.local/share/siaga/model.json.
func DefaultModelPath() (string, error) {
	return xdgPath("XDG_DATA_HOME", filepath.Join(".local", "share"), "model.json")
}

// DefaultLogPath returns the TUI log file path under the XDG state dir.
func DefaultLogPath() (string, error) {
	return xdgPath("XDG_STATE_HOME", filepath.Join(".local", "state"), "siaga.log")
}

func xdgPath(env, fallback, name string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, appName, name), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
