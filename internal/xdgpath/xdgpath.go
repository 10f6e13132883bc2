package xdgpath

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "toast-bridge"

func getStateHome() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return stateHome, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state"), nil
}

func getRuntimeDir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}
	// Fallback to state home if runtime dir is not available.
	return getStateHome()
}

func getConfigHome() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return configHome, nil
	}
	// %AppData% on Windows, ~/.config elsewhere.
	return os.UserConfigDir()
}

func appPath(base string, elem []string) (string, error) {
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(append([]string{dir}, elem...)...), nil
}

// StatePath returns the path for a state file, creating the directory if needed.
func StatePath(elem ...string) (string, error) {
	base, err := getStateHome()
	if err != nil {
		return "", err
	}
	return appPath(base, elem)
}

// RuntimePath returns the path for a runtime file, creating the directory if needed.
func RuntimePath(elem ...string) (string, error) {
	base, err := getRuntimeDir()
	if err != nil {
		return "", err
	}
	return appPath(base, elem)
}

// ConfigPath returns the path for a config file, creating the directory if needed.
func ConfigPath(elem ...string) (string, error) {
	base, err := getConfigHome()
	if err != nil {
		return "", fmt.Errorf("could not get config directory: %w", err)
	}
	return appPath(base, elem)
}
