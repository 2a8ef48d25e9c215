package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName        = "ctxtree"
	configFileName = "config.toml"
	dirPerm        = 0o755
	filePerm       = 0o644
)

// XDGDirs holds the XDG base directories for ctxtree.
type XDGDirs struct {
	ConfigHome string
	StateHome  string
}

// GetXDGDirs resolves XDG_CONFIG_HOME and XDG_STATE_HOME with their fallbacks.
func GetXDGDirs() (*XDGDirs, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(homeDir, ".config")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(homeDir, ".local", "state")
	}

	return &XDGDirs{
		ConfigHome: filepath.Join(configHome, appName),
		StateHome:  filepath.Join(stateHome, appName),
	}, nil
}

// GetConfigDir returns the XDG config directory for ctxtree.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetLogDir returns the log directory, under XDG_STATE_HOME.
func GetLogDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.StateHome, "logs"), nil
}
