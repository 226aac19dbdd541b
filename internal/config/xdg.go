package config

import (
	"os"
	"path/filepath"
)

const appName = "tango"

// appDir returns the tango directory under the XDG base directory named by
// env, falling back to fallback under the home directory.
func appDir(env string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = "."
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName)
}

// DefaultConfigPath returns the TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(appDir("XDG_CONFIG_HOME", ".config"), "config.toml")
}

// DefaultVocabularyDir returns the directory searched for week{N}.json files.
func DefaultVocabularyDir() string {
	return filepath.Join(appDir("XDG_CONFIG_HOME", ".config"), "vocabulary")
}

// DefaultDBPath returns the SQLite database path.
func DefaultDBPath() string {
	return filepath.Join(appDir("XDG_DATA_HOME", ".local", "share"), appName+".db")
}

// DefaultLogPath returns the log file path.
func DefaultLogPath() string {
	return filepath.Join(appDir("XDG_DATA_HOME", ".local", "share"), appName+".log")
}
