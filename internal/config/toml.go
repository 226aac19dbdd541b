// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Study      StudyConfig      `toml:"study"`
	Test       TestConfig       `toml:"test"`
	Vocabulary VocabularyConfig `toml:"vocabulary"`
	Speech     SpeechConfig     `toml:"speech"`
	Storage    StorageConfig    `toml:"storage"`
	Log        LogConfig        `toml:"log"`
}

// StudyConfig maps flashcard settings.
type StudyConfig struct {
	AutoPlayInterval *Duration `toml:"auto-play-interval"`
	SpeakOnFlip      *bool     `toml:"speak-on-flip"`
}

// TestConfig maps quiz settings.
type TestConfig struct {
	Count      *int      `toml:"count"`
	Types      *[]string `toml:"types"`
	Order      *string   `toml:"order"`
	HistoryCap *int      `toml:"history-cap"`
}

// VocabularyConfig maps word data settings.
type VocabularyConfig struct {
	Dir           *string   `toml:"dir"`
	RetryAttempts *int      `toml:"retry-attempts"`
	RetryDelay    *Duration `toml:"retry-delay"`
}

// SpeechConfig maps pronunciation playback settings.
type SpeechConfig struct {
	Command *string `toml:"command"`
}

// StorageConfig maps persistence settings.
type StorageConfig struct {
	QuotaBytes *int64 `toml:"quota-bytes"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
	File   *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
