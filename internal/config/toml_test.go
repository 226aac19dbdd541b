package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Test.Count != nil || cfg.Study.AutoPlayInterval != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[study]
auto-play-interval = "3s"

[test]
count = 15
types = ["kanji-to-korean", "reading-to-korean"]
order = "sequential"
history-cap = 5

[vocabulary]
retry-delay = "100ms"

[storage]
quota-bytes = 1024

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Study.AutoPlayInterval == nil || cfg.Study.AutoPlayInterval.Duration != 3*time.Second {
		t.Fatalf("unexpected auto-play interval: %+v", cfg.Study.AutoPlayInterval)
	}
	if cfg.Test.Count == nil || *cfg.Test.Count != 15 {
		t.Fatalf("unexpected count: %v", cfg.Test.Count)
	}
	if cfg.Test.Types == nil || len(*cfg.Test.Types) != 2 {
		t.Fatalf("unexpected types: %v", cfg.Test.Types)
	}
	if cfg.Test.HistoryCap == nil || *cfg.Test.HistoryCap != 5 {
		t.Fatalf("unexpected history cap: %v", cfg.Test.HistoryCap)
	}
	if cfg.Vocabulary.RetryDelay == nil || cfg.Vocabulary.RetryDelay.Duration != 100*time.Millisecond {
		t.Fatalf("unexpected retry delay: %+v", cfg.Vocabulary.RetryDelay)
	}
	if cfg.Storage.QuotaBytes == nil || *cfg.Storage.QuotaBytes != 1024 {
		t.Fatalf("unexpected quota: %v", cfg.Storage.QuotaBytes)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[study]\nauto-play-interval = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
