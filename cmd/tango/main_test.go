package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tango/internal/config"
	"github.com/verte-zerg/tango/internal/model"
)

func TestQuizConfigFlagsOverrideFile(t *testing.T) {
	cmd := newTestCmd()
	if err := cmd.Flags().Set("count", "5"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	count := 9
	order := "sequential"
	types := []string{"reading-to-korean"}
	cfg, err := quizConfig(cmd, config.FileConfig{Test: config.TestConfig{Count: &count, Order: &order, Types: &types}})
	if err != nil {
		t.Fatalf("quiz config: %v", err)
	}
	if cfg.Count != 5 {
		t.Fatalf("expected flag count 5, got %d", cfg.Count)
	}
	if cfg.RandomOrder {
		t.Fatalf("expected sequential order from file")
	}
	if len(cfg.Types) != 1 || cfg.Types[0] != model.ReadingToKorean {
		t.Fatalf("unexpected types %v", cfg.Types)
	}
}

func TestQuizConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"order": "sideways",
		"types": "kanji-to-french",
		"count": "-1",
	}
	for name, value := range cases {
		cmd := newTestCmd()
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
		if _, err := quizConfig(cmd, config.FileConfig{}); err == nil {
			t.Fatalf("expected error for --%s=%s", name, value)
		}
	}
}

func TestStudyConfigFromFile(t *testing.T) {
	cmd := newStudyCmd()
	interval := config.Duration{Duration: 2 * time.Second}
	speak := false
	cfg, err := studyConfig(cmd, config.FileConfig{Study: config.StudyConfig{AutoPlayInterval: &interval, SpeakOnFlip: &speak}})
	if err != nil {
		t.Fatalf("study config: %v", err)
	}
	if cfg.AutoPlayInterval != 2*time.Second || cfg.SpeakOnFlip {
		t.Fatalf("unexpected study config %+v", cfg)
	}
}

func TestSyncBundledVocabulary(t *testing.T) {
	dir := t.TempDir()
	root := newRootCmd()
	root.SetArgs([]string{"sync", "--dir", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "week1.json")); err != nil {
		t.Fatalf("expected week1.json: %v", err)
	}

	root = newRootCmd()
	root.SetArgs([]string{"sync", "--dir", dir})
	root.SilenceErrors = true
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error without --force")
	}

	root = newRootCmd()
	root.SetArgs([]string{"sync", "--dir", dir, "--force"})
	if err := root.Execute(); err != nil {
		t.Fatalf("sync --force: %v", err)
	}
}

func TestResetNeedsOneTarget(t *testing.T) {
	root := newRootCmd()
	root.SilenceErrors = true
	root.SetArgs([]string{"reset", "--wrong", "--all"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for two targets")
	}
}

func TestValidateWeek(t *testing.T) {
	if err := validateWeek(0); err == nil {
		t.Fatalf("expected error for week 0")
	}
	if err := validateWeek(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
