package speech

import (
	"os/exec"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func waitForEntry(t *testing.T, hook *test.Hook) *logrus.Entry {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if entry := hook.LastEntry(); entry != nil {
			return entry
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected a log entry before the deadline")
	return nil
}

func TestDisabledSpeakerIsNoop(t *testing.T) {
	s := New("", nil)
	if s.Enabled() {
		t.Fatalf("expected disabled speaker")
	}
	s.Speak("おさない")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestFailureIsLogged(t *testing.T) {
	requireCommand(t, "false")
	log, hook := test.NewNullLogger()
	s := New("false", log)
	s.Speak("おさない")
	defer func() { _ = s.Close() }()

	entry := waitForEntry(t, hook)
	if entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning, got %v", entry)
	}
	if entry.Data["text"] != "おさない" {
		t.Fatalf("expected text field, got %v", entry.Data)
	}
}

func TestNewRequestCancelsPrevious(t *testing.T) {
	requireCommand(t, "sleep")
	log, hook := test.NewNullLogger()
	s := New("sleep", log)

	start := time.Now()
	s.Speak("30")
	s.Speak("0")
	_ = s.Close()

	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("first playback was not cancelled, took %v", elapsed)
	}
	if n := len(hook.AllEntries()); n != 0 {
		t.Fatalf("cancelled playback must not log, got %d entries", n)
	}
}

func TestCloseCancelsWithoutLogging(t *testing.T) {
	requireCommand(t, "sleep")
	log, hook := test.NewNullLogger()
	s := New("sleep", log)
	start := time.Now()
	s.Speak("30")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("close did not cancel playback, took %v", elapsed)
	}
	if n := len(hook.AllEntries()); n != 0 {
		t.Fatalf("cancelled playback must not log, got %d entries", n)
	}
}

func TestStop(t *testing.T) {
	requireCommand(t, "sleep")
	s := New("sleep", nil)
	start := time.Now()
	s.Speak("30")
	s.Stop()
	_ = s.Close()
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("stop did not cancel playback, took %v", elapsed)
	}
}
