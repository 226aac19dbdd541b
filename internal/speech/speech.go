// Package speech pronounces words through an external text-to-speech command.
package speech

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Speaker runs the configured command with the text as its last argument.
// A new request cancels the one in flight. The zero command disables speech.
type Speaker struct {
	argv []string
	log  logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
	wg     sync.WaitGroup
}

// New returns a Speaker for command, for example "say -v Kyoko" or
// "espeak-ng -v ja". A nil logger discards output.
func New(command string, log logrus.FieldLogger) *Speaker {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Speaker{argv: strings.Fields(command), log: log}
}

// Enabled reports whether a command is configured.
func (s *Speaker) Enabled() bool {
	return len(s.argv) > 0
}

// Speak starts pronouncing text and returns immediately.
func (s *Speaker) Speak(text string) {
	if !s.Enabled() || strings.TrimSpace(text) == "" {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	args := append(append([]string(nil), s.argv[1:]...), text)
	cmd := exec.CommandContext(ctx, s.argv[0], args...)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := cmd.Run()
		cancelled := errors.Is(ctx.Err(), context.Canceled)
		s.finish(seq, cancel)
		if err != nil && !cancelled {
			s.log.WithError(err).WithField("text", text).Warn("speech playback failed")
		}
	}()
}

func (s *Speaker) finish(seq uint64, cancel context.CancelFunc) {
	s.mu.Lock()
	if s.seq == seq {
		s.cancel = nil
	}
	s.mu.Unlock()
	cancel()
}

// Stop cancels the playback in flight, if any.
func (s *Speaker) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
}

// Close cancels the playback in flight and waits for started commands to
// exit. Cancelled playback is not logged, so a word still being spoken when
// the app quits is cut off silently.
func (s *Speaker) Close() error {
	s.Stop()
	s.wg.Wait()
	return nil
}
