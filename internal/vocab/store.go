// Package vocab loads week word lists from a pluggable source.
package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/tango/internal/model"
)

// MaxWeeks bounds week discovery.
const MaxWeeks = 10

// Default retry policy.
const (
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 200 * time.Millisecond
)

var (
	// ErrNotFound means no document exists for the week.
	ErrNotFound = errors.New("week not found")
	// ErrMalformed means the week document does not have the expected shape.
	ErrMalformed = errors.New("malformed week data")
)

// Unavailable reports whether err means the week cannot be shown.
func Unavailable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformed)
}

// Store loads and validates week documents.
type Store struct {
	src      Source
	log      logrus.FieldLogger
	attempts int
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures a Store.
type Option func(*Store)

// WithRetry sets the maximum attempts per load and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *Store) {
		if attempts > 0 {
			s.attempts = attempts
		}
		if delay >= 0 {
			s.delay = delay
		}
	}
}

// WithSleep replaces the backoff wait.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Store) {
		s.sleep = sleep
	}
}

// NewStore returns a Store over src. A nil logger discards output.
func NewStore(src Source, log logrus.FieldLogger, opts ...Option) *Store {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	s := &Store{
		src:      src,
		log:      log,
		attempts: DefaultRetryAttempts,
		delay:    DefaultRetryDelay,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadWeek fetches and validates the word list of week.
func (s *Store) LoadWeek(ctx context.Context, week int) (model.WeekData, error) {
	data, err := s.fetch(ctx, week)
	if err != nil {
		return model.WeekData{}, err
	}
	return ParseWeek(week, data)
}

func (s *Store) fetch(ctx context.Context, week int) ([]byte, error) {
	delay := s.delay
	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		data, err := s.src.Fetch(ctx, week)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if errors.Is(err, ErrNotFound) || ctx.Err() != nil {
			return nil, err
		}
		s.log.WithError(err).WithFields(logrus.Fields{"week": week, "attempt": attempt}).Warn("week fetch failed")
		if attempt == s.attempts {
			break
		}
		if err := s.sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}
	return nil, fmt.Errorf("failed to load week %d after %d attempts: %w", week, s.attempts, lastErr)
}

// ListAvailableWeeks probes weeks 1..MaxWeeks and returns the contiguous
// prefix that loads successfully.
func (s *Store) ListAvailableWeeks(ctx context.Context) []int {
	weeks, _ := s.loadPrefix(ctx)
	return lo.Map(weeks, func(w model.WeekData, _ int) int {
		return w.Week
	})
}

// AggregateStats summarizes the available weeks.
func (s *Store) AggregateStats(ctx context.Context) model.VocabStats {
	weeks, _ := s.loadPrefix(ctx)
	stats := model.VocabStats{TotalWeeks: len(weeks), WordsPerWeek: map[int]int{}}
	for _, w := range weeks {
		stats.WordsPerWeek[w.Week] = w.TotalWords
		stats.TotalWords += w.TotalWords
	}
	return stats
}

// LoadAll returns every available week in order. The error is the one that
// ended discovery, or nil when MaxWeeks weeks loaded.
func (s *Store) LoadAll(ctx context.Context) ([]model.WeekData, error) {
	return s.loadPrefix(ctx)
}

func (s *Store) loadPrefix(ctx context.Context) ([]model.WeekData, error) {
	var weeks []model.WeekData
	for week := 1; week <= MaxWeeks; week++ {
		data, err := s.LoadWeek(ctx, week)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.log.WithError(err).WithField("week", week).Warn("week unavailable")
			}
			return weeks, err
		}
		weeks = append(weeks, data)
	}
	return weeks, nil
}

type weekDocument struct {
	Week       int           `json:"week"`
	TotalWords int           `json:"totalWords"`
	Words      *[]model.Word `json:"words"`
}

// ParseWeek decodes and validates a week document.
func ParseWeek(week int, data []byte) (model.WeekData, error) {
	var doc weekDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.WeekData{}, fmt.Errorf("week %d: %w: %v", week, ErrMalformed, err)
	}
	if doc.Words == nil {
		return model.WeekData{}, fmt.Errorf("week %d: %w: missing words", week, ErrMalformed)
	}
	for i, w := range *doc.Words {
		if w.Kanji == "" || w.Korean == "" {
			return model.WeekData{}, fmt.Errorf("week %d: %w: word %d lacks kanji or korean", week, ErrMalformed, i)
		}
	}
	out := model.WeekData{Week: doc.Week, TotalWords: doc.TotalWords, Words: *doc.Words}
	if out.Week == 0 {
		out.Week = week
	}
	if out.TotalWords == 0 {
		out.TotalWords = len(out.Words)
	}
	return out, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
