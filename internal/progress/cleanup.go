package progress

import (
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/tango/internal/model"
)

const (
	cleanupMaxAge          = 30 * 24 * time.Hour
	cleanupKeepResults     = 10
	cleanupKeepWrongAnswer = 100
)

// Cleanup prunes test results and wrong answers older than 30 days. Lists
// that lost entries are also trimmed to their cleanup caps.
func (s *Store) Cleanup() {
	cutoff := s.now().Add(-cleanupMaxAge)

	for _, key := range s.KeysMatching(testResultsKeyPattern) {
		results := Get(s, key, []model.TestResult{})
		kept := lo.Filter(results, func(r model.TestResult, _ int) bool {
			t, ok := parseISO(r.Date)
			return !ok || t.After(cutoff)
		})
		if len(kept) < len(results) {
			if len(kept) > cleanupKeepResults {
				kept = kept[:cleanupKeepResults]
			}
			s.write(key, kept, false)
		}
	}

	answers := s.WrongAnswers()
	kept := lo.Filter(answers, func(a model.WrongAnswer, _ int) bool {
		return a.Timestamp == 0 || a.Timestamp > cutoff.UnixMilli()
	})
	if len(kept) < len(answers) {
		if len(kept) > cleanupKeepWrongAnswer {
			kept = kept[:cleanupKeepWrongAnswer]
		}
		s.write(wrongAnswersKey, kept, false)
	}
}

// Reset removes all study and test progress of week, including its wrong answers.
func (s *Store) Reset(week int) {
	for _, key := range s.KeysMatching(weekKeysPattern(week)) {
		s.Remove(key)
	}
	answers := s.WrongAnswers()
	kept := lo.Reject(answers, func(a model.WrongAnswer, _ int) bool {
		return a.Week == week
	})
	if len(kept) < len(answers) {
		s.Set(wrongAnswersKey, kept)
	}
}

// ResetAll removes every stored key except the theme.
func (s *Store) ResetAll() {
	for _, key := range s.KeysMatching(allKeysPattern) {
		if key == themeKey {
			continue
		}
		s.Remove(key)
	}
}
