package progress

import (
	"github.com/verte-zerg/tango/internal/model"
)

// BestScore returns the best test percentage for week.
func (s *Store) BestScore(week int) int {
	return Get(s, bestScoreKey(week), 0)
}

// TestResults returns the test history for week, newest first.
func (s *Store) TestResults(week int) []model.TestResult {
	return Get(s, testResultsKey(week), []model.TestResult{})
}

// RecordTestResult prepends result to the week's history, keeps at most
// historyCap entries, and raises the best score when result beats it.
// A non-positive historyCap uses DefaultHistoryCap.
func (s *Store) RecordTestResult(week int, result model.TestResult, historyCap int) {
	if historyCap <= 0 {
		historyCap = DefaultHistoryCap
	}
	results := append([]model.TestResult{result}, s.TestResults(week)...)
	if len(results) > historyCap {
		results = results[:historyCap]
	}
	s.Set(testResultsKey(week), results)

	if best := s.BestScore(week); result.Percentage > best {
		s.Set(bestScoreKey(week), result.Percentage)
	}
}
