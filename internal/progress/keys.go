package progress

import (
	"fmt"
	"regexp"
)

const (
	wrongAnswersKey = "wrong_answers"
	themeKey        = "theme"
)

// MaxWrongAnswers caps the global wrong-answer list.
const MaxWrongAnswers = 200

// History caps for per-week test results.
const (
	DefaultHistoryCap = 10
	ShortHistoryCap   = 5
)

var testResultsKeyPattern = regexp.MustCompile(`^test_results_week\d+$`)

func studyProgressKey(week int) string { return fmt.Sprintf("study_progress_week%d", week) }
func studiedTodayKey(week int) string  { return fmt.Sprintf("studied_today_week%d", week) }
func bestScoreKey(week int) string     { return fmt.Sprintf("test_best_score_week%d", week) }
func testResultsKey(week int) string   { return fmt.Sprintf("test_results_week%d", week) }
func lastStudiedKey(week int) string   { return fmt.Sprintf("last_studied_week%d", week) }

func weekKeysPattern(week int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^(study_progress|studied_today|test_best_score|test_results|last_studied)_week%d$`, week))
}

var allKeysPattern = regexp.MustCompile(`.*`)
