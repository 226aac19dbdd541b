package progress

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/store"
)

var baseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(t *testing.T, backend Backend) (*Store, *test.Hook, *clock) {
	t.Helper()
	log, hook := test.NewNullLogger()
	c := &clock{t: baseTime}
	return New(backend, log, WithClock(c.now)), hook, c
}

func word(id int) model.Word {
	return model.Word{ID: id, Kanji: "字", Hiragana: "じ", Korean: "글자"}
}

func TestGetDefaults(t *testing.T) {
	s, hook, _ := newTestStore(t, store.NewMemory(0))
	if got := s.StudyProgress(1); got != 0 {
		t.Fatalf("expected default progress 0, got %d", got)
	}
	if got := s.TestResults(1); len(got) != 0 {
		t.Fatalf("expected empty history, got %v", got)
	}
	if got := s.Theme(); got != model.ThemeDark {
		t.Fatalf("expected dark theme, got %q", got)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("missing keys must not log")
	}
}

func TestGetMalformedValueLogs(t *testing.T) {
	backend := store.NewMemory(0)
	if err := backend.Set(context.Background(), "study_progress_week2", []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s, hook, _ := newTestStore(t, backend)
	if got := s.StudyProgress(2); got != 0 {
		t.Fatalf("expected default for malformed value, got %d", got)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected an error log entry, got %v", entry)
	}
	if entry.Data["key"] != "study_progress_week2" {
		t.Fatalf("expected key field, got %v", entry.Data)
	}
}

func TestBackendFailureIsSoft(t *testing.T) {
	backend := store.NewMemory(0)
	s, hook, _ := newTestStore(t, backend)
	s.SetStudyProgress(1, 4)

	backend.Fail = errors.New("disk gone")
	if got := s.StudyProgress(1); got != 0 {
		t.Fatalf("expected default on failure, got %d", got)
	}
	s.SetStudyProgress(1, 7)
	if n := len(hook.AllEntries()); n != 2 {
		t.Fatalf("expected 2 logged failures, got %d", n)
	}

	backend.Fail = nil
	if got := s.StudyProgress(1); got != 4 {
		t.Fatalf("failed write must leave old value, got %d", got)
	}
}

func TestSaveWrongAnswerDedupes(t *testing.T) {
	s, _, c := newTestStore(t, store.NewMemory(0))
	s.SaveWrongAnswer(word(1), "a", "글자", 1)
	s.SaveWrongAnswer(word(2), "b", "글자", 1)
	s.SaveWrongAnswer(word(1), "c", "글자", 2)
	c.t = c.t.Add(time.Minute)
	s.SaveWrongAnswer(word(1), "d", "글자", 1)

	answers := s.WrongAnswers()
	if len(answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(answers))
	}
	first := answers[0]
	if first.Word.ID != 1 || first.Week != 1 || first.UserAnswer != "d" {
		t.Fatalf("expected newest entry first, got %+v", first)
	}
	if first.Timestamp != c.t.UnixMilli() {
		t.Fatalf("unexpected timestamp %d", first.Timestamp)
	}
	seen := map[[2]int]bool{}
	for _, a := range answers {
		k := [2]int{a.Word.ID, a.Week}
		if seen[k] {
			t.Fatalf("duplicate entry for %v", k)
		}
		seen[k] = true
	}
}

func TestSaveWrongAnswerCap(t *testing.T) {
	s, _, _ := newTestStore(t, store.NewMemory(0))
	for i := 1; i <= MaxWrongAnswers+5; i++ {
		s.SaveWrongAnswer(word(i), "x", "글자", 1)
	}
	answers := s.WrongAnswers()
	if len(answers) != MaxWrongAnswers {
		t.Fatalf("expected %d answers, got %d", MaxWrongAnswers, len(answers))
	}
	if answers[0].Word.ID != MaxWrongAnswers+5 {
		t.Fatalf("expected newest first, got id %d", answers[0].Word.ID)
	}
	if answers[len(answers)-1].Word.ID != 6 {
		t.Fatalf("expected oldest entries dropped, got id %d", answers[len(answers)-1].Word.ID)
	}
}

func TestRemoveWrongAnswer(t *testing.T) {
	s, _, _ := newTestStore(t, store.NewMemory(0))
	s.SaveWrongAnswer(word(1), "a", "글자", 1)
	s.SaveWrongAnswer(word(1), "a", "글자", 2)
	s.RemoveWrongAnswer(1, 2)
	got := s.WrongAnswers()
	if len(got) != 1 || got[0].Week != 1 {
		t.Fatalf("unexpected answers after remove: %+v", got)
	}
	s.RemoveWrongAnswer(9, 9)
	if len(s.WrongAnswers()) != 1 {
		t.Fatalf("removing a missing entry must not change the list")
	}
	s.ClearWrongAnswers()
	if len(s.WrongAnswers()) != 0 {
		t.Fatalf("expected empty list after clear")
	}
}

func TestWrongAnswersByWeek(t *testing.T) {
	s, _, _ := newTestStore(t, store.NewMemory(0))
	s.SaveWrongAnswer(word(1), "a", "글자", 3)
	s.SaveWrongAnswer(word(2), "a", "글자", 1)
	s.SaveWrongAnswer(word(3), "a", "글자", 3)

	groups := s.WrongAnswersByWeek()
	weeks := []int{}
	for _, g := range groups {
		weeks = append(weeks, g.Week)
	}
	if diff := cmp.Diff([]int{1, 3}, weeks); diff != "" {
		t.Fatalf("weeks mismatch (-want +got):\n%s", diff)
	}
	ids := []int{groups[1].Answers[0].Word.ID, groups[1].Answers[1].Word.ID}
	if diff := cmp.Diff([]int{3, 1}, ids); diff != "" {
		t.Fatalf("week 3 order mismatch (-want +got):\n%s", diff)
	}
	if got := s.WrongAnswersForWeek(1); len(got) != 1 || got[0].Word.ID != 2 {
		t.Fatalf("unexpected week 1 answers: %+v", got)
	}
}

func TestRecordTestResultCaps(t *testing.T) {
	for _, historyCap := range []int{ShortHistoryCap, DefaultHistoryCap} {
		s, _, _ := newTestStore(t, store.NewMemory(0))
		for i := 0; i < historyCap+3; i++ {
			s.RecordTestResult(1, model.TestResult{Score: i, Total: 20, Percentage: i * 5}, historyCap)
		}
		results := s.TestResults(1)
		if len(results) != historyCap {
			t.Fatalf("cap %d: expected %d results, got %d", historyCap, historyCap, len(results))
		}
		if results[0].Score != historyCap+2 {
			t.Fatalf("cap %d: expected newest first, got score %d", historyCap, results[0].Score)
		}
	}
}

func TestBestScoreIsMonotone(t *testing.T) {
	s, _, _ := newTestStore(t, store.NewMemory(0))
	for _, pct := range []int{40, 90, 60, 90, 10} {
		s.RecordTestResult(2, model.TestResult{Percentage: pct}, DefaultHistoryCap)
	}
	if got := s.BestScore(2); got != 90 {
		t.Fatalf("expected best 90, got %d", got)
	}
	if got := len(s.TestResults(2)); got != 5 {
		t.Fatalf("expected 5 results, got %d", got)
	}
}

func TestQuotaTriggersCleanupAndRetry(t *testing.T) {
	old := make([]model.TestResult, 3)
	for i := range old {
		old[i] = model.TestResult{
			Date:          baseTime.AddDate(0, -2, 0).Format(isoLayout),
			Score:         i,
			Total:         10,
			Percentage:    i * 10,
			QuestionTypes: []model.QuestionType{model.KanjiToKorean},
		}
	}
	raw, err := json.Marshal(old)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	key := "test_results_week1"
	backend := store.NewMemory(int64(len(key)+len(raw)) + 100)
	if err := backend.Set(context.Background(), key, raw); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s, hook, _ := newTestStore(t, backend)
	note := strings.Repeat("x", 150)
	s.Set("note", note)

	if got := Get(s, "note", ""); got != note {
		t.Fatalf("expected write to succeed after cleanup")
	}
	if got := s.TestResults(1); len(got) != 0 {
		t.Fatalf("expected old results pruned, got %d", len(got))
	}
	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
		if e.Level == logrus.ErrorLevel {
			t.Fatalf("unexpected error log: %s", e.Message)
		}
	}
	if !warned {
		t.Fatalf("expected quota warning")
	}
}

func TestQuotaFailureIsLogged(t *testing.T) {
	s, hook, _ := newTestStore(t, store.NewMemory(10))
	s.Set("note", strings.Repeat("x", 50))
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected error log after failed retry, got %v", entry)
	}
	if !errors.Is(entry.Data[logrus.ErrorKey].(error), store.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", entry.Data[logrus.ErrorKey])
	}
}

func TestCleanupKeepsRecent(t *testing.T) {
	s, _, c := newTestStore(t, store.NewMemory(0))
	recent := baseTime.Add(-24 * time.Hour).Format(isoLayout)
	stale := baseTime.AddDate(0, 0, -31).Format(isoLayout)
	s.Set(testResultsKey(1), []model.TestResult{{Date: recent, Percentage: 70}, {Date: stale, Percentage: 20}})
	s.Set(testResultsKey(2), []model.TestResult{{Date: recent, Percentage: 50}})

	c.t = baseTime.AddDate(0, 0, -40)
	s.SaveWrongAnswer(word(1), "a", "글자", 1)
	c.t = baseTime
	s.SaveWrongAnswer(word(2), "a", "글자", 1)

	s.Cleanup()

	if got := s.TestResults(1); len(got) != 1 || got[0].Percentage != 70 {
		t.Fatalf("unexpected week 1 results: %+v", got)
	}
	if got := s.TestResults(2); len(got) != 1 {
		t.Fatalf("week 2 results must be untouched, got %+v", got)
	}
	if got := s.WrongAnswers(); len(got) != 1 || got[0].Word.ID != 2 {
		t.Fatalf("unexpected wrong answers: %+v", got)
	}
}

func TestKeysMatching(t *testing.T) {
	s, _, _ := newTestStore(t, store.NewMemory(0))
	s.SetStudyProgress(1, 1)
	s.RecordTestResult(1, model.TestResult{Percentage: 10}, 0)
	s.RecordTestResult(12, model.TestResult{Percentage: 10}, 0)

	got := s.KeysMatching(regexp.MustCompile(`^test_results_week\d+$`))
	if diff := cmp.Diff([]string{"test_results_week1", "test_results_week12"}, got); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestResetWeek(t *testing.T) {
	s, _, _ := newTestStore(t, store.NewMemory(0))
	for _, week := range []int{1, 11} {
		s.SetStudyProgress(week, 3)
		s.SetStudiedToday(week, 2)
		s.TouchLastStudied(week)
		s.RecordTestResult(week, model.TestResult{Percentage: 80}, 0)
		s.SaveWrongAnswer(word(week), "a", "글자", week)
	}
	s.SetTheme(model.ThemeLight)

	s.Reset(1)

	if s.StudyProgress(1) != 0 || s.BestScore(1) != 0 || s.LastStudied(1) != "" {
		t.Fatalf("week 1 progress must be cleared: %+v", s.WeekStats(1))
	}
	if s.StudyProgress(11) != 3 || s.BestScore(11) != 80 {
		t.Fatalf("week 11 progress must survive: %+v", s.WeekStats(11))
	}
	if got := s.WrongAnswers(); len(got) != 1 || got[0].Week != 11 {
		t.Fatalf("unexpected wrong answers: %+v", got)
	}

	s.ResetAll()
	if s.StudyProgress(11) != 0 || len(s.WrongAnswers()) != 0 {
		t.Fatalf("expected everything cleared")
	}
	if s.Theme() != model.ThemeLight {
		t.Fatalf("theme must survive ResetAll")
	}
}

func TestTotalStats(t *testing.T) {
	s, _, c := newTestStore(t, store.NewMemory(0))
	s.TouchLastStudied(1)
	c.t = baseTime.AddDate(0, 0, -1)
	s.TouchLastStudied(2)
	c.t = baseTime.AddDate(0, 0, -3)
	s.TouchLastStudied(3)
	c.t = baseTime

	s.SetStudiedToday(1, 4)
	s.SetStudiedToday(2, 6)
	s.RecordTestResult(1, model.TestResult{Percentage: 80}, 0)
	s.RecordTestResult(1, model.TestResult{Percentage: 60}, 0)
	s.RecordTestResult(2, model.TestResult{Percentage: 50}, 0)
	s.SaveWrongAnswer(word(1), "a", "글자", 1)

	got := s.TotalStats([]int{1, 2, 3})
	want := model.TotalStats{
		TotalStudied:      10,
		AverageScore:      65,
		TotalTests:        3,
		StudyStreak:       2,
		WrongAnswersCount: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("total stats mismatch (-want +got):\n%s", diff)
	}
}

func TestStudyStreakNeedsToday(t *testing.T) {
	yesterday := baseTime.AddDate(0, 0, -1).Format(isoLayout)
	if got := studyStreak([]string{yesterday, ""}, baseTime); got != 0 {
		t.Fatalf("expected no streak without today, got %d", got)
	}
}
