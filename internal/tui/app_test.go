package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/progress"
	"github.com/verte-zerg/tango/internal/quiz"
	"github.com/verte-zerg/tango/internal/store"
	"github.com/verte-zerg/tango/internal/study"
	"github.com/verte-zerg/tango/internal/vocab"
)

var weekWords = map[int][]model.Word{
	1: {
		{ID: 1, Kanji: "幼い", Hiragana: "おさない", Korean: "어리다"},
		{ID: 2, Kanji: "絞る", Hiragana: "しぼる", Korean: "쥐어짜다"},
		{ID: 3, Kanji: "本", Hiragana: "ほん", Korean: "책"},
	},
	2: {
		{ID: 1, Kanji: "水", Hiragana: "みず", Korean: "물"},
		{ID: 2, Kanji: "火", Hiragana: "ひ", Korean: "불"},
	},
}

type fakeVocab struct{}

func (fakeVocab) LoadWeek(_ context.Context, week int) (model.WeekData, error) {
	words, ok := weekWords[week]
	if !ok {
		return model.WeekData{}, fmt.Errorf("week %d: %w", week, vocab.ErrNotFound)
	}
	return model.WeekData{Week: week, TotalWords: len(words), Words: words}, nil
}

func (fakeVocab) AggregateStats(context.Context) model.VocabStats {
	vs := model.VocabStats{WordsPerWeek: map[int]int{}}
	for week, words := range weekWords {
		vs.TotalWeeks++
		vs.TotalWords += len(words)
		vs.WordsPerWeek[week] = len(words)
	}
	return vs
}

type fakeSpeaker struct{ spoken []string }

func (f *fakeSpeaker) Speak(text string) { f.spoken = append(f.spoken, text) }

type fakeScheduler struct{ armed []func() }

func (f *fakeScheduler) After(_ time.Duration, fn func()) func() {
	f.armed = append(f.armed, fn)
	return func() {}
}

type identity struct{}

func (identity) Shuffle(int, func(i, j int)) {}

type harness struct {
	app     *App
	prog    *progress.Store
	speaker *fakeSpeaker
	sched   *fakeScheduler
	quit    bool
}

func newHarness(t *testing.T, start Page) *harness {
	t.Helper()
	h := &harness{
		prog:    progress.New(store.NewMemory(0), nil),
		speaker: &fakeSpeaker{},
		sched:   &fakeScheduler{},
	}
	h.app = New(Deps{
		Vocab:     fakeVocab{},
		Progress:  h.prog,
		Speaker:   h.speaker,
		Study:     study.Config{SpeakOnFlip: true},
		Quiz:      quiz.Config{Types: model.AllQuestionTypes()},
		Shuffler:  identity{},
		Scheduler: h.sched,
	}, start)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	h.run(h.app.open(start))
	return h
}

// run executes cmd and feeds navigation and load results back into the app.
// Timers and tick listeners are dropped.
func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(time.Second):
		return
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case tea.QuitMsg:
		h.quit = true
	case navigateMsg, weekLoadedMsg, vocabLoadedMsg:
		h.send(msg)
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.app.Update(msg)
	if _, ok := msg.(tickMsg); ok {
		return
	}
	h.run(cmd)
}

func (h *harness) key(keys ...string) {
	for _, k := range keys {
		switch k {
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "tab":
			h.send(tea.KeyMsg{Type: tea.KeyTab})
		case "left":
			h.send(tea.KeyMsg{Type: tea.KeyLeft})
		case "right":
			h.send(tea.KeyMsg{Type: tea.KeyRight})
		case " ":
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func TestHomeToWeeksToTest(t *testing.T) {
	h := newHarness(t, HomePage{})
	h.key("1")
	if _, ok := h.app.Page().(WeeksPage); !ok {
		t.Fatalf("expected weeks page, got %T", h.app.Page())
	}
	weeks := h.app.screen.(*weeksScreen)
	if len(weeks.weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %v", weeks.weeks)
	}
	h.key("x")
	page, ok := h.app.Page().(TestPage)
	if !ok || page.Week != 1 {
		t.Fatalf("expected test page for week 1, got %#v", h.app.Page())
	}
	if h.app.screen.(*testScreen).session == nil {
		t.Fatalf("expected quiz session after load")
	}
}

func TestStudyKeys(t *testing.T) {
	h := newHarness(t, StudyPage{Week: 1})
	s := h.app.screen.(*studyScreen)
	if s.session.State() != study.Ready {
		t.Fatalf("expected ready session")
	}
	h.key("right")
	if got := h.prog.StudyProgress(1); got != 1 {
		t.Fatalf("expected saved position 1, got %d", got)
	}
	h.key(" ")
	if !s.session.Flipped() {
		t.Fatalf("expected flipped card")
	}
	if len(h.speaker.spoken) != 1 || h.speaker.spoken[0] != "しぼる" {
		t.Fatalf("expected reading to be spoken, got %v", h.speaker.spoken)
	}
	if !strings.Contains(h.app.View(), "쥐어짜다") {
		t.Fatalf("expected meaning on flipped card")
	}
	h.key("left")
	if s.session.Flipped() || s.session.Index() != 0 {
		t.Fatalf("expected hidden first card after moving back")
	}
}

func TestAutoPlayTickAdvances(t *testing.T) {
	h := newHarness(t, StudyPage{Week: 1})
	s := h.app.screen.(*studyScreen)
	h.key("a")
	if !s.session.AutoPlaying() || len(h.sched.armed) != 1 {
		t.Fatalf("expected armed auto-play")
	}
	h.sched.armed[0]()
	tick := <-h.app.sh.ticks
	h.send(tickMsg(tick))
	if s.session.Index() != 1 {
		t.Fatalf("expected tick to advance, index %d", s.session.Index())
	}
	h.key("esc")
	if _, ok := h.app.Page().(WeeksPage); !ok {
		t.Fatalf("expected weeks page after esc, got %T", h.app.Page())
	}
	h.sched.armed[len(h.sched.armed)-1]()
	h.send(tickMsg(<-h.app.sh.ticks))
	if s.session.Index() != 1 {
		t.Fatalf("expected closed session to ignore ticks, index %d", s.session.Index())
	}
}

func TestMissingWeekShowsMessage(t *testing.T) {
	h := newHarness(t, StudyPage{Week: 7})
	if !strings.Contains(h.app.View(), "Week 7 has no vocabulary yet.") {
		t.Fatalf("expected not-found message, got %q", h.app.View())
	}
}

func TestStaleLoadIsDropped(t *testing.T) {
	h := newHarness(t, HomePage{})
	stale := h.app.open(StudyPage{Week: 1})
	h.run(h.app.open(StudyPage{Week: 2}))
	h.run(stale)
	s := h.app.screen.(*studyScreen)
	if s.session.Week() != 2 || s.session.Current().Kanji != "水" {
		t.Fatalf("expected week 2 words, got %+v", s.session.Current())
	}
}

func TestQuizAnswering(t *testing.T) {
	h := newHarness(t, TestPage{Week: 2})
	s := h.app.screen.(*testScreen)
	h.key("1")
	if s.session.Score() != 1 {
		t.Fatalf("expected correct first choice, score %d", s.session.Score())
	}
	h.key("enter", "2", "enter")
	if s.session.State() != quiz.Completed {
		t.Fatalf("expected completed quiz, state %v", s.session.State())
	}
	if got := h.prog.BestScore(2); got != 50 {
		t.Fatalf("expected best score 50, got %d", got)
	}
	if len(h.prog.WrongAnswersForWeek(2)) != 1 {
		t.Fatalf("expected one wrong answer")
	}
	h.key("v")
	if _, ok := h.app.Page().(ReviewWeekPage); !ok {
		t.Fatalf("expected review week page, got %T", h.app.Page())
	}
}

func TestThemeTogglePersists(t *testing.T) {
	h := newHarness(t, HomePage{})
	h.key("t")
	if h.prog.Theme() != model.ThemeLight {
		t.Fatalf("expected light theme saved")
	}
	if !strings.Contains(h.app.View(), "light") {
		t.Fatalf("expected theme in header")
	}
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t, HomePage{})
	h.key("q")
	if !h.quit {
		t.Fatalf("expected quit")
	}
}

func TestReviewQuizCapturesTyping(t *testing.T) {
	h := newHarness(t, HomePage{})
	word := weekWords[1][0]
	h.prog.SaveWrongAnswer(word, "책", word.Korean, 1)
	h.run(h.app.open(ReviewWeekPage{Week: 1}))

	h.key("tab", "q", "t")
	if h.quit {
		t.Fatalf("typed q must not quit")
	}
	rs := h.app.screen.(*reviewWeekScreen)
	if rs.input.Value() != "qt" {
		t.Fatalf("expected typed text, got %q", rs.input.Value())
	}
	h.key("enter")
	if len(h.prog.WrongAnswersForWeek(1)) != 1 {
		t.Fatalf("wrong answer must keep the entry")
	}
	rs.input.SetValue(" " + word.Korean + " ")
	h.key("enter")
	if len(h.prog.WrongAnswersForWeek(1)) != 0 {
		t.Fatalf("correct answer must remove the entry")
	}
	if !strings.Contains(h.app.View(), "All words of week 1 are learned.") {
		t.Fatalf("expected done message")
	}
}

type panicScreen struct{ homeScreen }

func (panicScreen) Update(tea.Msg) tea.Cmd { panic("boom") }

func TestFaultBoundary(t *testing.T) {
	h := newHarness(t, HomePage{})
	h.prog.SaveWrongAnswer(weekWords[1][0], "x", "y", 1)
	h.app.screen = &panicScreen{homeScreen: *newHomeScreen(h.app.sh)}

	h.key("j")
	if h.app.fault == "" {
		t.Fatalf("expected fault to be captured")
	}
	if !strings.Contains(h.app.View(), "Something went wrong.") {
		t.Fatalf("expected failure screen")
	}
	h.key("x")
	if h.app.fault != "" {
		t.Fatalf("expected fault cleared after reset")
	}
	if _, ok := h.app.Page().(HomePage); !ok {
		t.Fatalf("expected home page after reset, got %T", h.app.Page())
	}
	if len(h.prog.WrongAnswers()) != 0 {
		t.Fatalf("expected progress reset")
	}
}

func TestFaultReload(t *testing.T) {
	h := newHarness(t, WeeksPage{})
	h.app.fail("boom")
	h.key("r")
	if h.app.fault != "" {
		t.Fatalf("expected fault cleared after reload")
	}
	if _, ok := h.app.screen.(*weeksScreen); !ok {
		t.Fatalf("expected weeks screen to be rebuilt, got %T", h.app.screen)
	}
}
