package review

import (
	"testing"

	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/progress"
	"github.com/verte-zerg/tango/internal/store"
)

func seeded(t *testing.T) *progress.Store {
	t.Helper()
	prog := progress.New(store.NewMemory(0), nil)
	prog.SaveWrongAnswer(model.Word{ID: 3, Kanji: "本", Hiragana: "ほん", Korean: "책"}, "집", "책", 1)
	prog.SaveWrongAnswer(model.Word{ID: 2, Kanji: "絞る", Hiragana: "しぼる", Korean: "쥐어짜다"}, "책", "쥐어짜다", 1)
	prog.SaveWrongAnswer(model.Word{ID: 1, Kanji: "幼い", Hiragana: "おさない", Korean: "어리다"}, "책", "어리다", 1)
	prog.SaveWrongAnswer(model.Word{ID: 1, Kanji: "家", Hiragana: "いえ", Korean: "집"}, "책", "집", 2)
	return prog
}

func TestSessionLoadsWeek(t *testing.T) {
	s := New(1, seeded(t))
	if s.Len() != 3 || s.Done() {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}
	cur, _ := s.Current()
	if cur.Word.ID != 1 {
		t.Fatalf("expected newest entry first, got %+v", cur)
	}
}

func TestSubmitCorrectRemoves(t *testing.T) {
	prog := seeded(t)
	s := New(1, prog)
	res := s.Submit("  어리다 ")
	if !res.Correct || res.Expected != "어리다" {
		t.Fatalf("expected correct result, got %+v", res)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries left, got %d", s.Len())
	}
	if len(prog.WrongAnswersForWeek(1)) != 2 || len(prog.WrongAnswersForWeek(2)) != 1 {
		t.Fatalf("removal must only affect the reviewed entry")
	}
	cur, _ := s.Current()
	if cur.Word.ID != 2 {
		t.Fatalf("expected to move on to the next entry, got %+v", cur)
	}
}

func TestSubmitWrongKeeps(t *testing.T) {
	prog := seeded(t)
	s := New(1, prog)
	res := s.Submit("어리")
	if res.Correct {
		t.Fatalf("expected wrong result")
	}
	if s.Len() != 3 || len(prog.WrongAnswers()) != 4 {
		t.Fatalf("wrong answer must keep the entry")
	}
	if got, ok := s.LastResult(); !ok || got.Input != "어리" {
		t.Fatalf("expected last result to be kept, got %+v", got)
	}
	s.Next()
	if _, ok := s.LastResult(); ok {
		t.Fatalf("navigation must clear the result")
	}
}

func TestNavigationWraps(t *testing.T) {
	s := New(1, seeded(t))
	s.Previous()
	if s.Index() != 2 {
		t.Fatalf("expected last index, got %d", s.Index())
	}
	s.Next()
	if s.Index() != 0 {
		t.Fatalf("expected first index, got %d", s.Index())
	}
}

func TestMarkLearnedUntilDone(t *testing.T) {
	prog := seeded(t)
	s := New(1, prog)
	s.Previous()
	s.ToggleAnswer()
	s.MarkLearned()
	if s.Index() != 1 || s.Len() != 2 || s.AnswerVisible() {
		t.Fatalf("removing the last entry must stay at the end and hide the answer, got index %d of %d", s.Index(), s.Len())
	}
	for !s.Done() {
		s.MarkLearned()
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("expected no current entry when done")
	}
	if len(prog.WrongAnswersForWeek(1)) != 0 {
		t.Fatalf("expected week 1 cleared")
	}
	s.Next()
	s.MarkLearned()
	if res := s.Submit("x"); res.Correct {
		t.Fatalf("submit on an empty session must be a no-op")
	}
}

func TestSubmitLastEntryStaysAtEnd(t *testing.T) {
	s := New(1, seeded(t))
	s.Previous()
	if res := s.Submit("책"); !res.Correct {
		t.Fatalf("expected correct result, got %+v", res)
	}
	cur, ok := s.Current()
	if !ok || s.Index() != 1 || cur.Word.ID != 2 {
		t.Fatalf("expected to stay on the new last entry, got index %d entry %+v", s.Index(), cur)
	}
}

func TestToggleMode(t *testing.T) {
	s := New(1, seeded(t))
	s.ToggleAnswer()
	s.ToggleMode()
	if s.Mode() != QuizMode || s.AnswerVisible() {
		t.Fatalf("expected quiz mode with hidden answer")
	}
	s.ToggleMode()
	if s.Mode() != CardMode {
		t.Fatalf("expected card mode")
	}
}
