// Package review drills the wrong answers of one week until they are learned.
package review

import (
	"strings"

	"github.com/verte-zerg/tango/internal/model"
)

// Mode selects how entries are drilled.
type Mode int

// Review modes.
const (
	CardMode Mode = iota
	QuizMode
)

func (m Mode) String() string {
	if m == QuizMode {
		return "quiz"
	}
	return "card"
}

// Store holds wrong answers. *progress.Store satisfies it.
type Store interface {
	WrongAnswersForWeek(week int) []model.WrongAnswer
	RemoveWrongAnswer(wordID, week int)
}

// Result is the outcome of a typed answer.
type Result struct {
	Input    string
	Expected string
	Correct  bool
}

// Session walks the wrong answers of a week.
type Session struct {
	week    int
	store   Store
	answers []model.WrongAnswer
	index   int
	mode    Mode

	showAnswer bool
	result     *Result
}

// New loads the wrong answers of week.
func New(week int, store Store) *Session {
	s := &Session{week: week, store: store}
	s.reload()
	return s
}

func (s *Session) reload() {
	s.answers = s.store.WrongAnswersForWeek(s.week)
	if s.index >= len(s.answers) {
		s.index = max(0, len(s.answers)-1)
	}
}

// Week returns the reviewed week.
func (s *Session) Week() int { return s.week }

// Len returns the number of remaining entries.
func (s *Session) Len() int { return len(s.answers) }

// Index returns the current position.
func (s *Session) Index() int { return s.index }

// Done reports whether every entry has been learned.
func (s *Session) Done() bool { return len(s.answers) == 0 }

// Current returns the current entry.
func (s *Session) Current() (model.WrongAnswer, bool) {
	if s.Done() {
		return model.WrongAnswer{}, false
	}
	return s.answers[s.index], true
}

// Mode returns the drill mode.
func (s *Session) Mode() Mode { return s.mode }

// ToggleMode switches between card and quiz mode.
func (s *Session) ToggleMode() {
	if s.mode == CardMode {
		s.mode = QuizMode
	} else {
		s.mode = CardMode
	}
	s.clear()
}

// AnswerVisible reports whether the card answer is shown.
func (s *Session) AnswerVisible() bool { return s.showAnswer }

// ToggleAnswer shows or hides the card answer.
func (s *Session) ToggleAnswer() { s.showAnswer = !s.showAnswer }

// LastResult returns the outcome of the last typed answer on this entry.
func (s *Session) LastResult() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Submit checks a typed meaning. A match after trimming removes the entry
// and moves on to the next one.
func (s *Session) Submit(text string) Result {
	current, ok := s.Current()
	if !ok {
		return Result{}
	}
	input := strings.TrimSpace(text)
	res := Result{Input: input, Expected: current.Word.Korean, Correct: input == current.Word.Korean}
	if res.Correct {
		s.remove(current)
	}
	s.result = &res
	return res
}

// MarkLearned removes the current entry.
func (s *Session) MarkLearned() {
	if current, ok := s.Current(); ok {
		s.remove(current)
		s.clear()
	}
}

func (s *Session) remove(a model.WrongAnswer) {
	s.store.RemoveWrongAnswer(a.Word.ID, a.Week)
	s.reload()
	s.showAnswer = false
}

// Next moves to the following entry, wrapping to the first.
func (s *Session) Next() {
	if s.Done() {
		return
	}
	s.index = (s.index + 1) % len(s.answers)
	s.clear()
}

// Previous moves to the preceding entry, wrapping to the last.
func (s *Session) Previous() {
	if s.Done() {
		return
	}
	s.index = (s.index - 1 + len(s.answers)) % len(s.answers)
	s.clear()
}

func (s *Session) clear() {
	s.showAnswer = false
	s.result = nil
}
