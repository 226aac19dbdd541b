// Package quiz runs a multiple-choice test over one week's words.
package quiz

import (
	"errors"
	"time"

	"github.com/verte-zerg/tango/internal/generator"
	"github.com/verte-zerg/tango/internal/model"
)

// Setup errors.
var (
	ErrEmptyWordList   = errors.New("quiz needs at least one word")
	ErrNoQuestionTypes = errors.New("quiz needs at least one question type")
)

// State is the session lifecycle state.
type State int

// Session states.
const (
	Initializing State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case InProgress:
		return "in progress"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Recorder persists quiz outcomes. *progress.Store satisfies it.
type Recorder interface {
	SaveWrongAnswer(word model.Word, userAnswer, correctAnswer string, week int)
	RecordTestResult(week int, result model.TestResult, historyCap int)
}

// Config selects the questions of a session.
type Config struct {
	Types []model.QuestionType
	// Count limits the number of questions. Zero or more than the word count
	// uses every word.
	Count       int
	RandomOrder bool
	// HistoryCap is passed to the recorder; zero keeps the default history.
	HistoryCap int
}

// Answer is a submitted response.
type Answer struct {
	Question model.Question
	Choice   string
	Correct  bool
}

// Session is a quiz state machine. It is not safe for concurrent use.
type Session struct {
	week     int
	words    []model.Word
	cfg      Config
	recorder Recorder
	gen      *generator.Generator
	now      func() time.Time

	state     State
	order     []model.Word
	questions []*model.Question
	answers   []*Answer
	index     int
	score     int
	result    model.TestResult
}

// Option configures a Session.
type Option func(*Session)

// WithShuffler makes every permutation come from rnd.
func WithShuffler(rnd generator.Shuffler) Option {
	return func(s *Session) {
		s.gen = generator.NewWithShuffler(rnd)
	}
}

// WithClock overrides the time source for result dates.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New starts a session over words. It fails with a setup error instead of
// producing a session without questions.
func New(week int, words []model.Word, cfg Config, recorder Recorder, opts ...Option) (*Session, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	if len(cfg.Types) == 0 {
		return nil, ErrNoQuestionTypes
	}
	s := &Session{
		week:     week,
		words:    append([]model.Word(nil), words...),
		cfg:      cfg,
		recorder: recorder,
		gen:      generator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.start()
	return s, nil
}

func (s *Session) start() {
	s.state = Initializing
	order := s.words
	if s.cfg.RandomOrder {
		order = s.gen.Order(s.words)
	}
	total := len(order)
	if s.cfg.Count > 0 && s.cfg.Count < total {
		total = s.cfg.Count
	}
	s.order = order[:total]
	s.questions = make([]*model.Question, total)
	s.answers = make([]*Answer, total)
	s.index = 0
	s.score = 0
	s.result = model.TestResult{}
	s.state = InProgress
}

// Week returns the tested week.
func (s *Session) Week() int { return s.week }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Index returns the zero-based current question index.
func (s *Session) Index() int { return s.index }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.order) }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Current returns the current question, generating it on first access.
func (s *Session) Current() model.Question {
	if q := s.questions[s.index]; q != nil {
		return *q
	}
	qt := s.cfg.Types[s.index%len(s.cfg.Types)]
	q := s.gen.Question(s.order[s.index], qt, s.words)
	s.questions[s.index] = &q
	return q
}

// Answered reports whether the current question has a submitted answer.
func (s *Session) Answered() bool {
	return s.answers[s.index] != nil
}

// LastAnswer returns the answer to the current question, if any.
func (s *Session) LastAnswer() (Answer, bool) {
	if a := s.answers[s.index]; a != nil {
		return *a, true
	}
	return Answer{}, false
}

// Submit answers the current question. Only the first submission per
// question scores or records a wrong answer; later calls return the first
// outcome unchanged.
func (s *Session) Submit(choice string) bool {
	if s.state != InProgress {
		return false
	}
	if a := s.answers[s.index]; a != nil {
		return a.Correct
	}
	q := s.Current()
	a := &Answer{Question: q, Choice: choice, Correct: choice == q.Correct}
	s.answers[s.index] = a
	if a.Correct {
		s.score++
	} else if s.recorder != nil {
		s.recorder.SaveWrongAnswer(q.Word, choice, q.Correct, s.week)
	}
	return a.Correct
}

// SubmitIndex submits the n-th choice, counting from 1. Out of range
// numbers are ignored.
func (s *Session) SubmitIndex(n int) (bool, bool) {
	if s.state != InProgress {
		return false, false
	}
	choices := s.Current().Choices
	if n < 1 || n > len(choices) {
		return false, false
	}
	return s.Submit(choices[n-1]), true
}

// Next advances to the following question once the current one is
// answered. After the last question the session completes and the result
// is recorded.
func (s *Session) Next() bool {
	if s.state != InProgress || !s.Answered() {
		return false
	}
	if s.index < len(s.order)-1 {
		s.index++
		return true
	}
	s.complete()
	return true
}

func (s *Session) complete() {
	s.state = Completed
	s.result = model.TestResult{
		Date:          model.FormatTimestamp(s.now()),
		Score:         s.score,
		Total:         len(s.order),
		Percentage:    Percentage(s.score, len(s.order)),
		QuestionTypes: append([]model.QuestionType(nil), s.cfg.Types...),
	}
	if s.recorder != nil {
		s.recorder.RecordTestResult(s.week, s.result, s.cfg.HistoryCap)
	}
}

// Restart reshuffles the words and zeroes the score. Persisted history is kept.
func (s *Session) Restart() {
	s.start()
}

// Result returns the recorded result once the session is completed.
func (s *Session) Result() (model.TestResult, bool) {
	return s.result, s.state == Completed
}

// Answers returns the submitted answers in question order.
func (s *Session) Answers() []Answer {
	out := make([]Answer, 0, len(s.answers))
	for _, a := range s.answers {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// Mistakes returns the wrong answers of the session.
func (s *Session) Mistakes() []Answer {
	var out []Answer
	for _, a := range s.Answers() {
		if !a.Correct {
			out = append(out, a)
		}
	}
	return out
}
