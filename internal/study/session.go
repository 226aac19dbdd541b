// Package study runs the flashcard session of one week.
package study

import (
	"errors"
	"time"

	"github.com/verte-zerg/tango/internal/model"
)

// DefaultAutoPlayInterval is the auto-play delay between cards.
const DefaultAutoPlayInterval = 4 * time.Second

// ErrEmptyWordList is returned when a session is loaded without words.
var ErrEmptyWordList = errors.New("study needs at least one word")

// State is the session lifecycle state.
type State int

// Session states.
const (
	Loading State = iota
	Ready
)

// Progress persists the study position. *progress.Store satisfies it.
type Progress interface {
	StudyProgress(week int) int
	SetStudyProgress(week, index int)
	StudiedToday(week int) int
	SetStudiedToday(week, count int)
	TouchLastStudied(week int)
}

// Speaker pronounces text. Calls must not block.
type Speaker interface {
	Speak(text string)
}

// Scheduler runs fn once after d unless the returned cancel is called first.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Tick is an auto-play firing. Ticks from an earlier arming are ignored.
type Tick struct {
	Gen uint64
}

// Config tunes a session.
type Config struct {
	AutoPlayInterval time.Duration
	SpeakOnFlip      bool
}

// Session is the flashcard state machine. It is not safe for concurrent
// use; auto-play ticks are posted back to the owner and applied through
// HandleTick.
type Session struct {
	week     int
	cfg      Config
	progress Progress
	speaker  Speaker
	sched    Scheduler
	post     func(Tick)

	state        State
	words        []model.Word
	index        int
	studiedToday int

	flipped     bool
	showReading bool
	showMeaning bool
	showHint    bool

	autoPlay bool
	gen      uint64
	cancel   func()
}

// Option configures a Session.
type Option func(*Session)

// WithSpeaker sets the pronunciation collaborator.
func WithSpeaker(sp Speaker) Option {
	return func(s *Session) {
		s.speaker = sp
	}
}

// WithAutoPlay enables auto-play. Each armed timer calls post with its tick.
func WithAutoPlay(sched Scheduler, post func(Tick)) Option {
	return func(s *Session) {
		s.sched = sched
		s.post = post
	}
}

// New returns a session for week in the Loading state.
func New(week int, progress Progress, cfg Config, opts ...Option) *Session {
	if cfg.AutoPlayInterval <= 0 {
		cfg.AutoPlayInterval = DefaultAutoPlayInterval
	}
	s := &Session{week: week, cfg: cfg, progress: progress}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load moves the session to Ready over words, restoring the saved position
// and counter and stamping the last study time.
func (s *Session) Load(words []model.Word) error {
	if len(words) == 0 {
		return ErrEmptyWordList
	}
	s.words = append([]model.Word(nil), words...)
	s.index = clamp(s.progress.StudyProgress(s.week), len(s.words))
	s.studiedToday = s.progress.StudiedToday(s.week)
	s.progress.TouchLastStudied(s.week)
	s.resetCard()
	s.state = Ready
	return nil
}

// SetWords replaces the word set. Auto-play is stopped first.
func (s *Session) SetWords(words []model.Word) error {
	s.stopAutoPlay()
	return s.Load(words)
}

// Close stops auto-play. The session may not be used afterwards.
func (s *Session) Close() {
	s.stopAutoPlay()
}

func clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n-1 {
		return n - 1
	}
	return index
}

// Week returns the studied week.
func (s *Session) Week() int { return s.week }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Index returns the current word index.
func (s *Session) Index() int { return s.index }

// Len returns the number of words.
func (s *Session) Len() int { return len(s.words) }

// StudiedToday returns the studied-today counter.
func (s *Session) StudiedToday() int { return s.studiedToday }

// Current returns the current word.
func (s *Session) Current() model.Word {
	if s.state != Ready {
		return model.Word{}
	}
	return s.words[s.index]
}

// Words returns the loaded words.
func (s *Session) Words() []model.Word { return s.words }

// Flipped reports whether the card is revealed.
func (s *Session) Flipped() bool { return s.flipped }

// ReadingVisible reports whether the reading is shown.
func (s *Session) ReadingVisible() bool { return s.flipped || s.showReading }

// MeaningVisible reports whether the meaning is shown.
func (s *Session) MeaningVisible() bool { return s.flipped || s.showMeaning }

// HintVisible reports whether the hint is shown. Hints hide on a revealed card.
func (s *Session) HintVisible() bool { return s.showHint && !s.flipped }

// Hint returns the first letter of the current meaning.
func (s *Session) Hint() string {
	for _, r := range s.Current().Korean {
		return string(r)
	}
	return ""
}

// AutoPlaying reports whether auto-play is on.
func (s *Session) AutoPlaying() bool { return s.autoPlay }

// Flip toggles the card. Revealing shows reading and meaning together and
// pronounces the word when enabled.
func (s *Session) Flip() {
	if s.state != Ready {
		return
	}
	s.flipped = !s.flipped
	if s.flipped && s.cfg.SpeakOnFlip {
		s.Speak()
	}
}

// Speak pronounces the current word.
func (s *Session) Speak() {
	if s.state != Ready || s.speaker == nil {
		return
	}
	s.speaker.Speak(s.words[s.index].Hiragana)
}

// ToggleReading shows or hides the reading outside flip mode.
func (s *Session) ToggleReading() { s.showReading = !s.showReading }

// ToggleMeaning shows or hides the meaning outside flip mode.
func (s *Session) ToggleMeaning() { s.showMeaning = !s.showMeaning }

// ToggleHint shows or hides the hint.
func (s *Session) ToggleHint() { s.showHint = !s.showHint }

// Next moves to the following word, wrapping to the first. The studied
// counter only grows when the index grows, so wrapping does not count.
func (s *Session) Next() {
	if s.state != Ready {
		return
	}
	prev := s.index
	s.index = (s.index + 1) % len(s.words)
	if s.index > prev {
		s.studiedToday++
	}
	s.moved()
}

// Previous moves to the preceding word, wrapping to the last.
func (s *Session) Previous() {
	if s.state != Ready {
		return
	}
	s.index = (s.index - 1 + len(s.words)) % len(s.words)
	s.moved()
}

// Jump moves to index without counting it as studied.
func (s *Session) Jump(index int) {
	if s.state != Ready {
		return
	}
	s.index = clamp(index, len(s.words))
	s.moved()
}

func (s *Session) moved() {
	s.resetCard()
	s.progress.SetStudyProgress(s.week, s.index)
	s.progress.SetStudiedToday(s.week, s.studiedToday)
	if s.autoPlay {
		s.arm()
	}
}

func (s *Session) resetCard() {
	s.flipped = false
	s.showReading = false
	s.showMeaning = false
	s.showHint = false
}

// ToggleAutoPlay starts or stops auto-play and reports the new setting.
// Without a scheduler auto-play stays off.
func (s *Session) ToggleAutoPlay() bool {
	if s.autoPlay {
		s.stopAutoPlay()
		return false
	}
	if s.state != Ready || s.sched == nil || s.post == nil {
		return false
	}
	s.autoPlay = true
	s.arm()
	return true
}

// HandleTick advances on a tick from the current arming and reports whether
// it did. Stale ticks are dropped.
func (s *Session) HandleTick(t Tick) bool {
	if !s.autoPlay || t.Gen != s.gen {
		return false
	}
	s.Next()
	return true
}

func (s *Session) arm() {
	s.disarm()
	gen := s.gen
	post := s.post
	s.cancel = s.sched.After(s.cfg.AutoPlayInterval, func() {
		post(Tick{Gen: gen})
	})
}

func (s *Session) disarm() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) stopAutoPlay() {
	s.autoPlay = false
	s.disarm()
}

// TimerScheduler arms real timers.
type TimerScheduler struct{}

// After implements Scheduler.
func (TimerScheduler) After(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() {
		timer.Stop()
	}
}
