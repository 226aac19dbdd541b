package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tango/internal/study"
)

const cardWidth = 36

type studyScreen struct {
	sh      *shared
	ctx     context.Context
	gen     uint64
	loader  weekLoader
	session *study.Session
}

func newStudyScreen(ctx context.Context, sh *shared, gen uint64, week int) *studyScreen {
	opts := []study.Option{study.WithAutoPlay(sh.deps.Scheduler, sh.postTick)}
	if sh.deps.Speaker != nil {
		opts = append(opts, study.WithSpeaker(sh.deps.Speaker))
	}
	return &studyScreen{
		sh:      sh,
		ctx:     ctx,
		gen:     gen,
		loader:  newWeekLoader(sh, week),
		session: study.New(week, sh.deps.Progress, sh.deps.Study, opts...),
	}
}

func (s *studyScreen) Init() tea.Cmd {
	return s.loader.start(s.ctx, s.gen)
}

func (s *studyScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tickMsg:
		s.session.HandleTick(study.Tick(msg))
		return nil
	case tea.KeyMsg:
		if s.session.State() != study.Ready {
			return nil
		}
		switch {
		case key.Matches(msg, keyLeft):
			s.session.Previous()
		case key.Matches(msg, keyRight):
			s.session.Next()
		case key.Matches(msg, keyFlip):
			s.session.Flip()
		case key.Matches(msg, keyHint):
			s.session.ToggleHint()
		case key.Matches(msg, keyRead):
			s.session.ToggleReading()
		case key.Matches(msg, keyMean):
			s.session.ToggleMeaning()
		case key.Matches(msg, keyAuto):
			s.session.ToggleAutoPlay()
		case key.Matches(msg, keySpeak):
			s.session.Speak()
		}
		return nil
	}
	cmd, data := s.loader.update(msg)
	if data != nil {
		if err := s.session.Load(data.Words); err != nil {
			s.loader.fail(err)
		}
	}
	return cmd
}

func (s *studyScreen) View(width, _ int) string {
	if v, ok := s.loader.view(); ok {
		return v
	}
	st := s.sh.styles
	w := s.session.Current()

	hidden := st.muted.Render("・・・")
	reading := hidden
	if s.session.ReadingVisible() {
		reading = st.text.Render(w.Hiragana)
	}
	meaning := hidden
	if s.session.MeaningVisible() {
		meaning = st.accent.Render(w.Korean)
	}
	lines := []string{
		st.kanji.Render(w.Kanji),
		"",
		reading,
		meaning,
	}
	if s.session.HintVisible() {
		lines = append(lines, st.muted.Render(fmt.Sprintf("hint: %s…", s.session.Hint())))
	}
	inner := minInt(cardWidth, maxInt(10, width-10))
	card := st.card.Width(inner).Render(strings.Join(lines, "\n"))

	status := []string{
		fmt.Sprintf("%d / %d", s.session.Index()+1, s.session.Len()),
		fmt.Sprintf("studied today %d", s.session.StudiedToday()),
	}
	if s.session.AutoPlaying() {
		status = append(status, "auto-play on")
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		card,
		"",
		st.muted.Render(strings.Join(status, " · ")),
	)
}

func (s *studyScreen) Keys() []key.Binding {
	return []key.Binding{keyLeft, keyRight, keyFlip, keyHint, keyRead, keyMean, keyAuto, keySpeak}
}

func (s *studyScreen) Close() {
	s.session.Close()
	if stopper, ok := s.sh.deps.Speaker.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}
