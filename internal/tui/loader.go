package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/vocab"
)

// loadedMsg is the result of an asynchronous load. Results of a page that
// is no longer open are dropped.
type loadedMsg interface {
	seq() uint64
}

type weekLoadedMsg struct {
	gen  uint64
	data model.WeekData
	err  error
}

func (m weekLoadedMsg) seq() uint64 { return m.gen }

type vocabLoadedMsg struct {
	gen   uint64
	stats model.VocabStats
}

func (m vocabLoadedMsg) seq() uint64 { return m.gen }

func loadWeekCmd(ctx context.Context, v Vocabulary, gen uint64, week int) tea.Cmd {
	return func() tea.Msg {
		data, err := v.LoadWeek(ctx, week)
		return weekLoadedMsg{gen: gen, data: data, err: err}
	}
}

func loadVocabCmd(ctx context.Context, v Vocabulary, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return vocabLoadedMsg{gen: gen, stats: v.AggregateStats(ctx)}
	}
}

// weekLoader tracks the loading state of one week.
type weekLoader struct {
	sh      *shared
	week    int
	spinner spinner.Model
	loading bool
	err     error
}

func newWeekLoader(sh *shared, week int) weekLoader {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sh.styles.accent
	return weekLoader{sh: sh, week: week, spinner: sp, loading: true}
}

func (l *weekLoader) start(ctx context.Context, gen uint64) tea.Cmd {
	return tea.Batch(l.spinner.Tick, loadWeekCmd(ctx, l.sh.deps.Vocab, gen, l.week))
}

// update advances the spinner and reports a finished load.
func (l *weekLoader) update(msg tea.Msg) (tea.Cmd, *model.WeekData) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !l.loading {
			return nil, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return cmd, nil
	case weekLoadedMsg:
		l.loading = false
		if msg.err != nil {
			l.fail(msg.err)
			return nil, nil
		}
		return nil, &msg.data
	}
	return nil, nil
}

func (l *weekLoader) fail(err error) {
	l.err = err
	l.sh.log.WithError(err).WithField("week", l.week).Warn("week unavailable")
}

// view renders the loading or error state. ok is false once loaded cleanly.
func (l *weekLoader) view() (string, bool) {
	st := l.sh.styles
	switch {
	case l.loading:
		return l.spinner.View() + st.muted.Render(fmt.Sprintf(" Loading week %d...", l.week)), true
	case l.err != nil:
		return st.incorrect.Render(errorText(l.week, l.err)), true
	}
	return "", false
}

func errorText(week int, err error) string {
	switch {
	case errors.Is(err, vocab.ErrNotFound):
		return fmt.Sprintf("Week %d has no vocabulary yet.", week)
	case errors.Is(err, vocab.ErrMalformed):
		return fmt.Sprintf("Week %d vocabulary is malformed.", week)
	}
	return fmt.Sprintf("Could not load week %d: %v", week, err)
}
