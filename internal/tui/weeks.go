package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/progress"
	"github.com/verte-zerg/tango/internal/stats"
)

const weakWeekCount = 2

type weeksScreen struct {
	sh      *shared
	ctx     context.Context
	gen     uint64
	spinner spinner.Model
	loading bool
	weeks   []int
	weak    map[int]bool
	table   table.Model
}

func newWeeksScreen(ctx context.Context, sh *shared, gen uint64) *weeksScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sh.styles.accent
	return &weeksScreen{
		sh:      sh,
		ctx:     ctx,
		gen:     gen,
		spinner: sp,
		loading: true,
		table:   newTable(sh.styles),
	}
}

func newTable(st styles) table.Model {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		Foreground(st.muted.GetForeground()).
		Bold(true).
		PaddingLeft(0)
	ts.Cell = ts.Cell.PaddingLeft(0)
	ts.Selected = ts.Cell.Foreground(st.accent.GetForeground()).Bold(true)
	return table.New(table.WithStyles(ts), table.WithFocused(true))
}

func (s *weeksScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, loadVocabCmd(s.ctx, s.sh.deps.Vocab, s.gen))
}

func (s *weeksScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	case vocabLoadedMsg:
		s.loading = false
		s.setWeeks(msg.stats)
		return nil
	case tea.WindowSizeMsg:
		s.table.SetWidth(msg.Width)
		s.table.SetHeight(maxInt(3, msg.Height-2))
		return nil
	case tea.KeyMsg:
		if week, ok := s.selected(); ok {
			switch {
			case key.Matches(msg, keyStudy), key.Matches(msg, keyEnter):
				return navigate(StudyPage{Week: week})
			case key.Matches(msg, keyTest):
				return navigate(TestPage{Week: week})
			case key.Matches(msg, keyWords):
				return navigate(WordListPage{Week: week})
			case key.Matches(msg, keyReview):
				return navigate(ReviewWeekPage{Week: week})
			}
		}
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return cmd
	}
	return nil
}

func (s *weeksScreen) setWeeks(vs model.VocabStats) {
	s.weeks = lo.Keys(vs.WordsPerWeek)
	sort.Ints(s.weeks)
	prog := s.sh.deps.Progress
	all := lo.Map(s.weeks, func(week int, _ int) model.WeekStats {
		return prog.WeekStats(week)
	})
	s.weak = lo.SliceToMap(stats.WeakWeeks(all, weakWeekCount), func(week int) (int, bool) {
		return week, true
	})
	s.table.SetColumns([]table.Column{
		{Title: "Week", Width: 5},
		{Title: "Words", Width: 6},
		{Title: "Card", Width: 7},
		{Title: "Studied", Width: 8},
		{Title: "Best", Width: 5},
		{Title: "Tests", Width: 6},
		{Title: "Review", Width: 7},
		{Title: "", Width: 6},
	})
	missed := lo.SliceToMap(prog.WrongAnswersByWeek(), func(g progress.WeekWrongAnswers) (int, int) {
		return g.Week, len(g.Answers)
	})
	rows := make([]table.Row, 0, len(all))
	for _, ws := range all {
		words := vs.WordsPerWeek[ws.Week]
		note := ""
		if s.weak[ws.Week] {
			note = "weak"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(ws.Week),
			strconv.Itoa(words),
			fmt.Sprintf("%d/%d", minInt(ws.StudyProgress+1, words), words),
			strconv.Itoa(ws.StudiedToday),
			fmt.Sprintf("%d%%", ws.BestScore),
			strconv.Itoa(len(ws.TestResults)),
			strconv.Itoa(missed[ws.Week]),
			note,
		})
	}
	s.table.SetRows(rows)
}

func (s *weeksScreen) selected() (int, bool) {
	if s.loading || len(s.weeks) == 0 {
		return 0, false
	}
	i := s.table.Cursor()
	if i < 0 || i >= len(s.weeks) {
		return 0, false
	}
	return s.weeks[i], true
}

func (s *weeksScreen) View(_, _ int) string {
	st := s.sh.styles
	if s.loading {
		return s.spinner.View() + st.muted.Render(" Loading weeks...")
	}
	if len(s.weeks) == 0 {
		return strings.Join([]string{
			st.text.Render("No vocabulary found."),
			st.muted.Render("Add week1.json to the vocabulary directory or run `tango sync`."),
		}, "\n")
	}
	return s.table.View()
}

func (s *weeksScreen) Keys() []key.Binding {
	return []key.Binding{keyUp, keyDown, keyStudy, keyTest, keyWords, keyReview}
}

func (s *weeksScreen) Close() {}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
