package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tango/internal/stats"
)

type menuItem struct {
	label string
	page  Page
}

type homeScreen struct {
	sh     *shared
	items  []menuItem
	cursor int
}

func newHomeScreen(sh *shared) *homeScreen {
	return &homeScreen{
		sh: sh,
		items: []menuItem{
			{label: "Study by week", page: WeeksPage{}},
			{label: "Review mistakes", page: ReviewPage{}},
			{label: "Statistics", page: StatsPage{}},
		},
	}
}

func (s *homeScreen) Init() tea.Cmd { return nil }

func (s *homeScreen) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, keyUp):
		s.cursor = (s.cursor - 1 + len(s.items)) % len(s.items)
	case key.Matches(km, keyDown):
		s.cursor = (s.cursor + 1) % len(s.items)
	case key.Matches(km, keyEnter):
		return navigate(s.items[s.cursor].page)
	case len(km.Runes) == 1 && km.Runes[0] >= '1' && km.Runes[0] <= '9':
		n := int(km.Runes[0] - '1')
		if n < len(s.items) {
			return navigate(s.items[n].page)
		}
	}
	return nil
}

func (s *homeScreen) View(width, _ int) string {
	st := s.sh.styles
	var b strings.Builder
	b.WriteString(st.title.Render("日本語 단어장"))
	b.WriteString("\n")
	b.WriteString(st.muted.Render("Japanese vocabulary by week"))
	b.WriteString("\n\n")
	for i, item := range s.items {
		label := fmt.Sprintf("%d  %s", i+1, item.label)
		if i == s.cursor {
			b.WriteString(st.selected.Render(label))
		} else {
			b.WriteString(st.choice.Render(label))
		}
		b.WriteString("\n")
	}
	if summary := s.summary(); summary != "" {
		b.WriteString("\n")
		b.WriteString(wrapText(summary, width, st.muted))
	}
	return b.String()
}

func (s *homeScreen) summary() string {
	prog := s.sh.deps.Progress
	var parts []string
	if n := len(prog.WrongAnswers()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d words to review", n))
	}
	weeks := stats.MostMissed(prog.WrongAnswersByWeek(), 3)
	if len(weeks) > 0 {
		labels := make([]string, 0, len(weeks))
		for _, w := range weeks {
			labels = append(labels, fmt.Sprintf("week %d (%d)", w.Week, w.Count))
		}
		parts = append(parts, "most missed: "+strings.Join(labels, ", "))
	}
	return strings.Join(parts, " · ")
}

func (s *homeScreen) Keys() []key.Binding {
	return []key.Binding{keyUp, keyDown, keyEnter}
}

func (s *homeScreen) Close() {}
