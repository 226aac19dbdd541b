// Package statsui provides the Bubble Tea stats screen.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/stats"
)

const (
	tabOverview = iota
	tabWeeks
	tabHistory
)

const (
	plotHeight    = 8
	defaultWindow = 3
	maxWindow     = 10
)

type styles struct {
	activeNav   lipgloss.Style
	inactiveNav lipgloss.Style
	header      lipgloss.Style
	card        lipgloss.Style
	cardTitle   lipgloss.Style
	cardValue   lipgloss.Style
	table       table.Styles
}

func newStyles(theme model.Theme) styles {
	text, muted, accent, border := "#F0F0F0", "#8C8C8C", "#C89A3A", "#4A4A4A"
	if theme == model.ThemeLight {
		text, muted, accent, border = "#1F1F1F", "#6E6E6E", "#9A6B12", "#C8C8C8"
	}
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color(border)).
		Foreground(lipgloss.Color(muted)).
		Bold(true).
		PaddingLeft(0)
	ts.Cell = ts.Cell.PaddingLeft(0)
	ts.Selected = ts.Cell.Foreground(lipgloss.Color(accent)).Bold(true)
	return styles{
		activeNav: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(accent)),
		inactiveNav: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(border)),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(border)),
		cardTitle: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		cardValue: lipgloss.NewStyle().Foreground(lipgloss.Color(text)).Bold(true),
		table:     ts,
	}
}

// Model implements the stats screen.
type Model struct {
	ctx      context.Context
	vocab    stats.VocabSource
	progress stats.ProgressSource
	styles   styles

	report stats.Report
	window int

	tabs      []string
	activeTab int
	viewports []viewport.Model
	weekTable table.Model

	width  int
	height int
}

// NewModel constructs the stats screen and loads its report.
func NewModel(ctx context.Context, vocab stats.VocabSource, prog stats.ProgressSource, theme model.Theme) *Model {
	m := &Model{
		ctx:      ctx,
		vocab:    vocab,
		progress: prog,
		styles:   newStyles(theme),
		window:   defaultWindow,
		tabs:     []string{"Overview", "Weeks", "History"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.weekTable = table.New(table.WithStyles(m.styles.table))
	m.Refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetTheme restyles the screen.
func (m *Model) SetTheme(theme model.Theme) {
	m.styles = newStyles(theme)
	m.weekTable.SetStyles(m.styles.table)
	m.renderTabContents()
}

// Refresh rebuilds the report from storage.
func (m *Model) Refresh() {
	m.report = stats.BuildReport(m.ctx, m.vocab, m.progress)
	m.weekTable.SetColumns(weekColumns())
	m.weekTable.SetRows(weekRows(m.report))
	m.renderTabContents()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l":
			m.moveTab(1)
			return m, nil
		case "=", "+":
			m.window = minInt(maxWindow, m.window+1)
			m.renderTabContents()
			return m, nil
		case "-":
			m.window = maxInt(1, m.window-1)
			m.renderTabContents()
			return m, nil
		case "R":
			m.Refresh()
			return m, nil
		case "g", "home":
			if m.activeTab == tabWeeks {
				m.weekTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabWeeks {
				m.weekTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		}
		if m.activeTab == tabWeeks {
			var cmd tea.Cmd
			m.weekTable, cmd = m.weekTable.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	var body string
	if m.activeTab == tabWeeks {
		body = m.weekTable.View()
	} else {
		body = m.viewports[m.activeTab].View()
	}
	return header + "\n" + fitLines(body, m.width, bodyHeight)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight int) {
	headerHeight = lipgloss.Height(m.styles.activeNav.Render("X")) + 1
	bodyHeight = maxInt(1, m.height-headerHeight)
	return headerHeight, bodyHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.weekTable.SetWidth(m.width)
	m.weekTable.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	if m.activeTab == tabWeeks {
		m.weekTable.Focus()
	} else {
		m.weekTable.Blur()
	}
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, m.styles.activeNav.Render(tab))
		} else {
			parts = append(parts, m.styles.inactiveNav.Render(tab))
		}
	}
	summary := fmt.Sprintf("%d weeks  %d words  window=%d", m.report.Vocab.TotalWeeks, m.report.Vocab.TotalWords, m.window)
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n" + m.styles.header.Render(truncateLine(summary, m.width))
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(m.renderOverview(width))
	m.viewports[tabHistory].SetContent(renderHistory(m.report, m.window, width))
}

func (m *Model) renderOverview(width int) string {
	if m.report.Vocab.TotalWeeks == 0 {
		return "No vocabulary found."
	}
	t := m.report.Total
	cards := []string{
		m.metricCard("Studied today", strconv.Itoa(t.TotalStudied)),
		m.metricCard("Tests", strconv.Itoa(t.TotalTests)),
		m.metricCard("Avg best", fmt.Sprintf("%d%%", t.AverageScore)),
		m.metricCard("Streak", fmt.Sprintf("%dd", t.StudyStreak)),
		m.metricCard("To review", strconv.Itoa(t.WrongAnswersCount)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	var buf bytes.Buffer
	scores := make([]float64, 0)
	for _, r := range m.report.Chronological() {
		scores = append(scores, float64(r.Percentage))
	}
	if err := stats.PlotPercentages(&buf, "Test scores", []stats.Series{
		{Name: "Score", Values: scores},
		{Name: fmt.Sprintf("Average of %d", m.window), Values: stats.MovingAverage(scores, m.window)},
	}, stats.PlotWidthFor(width), plotHeight, true); err != nil {
		return summary + "\n\n" + fmt.Sprintf("Failed to render scores: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func (m *Model) metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", m.styles.cardTitle.Render(label), m.styles.cardValue.Render(value))
	return m.styles.card.Render(content)
}

func renderHistory(r stats.Report, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderHistory(&buf, r, window, stats.PlotWidthFor(width), plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render history: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func weekColumns() []table.Column {
	return []table.Column{
		{Title: "Week", Width: 5},
		{Title: "Words", Width: 6},
		{Title: "Position", Width: 9},
		{Title: "Studied", Width: 8},
		{Title: "Best", Width: 5},
		{Title: "Tests", Width: 6},
		{Title: "Last studied", Width: 17},
	}
}

func weekRows(r stats.Report) []table.Row {
	rows := make([]table.Row, 0, len(r.Weeks))
	for _, ws := range r.Weeks {
		words := r.Vocab.WordsPerWeek[ws.Week]
		last := "-"
		if t, ok := model.ParseTimestamp(ws.LastStudied); ok {
			last = t.In(time.Local).Format("2006-01-02 15:04")
		}
		rows = append(rows, table.Row{
			strconv.Itoa(ws.Week),
			strconv.Itoa(words),
			fmt.Sprintf("%d/%d", minInt(ws.StudyProgress+1, words), words),
			strconv.Itoa(ws.StudiedToday),
			fmt.Sprintf("%d%%", ws.BestScore),
			strconv.Itoa(len(ws.TestResults)),
			last,
		})
	}
	return rows
}

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

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
