// Package tui provides the Bubble Tea vocabulary trainer.
package tui

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/tango/internal/generator"
	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/progress"
	"github.com/verte-zerg/tango/internal/quiz"
	"github.com/verte-zerg/tango/internal/study"
)

// Page identifies a screen. It is one of HomePage, WeeksPage, StudyPage,
// TestPage, WordListPage, ReviewPage, ReviewWeekPage or StatsPage.
type Page interface {
	Title() string
}

// HomePage is the main menu.
type HomePage struct{}

// WeeksPage lists the available weeks.
type WeeksPage struct{}

// StudyPage shows the flashcards of a week.
type StudyPage struct{ Week int }

// TestPage runs a quiz over a week.
type TestPage struct{ Week int }

// WordListPage lists the words of a week.
type WordListPage struct{ Week int }

// ReviewPage lists wrong answers grouped by week.
type ReviewPage struct{}

// ReviewWeekPage drills the wrong answers of a week.
type ReviewWeekPage struct{ Week int }

// StatsPage shows study statistics.
type StatsPage struct{}

func (HomePage) Title() string         { return "tango" }
func (WeeksPage) Title() string        { return "Weeks" }
func (p StudyPage) Title() string      { return fmt.Sprintf("Week %d · Study", p.Week) }
func (p TestPage) Title() string       { return fmt.Sprintf("Week %d · Test", p.Week) }
func (p WordListPage) Title() string   { return fmt.Sprintf("Week %d · Words", p.Week) }
func (ReviewPage) Title() string       { return "Review" }
func (p ReviewWeekPage) Title() string { return fmt.Sprintf("Week %d · Review", p.Week) }
func (StatsPage) Title() string        { return "Statistics" }

// parent returns the page esc leads to.
func parent(p Page) (Page, bool) {
	switch p.(type) {
	case HomePage:
		return nil, false
	case StudyPage, TestPage, WordListPage:
		return WeeksPage{}, true
	case ReviewWeekPage:
		return ReviewPage{}, true
	}
	return HomePage{}, true
}

// Vocabulary loads word data. *vocab.Store satisfies it.
type Vocabulary interface {
	LoadWeek(ctx context.Context, week int) (model.WeekData, error)
	AggregateStats(ctx context.Context) model.VocabStats
}

// Deps are the collaborators of the app.
type Deps struct {
	Vocab     Vocabulary
	Progress  *progress.Store
	Speaker   study.Speaker
	Log       logrus.FieldLogger
	Study     study.Config
	Quiz      quiz.Config
	Shuffler  generator.Shuffler
	Scheduler study.Scheduler
}

// screen is the behavior of one page.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Keys() []key.Binding
	Close()
}

// inputScreen is a screen that is currently reading typed text. Only
// ctrl+c and esc are global while it does.
type inputScreen interface {
	capturing() bool
}

// themedScreen is a screen that keeps its own styles.
type themedScreen interface {
	setTheme(theme model.Theme)
}

// shared is the state every screen reads.
type shared struct {
	deps   Deps
	log    logrus.FieldLogger
	theme  model.Theme
	styles styles
	ticks  chan study.Tick
}

// postTick hands an auto-play tick to the program without blocking the timer.
func (sh *shared) postTick(t study.Tick) {
	select {
	case sh.ticks <- t:
	default:
		sh.log.Debug("auto-play tick dropped")
	}
}

type navigateMsg struct {
	page Page
}

type tickMsg study.Tick

func navigate(p Page) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{page: p}
	}
}

func waitForTick(ticks <-chan study.Tick) tea.Cmd {
	return func() tea.Msg {
		return tickMsg(<-ticks)
	}
}

const (
	headerHeight = 2
	footerHeight = 1
	tickBuffer   = 8
)

// App is the root Bubble Tea model. It owns the current page and recovers
// from screen panics by showing a failure screen.
type App struct {
	sh     *shared
	keys   globalKeys
	help   help.Model
	page   Page
	screen screen
	cancel context.CancelFunc
	seq    uint64

	width  int
	height int

	fault string
}

// New constructs the app opening at start.
func New(deps Deps, start Page) *App {
	log := deps.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if deps.Scheduler == nil {
		deps.Scheduler = study.TimerScheduler{}
	}
	if start == nil {
		start = HomePage{}
	}
	theme := deps.Progress.Theme()
	sh := &shared{
		deps:   deps,
		log:    log,
		theme:  theme,
		styles: newStyles(theme),
		ticks:  make(chan study.Tick, tickBuffer),
	}
	return &App{
		sh:   sh,
		keys: newGlobalKeys(),
		help: help.New(),
		page: start,
	}
}

// Page returns the current page.
func (a *App) Page() Page {
	return a.page
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(waitForTick(a.sh.ticks), a.open(a.page))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (m tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			a.fail(r)
			m, cmd = a, nil
		}
	}()
	return a, a.update(msg)
}

// View implements tea.Model.
func (a *App) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			a.fail(r)
			out = a.faultView()
		}
	}()
	if a.fault != "" {
		return a.faultView()
	}
	if a.screen == nil {
		return ""
	}
	width, bodyHeight := a.bodySize()
	header := a.renderHeader(width)
	body := a.screen.View(width, bodyHeight)
	if a.height > 0 {
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Top, body)
	}
	var footer string
	if a.help.ShowAll {
		footer = a.help.FullHelpView([][]key.Binding{a.screen.Keys(), a.globalHelp()})
	} else {
		footer = a.help.ShortHelpView(append(a.screen.Keys(), a.globalHelp()...))
	}
	footer = a.sh.styles.footer.Render(footer)
	return header + "\n" + body + "\n" + footer
}

// Close releases the current screen.
func (a *App) Close() {
	a.closeScreen()
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a.forward(a.bodyMsg())
	case tickMsg:
		return tea.Batch(waitForTick(a.sh.ticks), a.forward(msg))
	case navigateMsg:
		return a.open(msg.page)
	case loadedMsg:
		if msg.seq() != a.seq {
			return nil
		}
		return a.forward(msg)
	case tea.KeyMsg:
		if a.fault != "" {
			return a.updateFault(msg)
		}
		if cmd, ok := a.handleGlobalKey(msg); ok {
			return cmd
		}
	}
	return a.forward(msg)
}

func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		a.closeScreen()
		return tea.Quit, true
	}
	if key.Matches(msg, a.keys.Back) {
		if p, ok := parent(a.page); ok {
			return a.open(p), true
		}
		return nil, true
	}
	if in, ok := a.screen.(inputScreen); ok && in.capturing() {
		return nil, false
	}
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.closeScreen()
		return tea.Quit, true
	case key.Matches(msg, a.keys.Theme):
		a.toggleTheme()
		return nil, true
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil, true
	}
	return nil, false
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	if a.screen == nil || a.fault != "" {
		return nil
	}
	return a.screen.Update(msg)
}

// open closes the current screen and builds the one for p.
func (a *App) open(p Page) tea.Cmd {
	a.closeScreen()
	a.seq++
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.page = p
	a.fault = ""
	a.screen = a.newScreen(ctx, p)
	a.sh.log.WithField("page", p.Title()).Debug("page opened")
	cmd := a.screen.Init()
	if a.width > 0 {
		cmd = tea.Batch(cmd, a.screen.Update(a.bodyMsg()))
	}
	return cmd
}

func (a *App) newScreen(ctx context.Context, p Page) screen {
	switch p := p.(type) {
	case WeeksPage:
		return newWeeksScreen(ctx, a.sh, a.seq)
	case StudyPage:
		return newStudyScreen(ctx, a.sh, a.seq, p.Week)
	case TestPage:
		return newTestScreen(ctx, a.sh, a.seq, p.Week)
	case WordListPage:
		return newWordListScreen(ctx, a.sh, a.seq, p.Week)
	case ReviewPage:
		return newReviewScreen(a.sh)
	case ReviewWeekPage:
		return newReviewWeekScreen(a.sh, p.Week)
	case StatsPage:
		return newStatsScreen(ctx, a.sh)
	}
	return newHomeScreen(a.sh)
}

func (a *App) closeScreen() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.screen == nil {
		return
	}
	s := a.screen
	a.screen = nil
	defer func() {
		if r := recover(); r != nil {
			a.sh.log.WithField("panic", r).Error("screen close failed")
		}
	}()
	s.Close()
}

func (a *App) toggleTheme() {
	a.sh.theme = a.sh.theme.Toggle()
	a.sh.styles = newStyles(a.sh.theme)
	a.sh.deps.Progress.SetTheme(a.sh.theme)
	if ts, ok := a.screen.(themedScreen); ok {
		ts.setTheme(a.sh.theme)
	}
}

func (a *App) fail(r any) {
	a.sh.log.WithFields(logrus.Fields{
		"page":  a.page.Title(),
		"panic": fmt.Sprint(r),
		"stack": string(debug.Stack()),
	}).Error("screen failed")
	a.closeScreen()
	a.fault = fmt.Sprint(r)
}

func (a *App) updateFault(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC, key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, keyReload):
		return a.open(a.page)
	case key.Matches(msg, keyReset):
		a.sh.deps.Progress.ResetAll()
		return a.open(HomePage{})
	}
	return nil
}

func (a *App) faultView() string {
	st := a.sh.styles
	lines := []string{
		st.title.Render("Something went wrong."),
		"",
		st.text.Render("This screen stopped working. Your saved progress is untouched."),
		"",
		a.help.ShortHelpView([]key.Binding{keyReload, keyReset, a.keys.Quit}),
	}
	box := st.fault.Render(strings.Join(lines, "\n"))
	if a.width == 0 || a.height == 0 {
		return box
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}

func (a *App) renderHeader(width int) string {
	title := a.sh.styles.title.Render(a.page.Title())
	theme := a.sh.styles.muted.Render(string(a.sh.theme))
	gap := width - lipgloss.Width(title) - lipgloss.Width(theme)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + theme + "\n"
}

func (a *App) globalHelp() []key.Binding {
	if _, ok := parent(a.page); ok {
		return []key.Binding{a.keys.Back, a.keys.Theme, a.keys.Help, a.keys.Quit}
	}
	return []key.Binding{a.keys.Theme, a.keys.Help, a.keys.Quit}
}

func (a *App) bodySize() (int, int) {
	width := a.width
	if width <= 0 {
		width = 80
	}
	height := a.height - headerHeight - footerHeight
	if a.height <= 0 {
		height = 20
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (a *App) bodyMsg() tea.WindowSizeMsg {
	width, height := a.bodySize()
	return tea.WindowSizeMsg{Width: width, Height: height}
}
