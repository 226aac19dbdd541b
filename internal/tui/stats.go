package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/statsui"
)

var (
	keyTabs   = key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "tabs"))
	keyWindow = key.NewBinding(key.WithKeys("-", "="), key.WithHelp("-/=", "average"))
	keyRedo   = key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh"))
)

type statsScreen struct {
	model *statsui.Model
}

func newStatsScreen(ctx context.Context, sh *shared) *statsScreen {
	return &statsScreen{model: statsui.NewModel(ctx, sh.deps.Vocab, sh.deps.Progress, sh.theme)}
}

func (s *statsScreen) Init() tea.Cmd { return s.model.Init() }

func (s *statsScreen) Update(msg tea.Msg) tea.Cmd {
	_, cmd := s.model.Update(msg)
	return cmd
}

func (s *statsScreen) View(_, _ int) string {
	return s.model.View()
}

func (s *statsScreen) Keys() []key.Binding {
	return []key.Binding{keyTabs, keyUp, keyDown, keyWindow, keyRedo}
}

func (s *statsScreen) setTheme(theme model.Theme) {
	s.model.SetTheme(theme)
}

func (s *statsScreen) Close() {}
