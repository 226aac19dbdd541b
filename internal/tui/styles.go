package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tango/internal/model"
)

type palette struct {
	text    string
	muted   string
	accent  string
	good    string
	bad     string
	border  string
	subtle  string
	inverse string
}

var (
	darkPalette = palette{
		text:    "#F0F0F0",
		muted:   "#8C8C8C",
		accent:  "#C89A3A",
		good:    "#52C41A",
		bad:     "#FF4D4F",
		border:  "#4A4A4A",
		subtle:  "#6E6E6E",
		inverse: "#1F1F1F",
	}
	lightPalette = palette{
		text:    "#1F1F1F",
		muted:   "#6E6E6E",
		accent:  "#9A6B12",
		good:    "#237804",
		bad:     "#CF1322",
		border:  "#C8C8C8",
		subtle:  "#8C8C8C",
		inverse: "#F0F0F0",
	}
)

type styles struct {
	title     lipgloss.Style
	text      lipgloss.Style
	muted     lipgloss.Style
	accent    lipgloss.Style
	correct   lipgloss.Style
	incorrect lipgloss.Style
	card      lipgloss.Style
	kanji     lipgloss.Style
	selected  lipgloss.Style
	choice    lipgloss.Style
	footer    lipgloss.Style
	fault     lipgloss.Style
}

func newStyles(theme model.Theme) styles {
	p := darkPalette
	if theme == model.ThemeLight {
		p = lightPalette
	}
	return styles{
		title:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		text:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
		correct:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.good)),
		incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color(p.bad)),
		card: lipgloss.NewStyle().
			Padding(1, 4).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(p.border)).
			Align(lipgloss.Center),
		kanji: lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.inverse)).
			Background(lipgloss.Color(p.accent)).
			Padding(0, 1),
		choice: lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color(p.subtle)),
		fault: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.bad)).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(p.bad)),
	}
}
