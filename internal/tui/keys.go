package tui

import "github.com/charmbracelet/bubbles/key"

type globalKeys struct {
	Quit  key.Binding
	Back  key.Binding
	Theme key.Binding
	Help  key.Binding
}

func newGlobalKeys() globalKeys {
	return globalKeys{
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyLeft   = key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous"))
	keyRight  = key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next"))
	keyEnter  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	keyFlip   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "flip"))
	keyHint   = key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint"))
	keyRead   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reading"))
	keyMean   = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "meaning"))
	keyAuto   = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-play"))
	keySpeak  = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "speak"))
	keyChoice = key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "answer"))
	keyNext   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next"))
	keyRetry  = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart"))
	keyStudy  = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "study"))
	keyTest   = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "test"))
	keyWords  = key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "words"))
	keyReview = key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "review"))
	keyClear  = key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "clear all"))
	keyMode   = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "card/quiz"))
	keyShow   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "answer"))
	keyLearn  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "learned"))
	keySubmit = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check"))
	keyReload = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	keyReset  = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset progress"))
)
