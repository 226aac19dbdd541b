package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tango/internal/model"
)

type wordListScreen struct {
	sh     *shared
	ctx    context.Context
	gen    uint64
	loader weekLoader
	words  []model.Word
	table  table.Model
}

func newWordListScreen(ctx context.Context, sh *shared, gen uint64, week int) *wordListScreen {
	return &wordListScreen{
		sh:     sh,
		ctx:    ctx,
		gen:    gen,
		loader: newWeekLoader(sh, week),
		table:  newTable(sh.styles),
	}
}

func (s *wordListScreen) Init() tea.Cmd {
	return s.loader.start(s.ctx, s.gen)
}

func (s *wordListScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.table.SetWidth(msg.Width)
		s.table.SetHeight(maxInt(3, msg.Height-2))
		return nil
	case tea.KeyMsg:
		if len(s.words) == 0 {
			return nil
		}
		switch {
		case key.Matches(msg, keyEnter):
			// Open the flashcards at the chosen word.
			s.sh.deps.Progress.SetStudyProgress(s.loader.week, s.table.Cursor())
			return navigate(StudyPage{Week: s.loader.week})
		case key.Matches(msg, keySpeak):
			if s.sh.deps.Speaker != nil {
				s.sh.deps.Speaker.Speak(s.words[s.table.Cursor()].Hiragana)
			}
			return nil
		}
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return cmd
	}
	cmd, data := s.loader.update(msg)
	if data != nil {
		s.setWords(data.Words)
	}
	return cmd
}

func (s *wordListScreen) setWords(words []model.Word) {
	s.words = words
	kanjiWidth, readingWidth, meaningWidth := 5, 7, 7
	rows := make([]table.Row, 0, len(words))
	for i, w := range words {
		kanjiWidth = maxInt(kanjiWidth, runewidth.StringWidth(w.Kanji))
		readingWidth = maxInt(readingWidth, runewidth.StringWidth(w.Hiragana))
		meaningWidth = maxInt(meaningWidth, runewidth.StringWidth(w.Korean))
		rows = append(rows, table.Row{strconv.Itoa(i + 1), w.Kanji, w.Hiragana, w.Korean})
	}
	s.table.SetColumns([]table.Column{
		{Title: "#", Width: 4},
		{Title: "Kanji", Width: kanjiWidth + 2},
		{Title: "Reading", Width: readingWidth + 2},
		{Title: "Meaning", Width: meaningWidth + 2},
	})
	s.table.SetRows(rows)
	s.table.SetCursor(s.sh.deps.Progress.StudyProgress(s.loader.week))
}

func (s *wordListScreen) View(_, _ int) string {
	if v, ok := s.loader.view(); ok {
		return v
	}
	if len(s.words) == 0 {
		return s.sh.styles.muted.Render("This week has no words.")
	}
	return s.table.View()
}

func (s *wordListScreen) Keys() []key.Binding {
	return []key.Binding{keyUp, keyDown, keyEnter, keySpeak}
}

func (s *wordListScreen) Close() {}
