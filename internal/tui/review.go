package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tango/internal/progress"
	"github.com/verte-zerg/tango/internal/review"
)

type reviewScreen struct {
	sh     *shared
	groups []progress.WeekWrongAnswers
	cursor int
}

func newReviewScreen(sh *shared) *reviewScreen {
	return &reviewScreen{sh: sh, groups: sh.deps.Progress.WrongAnswersByWeek()}
}

func (s *reviewScreen) Init() tea.Cmd { return nil }

func (s *reviewScreen) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(s.groups) == 0 {
		return nil
	}
	switch {
	case key.Matches(km, keyUp):
		s.cursor = (s.cursor - 1 + len(s.groups)) % len(s.groups)
	case key.Matches(km, keyDown):
		s.cursor = (s.cursor + 1) % len(s.groups)
	case key.Matches(km, keyEnter):
		return navigate(ReviewWeekPage{Week: s.groups[s.cursor].Week})
	case key.Matches(km, keyClear):
		s.sh.deps.Progress.ClearWrongAnswers()
		s.groups = nil
		s.cursor = 0
	}
	return nil
}

func (s *reviewScreen) View(_, _ int) string {
	st := s.sh.styles
	if len(s.groups) == 0 {
		return st.text.Render("Nothing to review. Mistakes from tests show up here.")
	}
	var b strings.Builder
	for i, g := range s.groups {
		label := fmt.Sprintf("Week %d  %d words", g.Week, len(g.Answers))
		if i == s.cursor {
			b.WriteString(st.selected.Render(label))
		} else {
			b.WriteString(st.choice.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *reviewScreen) Keys() []key.Binding {
	return []key.Binding{keyUp, keyDown, keyEnter, keyClear}
}

func (s *reviewScreen) Close() {}

var (
	keyPrevEntry = key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous"))
	keyNextEntry = key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next"))
)

type reviewWeekScreen struct {
	sh      *shared
	session *review.Session
	input   textinput.Model
}

func newReviewWeekScreen(sh *shared, week int) *reviewWeekScreen {
	ti := textinput.New()
	ti.Placeholder = "meaning"
	ti.CharLimit = 64
	ti.Width = 24
	return &reviewWeekScreen{
		sh:      sh,
		session: review.New(week, sh.deps.Progress),
		input:   ti,
	}
}

func (s *reviewWeekScreen) Init() tea.Cmd { return nil }

func (s *reviewWeekScreen) capturing() bool {
	return s.session.Mode() == review.QuizMode && !s.session.Done()
}

func (s *reviewWeekScreen) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.capturing() {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
		return nil
	}
	if s.session.Done() {
		return nil
	}
	if key.Matches(km, keyMode) {
		s.session.ToggleMode()
		s.input.Reset()
		if s.session.Mode() == review.QuizMode {
			return s.input.Focus()
		}
		s.input.Blur()
		return nil
	}
	if s.session.Mode() == review.QuizMode {
		return s.updateQuiz(km)
	}
	switch {
	case key.Matches(km, keyLeft):
		s.session.Previous()
	case key.Matches(km, keyRight):
		s.session.Next()
	case key.Matches(km, keyShow):
		s.session.ToggleAnswer()
	case key.Matches(km, keyLearn):
		s.session.MarkLearned()
	}
	return nil
}

func (s *reviewWeekScreen) updateQuiz(km tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(km, keySubmit):
		if strings.TrimSpace(s.input.Value()) == "" {
			return nil
		}
		if s.session.Submit(s.input.Value()).Correct {
			s.input.Reset()
		}
		return nil
	case key.Matches(km, keyPrevEntry):
		s.session.Previous()
		s.input.Reset()
		return nil
	case key.Matches(km, keyNextEntry):
		s.session.Next()
		s.input.Reset()
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(km)
	return cmd
}

func (s *reviewWeekScreen) View(width, _ int) string {
	st := s.sh.styles
	current, ok := s.session.Current()
	if !ok {
		return st.correct.Render(fmt.Sprintf("All words of week %d are learned.", s.session.Week()))
	}
	var b strings.Builder
	b.WriteString(st.muted.Render(fmt.Sprintf("%d / %d · %s mode", s.session.Index()+1, s.session.Len(), s.session.Mode())))
	b.WriteString("\n\n")
	card := []string{st.kanji.Render(current.Word.Kanji), st.text.Render(current.Word.Hiragana)}
	if s.session.Mode() == review.CardMode {
		if s.session.AnswerVisible() {
			card = append(card, "", st.accent.Render(current.Word.Korean))
		} else {
			card = append(card, "", st.muted.Render("・・・"))
		}
	}
	b.WriteString(st.card.Width(minInt(cardWidth, maxInt(10, width-10))).Render(strings.Join(card, "\n")))
	b.WriteString("\n\n")
	b.WriteString(st.muted.Render("You answered: ") + st.incorrect.Render(current.UserAnswer))
	b.WriteString("\n")

	if s.session.Mode() == review.QuizMode {
		b.WriteString("\n")
		b.WriteString(s.input.View())
		b.WriteString("\n")
		res, ok := s.session.LastResult()
		switch {
		case ok && res.Correct:
			b.WriteString(st.correct.Render("Correct! Removed from review."))
		case ok:
			b.WriteString(wrapStyledRunes(buildAnswerRunes([]rune(res.Expected), []rune(res.Input), st), width))
			b.WriteString("\n")
			b.WriteString(st.muted.Render("Answer: ") + st.text.Render(res.Expected))
		}
	}
	return b.String()
}

func (s *reviewWeekScreen) Keys() []key.Binding {
	if s.session.Mode() == review.QuizMode {
		return []key.Binding{keyMode, keySubmit, keyPrevEntry, keyNextEntry}
	}
	return []key.Binding{keyMode, keyLeft, keyRight, keyShow, keyLearn}
}

func (s *reviewWeekScreen) Close() {}
