package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tango/internal/quiz"
)

type testScreen struct {
	sh      *shared
	ctx     context.Context
	gen     uint64
	loader  weekLoader
	session *quiz.Session
	cursor  int
}

func newTestScreen(ctx context.Context, sh *shared, gen uint64, week int) *testScreen {
	return &testScreen{sh: sh, ctx: ctx, gen: gen, loader: newWeekLoader(sh, week)}
}

func (s *testScreen) Init() tea.Cmd {
	return s.loader.start(s.ctx, s.gen)
}

func (s *testScreen) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		if s.session == nil {
			return nil
		}
		return s.handleKey(km)
	}
	cmd, data := s.loader.update(msg)
	if data != nil {
		var opts []quiz.Option
		if s.sh.deps.Shuffler != nil {
			opts = append(opts, quiz.WithShuffler(s.sh.deps.Shuffler))
		}
		session, err := quiz.New(s.loader.week, data.Words, s.sh.deps.Quiz, s.sh.deps.Progress, opts...)
		if err != nil {
			s.loader.fail(err)
			return cmd
		}
		s.session = session
	}
	return cmd
}

func (s *testScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.session.State() == quiz.Completed {
		switch {
		case key.Matches(msg, keyRetry):
			s.session.Restart()
			s.cursor = 0
		case key.Matches(msg, keyReview):
			return navigate(ReviewWeekPage{Week: s.session.Week()})
		}
		return nil
	}
	choices := s.session.Current().Choices
	switch {
	case key.Matches(msg, keyChoice):
		n := int(msg.String()[0] - '0')
		if _, ok := s.session.SubmitIndex(n); ok {
			s.cursor = n - 1
		}
	case key.Matches(msg, keyUp):
		if !s.session.Answered() {
			s.cursor = (s.cursor - 1 + len(choices)) % len(choices)
		}
	case key.Matches(msg, keyDown):
		if !s.session.Answered() {
			s.cursor = (s.cursor + 1) % len(choices)
		}
	case key.Matches(msg, keyNext):
		if !s.session.Answered() {
			s.session.SubmitIndex(s.cursor + 1)
			return nil
		}
		if s.session.Next() {
			s.cursor = 0
		}
	case key.Matches(msg, keyRetry):
		s.session.Restart()
		s.cursor = 0
	}
	return nil
}

func (s *testScreen) View(width, _ int) string {
	if v, ok := s.loader.view(); ok {
		return v
	}
	if s.session.State() == quiz.Completed {
		return s.resultView(width)
	}
	st := s.sh.styles
	q := s.session.Current()
	answer, answered := s.session.LastAnswer()

	var b strings.Builder
	b.WriteString(st.muted.Render(fmt.Sprintf("Question %d / %d · %s · score %d",
		s.session.Index()+1, s.session.Total(), q.Type.Label(), s.session.Score())))
	b.WriteString("\n\n")
	b.WriteString(st.card.Width(minInt(cardWidth, maxInt(10, width-10))).Render(st.kanji.Render(q.Prompt)))
	b.WriteString("\n\n")
	for i, choice := range q.Choices {
		label := fmt.Sprintf("%d  %s", i+1, choice)
		switch {
		case answered && choice == q.Correct:
			label = st.correct.Render("✓ " + label)
		case answered && choice == answer.Choice:
			label = st.incorrect.Render("✗ " + label)
		case answered:
			label = st.muted.Render("  " + label)
		case i == s.cursor:
			label = st.selected.Render(label)
		default:
			label = st.choice.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	if answered {
		b.WriteString("\n")
		if answer.Correct {
			b.WriteString(st.correct.Render("Correct!"))
		} else {
			b.WriteString(st.incorrect.Render("Wrong. ") + st.text.Render("Answer: "+q.Correct))
		}
	}
	return b.String()
}

func (s *testScreen) resultView(width int) string {
	st := s.sh.styles
	result, _ := s.session.Result()
	grade := quiz.GradeFor(result.Percentage)

	var b strings.Builder
	b.WriteString(st.title.Render(fmt.Sprintf("%d / %d  (%d%%)", result.Score, result.Total, result.Percentage)))
	b.WriteString("\n")
	b.WriteString(wrapText(grade.Message(), width, st.text))
	b.WriteString("\n")
	if mistakes := s.session.Mistakes(); len(mistakes) > 0 {
		b.WriteString("\n")
		b.WriteString(st.muted.Render("Mistakes"))
		b.WriteString("\n")
		for _, m := range mistakes {
			b.WriteString(fmt.Sprintf("%s  %s %s  %s\n",
				st.kanji.Render(m.Question.Prompt),
				st.correct.Render(m.Question.Correct),
				st.muted.Render("·"),
				st.incorrect.Render(m.Choice)))
		}
	}
	return b.String()
}

func (s *testScreen) Keys() []key.Binding {
	if s.session != nil && s.session.State() == quiz.Completed {
		return []key.Binding{keyRetry, keyReview}
	}
	return []key.Binding{keyChoice, keyUp, keyDown, keyNext, keyRetry}
}

func (s *testScreen) Close() {}
