package progress

import (
	"sort"

	"github.com/samber/lo"

	"github.com/verte-zerg/tango/internal/model"
)

// WeekWrongAnswers groups wrong answers of one week, newest first.
type WeekWrongAnswers struct {
	Week    int
	Answers []model.WrongAnswer
}

// WrongAnswers returns every wrong answer, newest first.
func (s *Store) WrongAnswers() []model.WrongAnswer {
	return Get(s, wrongAnswersKey, []model.WrongAnswer{})
}

// SaveWrongAnswer records a missed question. Any earlier entry for the same
// word and week is replaced, and the list keeps the newest MaxWrongAnswers.
func (s *Store) SaveWrongAnswer(word model.Word, userAnswer, correctAnswer string, week int) {
	entry := model.WrongAnswer{
		Word:          word,
		UserAnswer:    userAnswer,
		CorrectAnswer: correctAnswer,
		Week:          week,
		Timestamp:     s.now().UnixMilli(),
	}
	rest := lo.Reject(s.WrongAnswers(), func(a model.WrongAnswer, _ int) bool {
		return a.Word.ID == word.ID && a.Week == week
	})
	answers := append([]model.WrongAnswer{entry}, rest...)
	if len(answers) > MaxWrongAnswers {
		answers = answers[:MaxWrongAnswers]
	}
	s.Set(wrongAnswersKey, answers)
}

// RemoveWrongAnswer drops the entry for wordID in week.
func (s *Store) RemoveWrongAnswer(wordID, week int) {
	answers := s.WrongAnswers()
	kept := lo.Reject(answers, func(a model.WrongAnswer, _ int) bool {
		return a.Word.ID == wordID && a.Week == week
	})
	if len(kept) == len(answers) {
		return
	}
	s.Set(wrongAnswersKey, kept)
}

// ClearWrongAnswers empties the wrong-answer list.
func (s *Store) ClearWrongAnswers() {
	s.Set(wrongAnswersKey, []model.WrongAnswer{})
}

// WrongAnswersByWeek groups wrong answers by week in ascending week order.
func (s *Store) WrongAnswersByWeek() []WeekWrongAnswers {
	grouped := lo.GroupBy(s.WrongAnswers(), func(a model.WrongAnswer) int {
		return a.Week
	})
	weeks := lo.Keys(grouped)
	sort.Ints(weeks)
	return lo.Map(weeks, func(week int, _ int) WeekWrongAnswers {
		return WeekWrongAnswers{Week: week, Answers: grouped[week]}
	})
}

// WrongAnswersForWeek returns the wrong answers of week, newest first.
func (s *Store) WrongAnswersForWeek(week int) []model.WrongAnswer {
	return lo.Filter(s.WrongAnswers(), func(a model.WrongAnswer, _ int) bool {
		return a.Week == week
	})
}
