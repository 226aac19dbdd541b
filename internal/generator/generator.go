// Package generator builds randomized quiz questions and word orders.
package generator

import (
	"math/rand"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/tango/internal/model"
)

// MaxDistractors is the number of wrong choices offered per question.
const MaxDistractors = 3

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Generator produces shuffled word orders and question choices.
type Generator struct {
	rnd Shuffler
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithShuffler returns a Generator using rnd for every permutation.
func NewWithShuffler(rnd Shuffler) *Generator {
	return &Generator{rnd: rnd}
}

// Order returns a shuffled copy of words.
func (g *Generator) Order(words []model.Word) []model.Word {
	out := append([]model.Word(nil), words...)
	g.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Question builds a question for word. Distractors come from pool entries
// whose answer differs from the correct one, so a repeated meaning is never
// offered as a wrong choice. Fewer than MaxDistractors are used when the
// pool runs short.
func (g *Generator) Question(word model.Word, qt model.QuestionType, pool []model.Word) model.Question {
	correct := qt.Answer(word)
	candidates := lo.Uniq(lo.FilterMap(pool, func(w model.Word, _ int) (string, bool) {
		answer := qt.Answer(w)
		return answer, answer != correct
	}))
	g.shuffleStrings(candidates)
	if len(candidates) > MaxDistractors {
		candidates = candidates[:MaxDistractors]
	}

	choices := append([]string{correct}, candidates...)
	g.shuffleStrings(choices)
	return model.Question{
		Word:    word,
		Type:    qt,
		Prompt:  qt.Prompt(word),
		Correct: correct,
		Choices: choices,
	}
}

func (g *Generator) shuffleStrings(values []string) {
	g.rnd.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}
