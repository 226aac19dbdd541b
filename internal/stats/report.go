// Package stats builds and renders study statistics.
package stats

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/progress"
)

// VocabSource summarizes the available vocabulary. *vocab.Store satisfies it.
type VocabSource interface {
	AggregateStats(ctx context.Context) model.VocabStats
}

// ProgressSource reads persisted progress. *progress.Store satisfies it.
type ProgressSource interface {
	WeekStats(week int) model.WeekStats
	TotalStats(weeks []int) model.TotalStats
	WrongAnswersByWeek() []progress.WeekWrongAnswers
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Vocab  model.VocabStats
	Weeks  []model.WeekStats
	Total  model.TotalStats
	Missed []progress.WeekWrongAnswers
}

// BuildReport loads the vocabulary summary and the progress of every
// available week.
func BuildReport(ctx context.Context, vocab VocabSource, prog ProgressSource) Report {
	vs := vocab.AggregateStats(ctx)
	weeks := lo.Keys(vs.WordsPerWeek)
	sort.Ints(weeks)
	return Report{
		Vocab: vs,
		Weeks: lo.Map(weeks, func(week int, _ int) model.WeekStats {
			return prog.WeekStats(week)
		}),
		Total:  prog.TotalStats(weeks),
		Missed: prog.WrongAnswersByWeek(),
	}
}

// Chronological returns every test result of the report, oldest first.
func (r Report) Chronological() []model.TestResult {
	var all []model.TestResult
	for _, ws := range r.Weeks {
		all = append(all, ws.TestResults...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date < all[j].Date
	})
	return all
}
