package stats

import (
	"sort"

	"github.com/samber/lo"

	"github.com/verte-zerg/tango/internal/model"
)

// WeakWeeks returns up to n tested weeks with the lowest best score.
func WeakWeeks(weeks []model.WeekStats, n int) []int {
	tested := lo.Filter(weeks, func(ws model.WeekStats, _ int) bool {
		return len(ws.TestResults) > 0
	})
	sort.SliceStable(tested, func(i, j int) bool {
		if tested[i].BestScore == tested[j].BestScore {
			return tested[i].Week < tested[j].Week
		}
		return tested[i].BestScore < tested[j].BestScore
	})
	if n > 0 && len(tested) > n {
		tested = tested[:n]
	}
	return lo.Map(tested, func(ws model.WeekStats, _ int) int {
		return ws.Week
	})
}
