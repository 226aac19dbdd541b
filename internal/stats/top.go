package stats

import (
	"sort"

	"github.com/verte-zerg/tango/internal/progress"
)

// WeekCount pairs a week with a number of entries.
type WeekCount struct {
	Week  int
	Count int
}

// MostMissed returns up to n weeks ordered by their wrong-answer count.
func MostMissed(groups []progress.WeekWrongAnswers, n int) []WeekCount {
	if n <= 0 || len(groups) == 0 {
		return nil
	}
	items := make([]WeekCount, 0, len(groups))
	for _, g := range groups {
		items = append(items, WeekCount{Week: g.Week, Count: len(g.Answers)})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Week < items[j].Week
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
