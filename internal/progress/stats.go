package progress

import (
	"time"

	"github.com/verte-zerg/tango/internal/model"
)

// WeekStats collects the persisted progress of week.
func (s *Store) WeekStats(week int) model.WeekStats {
	return model.WeekStats{
		Week:          week,
		StudyProgress: s.StudyProgress(week),
		StudiedToday:  s.StudiedToday(week),
		BestScore:     s.BestScore(week),
		TestResults:   s.TestResults(week),
		LastStudied:   s.LastStudied(week),
	}
}

// TotalStats aggregates progress over weeks. The average score only counts
// weeks with a non-zero best score.
func (s *Store) TotalStats(weeks []int) model.TotalStats {
	var total model.TotalStats
	scoreSum, scoreCount := 0, 0
	lastStudied := make([]string, 0, len(weeks))
	for _, week := range weeks {
		ws := s.WeekStats(week)
		total.TotalStudied += ws.StudiedToday
		total.TotalTests += len(ws.TestResults)
		if ws.BestScore > 0 {
			scoreSum += ws.BestScore
			scoreCount++
		}
		lastStudied = append(lastStudied, ws.LastStudied)
	}
	if scoreCount > 0 {
		total.AverageScore = (scoreSum + scoreCount/2) / scoreCount
	}
	total.WrongAnswersCount = len(s.WrongAnswers())
	total.StudyStreak = studyStreak(lastStudied, s.now())
	return total
}

// studyStreak counts consecutive days ending today on which some week was
// last studied.
func studyStreak(lastStudied []string, now time.Time) int {
	days := map[string]bool{}
	for _, value := range lastStudied {
		if t, ok := parseISO(value); ok {
			days[t.In(now.Location()).Format("2006-01-02")] = true
		}
	}
	streak := 0
	day := now
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
