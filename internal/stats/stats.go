package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/tango/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := i + 1
		if i >= window {
			sum -= values[i-window]
			den = window
		}
		out[i] = sum / float64(den)
	}
	return out
}

// Sparkline renders percentages in [0, 100] as a single ASCII line.
func Sparkline(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		pos := math.Max(0, math.Min(100, v)) / 100
		b.WriteByte(sparkChars[int(math.Round(pos*float64(len(sparkChars)-1)))])
	}
	return b.String()
}

func percentages(results []model.TestResult) []float64 {
	return lo.Map(results, func(r model.TestResult, _ int) float64 {
		return float64(r.Percentage)
	})
}

func oldestFirst(results []model.TestResult) []model.TestResult {
	return lo.Reverse(append([]model.TestResult(nil), results...))
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints the totals of a report.
func RenderSummary(w io.Writer, r Report) error {
	if r.Vocab.TotalWeeks == 0 {
		return writeLines(w, "No vocabulary found.")
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Weeks: %d (%d words)", r.Vocab.TotalWeeks, r.Vocab.TotalWords),
		fmt.Sprintf("Studied today: %d", r.Total.TotalStudied),
		fmt.Sprintf("Tests taken: %d", r.Total.TotalTests),
		fmt.Sprintf("Average best score: %d%%", r.Total.AverageScore),
		fmt.Sprintf("Study streak: %s", pluralDays(r.Total.StudyStreak)),
		fmt.Sprintf("Wrong answers: %d", r.Total.WrongAnswersCount),
	}
	if weak := WeakWeeks(r.Weeks, 3); len(weak) > 0 {
		lines = append(lines, "Weakest weeks: "+joinInts(weak))
	}
	if missed := MostMissed(r.Missed, 3); len(missed) > 0 {
		parts := lo.Map(missed, func(m WeekCount, _ int) string {
			return fmt.Sprintf("week %d (%d)", m.Week, m.Count)
		})
		lines = append(lines, "Most missed: "+strings.Join(parts, ", "))
	}
	return writeLines(w, append(lines, "")...)
}

// RenderWeeks prints one row of progress per week.
func RenderWeeks(w io.Writer, r Report, loc *time.Location) error {
	if len(r.Weeks) == 0 {
		return nil
	}
	headers := []string{"Week", "Words", "Position", "Studied", "Best", "Tests", "Last studied"}
	rows := make([][]string, 0, len(r.Weeks))
	for _, ws := range r.Weeks {
		words := r.Vocab.WordsPerWeek[ws.Week]
		position := "-"
		if words > 0 {
			position = fmt.Sprintf("%d/%d", ws.StudyProgress+1, words)
		}
		rows = append(rows, []string{
			strconv.Itoa(ws.Week),
			strconv.Itoa(words),
			position,
			strconv.Itoa(ws.StudiedToday),
			fmt.Sprintf("%d%%", ws.BestScore),
			strconv.Itoa(len(ws.TestResults)),
			formatDate(ws.LastStudied, loc),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true})
	return writeLines(w, append(append([]string{"Weeks"}, lines...), "")...)
}

// RenderHistory prints per-week score trends and a chart of every result.
// The chart shows raw scores and their moving average over window results.
func RenderHistory(w io.Writer, r Report, window, width, height int, useColor bool) error {
	all := r.Chronological()
	if len(all) == 0 {
		return writeLines(w, "No test results yet.", "")
	}
	headers := []string{"Week", "Tests", "Last", "Average", "Trend"}
	var rows [][]string
	for _, ws := range r.Weeks {
		if len(ws.TestResults) == 0 {
			continue
		}
		values := percentages(oldestFirst(ws.TestResults))
		rows = append(rows, []string{
			strconv.Itoa(ws.Week),
			strconv.Itoa(len(values)),
			fmt.Sprintf("%d%%", ws.TestResults[0].Percentage),
			fmt.Sprintf("%.0f%%", lo.Sum(values)/float64(len(values))),
			Sparkline(values),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 1: true, 2: true, 3: true})
	if err := writeLines(w, append(append([]string{"History"}, lines...), "")...); err != nil {
		return err
	}

	scores := percentages(all)
	return PlotPercentages(w, "Test scores", []Series{
		{Name: "Score", Values: scores},
		{Name: fmt.Sprintf("Average of %d", window), Values: MovingAverage(scores, window)},
	}, width, height, useColor)
}

func formatDate(value string, loc *time.Location) string {
	t, ok := model.ParseTimestamp(value)
	if !ok {
		return "-"
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func joinInts(values []int) string {
	return strings.Join(lo.Map(values, func(v int, _ int) string {
		return strconv.Itoa(v)
	}), ", ")
}
