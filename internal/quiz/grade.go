package quiz

// Percentage rounds score/total to the nearest whole percent, halves up.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*200 + total) / (2 * total)
}

// Grade is the feedback band of a result.
type Grade int

// Grade bands.
const (
	NeedsPractice Grade = iota
	Good
	Excellent
)

// GradeFor returns the band of percentage.
func GradeFor(percentage int) Grade {
	switch {
	case percentage >= 80:
		return Excellent
	case percentage >= 60:
		return Good
	}
	return NeedsPractice
}

// Message is the feedback shown with a result.
func (g Grade) Message() string {
	switch g {
	case Excellent:
		return "Excellent! You have mastered this week."
	case Good:
		return "Well done! A little more practice and it will be perfect."
	}
	return "Keep practicing. Try study mode again."
}
