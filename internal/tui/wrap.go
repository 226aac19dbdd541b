package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildAnswerRunes renders a typed answer against the expected one. Matching
// runes are correct, the rest incorrect, and missing runes are shown as
// pending placeholders.
func buildAnswerRunes(expected, input []rune, st styles) []styledRune {
	n := len(input)
	if len(expected) > n {
		n = len(expected)
	}
	out := make([]styledRune, 0, n)
	for i := 0; i < n; i++ {
		if i >= len(input) {
			// Placeholders take the width of the rune they stand for.
			width := runewidth.RuneWidth(expected[i])
			out = append(out, styledRune{
				s:     st.muted.Render(strings.Repeat("_", width)),
				width: width,
			})
			continue
		}
		style := st.incorrect
		if i < len(expected) && input[i] == expected[i] {
			style = st.correct
		}
		out = append(out, styledRune{
			s:       style.Render(string(input[i])),
			width:   runewidth.RuneWidth(input[i]),
			isSpace: input[i] == ' ',
		})
	}
	return out
}

func plainRunes(s string, style lipgloss.Style) []styledRune {
	runes := []rune(s)
	out := make([]styledRune, 0, len(runes))
	for _, r := range runes {
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits, or mid-word when
// a word is wider than the line.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func wrapText(s string, width int, style lipgloss.Style) string {
	return wrapStyledRunes(plainRunes(s, style), width)
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
