// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the millisecond UTC layout of persisted dates.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp formats t in UTC with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a persisted date. RFC 3339 values are accepted too.
func ParseTimestamp(value string) (time.Time, bool) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Word is a single vocabulary entry. Words are immutable once loaded.
type Word struct {
	ID       int    `json:"id"`
	Kanji    string `json:"kanji"`
	Hiragana string `json:"hiragana"`
	Korean   string `json:"korean"`
}

// WeekData is the word list for one study week.
type WeekData struct {
	Week       int    `json:"week"`
	TotalWords int    `json:"totalWords"`
	Words      []Word `json:"words"`
}

// WrongAnswer records a missed quiz question.
type WrongAnswer struct {
	Word          Word   `json:"word"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Week          int    `json:"week"`
	Timestamp     int64  `json:"timestamp"`
}

// TestResult summarizes a completed quiz.
type TestResult struct {
	Date          string         `json:"date"`
	Score         int            `json:"score"`
	Total         int            `json:"total"`
	Percentage    int            `json:"percentage"`
	QuestionTypes []QuestionType `json:"questionTypes"`
}

// QuestionType selects the prompt and answer fields of a quiz question.
type QuestionType string

// Question types.
const (
	KanjiToKorean   QuestionType = "kanji-to-korean"
	KoreanToKanji   QuestionType = "korean-to-kanji"
	ReadingToKorean QuestionType = "reading-to-korean"
)

// AllQuestionTypes returns every question type in display order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{KanjiToKorean, KoreanToKanji, ReadingToKorean}
}

// ParseQuestionType parses a question type name.
func ParseQuestionType(s string) (QuestionType, error) {
	qt := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	switch qt {
	case KanjiToKorean, KoreanToKanji, ReadingToKorean:
		return qt, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// ParseQuestionTypes parses a comma-separated list of question types.
func ParseQuestionTypes(s string) ([]QuestionType, error) {
	var out []QuestionType
	seen := map[QuestionType]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		qt, err := ParseQuestionType(part)
		if err != nil {
			return nil, err
		}
		if seen[qt] {
			continue
		}
		seen[qt] = true
		out = append(out, qt)
	}
	return out, nil
}

// Prompt returns the field of w shown as the question.
func (qt QuestionType) Prompt(w Word) string {
	switch qt {
	case KoreanToKanji:
		return w.Korean
	case ReadingToKorean:
		return w.Hiragana
	default:
		return w.Kanji
	}
}

// Answer returns the field of w that answers the question.
func (qt QuestionType) Answer(w Word) string {
	if qt == KoreanToKanji {
		return w.Kanji
	}
	return w.Korean
}

// Label is a short human-readable description.
func (qt QuestionType) Label() string {
	switch qt {
	case KanjiToKorean:
		return "kanji → meaning"
	case KoreanToKanji:
		return "meaning → kanji"
	case ReadingToKorean:
		return "reading → meaning"
	}
	return string(qt)
}

// Question is one multiple-choice quiz item.
type Question struct {
	Word    Word
	Type    QuestionType
	Prompt  string
	Correct string
	Choices []string
}

// WeekStats aggregates persisted progress for one week.
type WeekStats struct {
	Week          int
	StudyProgress int
	StudiedToday  int
	BestScore     int
	TestResults   []TestResult
	LastStudied   string
}

// TotalStats aggregates progress across all weeks.
type TotalStats struct {
	TotalStudied      int
	AverageScore      int
	TotalTests        int
	StudyStreak       int
	WrongAnswersCount int
}

// VocabStats summarizes the available vocabulary.
type VocabStats struct {
	TotalWeeks   int
	TotalWords   int
	WordsPerWeek map[int]int
}

// Theme is the persisted color theme.
type Theme string

// Themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
