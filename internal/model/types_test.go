package model

import "testing"

func TestParseQuestionTypes(t *testing.T) {
	got, err := ParseQuestionTypes("kanji-to-korean, Reading-To-Korean,kanji-to-korean")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 || got[0] != KanjiToKorean || got[1] != ReadingToKorean {
		t.Fatalf("unexpected types: %v", got)
	}
	if _, err := ParseQuestionTypes("kanji-to-english"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	empty, err := ParseQuestionTypes(" , ")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty selection, got %v (%v)", empty, err)
	}
}

func TestQuestionTypeFields(t *testing.T) {
	w := Word{ID: 1, Kanji: "幼い", Hiragana: "おさない", Korean: "어리다"}
	cases := []struct {
		qt     QuestionType
		prompt string
		answer string
	}{
		{KanjiToKorean, "幼い", "어리다"},
		{KoreanToKanji, "어리다", "幼い"},
		{ReadingToKorean, "おさない", "어리다"},
	}
	for _, tc := range cases {
		if got := tc.qt.Prompt(w); got != tc.prompt {
			t.Fatalf("%s prompt: expected %q, got %q", tc.qt, tc.prompt, got)
		}
		if got := tc.qt.Answer(w); got != tc.answer {
			t.Fatalf("%s answer: expected %q, got %q", tc.qt, tc.answer, got)
		}
	}
}
