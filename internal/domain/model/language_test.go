package model

import (
	"errors"
	"testing"

	"codearena/internal/common"
)

func TestJudgeLanguageID(t *testing.T) {
	cases := map[string]int{
		"cpp":          54,
		"C++":          54,
		"c":            50,
		"Python":       71,
		"JAVA":         62,
		"javascript":   63,
		" JavaScript ": 63,
	}
	for name, want := range cases {
		got, err := JudgeLanguageID(name)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", name, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", name, want, got)
		}
	}
}

func TestJudgeLanguageIDRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "cobol", "rust", "py"} {
		_, err := JudgeLanguageID(name)
		if !errors.Is(err, common.ErrUnsupportedLanguage) {
			t.Fatalf("%q: expected unsupported language, got %v", name, err)
		}
	}
}

func TestIsSupportedJudgeLanguageID(t *testing.T) {
	if !IsSupportedJudgeLanguageID(71) {
		t.Fatalf("expected python id to be supported")
	}
	if IsSupportedJudgeLanguageID(73) {
		t.Fatalf("expected rust id to be unsupported")
	}
}
