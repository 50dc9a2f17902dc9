package model

import (
	"fmt"
	"strings"

	"codearena/internal/common"
)

// Judge language ids for the supported languages.
const (
	JudgeLangCPP        = 54
	JudgeLangC          = 50
	JudgeLangPython     = 71
	JudgeLangJava       = 62
	JudgeLangJavaScript = 63
)

var judgeLanguages = map[string]int{
	"cpp":        JudgeLangCPP,
	"c++":        JudgeLangCPP,
	"c":          JudgeLangC,
	"python":     JudgeLangPython,
	"java":       JudgeLangJava,
	"javascript": JudgeLangJavaScript,
}

// NormalizeLanguage lower-cases and trims a language name.
func NormalizeLanguage(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// JudgeLanguageID returns the judge's numeric id for a language name.
func JudgeLanguageID(name string) (int, error) {
	id, ok := judgeLanguages[NormalizeLanguage(name)]
	if !ok {
		return 0, fmt.Errorf("language %q: %w", name, common.ErrUnsupportedLanguage)
	}
	return id, nil
}

func IsSupportedJudgeLanguageID(id int) bool {
	for _, known := range judgeLanguages {
		if known == id {
			return true
		}
	}
	return false
}
