package model

import (
	"time"
)

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "Easy"
	DifficultyMedium ProblemDifficulty = "Medium"
	DifficultyHard   ProblemDifficulty = "Hard"
)

func (d ProblemDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Problem struct {
	ID             string            `json:"id"`
	ProblemNumber  int               `json:"problemNumber"`
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Difficulty     ProblemDifficulty `json:"difficulty"`
	Category       string            `json:"category"`
	Tags           []string          `json:"tags"`
	InputExample   string            `json:"inputExample"`
	ExpectedOutput string            `json:"expectedOutput"`
	CreatedByID    *string           `json:"createdBy,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	Solved         *bool             `json:"solved,omitempty"` // Only for an authenticated caller
}

// ProblemSummary is the problem metadata joined into submission reads.
type ProblemSummary struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Difficulty    ProblemDifficulty `json:"difficulty"`
	Category      string            `json:"category"`
	ProblemNumber int               `json:"problemNumber"`
}

// ProblemFilter drives problem listing.
type ProblemFilter struct {
	Difficulty ProblemDifficulty
	Category   string
	Tags       []string
	Search     string
	SortBy     string // problemNumber, title, difficulty, createdAt
	Descending bool
	Limit      int
	Offset     int
}
