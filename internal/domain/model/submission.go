package model

import (
	"encoding/json"
	"time"
)

type Submission struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	ProblemID     string          `json:"problemId"`
	ProblemNumber int             `json:"problemNumber"`
	Code          string          `json:"code"`
	Language      string          `json:"language"`
	Verdict       Verdict         `json:"verdict"`
	ExecutionTime float64         `json:"executionTime"` // seconds
	Memory        int             `json:"memory"`        // KB
	Details       json.RawMessage `json:"details,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Problem       *ProblemSummary `json:"problem,omitempty"` // Joined on reads
}

// ExecutionResult is what the code runner returns for an ad-hoc run. Nothing
// is persisted for it.
type ExecutionResult struct {
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Message       *string `json:"message,omitempty"`
	Status        string  `json:"status"`
	StatusID      *int    `json:"status_id,omitempty"`
	Time          float64 `json:"time"`
	Memory        int     `json:"memory"`
}
