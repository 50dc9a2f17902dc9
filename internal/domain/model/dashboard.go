package model

import "time"

// DailyActivity counts one user's submissions on one UTC day.
type DailyActivity struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Submissions int    `json:"submissions"`
	Solved      int    `json:"solved"`
}

type Dashboard struct {
	Username         string          `json:"username"`
	WelcomeMessage   string          `json:"welcomeMessage"`
	TotalSolved      int             `json:"totalSolved"`
	TotalSubmissions int             `json:"totalSubmissions"`
	AcceptanceRate   float64         `json:"acceptanceRate"` // Percent, one decimal
	CurrentStreak    int             `json:"currentStreak"`
	LastSolvedAt     *time.Time      `json:"lastSolvedAt,omitempty"`
	Activity         []DailyActivity `json:"activity"`
}

// SubmissionCounts totals a user's judged submissions.
type SubmissionCounts struct {
	Total    int
	Accepted int
}
