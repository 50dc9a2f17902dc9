package service

import (
	"context"
	"testing"
	"time"

	"codearena/internal/domain/model"

	"go.uber.org/zap"
)

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		days []string
		want int
	}{
		{"empty", nil, 0},
		{"today only", []string{"2024-03-10"}, 1},
		{"ends yesterday", []string{"2024-03-09", "2024-03-08"}, 2},
		{"broken run", []string{"2024-03-10", "2024-03-09", "2024-03-07"}, 2},
		{"stale", []string{"2024-03-08", "2024-03-07"}, 0},
		{"month boundary", []string{"2024-03-01", "2024-02-29", "2024-02-28"}, 0},
	}
	for _, tc := range cases {
		if got := CurrentStreak(tc.days, today); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}

	leap := time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC)
	if got := CurrentStreak([]string{"2024-03-01", "2024-02-29", "2024-02-28"}, leap); got != 3 {
		t.Fatalf("expected streak across month boundary, got %d", got)
	}
}

func TestAcceptanceRate(t *testing.T) {
	if got := AcceptanceRate(model.SubmissionCounts{}); got != 0 {
		t.Fatalf("expected 0 for no submissions, got %v", got)
	}
	if got := AcceptanceRate(model.SubmissionCounts{Total: 3, Accepted: 1}); got != 33.3 {
		t.Fatalf("expected 33.3, got %v", got)
	}
	if got := AcceptanceRate(model.SubmissionCounts{Total: 3, Accepted: 2}); got != 66.7 {
		t.Fatalf("expected 66.7, got %v", got)
	}
}

func TestGetDashboard(t *testing.T) {
	users := newFakeUserRepo(&model.User{ID: "u1", Username: "ada", TotalSolved: 4, TotalSubmissions: 8})
	submissions := newFakeSubmissionRepo()
	submissions.counts = model.SubmissionCounts{Total: 8, Accepted: 4}
	submissions.days = []string{"2024-03-10", "2024-03-09"}
	submissions.activity = []model.DailyActivity{{Date: "2024-03-10", Submissions: 3, Solved: 1}}

	svc := NewDashboardService(users, submissions, 7, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }

	d, err := svc.GetDashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if d.Username != "ada" || d.WelcomeMessage != "Welcome back, ada!" {
		t.Fatalf("unexpected greeting: %+v", d)
	}
	if d.TotalSolved != 4 || d.TotalSubmissions != 8 || d.AcceptanceRate != 50 || d.CurrentStreak != 2 {
		t.Fatalf("unexpected stats: %+v", d)
	}
	if len(d.Activity) != 1 {
		t.Fatalf("expected activity to be passed through")
	}
	if want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC); !submissions.since.Equal(want) {
		t.Fatalf("expected activity window from %v, got %v", want, submissions.since)
	}
}
