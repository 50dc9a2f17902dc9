package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"

	"go.uber.org/zap"
)

const dayLayout = "2006-01-02"

type DashboardService struct {
	userRepo       repository.UserRepository
	submissionRepo repository.SubmissionRepository
	activityDays   int
	logger         *zap.Logger
	now            func() time.Time
}

func NewDashboardService(
	userRepo repository.UserRepository,
	submissionRepo repository.SubmissionRepository,
	activityDays int,
	logger *zap.Logger,
) *DashboardService {
	if activityDays < 1 {
		activityDays = 30
	}
	return &DashboardService{
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
		activityDays:   activityDays,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (*model.Dashboard, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.submissionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	days, err := s.submissionRepo.AcceptedDays(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accepted days: %w", err)
	}

	today := s.now().UTC()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(s.activityDays - 1))
	activity, err := s.submissionRepo.DailyActivity(ctx, userID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	return &model.Dashboard{
		Username:         user.Username,
		WelcomeMessage:   fmt.Sprintf("Welcome back, %s!", user.Username),
		TotalSolved:      user.TotalSolved,
		TotalSubmissions: user.TotalSubmissions,
		AcceptanceRate:   AcceptanceRate(counts),
		CurrentStreak:    CurrentStreak(days, today),
		LastSolvedAt:     user.LastSolvedAt,
		Activity:         activity,
	}, nil
}

// AcceptanceRate is the accepted share of judged submissions, in percent
// rounded to one decimal.
func AcceptanceRate(c model.SubmissionCounts) float64 {
	if c.Total == 0 {
		return 0
	}
	return math.Round(float64(c.Accepted)/float64(c.Total)*1000) / 10
}

// CurrentStreak counts consecutive UTC days with an accepted submission. The
// run must end today or yesterday. days holds YYYY-MM-DD values, newest first.
func CurrentStreak(days []string, today time.Time) int {
	if len(days) == 0 {
		return 0
	}
	cursor := today.UTC()
	cursor = time.Date(cursor.Year(), cursor.Month(), cursor.Day(), 0, 0, 0, 0, time.UTC)
	if days[0] != cursor.Format(dayLayout) {
		cursor = cursor.AddDate(0, 0, -1)
		if days[0] != cursor.Format(dayLayout) {
			return 0
		}
	}

	streak := 0
	for _, day := range days {
		if day != cursor.Format(dayLayout) {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
