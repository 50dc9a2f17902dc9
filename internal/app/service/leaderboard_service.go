package service

import (
	"context"
	"fmt"

	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"
)

type LeaderboardService struct {
	userRepo repository.UserRepository
	limit    int
}

func NewLeaderboardService(userRepo repository.UserRepository, limit int) *LeaderboardService {
	if limit < 1 {
		limit = 100
	}
	return &LeaderboardService{userRepo: userRepo, limit: limit}
}

// Top returns the ranked leaderboard. n above the configured limit, or not
// positive, falls back to the limit.
func (s *LeaderboardService) Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error) {
	if n < 1 || n > s.limit {
		n = s.limit
	}
	entries, err := s.userRepo.Leaderboard(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return entries, nil
}
