package service

import (
	"context"
	"fmt"
	"time"

	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"

	"go.uber.org/zap"
)

// StatsService applies judged submissions to the per-user counters.
type StatsService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewStatsService(userRepo repository.UserRepository, logger *zap.Logger) *StatsService {
	return &StatsService{userRepo: userRepo, logger: logger, now: time.Now}
}

// ApplyResult counts one judged submission for the user. Total solved only
// moves on the first Accepted verdict for the (user, problem) pair; the
// check and both increments commit together in the repository.
func (s *StatsService) ApplyResult(ctx context.Context, userID, problemID string, verdict model.Verdict) error {
	if !verdict.IsTerminal() {
		return fmt.Errorf("apply result: verdict %q is not final", verdict)
	}
	accepted := verdict == model.VerdictAccepted
	firstSolve, err := s.userRepo.RecordSubmissionResult(ctx, userID, problemID, accepted, s.now().UTC())
	if err != nil {
		return fmt.Errorf("apply result for user %s: %w", userID, err)
	}
	if firstSolve {
		s.logger.Info("problem solved for the first time",
			zap.String("user_id", userID),
			zap.String("problem_id", problemID))
	}
	return nil
}
