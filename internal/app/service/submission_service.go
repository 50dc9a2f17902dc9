package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"
	"codearena/internal/platform/judge"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Judge runs code on the external execution service and waits for the
// final status.
type Judge interface {
	Submit(ctx context.Context, req judge.SubmitRequest) (*judge.Result, error)
}

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	problemRepo    repository.ProblemRepository
	stats          *StatsService
	judge          Judge
	logger         *zap.Logger
}

func NewSubmissionService(
	subRepo repository.SubmissionRepository,
	probRepo repository.ProblemRepository,
	stats *StatsService,
	judgeClient Judge,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: subRepo,
		problemRepo:    probRepo,
		stats:          stats,
		judge:          judgeClient,
		logger:         logger,
	}
}

type SubmitRequest struct {
	ProblemID string `json:"problemId"`
	Code      string `json:"code"`
	Language  string `json:"language"`
}

// Submit judges code against the problem's sample input and expected output.
// The call blocks for the full judge round-trip. Unknown problems and
// languages fail before anything is stored. A judge failure leaves the
// record as Internal Error and returns an error wrapping
// common.ErrJudgeUnavailable.
func (s *SubmissionService) Submit(ctx context.Context, userID string, req SubmitRequest) (*model.Submission, error) {
	if strings.TrimSpace(req.ProblemID) == "" {
		return nil, fmt.Errorf("problemId is required: %w", common.ErrValidation)
	}

	if _, err := uuid.Parse(req.ProblemID); err != nil {
		return nil, fmt.Errorf("find problem %s: %w", req.ProblemID, common.ErrNotFound)
	}
	problem, err := s.problemRepo.FindProblemByID(ctx, req.ProblemID)
	if err != nil {
		return nil, fmt.Errorf("find problem %s: %w", req.ProblemID, err)
	}

	languageID, err := model.JudgeLanguageID(req.Language)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		ID:            uuid.NewString(),
		UserID:        userID,
		ProblemID:     problem.ID,
		ProblemNumber: problem.ProblemNumber,
		Code:          req.Code,
		Language:      model.NormalizeLanguage(req.Language),
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	expected := problem.ExpectedOutput
	result, err := s.judge.Submit(ctx, judge.SubmitRequest{
		SourceCode:     req.Code,
		LanguageID:     languageID,
		Stdin:          problem.InputExample,
		ExpectedOutput: &expected,
	})
	// Post-judge writes outlive the request so the record always gets a final verdict.
	writeCtx := context.WithoutCancel(ctx)
	if err != nil {
		return nil, s.failSubmission(writeCtx, submission.ID, err)
	}

	verdict := model.VerdictFromJudgeStatus(result.StatusID())
	updated, err := s.submissionRepo.Update(writeCtx, submission.ID, verdict,
		float64(result.Time), int(result.Memory), result.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to store verdict for submission %s: %w", submission.ID, err)
	}
	updated.Problem = summaryOf(problem)

	if err := s.stats.ApplyResult(writeCtx, userID, problem.ID, verdict); err != nil {
		return nil, fmt.Errorf("failed to update stats for submission %s: %w", submission.ID, err)
	}

	s.logger.Info("submission judged",
		zap.String("submission_id", updated.ID),
		zap.String("user_id", userID),
		zap.Int("problem_number", problem.ProblemNumber),
		zap.String("language", updated.Language),
		zap.String("verdict", string(verdict)),
		zap.Float64("time", updated.ExecutionTime),
		zap.Int("memory", updated.Memory))
	return updated, nil
}

// failSubmission closes a record whose judge call failed.
func (s *SubmissionService) failSubmission(ctx context.Context, submissionID string, cause error) error {
	if !errors.Is(cause, common.ErrJudgeUnavailable) {
		cause = fmt.Errorf("%w: %v", common.ErrJudgeUnavailable, cause)
	}
	s.logger.Error("judge call failed",
		zap.String("submission_id", submissionID),
		zap.Error(cause))

	if _, err := s.submissionRepo.Update(ctx, submissionID, model.VerdictInternalError, 0, 0, nil); err != nil {
		s.logger.Error("failed to mark submission as internal error",
			zap.String("submission_id", submissionID),
			zap.Error(err))
	}
	return fmt.Errorf("submission %s: %w", submissionID, cause)
}

// GetSubmission returns one of the caller's submissions. Records owned by
// someone else are reported as not found.
func (s *SubmissionService) GetSubmission(ctx context.Context, userID, id string) (*model.Submission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}
	sub, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, common.ErrNotFound
	}
	return sub, nil
}

func (s *SubmissionService) ListUserSubmissions(ctx context.Context, userID string) ([]model.Submission, error) {
	return s.submissionRepo.ListByUser(ctx, userID)
}

func summaryOf(p *model.Problem) *model.ProblemSummary {
	return &model.ProblemSummary{
		ID:            p.ID,
		Title:         p.Title,
		Difficulty:    p.Difficulty,
		Category:      p.Category,
		ProblemNumber: p.ProblemNumber,
	}
}
