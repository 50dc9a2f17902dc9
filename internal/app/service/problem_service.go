package service

import (
	"context"
	"fmt"
	"strings"

	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const (
	defaultProblemPageSize = 20
	maxProblemPageSize     = 100
)

type ProblemService struct {
	problemRepo    repository.ProblemRepository
	submissionRepo repository.SubmissionRepository
	logger         *zap.Logger
}

func NewProblemService(
	problemRepo repository.ProblemRepository,
	submissionRepo repository.SubmissionRepository,
	logger *zap.Logger,
) *ProblemService {
	return &ProblemService{
		problemRepo:    problemRepo,
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

type ListProblemsQuery struct {
	Difficulty string
	Category   string
	Tags       []string
	Search     string
	SortBy     string
	Order      string // asc or desc
	Page       int
	Limit      int
}

type ProblemPage struct {
	Results []model.Problem `json:"results"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

type CreateProblemRequest struct {
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	Difficulty     model.ProblemDifficulty `json:"difficulty"`
	Category       string                  `json:"category"`
	Tags           []string                `json:"tags"`
	InputExample   string                  `json:"inputExample"`
	ExpectedOutput string                  `json:"expectedOutput"`
}

// parseDifficulty accepts any casing of Easy, Medium or Hard.
func parseDifficulty(s string) (model.ProblemDifficulty, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	d := model.ProblemDifficulty(strings.ToUpper(s[:1]) + s[1:])
	return d, d.Valid()
}

func (s *ProblemService) ListProblems(ctx context.Context, q ListProblemsQuery) (*ProblemPage, error) {
	filter := model.ProblemFilter{
		Category:   strings.TrimSpace(q.Category),
		Search:     strings.TrimSpace(q.Search),
		SortBy:     q.SortBy,
		Descending: strings.EqualFold(q.Order, "desc"),
	}
	if q.Difficulty != "" {
		d, ok := parseDifficulty(q.Difficulty)
		if !ok {
			return nil, fmt.Errorf("unknown difficulty %q: %w", q.Difficulty, common.ErrValidation)
		}
		filter.Difficulty = d
	}
	for _, tag := range q.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			filter.Tags = append(filter.Tags, tag)
		}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultProblemPageSize
	}
	if limit > maxProblemPageSize {
		limit = maxProblemPageSize
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	problems, total, err := s.problemRepo.ListProblems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return &ProblemPage{Results: problems, Total: total, Page: page, Limit: limit}, nil
}

// GetProblemByNumber looks a problem up by its display number. When userID
// is set the result carries whether that user has solved it.
func (s *ProblemService) GetProblemByNumber(ctx context.Context, number int, userID string) (*model.Problem, error) {
	problem, err := s.problemRepo.FindProblemByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if userID != "" {
		solved, err := s.submissionRepo.ExistsAcceptedFor(ctx, userID, problem.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check solved state: %w", err)
		}
		problem.Solved = &solved
	}
	return problem, nil
}

func (s *ProblemService) CreateProblem(ctx context.Context, userID string, req CreateProblemRequest) (*model.Problem, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Description) == "" || req.Difficulty == "" {
		return nil, fmt.Errorf("title, description and difficulty are required: %w", common.ErrValidation)
	}
	difficulty, ok := parseDifficulty(string(req.Difficulty))
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q: %w", req.Difficulty, common.ErrValidation)
	}

	problem := &model.Problem{
		ID:             uuid.NewString(),
		Title:          title,
		Slug:           slug.Make(title),
		Description:    req.Description,
		Difficulty:     difficulty,
		Category:       strings.TrimSpace(req.Category),
		Tags:           req.Tags,
		InputExample:   req.InputExample,
		ExpectedOutput: req.ExpectedOutput,
		CreatedByID:    &userID,
	}
	if problem.Tags == nil {
		problem.Tags = []string{}
	}

	if err := s.problemRepo.CreateProblem(ctx, problem); err != nil {
		return nil, fmt.Errorf("failed to create problem: %w", err)
	}
	s.logger.Info("problem created",
		zap.String("problem_id", problem.ID),
		zap.Int("problem_number", problem.ProblemNumber),
		zap.String("slug", problem.Slug))
	return problem, nil
}
