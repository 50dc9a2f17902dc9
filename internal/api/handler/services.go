package handler

import (
	"context"

	"codearena/internal/app/service"
	"codearena/internal/domain/model"
)

// The handlers depend on these narrow views of the application services.

type AuthService interface {
	Register(ctx context.Context, req service.RegisterRequest) (*service.AuthResponse, error)
	Login(ctx context.Context, req service.LoginRequest) (*service.AuthResponse, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) (*service.ResetPasswordResponse, error)
}

type ProblemService interface {
	ListProblems(ctx context.Context, q service.ListProblemsQuery) (*service.ProblemPage, error)
	GetProblemByNumber(ctx context.Context, number int, userID string) (*model.Problem, error)
	CreateProblem(ctx context.Context, userID string, req service.CreateProblemRequest) (*model.Problem, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, userID string, req service.SubmitRequest) (*model.Submission, error)
	GetSubmission(ctx context.Context, userID, id string) (*model.Submission, error)
	ListUserSubmissions(ctx context.Context, userID string) ([]model.Submission, error)
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*model.Dashboard, error)
}

type LeaderboardService interface {
	Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error)
}

type CodeService interface {
	Execute(ctx context.Context, req service.ExecuteRequest) (*model.ExecutionResult, error)
	CheckJudge(ctx context.Context) (*service.JudgeCheck, error)
}
