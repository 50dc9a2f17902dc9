package service

import (
	"context"
	"fmt"
	"strings"

	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/platform/judge"

	"go.uber.org/zap"
)

// CodeService runs ad-hoc code on the judge. Nothing is stored and user
// stats are not touched.
type CodeService struct {
	judge  Judge
	logger *zap.Logger
}

func NewCodeService(judgeClient Judge, logger *zap.Logger) *CodeService {
	return &CodeService{judge: judgeClient, logger: logger}
}

// ExecuteRequest names the language either by judge id or by name; the id
// wins when both are set.
type ExecuteRequest struct {
	LanguageID int    `json:"language_id"`
	Language   string `json:"language"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

type JudgeCheck struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Output  *string `json:"output"`
	Status  string  `json:"status"`
}

func resolveLanguageID(req ExecuteRequest) (int, error) {
	if req.LanguageID != 0 {
		if !model.IsSupportedJudgeLanguageID(req.LanguageID) {
			return 0, fmt.Errorf("language id %d: %w", req.LanguageID, common.ErrUnsupportedLanguage)
		}
		return req.LanguageID, nil
	}
	return model.JudgeLanguageID(req.Language)
}

func (s *CodeService) Execute(ctx context.Context, req ExecuteRequest) (*model.ExecutionResult, error) {
	if strings.TrimSpace(req.SourceCode) == "" {
		return nil, fmt.Errorf("source_code is required: %w", common.ErrValidation)
	}
	languageID, err := resolveLanguageID(req)
	if err != nil {
		return nil, err
	}

	result, err := s.judge.Submit(ctx, judge.SubmitRequest{
		SourceCode: req.SourceCode,
		LanguageID: languageID,
		Stdin:      req.Stdin,
	})
	if err != nil {
		s.logger.Error("code execution failed", zap.Int("language_id", languageID), zap.Error(err))
		return nil, fmt.Errorf("failed to execute code: %w", err)
	}

	return &model.ExecutionResult{
		Stdout:        result.Stdout,
		Stderr:        result.Stderr,
		CompileOutput: result.CompileOutput,
		Message:       result.Message,
		Status:        result.StatusDescription(),
		StatusID:      result.StatusID(),
		Time:          float64(result.Time),
		Memory:        int(result.Memory),
	}, nil
}

// CheckJudge runs a Python hello world through the judge.
func (s *CodeService) CheckJudge(ctx context.Context) (*JudgeCheck, error) {
	result, err := s.judge.Submit(ctx, judge.SubmitRequest{
		SourceCode: `print("Hello from Judge0!")`,
		LanguageID: model.JudgeLangPython,
	})
	if err != nil {
		s.logger.Warn("judge connectivity check failed", zap.Error(err))
		return &JudgeCheck{Success: false, Message: "Judge0 connection failed"}, err
	}
	return &JudgeCheck{
		Success: true,
		Message: "Judge0 connection successful",
		Output:  result.Stdout,
		Status:  result.StatusDescription(),
	}, nil
}
