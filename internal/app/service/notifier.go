package service

import (
	"context"

	"codearena/internal/domain/model"

	"go.uber.org/zap"
)

// ResetNotifier delivers a password reset link to a user.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, user *model.User, link string) error
}

// LogResetNotifier writes reset links to the log. Used when no mail
// transport is configured.
type LogResetNotifier struct {
	logger *zap.Logger
}

func NewLogResetNotifier(logger *zap.Logger) *LogResetNotifier {
	return &LogResetNotifier{logger: logger}
}

func (n *LogResetNotifier) SendPasswordReset(_ context.Context, user *model.User, link string) error {
	n.logger.Info("password reset requested",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("reset_link", link))
	return nil
}
