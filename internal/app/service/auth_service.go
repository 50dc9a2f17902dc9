package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codearena/internal/common"
	"codearena/internal/common/security"
	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLength = 6

type AuthService struct {
	userRepo    repository.UserRepository
	resetTokens repository.ResetTokenRepository
	tokens      *security.TokenIssuer
	notifier    ResetNotifier
	frontendURL string
	resetTTL    time.Duration
	logger      *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	resetTokens repository.ResetTokenRepository,
	tokens *security.TokenIssuer,
	notifier ResetNotifier,
	frontendURL string,
	resetTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		resetTokens: resetTokens,
		tokens:      tokens,
		notifier:    notifier,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		resetTTL:    resetTTL,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest accepts either an email or a username in Email; Username is
// used when Email is empty.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

type ResetPasswordResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, common.ErrValidation)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", common.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %w", common.ErrValidation)
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	login := strings.TrimSpace(req.Email)
	if login == "" {
		login = strings.TrimSpace(req.Username)
	}
	if login == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	// Try the email first, then the username
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(login))
	if errors.Is(err, common.ErrNotFound) {
		user, err = s.userRepo.FindByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ForgotPassword issues a single-use reset token and hands the reset link to
// the notifier. Unknown emails succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("email is required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug("password reset for unknown email")
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, err := security.NewResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.resetTokens.Save(ctx, token, user.ID, s.resetTTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := s.frontendURL + "/reset-password/" + token
	if err := s.notifier.SendPasswordReset(ctx, user, link); err != nil {
		return fmt.Errorf("failed to send reset link: %w", err)
	}
	return nil
}

// ResetPassword consumes the token, stores the new password and signs the
// user in.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (*ResetPasswordResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("reset token is required: %w", common.ErrValidation)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	userID, err := s.resetTokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("invalid or expired reset token: %w", common.ErrBadRequest)
		}
		return nil, fmt.Errorf("failed to read reset token: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	jwtToken, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.logger.Info("password reset", zap.String("user_id", user.ID))
	return &ResetPasswordResponse{Token: jwtToken, Message: "Password reset successful"}, nil
}
