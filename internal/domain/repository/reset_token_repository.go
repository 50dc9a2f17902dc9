package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codearena/internal/common"

	"github.com/redis/go-redis/v9"
)

// ResetTokenRepository keeps single-use password reset tokens.
type ResetTokenRepository interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume returns the user id bound to token and deletes the token.
	Consume(ctx context.Context, token string) (string, error)
}

type redisResetTokenRepository struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisResetTokenRepository(rdb *redis.Client) ResetTokenRepository {
	return &redisResetTokenRepository{rdb: rdb, prefix: "password_reset:"}
}

func (r *redisResetTokenRepository) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, r.prefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redisResetTokenRepository.Save: %w", err)
	}
	return nil
}

func (r *redisResetTokenRepository) Consume(ctx context.Context, token string) (string, error) {
	userID, err := r.rdb.GetDel(ctx, r.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("redisResetTokenRepository.Consume: %w", err)
	}
	return userID, nil
}
