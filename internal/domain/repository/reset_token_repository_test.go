package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"codearena/internal/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newResetTokenRepo(t *testing.T) (*miniredis.Miniredis, ResetTokenRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, NewRedisResetTokenRepository(rdb)
}

func TestResetTokenConsumeIsSingleUse(t *testing.T) {
	_, repo := newResetTokenRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "tok", "user-1", time.Minute); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	userID, err := repo.Consume(ctx, "tok")
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %q", userID)
	}

	if _, err := repo.Consume(ctx, "tok"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected second consume to fail with not found, got %v", err)
	}
}

func TestResetTokenExpires(t *testing.T) {
	mr, repo := newResetTokenRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "tok", "user-1", time.Minute); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if ttl := mr.TTL("password_reset:tok"); ttl != time.Minute {
		t.Fatalf("expected ttl of one minute, got %s", ttl)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := repo.Consume(ctx, "tok"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected expired token to be gone, got %v", err)
	}
}
