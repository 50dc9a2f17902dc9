package security

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	tokenString, err := issuer.GenerateToken("user-1", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	token, err := jwtauth.VerifyToken(issuer.JWTAuth(), tokenString)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		t.Fatalf("claims: %v", err)
	}

	id, err := GetUserIDFromClaims(claims)
	if err != nil || id != "user-1" {
		t.Fatalf("unexpected user id %q: %v", id, err)
	}
	role, err := GetUserRoleFromClaims(claims)
	if err != nil || role != "admin" {
		t.Fatalf("unexpected role %q: %v", role, err)
	}
}

func TestClaimsHelpersRejectMissingValues(t *testing.T) {
	if _, err := GetUserIDFromClaims(map[string]interface{}{"user_id": 42}); err == nil {
		t.Fatalf("expected error for non-string user id")
	}
	if _, err := GetUserRoleFromClaims(map[string]interface{}{}); err == nil {
		t.Fatalf("expected error for missing role")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("hunter22", hash) {
		t.Fatalf("expected password to match")
	}
	if CheckPasswordHash("hunter23", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestNewResetTokenIsRandom(t *testing.T) {
	a, err := NewResetToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	b, _ := NewResetToken()
	if len(a) != 64 || a == b {
		t.Fatalf("unexpected tokens %q %q", a, b)
	}
}
