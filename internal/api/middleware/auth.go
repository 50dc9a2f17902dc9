package middleware

import (
	"context"
	"errors"
	"net/http"

	"codearena/internal/common"
	"codearena/internal/common/security"
	"codearena/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UserRoleCtxKey contextKey = "userRole"
)

// identityFromRequest reads the verified token that jwtauth.Verifier left in
// the request context.
func identityFromRequest(r *http.Request) (userID, role string, err error) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", err
	}
	if token == nil {
		return "", "", jwtauth.ErrNoTokenFound
	}
	userID, err = security.GetUserIDFromClaims(claims)
	if err != nil {
		return "", "", err
	}
	role, err = security.GetUserRoleFromClaims(claims)
	if err != nil {
		return "", "", err
	}
	return userID, role, nil
}

func withIdentity(r *http.Request, userID, role string) *http.Request {
	ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
	ctx = context.WithValue(ctx, UserRoleCtxKey, role)
	return r.WithContext(ctx)
}

// Authenticator rejects requests without a valid bearer token.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := identityFromRequest(r)
		if err != nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required", err)
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token", err)
			}
			return
		}
		next.ServeHTTP(w, withIdentity(r, userID, role))
	})
}

// OptionalUser attaches the caller's identity when a valid token is present
// and lets anonymous requests through.
func OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := identityFromRequest(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, withIdentity(r, userID, role))
	})
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required", common.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}
