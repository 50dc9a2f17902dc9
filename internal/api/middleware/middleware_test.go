package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codearena/internal/common/security"
	"codearena/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newProtectedRouter(issuer *security.TokenIssuer, mw ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(issuer.JWTAuth()))
	r.With(mw...).Get("/", func(w http.ResponseWriter, r *http.Request) {
		userID, _ := GetUserIDFromContext(r.Context())
		w.Write([]byte(userID))
	})
	return r
}

func doGet(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("secret"), time.Hour)
	h := newProtectedRouter(issuer, Authenticator)

	if rec := doGet(h, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := doGet(h, "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}

	token, err := issuer.GenerateToken("u1", model.RoleUser)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	rec := doGet(h, token)
	if rec.Code != http.StatusOK || rec.Body.String() != "u1" {
		t.Fatalf("expected authenticated request, got %d %q", rec.Code, rec.Body.String())
	}

	other := security.NewTokenIssuer([]byte("other"), time.Hour)
	forged, _ := other.GenerateToken("u1", model.RoleAdmin)
	if rec := doGet(h, forged); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed with another key, got %d", rec.Code)
	}
}

func TestOptionalUser(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("secret"), time.Hour)
	h := newProtectedRouter(issuer, OptionalUser)

	if rec := doGet(h, ""); rec.Code != http.StatusOK || rec.Body.String() != "" {
		t.Fatalf("expected anonymous pass-through, got %d %q", rec.Code, rec.Body.String())
	}
	token, _ := issuer.GenerateToken("u9", model.RoleUser)
	if rec := doGet(h, token); rec.Body.String() != "u9" {
		t.Fatalf("expected identity to be attached, got %q", rec.Body.String())
	}
}

func TestAdminOnly(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("secret"), time.Hour)
	h := newProtectedRouter(issuer, Authenticator, AdminOnly)

	user, _ := issuer.GenerateToken("u1", model.RoleUser)
	if rec := doGet(h, user); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
	admin, _ := issuer.GenerateToken("a1", model.RoleAdmin)
	if rec := doGet(h, admin); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hi"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["path"] != "/health" || fields["bytes"] != int64(2) {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
