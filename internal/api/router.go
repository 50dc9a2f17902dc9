package api

import (
	"net/http"
	"time"

	"codearena/internal/api/handler"
	"codearena/internal/api/middleware"
	"codearena/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

// Judge calls block for the whole run, so the request timeout has to outlast
// the judge client timeout.
const requestTimeout = 90 * time.Second

func NewRouter(
	logger *zap.Logger,
	tokens *security.TokenIssuer,
	authService handler.AuthService,
	problemService handler.ProblemService,
	submissionService handler.SubmissionService,
	dashboardService handler.DashboardService,
	leaderboardService handler.LeaderboardService,
	codeService handler.CodeService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(requestTimeout))

	// Looks for "Authorization: Bearer T" and leaves the verified claims in
	// the context; the per-route middleware decides what to do with them.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", handler.NewAuthHandler(authService).RegisterRoutes)
		api.Route("/problems", handler.NewProblemHandler(problemService).RegisterRoutes)
		api.Route("/submissions", handler.NewSubmissionHandler(submissionService).RegisterRoutes)
		api.Route("/dashboard", handler.NewDashboardHandler(dashboardService).RegisterRoutes)
		api.Route("/leaderboard", handler.NewLeaderboardHandler(leaderboardService).RegisterRoutes)

		codeHandler := handler.NewCodeHandler(codeService)
		api.Route("/code", codeHandler.RegisterRoutes)
		api.Route("/test", codeHandler.RegisterCheckRoutes)
	})

	return r
}
