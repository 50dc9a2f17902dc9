package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codearena/internal/api"
	"codearena/internal/app/service"
	"codearena/internal/common/security"
	"codearena/internal/domain/repository"
	"codearena/internal/platform/config"
	"codearena/internal/platform/database"
	"codearena/internal/platform/judge"
	"codearena/internal/platform/logger"
	"codearena/internal/platform/redisdb"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	cfg, envFileLoaded := config.Load()

	// 2. Logger
	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()
	if !envFileLoaded {
		zlog.Info("no .env file found, using process environment")
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// 3. Database
	db, err := database.Connect(startupCtx, cfg.DBConnStr)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.EnsureSchema(startupCtx, db); err != nil {
		zlog.Fatal("failed to apply schema", zap.Error(err))
	}
	zlog.Info("database connected", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	// 4. Redis
	rdb, err := redisdb.Connect(startupCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()
	zlog.Info("redis connected", zap.String("addr", cfg.RedisAddr))

	// 5. Repositories
	userRepo := repository.NewPgUserRepository(db)
	problemRepo := repository.NewPgProblemRepository(db)
	submissionRepo := repository.NewPgSubmissionRepository(db)
	resetTokenRepo := repository.NewRedisResetTokenRepository(rdb)

	// 6. Services
	tokens := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)
	judgeClient := judge.NewClient(cfg.Judge)
	if cfg.Judge.APIKey == "" {
		zlog.Warn("JUDGE0_API_KEY is not set", zap.String("judge_url", cfg.Judge.BaseURL))
	}

	authService := service.NewAuthService(userRepo, resetTokenRepo, tokens,
		service.NewLogResetNotifier(zlog), cfg.FrontendURL, cfg.PasswordResetTTL, zlog)
	problemService := service.NewProblemService(problemRepo, submissionRepo, zlog)
	statsService := service.NewStatsService(userRepo, zlog)
	submissionService := service.NewSubmissionService(submissionRepo, problemRepo, statsService, judgeClient, zlog)
	dashboardService := service.NewDashboardService(userRepo, submissionRepo, cfg.ActivityDays, zlog)
	leaderboardService := service.NewLeaderboardService(userRepo, cfg.LeaderboardLimit)
	codeService := service.NewCodeService(judgeClient, zlog)

	// 7. Router & HTTP Server
	router := api.NewRouter(zlog, tokens,
		authService, problemService, submissionService,
		dashboardService, leaderboardService, codeService)

	server := &http.Server{
		Addr:        ":" + cfg.APIPort,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// Submissions wait for the judge before answering.
		WriteTimeout: cfg.Judge.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("could not listen", zap.String("port", cfg.APIPort), zap.Error(err))
		}
	}()

	<-stop // Wait for interrupt signal

	zlog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
		return
	}
	zlog.Info("server stopped gracefully")
}
