package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"teacher-eval/backend/config"
	"teacher-eval/backend/internal/api/handler"
	"teacher-eval/backend/internal/api/router"
	"teacher-eval/backend/internal/repository"
	"teacher-eval/backend/internal/service"
	"teacher-eval/backend/pkg/database"
	"teacher-eval/backend/pkg/jwt"
	applogger "teacher-eval/backend/pkg/logger"
	"teacher-eval/backend/pkg/mail"
	"teacher-eval/backend/pkg/redis"
	"teacher-eval/backend/pkg/storage"
)

func main() {
	// 1. config
	cfg, err := config.Load(os.Getenv("EVAL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting teacher-eval server",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	// 3. database + migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. redis (optional: without it tokens cannot be revoked and login is not rate limited)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist and rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. witness storage
	ctx := context.Background()
	store, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		logger.Fatal("witness storage init failed", zap.Error(err))
	}

	// 6. repositories → services → handlers
	jwtMgr := jwt.NewManager(&cfg.Auth)
	deps := service.Deps{
		Repo:  repository.NewRepository(db),
		JWT:   jwtMgr,
		Store: store,
		Mail:  mail.NewSender(&cfg.Mail, logger),
	}
	if rdb != nil {
		deps.Blacklist = rdb
	}
	svc := service.NewService(cfg, deps, logger)

	// make sure an active cycle exists before the first request
	if cycle, err := svc.Cycle.GetActiveCycle(ctx); err != nil {
		logger.Warn("could not resolve the active cycle", zap.Error(err))
	} else {
		logger.Info("active cycle", zap.String("cycle_id", cycle.CycleID), zap.String("name", cycle.Name))
	}

	h := handler.NewHandler(cfg, svc)
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("failed to close database", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}
