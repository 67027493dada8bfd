package main

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teacher-eval/backend/config"
	"teacher-eval/backend/internal/repository"
	"teacher-eval/backend/internal/service"
	"teacher-eval/backend/pkg/database"
	applogger "teacher-eval/backend/pkg/logger"
	"teacher-eval/backend/pkg/mail"
)

// app holds the collaborators a command needs. Built once per invocation.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	sqlDB  *sql.DB
	repo   *repository.Repository
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		sqlDB:  sqlDB,
		repo:   repository.NewRepository(db),
	}, nil
}

func (a *app) cycles() service.CycleService {
	return service.NewCycleService(a.repo, &a.cfg.Cycle, a.logger)
}

func (a *app) standards() service.StandardService {
	return service.NewStandardService(a.repo, a.logger)
}

func (a *app) users() service.UserService {
	notifier := service.NewNotifier(
		mail.NewSender(&a.cfg.Mail, a.logger),
		service.ParseFailurePolicy(a.cfg.Mail.FailurePolicy),
		a.cfg.Server.BaseURL,
		a.logger,
	)
	return service.NewUserService(a.repo, notifier, a.logger)
}

func (a *app) close() {
	_ = a.sqlDB.Close()
	_ = a.logger.Sync()
}
