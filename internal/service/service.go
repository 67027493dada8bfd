package service

import (
	"go.uber.org/zap"

	"teacher-eval/backend/config"
	"teacher-eval/backend/internal/repository"
	"teacher-eval/backend/pkg/jwt"
	"teacher-eval/backend/pkg/mail"
	"teacher-eval/backend/pkg/storage"
)

// Service aggregate of every service
type Service struct {
	Auth       AuthService
	User       UserService
	Cycle      CycleService
	Standard   StandardService
	Indicator  IndicatorService
	Progress   ProgressService
	Witness    WitnessService
	Submission SubmissionService
	Export     ExportService
	Notifier   *Notifier
}

// Deps external collaborators of the services. Blacklist may be nil.
type Deps struct {
	Repo      *repository.Repository
	JWT       *jwt.Manager
	Blacklist TokenBlacklist
	Store     storage.Store
	Mail      mail.Sender
}

// NewService wires the services
func NewService(cfg *config.Config, deps Deps, logger *zap.Logger) *Service {
	notifier := NewNotifier(deps.Mail, ParseFailurePolicy(cfg.Mail.FailurePolicy), cfg.Server.BaseURL, logger)

	cycles := NewCycleService(deps.Repo, &cfg.Cycle, logger)
	progress := NewProgressService(deps.Repo, cycles, logger)

	return &Service{
		Auth:       NewAuthService(deps.Repo, deps.JWT, deps.Blacklist, logger),
		User:       NewUserService(deps.Repo, notifier, logger),
		Cycle:      cycles,
		Standard:   NewStandardService(deps.Repo, logger),
		Indicator:  NewIndicatorService(deps.Repo, cycles, logger),
		Progress:   progress,
		Witness:    NewWitnessService(deps.Repo, deps.Store, cycles, cfg.Storage.MaxUploadBytes(), logger),
		Submission: NewSubmissionService(deps.Repo, cycles, notifier, logger),
		Export:     NewExportService(deps.Repo, progress, logger),
		Notifier:   notifier,
	}
}
