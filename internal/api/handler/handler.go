package handler

import (
	"strings"

	"teacher-eval/backend/config"
	"teacher-eval/backend/internal/service"
)

// Handler aggregate of every HTTP handler
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Cycle      *CycleHandler
	Standard   *StandardHandler
	Indicator  *IndicatorHandler
	Witness    *WitnessHandler
	Submission *SubmissionHandler
	Progress   *ProgressHandler
	Export     *ExportHandler
}

// NewHandler creates the handler aggregate
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	secureCookie := strings.HasPrefix(cfg.Server.BaseURL, "https://")

	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, secureCookie),
		User:       NewUserHandler(svc.User),
		Cycle:      NewCycleHandler(svc.Cycle),
		Standard:   NewStandardHandler(svc.Standard),
		Indicator:  NewIndicatorHandler(svc.Indicator),
		Witness:    NewWitnessHandler(svc.Witness),
		Submission: NewSubmissionHandler(svc.Submission),
		Progress:   NewProgressHandler(svc.Progress),
		Export:     NewExportHandler(svc.Export),
	}
}
