package handler

import (
	"github.com/gin-gonic/gin"

	"teacher-eval/backend/internal/service"
	"teacher-eval/backend/pkg/response"
)

// ProgressHandler weighted completion endpoint
type ProgressHandler struct {
	progressSvc service.ProgressService
}

// NewProgressHandler creates a ProgressHandler
func NewProgressHandler(progressSvc service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// GetMyProgress
// GET /api/v1/progress/me
func (h *ProgressHandler) GetMyProgress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	progress, err := h.progressSvc.GetProgress(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, progress)
}
