package handler

import (
	"github.com/gin-gonic/gin"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/service"
	"teacher-eval/backend/pkg/response"
)

// StandardHandler performance standard endpoints
type StandardHandler struct {
	standardSvc service.StandardService
}

// NewStandardHandler creates a StandardHandler
func NewStandardHandler(standardSvc service.StandardService) *StandardHandler {
	return &StandardHandler{standardSvc: standardSvc}
}

// ListStandards standards in display order plus the weight summary
// GET /api/v1/standards
func (h *StandardHandler) ListStandards(c *gin.Context) {
	ctx := c.Request.Context()

	standards, err := h.standardSvc.List(ctx)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	summary, err := h.standardSvc.Summary(ctx)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": standards, "summary": summary})
}

// ReplaceStandards seeds the table with the posted list
// PUT /api/v1/standards
func (h *StandardHandler) ReplaceStandards(c *gin.Context) {
	var req dto.ReplaceStandardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	standards, err := h.standardSvc.Seed(c.Request.Context(), req.Standards)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": standards})
}

// ResetStandards reseeds the built-in default list
// POST /api/v1/standards/defaults
func (h *StandardHandler) ResetStandards(c *gin.Context) {
	standards, err := h.standardSvc.Seed(c.Request.Context(), service.DefaultStandards())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": standards})
}
