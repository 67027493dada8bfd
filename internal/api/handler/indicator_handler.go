package handler

import (
	"github.com/gin-gonic/gin"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/service"
	"teacher-eval/backend/pkg/response"
)

// IndicatorHandler indicator and criterion endpoints; every call is scoped to the caller
type IndicatorHandler struct {
	indicatorSvc service.IndicatorService
}

// NewIndicatorHandler creates an IndicatorHandler
func NewIndicatorHandler(indicatorSvc service.IndicatorService) *IndicatorHandler {
	return &IndicatorHandler{indicatorSvc: indicatorSvc}
}

// ListIndicators
// GET /api/v1/indicators?standard_id=
func (h *IndicatorHandler) ListIndicators(c *gin.Context) {
	var req dto.IndicatorListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	indicators, err := h.indicatorSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": indicators})
}

// CreateIndicator
// POST /api/v1/indicators
func (h *IndicatorHandler) CreateIndicator(c *gin.Context) {
	var req dto.CreateIndicatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	indicator, err := h.indicatorSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, indicator)
}

// GetIndicator
// GET /api/v1/indicators/:id
func (h *IndicatorHandler) GetIndicator(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	indicator, err := h.indicatorSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, indicator)
}

// UpdateIndicator
// PUT /api/v1/indicators/:id
func (h *IndicatorHandler) UpdateIndicator(c *gin.Context) {
	var req dto.UpdateIndicatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	indicator, err := h.indicatorSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, indicator)
}

// DeleteIndicator
// DELETE /api/v1/indicators/:id
func (h *IndicatorHandler) DeleteIndicator(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.indicatorSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── criteria ──

// AddCriterion
// POST /api/v1/indicators/:id/criteria
func (h *IndicatorHandler) AddCriterion(c *gin.Context) {
	var req dto.AddCriterionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	criterion, err := h.indicatorSvc.AddCriterion(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, criterion)
}

// ToggleCriterion flips the completed flag
// PUT /api/v1/criteria/:id/toggle
func (h *IndicatorHandler) ToggleCriterion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	criterion, err := h.indicatorSvc.ToggleCriterion(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, criterion)
}

// DeleteCriterion
// DELETE /api/v1/criteria/:id
func (h *IndicatorHandler) DeleteCriterion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.indicatorSvc.DeleteCriterion(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
