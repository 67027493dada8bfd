package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/service"
	"teacher-eval/backend/pkg/response"
)

// CycleHandler academic cycle endpoints
type CycleHandler struct {
	cycleSvc service.CycleService
}

// NewCycleHandler creates a CycleHandler
func NewCycleHandler(cycleSvc service.CycleService) *CycleHandler {
	return &CycleHandler{cycleSvc: cycleSvc}
}

// ListCycles
// GET /api/v1/cycles
func (h *CycleHandler) ListCycles(c *gin.Context) {
	cycles, err := h.cycleSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": cycles})
}

// GetCurrentCycle returns the active cycle, creating the default one on first use
// GET /api/v1/cycles/current
func (h *CycleHandler) GetCurrentCycle(c *gin.Context) {
	cycle, err := h.cycleSvc.GetCurrent(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, cycle)
}

// GetCycle
// GET /api/v1/cycles/:id
func (h *CycleHandler) GetCycle(c *gin.Context) {
	cycle, err := h.cycleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, cycle)
}

// CreateCycle
// POST /api/v1/cycles
func (h *CycleHandler) CreateCycle(c *gin.Context) {
	var req dto.CreateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cycle, err := h.cycleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, cycle)
}

// UpdateCycle
// PUT /api/v1/cycles/:id
func (h *CycleHandler) UpdateCycle(c *gin.Context) {
	var req dto.UpdateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cycle, err := h.cycleSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, cycle)
}

// ActivateCycle makes the cycle the only active one
// PUT /api/v1/cycles/:id/activate
func (h *CycleHandler) ActivateCycle(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.cycleSvc.Activate(c.Request.Context(), c.Param("id"), callerID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// LockCycle
// PUT /api/v1/cycles/:id/lock
func (h *CycleHandler) LockCycle(c *gin.Context) {
	var req dto.LockCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cycle, err := h.cycleSvc.SetLocked(c.Request.Context(), c.Param("id"), *req.Locked, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, cycle)
}

// Calendar iCalendar download of the cycle's start and end dates
// GET /api/v1/cycles/:id/calendar.ics
func (h *CycleHandler) Calendar(c *gin.Context) {
	data, filename, err := h.cycleSvc.Calendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
