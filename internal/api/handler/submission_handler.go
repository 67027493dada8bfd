package handler

import (
	"github.com/gin-gonic/gin"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/service"
	"teacher-eval/backend/pkg/response"
)

// SubmissionHandler submission and review endpoints
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler creates a SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Submit hands in the caller's data for the active cycle
// POST /api/v1/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.submissionSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// GetMySubmission
// GET /api/v1/submissions/me
func (h *SubmissionHandler) GetMySubmission(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.submissionSvc.GetMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListPending submissions awaiting review in the active cycle
// GET /api/v1/submissions/pending
func (h *SubmissionHandler) ListPending(c *gin.Context) {
	list, err := h.submissionSvc.ListPending(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Review approves or returns a submission
// PUT /api/v1/submissions/:id/review
func (h *SubmissionHandler) Review(c *gin.Context) {
	var req dto.ReviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.submissionSvc.Review(c.Request.Context(), reviewerID, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}
