package handler

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/service"
	"teacher-eval/backend/pkg/response"
)

// WitnessHandler evidence file endpoints
type WitnessHandler struct {
	witnessSvc service.WitnessService
}

// NewWitnessHandler creates a WitnessHandler
func NewWitnessHandler(witnessSvc service.WitnessService) *WitnessHandler {
	return &WitnessHandler{witnessSvc: witnessSvc}
}

// UploadWitness multipart upload: field "file" plus title / description
// POST /api/v1/indicators/:id/witnesses
func (h *WitnessHandler) UploadWitness(c *gin.Context) {
	var req dto.UploadWitnessRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		handleServiceError(c, service.ErrWitnessEmpty)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer file.Close()

	witness, err := h.witnessSvc.Upload(c.Request.Context(), userID, c.Param("id"), &req, service.WitnessFile{
		Name:   fileHeader.Filename,
		Size:   fileHeader.Size,
		Reader: file,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, witness)
}

// ListWitnesses
// GET /api/v1/indicators/:id/witnesses
func (h *WitnessHandler) ListWitnesses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	witnesses, err := h.witnessSvc.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": witnesses})
}

// DownloadWitness streams the stored file
// GET /api/v1/witnesses/:id/download
func (h *WitnessHandler) DownloadWitness(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	dl, err := h.witnessSvc.Open(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer dl.Body.Close()

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(dl.FileName))
	c.Header("Content-Type", dl.ContentType)
	if dl.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(dl.Size, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, dl.Body); err != nil {
		_ = c.Error(err)
	}
}

// DeleteWitness
// DELETE /api/v1/witnesses/:id
func (h *WitnessHandler) DeleteWitness(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.witnessSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
