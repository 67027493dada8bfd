package dto

// ── witness DTOs ──

// UploadWitnessRequest multipart form fields accompanying the file
type UploadWitnessRequest struct {
	Title       string `form:"title"       binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty,max=2000"`
}

// WitnessResponse witness metadata
type WitnessResponse struct {
	ID          string `json:"id"`
	IndicatorID string `json:"indicator_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	CreatedAt   string `json:"created_at"`
}
