package dto

// ── indicator DTOs ──

// CreateIndicatorRequest new indicator in the active cycle
type CreateIndicatorRequest struct {
	StandardID  string   `json:"standard_id" binding:"required"`
	Title       string   `json:"title"       binding:"required,min=2,max=200"`
	Description string   `json:"description" binding:"omitempty,max=4000"`
	Criteria    []string `json:"criteria"    binding:"omitempty,max=50,dive,min=1,max=200"`
}

// UpdateIndicatorRequest partial update
type UpdateIndicatorRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty,max=4000"`
	StandardID  *string `json:"standard_id"`
}

// IndicatorListRequest list filter
type IndicatorListRequest struct {
	StandardID string `form:"standard_id"`
}

// AddCriterionRequest new criterion
type AddCriterionRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
}

// CriterionResponse criterion view
type CriterionResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
	SortOrder   int    `json:"sort_order"`
}

// IndicatorResponse indicator view
type IndicatorResponse struct {
	ID           string              `json:"id"`
	CycleID      string              `json:"cycle_id"`
	StandardID   string              `json:"standard_id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Criteria     []CriterionResponse `json:"criteria"`
	Completion   float64             `json:"completion"` // percent
	WitnessCount int                 `json:"witness_count"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}
