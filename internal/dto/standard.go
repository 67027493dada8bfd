package dto

// ── performance standard DTOs ──

// StandardInput one standard in a seed/replace request
type StandardInput struct {
	Title             string   `json:"title"              binding:"required,max=200"`
	Weight            string   `json:"weight"             binding:"required,max=10"` // "10%"
	Icon              string   `json:"icon"               binding:"omitempty,max=50"`
	Description       string   `json:"description"`
	SuggestedEvidence []string `json:"suggested_evidence"`
}

// ReplaceStandardsRequest full replacement of the standards list
type ReplaceStandardsRequest struct {
	Standards []StandardInput `json:"standards" binding:"required,min=1,dive"`
}

// StandardResponse standard view
type StandardResponse struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Weight            string   `json:"weight"`
	WeightValue       float64  `json:"weight_value"`
	Icon              string   `json:"icon"`
	Description       string   `json:"description"`
	SuggestedEvidence []string `json:"suggested_evidence"`
	SortOrder         int      `json:"sort_order"`
}
