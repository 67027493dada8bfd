package dto

// ── progress DTOs ──

// StandardProgress completion under one standard
type StandardProgress struct {
	StandardID     string  `json:"standard_id"`
	Title          string  `json:"title"`
	Weight         float64 `json:"weight"`
	IndicatorCount int     `json:"indicator_count"`
	WitnessCount   int     `json:"witness_count"`
	Completion     float64 `json:"completion"`     // percent
	WeightedScore  float64 `json:"weighted_score"` // contribution to the overall percent
}

// ProgressResponse weighted completion of a teacher in a cycle
type ProgressResponse struct {
	CycleID           string             `json:"cycle_id"`
	CycleName         string             `json:"cycle_name"`
	UserID            string             `json:"user_id"`
	Standards         []StandardProgress `json:"standards"`
	OverallCompletion float64            `json:"overall_completion"` // percent
	SubmissionStatus  string             `json:"submission_status,omitempty"`
}
