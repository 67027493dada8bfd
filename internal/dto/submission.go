package dto

// ── submission DTOs ──

// SubmitRequest hand in the active cycle's data
type SubmitRequest struct {
	Note string `json:"note" binding:"omitempty,max=2000"`
}

// ReviewSubmissionRequest reviewer decision
type ReviewSubmissionRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Note    string `json:"note"    binding:"omitempty,max=2000"`
}

// SubmissionResponse submission view
type SubmissionResponse struct {
	ID          string        `json:"id"`
	CycleID     string        `json:"cycle_id"`
	Status      string        `json:"status"`
	Note        string        `json:"note"`
	ReviewNote  string        `json:"review_note"`
	ReviewerID  string        `json:"reviewer_id,omitempty"`
	SubmittedAt string        `json:"submitted_at"`
	ReviewedAt  string        `json:"reviewed_at,omitempty"`
	User        *UserResponse `json:"user,omitempty"`
}
