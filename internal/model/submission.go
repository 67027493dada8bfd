package model

import "time"

// Submission statuses
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionReturned = "returned"
)

// Submission a teacher's cycle data handed in for review, one per cycle and user
type Submission struct {
	SubmissionID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	CycleID      string     `gorm:"type:uuid;not null"                             json:"cycle_id"`
	UserID       string     `gorm:"type:uuid;not null"                             json:"user_id"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Note         string     `gorm:"type:text;not null;default:''"                  json:"note"`
	ReviewerID   *string    `gorm:"type:uuid"                                      json:"reviewer_id,omitempty"`
	ReviewNote   string     `gorm:"type:text;not null;default:''"                  json:"review_note"`
	SubmittedAt  time.Time  `gorm:"not null"                                       json:"submitted_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	BaseModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName table name
func (Submission) TableName() string { return "submissions" }
