package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teacher-eval/backend/internal/model"
)

// SubmissionRepository submission data access
type SubmissionRepository interface {
	// CreateIfAbsent inserts the submission unless the user already has one in the cycle.
	// created is false when another request got there first.
	CreateIfAbsent(ctx context.Context, submission *model.Submission) (created bool, err error)
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	GetByCycleAndUser(ctx context.Context, cycleID, userID string) (*model.Submission, error)
	ListByCycle(ctx context.Context, cycleID, status string) ([]model.Submission, error)
	Update(ctx context.Context, submission *model.Submission) error
}

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo creates a SubmissionRepository
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

// CreateIfAbsent relies on the unique constraint uq_submissions_cycle_user
func (r *submissionRepo) CreateIfAbsent(ctx context.Context, submission *model.Submission) (bool, error) {
	result := r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cycle_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(submission)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("submission_id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepo) GetByCycleAndUser(ctx context.Context, cycleID, userID string) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Where("cycle_id = ? AND user_id = ?", cycleID, userID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListByCycle status is optional
func (r *submissionRepo) ListByCycle(ctx context.Context, cycleID, status string) ([]model.Submission, error) {
	var submissions []model.Submission
	db := r.db.WithContext(ctx).
		Preload("User").
		Where("cycle_id = ?", cycleID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("submitted_at ASC").Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepo) Update(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Omit("User").Save(submission).Error
}
