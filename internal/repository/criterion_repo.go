package repository

import (
	"context"

	"gorm.io/gorm"

	"teacher-eval/backend/internal/model"
)

// CriterionRepository criterion data access
type CriterionRepository interface {
	Create(ctx context.Context, criterion *model.Criterion) error
	GetByID(ctx context.Context, id string) (*model.Criterion, error)
	Update(ctx context.Context, criterion *model.Criterion) error
	Delete(ctx context.Context, id string) error
}

type criterionRepo struct {
	db *gorm.DB
}

// NewCriterionRepo creates a CriterionRepository
func NewCriterionRepo(db *gorm.DB) CriterionRepository {
	return &criterionRepo{db: db}
}

func (r *criterionRepo) Create(ctx context.Context, criterion *model.Criterion) error {
	return r.db.WithContext(ctx).Create(criterion).Error
}

func (r *criterionRepo) GetByID(ctx context.Context, id string) (*model.Criterion, error) {
	var criterion model.Criterion
	err := r.db.WithContext(ctx).
		Where("criterion_id = ?", id).
		First(&criterion).Error
	if err != nil {
		return nil, err
	}
	return &criterion, nil
}

func (r *criterionRepo) Update(ctx context.Context, criterion *model.Criterion) error {
	return r.db.WithContext(ctx).Save(criterion).Error
}

func (r *criterionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("criterion_id = ?", id).
		Delete(&model.Criterion{}).Error
}
