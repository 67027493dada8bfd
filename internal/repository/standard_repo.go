package repository

import (
	"context"

	"gorm.io/gorm"

	"teacher-eval/backend/internal/model"
)

// StandardRepository performance standard data access
type StandardRepository interface {
	List(ctx context.Context) ([]model.PerformanceStandard, error)
	GetByID(ctx context.Context, id string) (*model.PerformanceStandard, error)
	DeleteAll(ctx context.Context) error
	CreateBatch(ctx context.Context, standards []model.PerformanceStandard) error
}

type standardRepo struct {
	db *gorm.DB
}

// NewStandardRepo creates a StandardRepository
func NewStandardRepo(db *gorm.DB) StandardRepository {
	return &standardRepo{db: db}
}

func (r *standardRepo) List(ctx context.Context) ([]model.PerformanceStandard, error) {
	var standards []model.PerformanceStandard
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&standards).Error
	return standards, err
}

func (r *standardRepo) GetByID(ctx context.Context, id string) (*model.PerformanceStandard, error) {
	var standard model.PerformanceStandard
	err := r.db.WithContext(ctx).
		Where("standard_id = ?", id).
		First(&standard).Error
	if err != nil {
		return nil, err
	}
	return &standard, nil
}

func (r *standardRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.PerformanceStandard{}).Error
}

func (r *standardRepo) CreateBatch(ctx context.Context, standards []model.PerformanceStandard) error {
	if len(standards) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&standards).Error
}
