package repository

import (
	"context"

	"gorm.io/gorm"

	"teacher-eval/backend/internal/model"
)

// IndicatorRepository indicator data access; criteria are loaded in sort order
type IndicatorRepository interface {
	Create(ctx context.Context, indicator *model.Indicator) error
	GetByID(ctx context.Context, id string) (*model.Indicator, error)
	ListByUser(ctx context.Context, cycleID, userID, standardID string) ([]model.Indicator, error)
	ListByCycle(ctx context.Context, cycleID string) ([]model.Indicator, error)
	Update(ctx context.Context, indicator *model.Indicator) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountAll(ctx context.Context) (int64, error)
}

type indicatorRepo struct {
	db *gorm.DB
}

// NewIndicatorRepo creates an IndicatorRepository
func NewIndicatorRepo(db *gorm.DB) IndicatorRepository {
	return &indicatorRepo{db: db}
}

func preloadCriteria(db *gorm.DB) *gorm.DB {
	return db.Order("criteria.sort_order ASC")
}

// Create inserts the indicator together with its criteria
func (r *indicatorRepo) Create(ctx context.Context, indicator *model.Indicator) error {
	return r.db.WithContext(ctx).Create(indicator).Error
}

func (r *indicatorRepo) GetByID(ctx context.Context, id string) (*model.Indicator, error) {
	var indicator model.Indicator
	err := r.db.WithContext(ctx).
		Preload("Criteria", preloadCriteria).
		Where("indicator_id = ?", id).
		First(&indicator).Error
	if err != nil {
		return nil, err
	}
	return &indicator, nil
}

// ListByUser standardID is optional
func (r *indicatorRepo) ListByUser(ctx context.Context, cycleID, userID, standardID string) ([]model.Indicator, error) {
	var indicators []model.Indicator
	db := r.db.WithContext(ctx).
		Preload("Criteria", preloadCriteria).
		Where("cycle_id = ? AND user_id = ?", cycleID, userID)
	if standardID != "" {
		db = db.Where("standard_id = ?", standardID)
	}
	err := db.Order("created_at ASC").Find(&indicators).Error
	return indicators, err
}

func (r *indicatorRepo) ListByCycle(ctx context.Context, cycleID string) ([]model.Indicator, error) {
	var indicators []model.Indicator
	err := r.db.WithContext(ctx).
		Preload("Criteria", preloadCriteria).
		Where("cycle_id = ?", cycleID).
		Order("user_id ASC, created_at ASC").
		Find(&indicators).Error
	return indicators, err
}

// Update saves the indicator's own columns, criteria are untouched
func (r *indicatorRepo) Update(ctx context.Context, indicator *model.Indicator) error {
	return r.db.WithContext(ctx).
		Model(&model.Indicator{}).
		Where("indicator_id = ?", indicator.IndicatorID).
		Updates(map[string]interface{}{
			"standard_id": indicator.StandardID,
			"title":       indicator.Title,
			"description": indicator.Description,
			"updated_by":  indicator.UpdatedBy,
			"updated_at":  gorm.Expr("NOW()"),
		}).Error
}

// Delete soft delete
func (r *indicatorRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Indicator{}).
		Where("indicator_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// CountAll counts rows including soft-deleted ones, which still reference standards
func (r *indicatorRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Indicator{}).Count(&n).Error
	return n, err
}
