package repository

import (
	"context"

	"gorm.io/gorm"

	"teacher-eval/backend/internal/model"
)

// WitnessRepository witness metadata access
type WitnessRepository interface {
	Create(ctx context.Context, witness *model.Witness) error
	GetByID(ctx context.Context, id string) (*model.Witness, error)
	ListByIndicator(ctx context.Context, indicatorID string) ([]model.Witness, error)
	CountByIndicators(ctx context.Context, indicatorIDs []string) (map[string]int, error)
	Delete(ctx context.Context, id string) error
}

type witnessRepo struct {
	db *gorm.DB
}

// NewWitnessRepo creates a WitnessRepository
func NewWitnessRepo(db *gorm.DB) WitnessRepository {
	return &witnessRepo{db: db}
}

func (r *witnessRepo) Create(ctx context.Context, witness *model.Witness) error {
	return r.db.WithContext(ctx).Create(witness).Error
}

func (r *witnessRepo) GetByID(ctx context.Context, id string) (*model.Witness, error) {
	var witness model.Witness
	err := r.db.WithContext(ctx).
		Where("witness_id = ?", id).
		First(&witness).Error
	if err != nil {
		return nil, err
	}
	return &witness, nil
}

func (r *witnessRepo) ListByIndicator(ctx context.Context, indicatorID string) ([]model.Witness, error) {
	var witnesses []model.Witness
	err := r.db.WithContext(ctx).
		Where("indicator_id = ?", indicatorID).
		Order("created_at ASC").
		Find(&witnesses).Error
	return witnesses, err
}

func (r *witnessRepo) CountByIndicators(ctx context.Context, indicatorIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(indicatorIDs))
	if len(indicatorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		IndicatorID string
		N           int
	}
	err := r.db.WithContext(ctx).
		Model(&model.Witness{}).
		Select("indicator_id, COUNT(*) AS n").
		Where("indicator_id IN ?", indicatorIDs).
		Group("indicator_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.IndicatorID] = row.N
	}
	return counts, nil
}

func (r *witnessRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("witness_id = ?", id).
		Delete(&model.Witness{}).Error
}
