package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teacher-eval/backend/internal/model"
)

// CycleRepository academic cycle data access
type CycleRepository interface {
	GetActive(ctx context.Context) (*model.AcademicCycle, error)
	// CreateIfNoActive inserts an active cycle unless one already exists.
	// created is false when another writer got there first.
	CreateIfNoActive(ctx context.Context, cycle *model.AcademicCycle) (created bool, err error)
	Create(ctx context.Context, cycle *model.AcademicCycle) error
	GetByID(ctx context.Context, id string) (*model.AcademicCycle, error)
	List(ctx context.Context) ([]model.AcademicCycle, error)
	Update(ctx context.Context, cycle *model.AcademicCycle) error
	ClearActive(ctx context.Context) error
}

type cycleRepo struct {
	db *gorm.DB
}

// NewCycleRepo creates a CycleRepository
func NewCycleRepo(db *gorm.DB) CycleRepository {
	return &cycleRepo{db: db}
}

func (r *cycleRepo) GetActive(ctx context.Context) (*model.AcademicCycle, error) {
	var cycle model.AcademicCycle
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&cycle).Error
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// CreateIfNoActive relies on the partial unique index uq_academic_cycles_active
func (r *cycleRepo) CreateIfNoActive(ctx context.Context, cycle *model.AcademicCycle) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(cycle)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *cycleRepo) Create(ctx context.Context, cycle *model.AcademicCycle) error {
	return r.db.WithContext(ctx).Create(cycle).Error
}

func (r *cycleRepo) GetByID(ctx context.Context, id string) (*model.AcademicCycle, error) {
	var cycle model.AcademicCycle
	err := r.db.WithContext(ctx).
		Where("cycle_id = ?", id).
		First(&cycle).Error
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

func (r *cycleRepo) List(ctx context.Context) ([]model.AcademicCycle, error) {
	var cycles []model.AcademicCycle
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&cycles).Error
	return cycles, err
}

func (r *cycleRepo) Update(ctx context.Context, cycle *model.AcademicCycle) error {
	return r.db.WithContext(ctx).Save(cycle).Error
}

// ClearActive deactivates every cycle
func (r *cycleRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.AcademicCycle{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}
