package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository entry point for every data-access interface
type Repository struct {
	db *gorm.DB

	User       UserRepository
	Cycle      CycleRepository
	Standard   StandardRepository
	Indicator  IndicatorRepository
	Criterion  CriterionRepository
	Witness    WitnessRepository
	Submission SubmissionRepository
}

// NewRepository wires the GORM implementations
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		User:       NewUserRepo(db),
		Cycle:      NewCycleRepo(db),
		Standard:   NewStandardRepo(db),
		Indicator:  NewIndicatorRepo(db),
		Criterion:  NewCriterionRepo(db),
		Witness:    NewWitnessRepo(db),
		Submission: NewSubmissionRepo(db),
	}
}

// Transaction runs fn with a Repository bound to one database transaction.
// A Repository assembled without a database (unit tests) runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
