package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/internal/repository"
)

// ── performance standard errors ──

var (
	ErrStandardNotFound = errors.New("معيار الأداء غير موجود")
	ErrStandardsEmpty   = errors.New("قائمة معايير الأداء فارغة")
	ErrStandardsInUse   = errors.New("لا يمكن استبدال معايير الأداء لوجود مؤشرات مرتبطة بها")
)

// StandardSummary weight breakdown of the configured standards
type StandardSummary struct {
	Count       int     `json:"count"`
	TotalWeight float64 `json:"total_weight"`
	Valid       bool    `json:"valid"`
}

// StandardService performance standard operations
type StandardService interface {
	List(ctx context.Context) ([]dto.StandardResponse, error)
	// Seed replaces every standard with the given list (delete all, then insert all)
	Seed(ctx context.Context, standards []dto.StandardInput) ([]dto.StandardResponse, error)
	Summary(ctx context.Context) (*StandardSummary, error)
}

type standardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStandardService creates a StandardService
func NewStandardService(repo *repository.Repository, logger *zap.Logger) StandardService {
	return &standardService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *standardService) List(ctx context.Context) ([]dto.StandardResponse, error) {
	standards, err := s.repo.Standard.List(ctx)
	if err != nil {
		s.logger.Error("failed to list standards", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StandardResponse, 0, len(standards))
	for i := range standards {
		result = append(result, *toStandardResponse(&standards[i]))
	}
	return result, nil
}

// ────────────────────── Seed ──────────────────────

func (s *standardService) Seed(ctx context.Context, inputs []dto.StandardInput) ([]dto.StandardResponse, error) {
	if len(inputs) == 0 {
		return nil, ErrStandardsEmpty
	}

	weights := make([]string, 0, len(inputs))
	for _, in := range inputs {
		weights = append(weights, in.Weight)
	}
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}

	// indicators reference standards without cascade
	inUse, err := s.repo.Indicator.CountAll(ctx)
	if err != nil {
		s.logger.Error("failed to count indicators", zap.Error(err))
		return nil, err
	}
	if inUse > 0 {
		return nil, ErrStandardsInUse
	}

	standards := make([]model.PerformanceStandard, 0, len(inputs))
	for i, in := range inputs {
		evidence := in.SuggestedEvidence
		if evidence == nil {
			evidence = []string{}
		}
		standards = append(standards, model.PerformanceStandard{
			Title:             strings.TrimSpace(in.Title),
			Weight:            strings.TrimSpace(in.Weight),
			Icon:              in.Icon,
			Description:       in.Description,
			SuggestedEvidence: datatypes.JSONSlice[string](evidence),
			SortOrder:         i + 1,
		})
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Standard.DeleteAll(ctx); err != nil {
			return err
		}
		return tx.Standard.CreateBatch(ctx, standards)
	})
	if err != nil {
		s.logger.Error("failed to seed standards", zap.Error(err))
		return nil, err
	}

	s.logger.Info("performance standards replaced", zap.Int("count", len(standards)))

	result := make([]dto.StandardResponse, 0, len(standards))
	for i := range standards {
		result = append(result, *toStandardResponse(&standards[i]))
	}
	return result, nil
}

// ────────────────────── Summary ──────────────────────

func (s *standardService) Summary(ctx context.Context) (*StandardSummary, error) {
	standards, err := s.repo.Standard.List(ctx)
	if err != nil {
		s.logger.Error("failed to list standards", zap.Error(err))
		return nil, err
	}

	weights := make([]string, 0, len(standards))
	for _, st := range standards {
		weights = append(weights, st.Weight)
	}
	total, err := SumWeights(weights)
	if err != nil {
		return nil, err
	}

	return &StandardSummary{
		Count:       len(standards),
		TotalWeight: total,
		Valid:       ValidateWeights(weights) == nil,
	}, nil
}

// ── helpers ──

// getStandard shared by the indicator service
func getStandard(ctx context.Context, repo *repository.Repository, id string) (*model.PerformanceStandard, error) {
	standard, err := repo.Standard.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStandardNotFound
		}
		return nil, err
	}
	return standard, nil
}

func toStandardResponse(st *model.PerformanceStandard) *dto.StandardResponse {
	weight, _ := ParseWeight(st.Weight)
	evidence := []string(st.SuggestedEvidence)
	if evidence == nil {
		evidence = []string{}
	}
	return &dto.StandardResponse{
		ID:                st.StandardID,
		Title:             st.Title,
		Weight:            st.Weight,
		WeightValue:       weight,
		Icon:              st.Icon,
		Description:       st.Description,
		SuggestedEvidence: evidence,
		SortOrder:         st.SortOrder,
	}
}
