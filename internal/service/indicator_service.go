package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/internal/repository"
)

// ── indicator errors ──

var (
	ErrIndicatorNotFound  = errors.New("المؤشر غير موجود")
	ErrIndicatorForbidden = errors.New("لا تملك صلاحية على هذا المؤشر")
	ErrCriterionNotFound  = errors.New("المعيار الفرعي غير موجود")
)

// IndicatorService a teacher's indicators and their criteria in the active cycle
type IndicatorService interface {
	Create(ctx context.Context, userID string, req *dto.CreateIndicatorRequest) (*dto.IndicatorResponse, error)
	Get(ctx context.Context, userID, id string) (*dto.IndicatorResponse, error)
	List(ctx context.Context, userID string, req *dto.IndicatorListRequest) ([]dto.IndicatorResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateIndicatorRequest) (*dto.IndicatorResponse, error)
	Delete(ctx context.Context, userID, id string) error
	AddCriterion(ctx context.Context, userID, indicatorID string, req *dto.AddCriterionRequest) (*dto.CriterionResponse, error)
	ToggleCriterion(ctx context.Context, userID, criterionID string) (*dto.CriterionResponse, error)
	DeleteCriterion(ctx context.Context, userID, criterionID string) error
}

type indicatorService struct {
	repo   *repository.Repository
	cycles CycleService
	logger *zap.Logger
}

// NewIndicatorService creates an IndicatorService
func NewIndicatorService(repo *repository.Repository, cycles CycleService, logger *zap.Logger) IndicatorService {
	return &indicatorService{repo: repo, cycles: cycles, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *indicatorService) Create(ctx context.Context, userID string, req *dto.CreateIndicatorRequest) (*dto.IndicatorResponse, error) {
	cycle, err := s.cycles.GetActiveCycle(ctx)
	if err != nil {
		return nil, err
	}
	if cycle.IsLocked {
		return nil, ErrCycleLocked
	}

	if _, err := getStandard(ctx, s.repo, req.StandardID); err != nil {
		return nil, err
	}

	indicator := &model.Indicator{
		CycleID:     cycle.CycleID,
		UserID:      userID,
		StandardID:  req.StandardID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	indicator.CreatedBy = &userID
	indicator.UpdatedBy = &userID

	for i, title := range req.Criteria {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		indicator.Criteria = append(indicator.Criteria, model.Criterion{
			Title:     title,
			SortOrder: i + 1,
		})
	}

	if err := s.repo.Indicator.Create(ctx, indicator); err != nil {
		s.logger.Error("failed to create indicator", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toIndicatorResponse(indicator, 0), nil
}

// ────────────────────── Get / List ──────────────────────

func (s *indicatorService) Get(ctx context.Context, userID, id string) (*dto.IndicatorResponse, error) {
	indicator, err := s.ownedIndicator(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.Witness.CountByIndicators(ctx, []string{indicator.IndicatorID})
	if err != nil {
		s.logger.Error("failed to count witnesses", zap.String("indicator_id", id), zap.Error(err))
		return nil, err
	}

	return toIndicatorResponse(indicator, counts[indicator.IndicatorID]), nil
}

func (s *indicatorService) List(ctx context.Context, userID string, req *dto.IndicatorListRequest) ([]dto.IndicatorResponse, error) {
	cycle, err := s.cycles.GetActiveCycle(ctx)
	if err != nil {
		return nil, err
	}

	indicators, err := s.repo.Indicator.ListByUser(ctx, cycle.CycleID, userID, req.StandardID)
	if err != nil {
		s.logger.Error("failed to list indicators", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		ids = append(ids, ind.IndicatorID)
	}
	counts, err := s.repo.Witness.CountByIndicators(ctx, ids)
	if err != nil {
		s.logger.Error("failed to count witnesses", zap.Error(err))
		return nil, err
	}

	result := make([]dto.IndicatorResponse, 0, len(indicators))
	for i := range indicators {
		result = append(result, *toIndicatorResponse(&indicators[i], counts[indicators[i].IndicatorID]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *indicatorService) Update(ctx context.Context, userID, id string, req *dto.UpdateIndicatorRequest) (*dto.IndicatorResponse, error) {
	indicator, err := s.writableIndicator(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		indicator.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		indicator.Description = *req.Description
	}
	if req.StandardID != nil && *req.StandardID != indicator.StandardID {
		if _, err := getStandard(ctx, s.repo, *req.StandardID); err != nil {
			return nil, err
		}
		indicator.StandardID = *req.StandardID
	}
	indicator.UpdatedBy = &userID
	indicator.UpdatedAt = time.Now()

	if err := s.repo.Indicator.Update(ctx, indicator); err != nil {
		s.logger.Error("failed to update indicator", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

// ────────────────────── Delete ──────────────────────

func (s *indicatorService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.writableIndicator(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Indicator.Delete(ctx, id, userID); err != nil {
		s.logger.Error("failed to delete indicator", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Criteria ──────────────────────

func (s *indicatorService) AddCriterion(ctx context.Context, userID, indicatorID string, req *dto.AddCriterionRequest) (*dto.CriterionResponse, error) {
	indicator, err := s.writableIndicator(ctx, userID, indicatorID)
	if err != nil {
		return nil, err
	}

	next := 1
	for _, c := range indicator.Criteria {
		if c.SortOrder >= next {
			next = c.SortOrder + 1
		}
	}

	criterion := &model.Criterion{
		IndicatorID: indicatorID,
		Title:       strings.TrimSpace(req.Title),
		SortOrder:   next,
	}
	criterion.CreatedBy = &userID
	criterion.UpdatedBy = &userID

	if err := s.repo.Criterion.Create(ctx, criterion); err != nil {
		s.logger.Error("failed to add criterion", zap.String("indicator_id", indicatorID), zap.Error(err))
		return nil, err
	}

	return toCriterionResponse(criterion), nil
}

func (s *indicatorService) ToggleCriterion(ctx context.Context, userID, criterionID string) (*dto.CriterionResponse, error) {
	criterion, err := s.getCriterion(ctx, criterionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.writableIndicator(ctx, userID, criterion.IndicatorID); err != nil {
		return nil, err
	}

	criterion.IsCompleted = !criterion.IsCompleted
	criterion.UpdatedBy = &userID

	if err := s.repo.Criterion.Update(ctx, criterion); err != nil {
		s.logger.Error("failed to toggle criterion", zap.String("id", criterionID), zap.Error(err))
		return nil, err
	}

	return toCriterionResponse(criterion), nil
}

func (s *indicatorService) DeleteCriterion(ctx context.Context, userID, criterionID string) error {
	criterion, err := s.getCriterion(ctx, criterionID)
	if err != nil {
		return err
	}
	if _, err := s.writableIndicator(ctx, userID, criterion.IndicatorID); err != nil {
		return err
	}

	if err := s.repo.Criterion.Delete(ctx, criterionID); err != nil {
		s.logger.Error("failed to delete criterion", zap.String("id", criterionID), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

// ownedIndicator loads the indicator and checks it belongs to userID
func (s *indicatorService) ownedIndicator(ctx context.Context, userID, id string) (*model.Indicator, error) {
	indicator, err := s.repo.Indicator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIndicatorNotFound
		}
		s.logger.Error("failed to query indicator", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if indicator.UserID != userID {
		return nil, ErrIndicatorForbidden
	}
	return indicator, nil
}

// writableIndicator ownedIndicator plus the cycle lock check
func (s *indicatorService) writableIndicator(ctx context.Context, userID, id string) (*model.Indicator, error) {
	indicator, err := s.ownedIndicator(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.cycles.EnsureWritable(ctx, indicator.CycleID); err != nil {
		return nil, err
	}
	return indicator, nil
}

func (s *indicatorService) getCriterion(ctx context.Context, id string) (*model.Criterion, error) {
	criterion, err := s.repo.Criterion.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCriterionNotFound
		}
		s.logger.Error("failed to query criterion", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return criterion, nil
}

func toIndicatorResponse(ind *model.Indicator, witnessCount int) *dto.IndicatorResponse {
	criteria := make([]dto.CriterionResponse, 0, len(ind.Criteria))
	for i := range ind.Criteria {
		criteria = append(criteria, *toCriterionResponse(&ind.Criteria[i]))
	}
	return &dto.IndicatorResponse{
		ID:           ind.IndicatorID,
		CycleID:      ind.CycleID,
		StandardID:   ind.StandardID,
		Title:        ind.Title,
		Description:  ind.Description,
		Criteria:     criteria,
		Completion:   roundPercent(ind.Completion() * 100),
		WitnessCount: witnessCount,
		CreatedAt:    ind.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    ind.UpdatedAt.Format(time.RFC3339),
	}
}

func toCriterionResponse(c *model.Criterion) *dto.CriterionResponse {
	return &dto.CriterionResponse{
		ID:          c.CriterionID,
		Title:       c.Title,
		IsCompleted: c.IsCompleted,
		SortOrder:   c.SortOrder,
	}
}
