package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/internal/repository"
)

// ProgressService weighted completion of a teacher's indicators
type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*dto.ProgressResponse, error)
}

type progressService struct {
	repo   *repository.Repository
	cycles CycleService
	logger *zap.Logger
}

// NewProgressService creates a ProgressService
func NewProgressService(repo *repository.Repository, cycles CycleService, logger *zap.Logger) ProgressService {
	return &progressService{repo: repo, cycles: cycles, logger: logger}
}

func (s *progressService) GetProgress(ctx context.Context, userID string) (*dto.ProgressResponse, error) {
	cycle, err := s.cycles.GetActiveCycle(ctx)
	if err != nil {
		return nil, err
	}

	standards, err := s.repo.Standard.List(ctx)
	if err != nil {
		s.logger.Error("failed to list standards", zap.Error(err))
		return nil, err
	}

	indicators, err := s.repo.Indicator.ListByUser(ctx, cycle.CycleID, userID, "")
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

	progress := buildProgress(cycle, userID, standards, indicators, counts)

	submission, err := s.repo.Submission.GetByCycleAndUser(ctx, cycle.CycleID, userID)
	switch {
	case err == nil:
		progress.SubmissionStatus = submission.Status
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("failed to query submission", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return progress, nil
}

// buildProgress per standard completion is the mean completion of its indicators;
// the overall value is Σ(weight × completion) / 100. Standards without indicators count as 0.
func buildProgress(
	cycle *model.AcademicCycle,
	userID string,
	standards []model.PerformanceStandard,
	indicators []model.Indicator,
	witnessCounts map[string]int,
) *dto.ProgressResponse {
	byStandard := make(map[string][]*model.Indicator, len(standards))
	for i := range indicators {
		ind := &indicators[i]
		byStandard[ind.StandardID] = append(byStandard[ind.StandardID], ind)
	}

	resp := &dto.ProgressResponse{
		CycleID:   cycle.CycleID,
		CycleName: cycle.Name,
		UserID:    userID,
		Standards: make([]dto.StandardProgress, 0, len(standards)),
	}

	var overall float64
	for _, st := range standards {
		weight, err := ParseWeight(st.Weight)
		if err != nil {
			weight = 0
		}

		items := byStandard[st.StandardID]
		var completion float64
		witnesses := 0
		if len(items) > 0 {
			var sum float64
			for _, ind := range items {
				sum += ind.Completion()
				witnesses += witnessCounts[ind.IndicatorID]
			}
			completion = sum / float64(len(items)) * 100
		}

		weighted := weight * completion / 100
		overall += weighted

		resp.Standards = append(resp.Standards, dto.StandardProgress{
			StandardID:     st.StandardID,
			Title:          st.Title,
			Weight:         weight,
			IndicatorCount: len(items),
			WitnessCount:   witnesses,
			Completion:     roundPercent(completion),
			WeightedScore:  roundPercent(weighted),
		})
	}

	resp.OverallCompletion = roundPercent(overall)
	return resp
}

// roundPercent two decimals
func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}
