package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teacher-eval/backend/config"
	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/internal/repository"
)

// ── academic cycle errors ──

var (
	ErrCycleNotFound    = errors.New("الدورة الأكاديمية غير موجودة")
	ErrCycleDateInvalid = errors.New("يجب أن يكون تاريخ نهاية الدورة بعد تاريخ بدايتها")
	ErrCycleLocked      = errors.New("الدورة الأكاديمية مقفلة ولا تقبل التعديل")
)

const dateLayout = "2006-01-02"

// CycleService academic cycle operations
type CycleService interface {
	// GetActiveCycle returns the active cycle, creating the default one when none exists
	GetActiveCycle(ctx context.Context) (*model.AcademicCycle, error)
	GetCurrent(ctx context.Context) (*dto.CycleResponse, error)
	List(ctx context.Context) ([]dto.CycleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CycleResponse, error)
	Create(ctx context.Context, req *dto.CreateCycleRequest, callerID string) (*dto.CycleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCycleRequest, callerID string) (*dto.CycleResponse, error)
	Activate(ctx context.Context, id string, callerID string) error
	SetLocked(ctx context.Context, id string, locked bool, callerID string) (*dto.CycleResponse, error)
	// EnsureWritable ErrCycleLocked when the cycle no longer accepts changes
	EnsureWritable(ctx context.Context, cycleID string) error
	// Calendar renders the cycle as an iCalendar document
	Calendar(ctx context.Context, id string) ([]byte, string, error)
}

type cycleService struct {
	repo        *repository.Repository
	defaultName string
	now         func() time.Time
	logger      *zap.Logger
}

// NewCycleService creates a CycleService
func NewCycleService(repo *repository.Repository, cfg *config.CycleConfig, logger *zap.Logger) CycleService {
	return newCycleService(repo, cfg.DefaultName, time.Now, logger)
}

func newCycleService(repo *repository.Repository, defaultName string, now func() time.Time, logger *zap.Logger) *cycleService {
	if defaultName == "" {
		defaultName = config.DefaultCycleName
	}
	return &cycleService{
		repo:        repo,
		defaultName: defaultName,
		now:         now,
		logger:      logger,
	}
}

// ────────────────────── GetActiveCycle ──────────────────────

func (s *cycleService) GetActiveCycle(ctx context.Context) (*model.AcademicCycle, error) {
	cycle, err := s.repo.Cycle.GetActive(ctx)
	if err == nil {
		return cycle, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to query active cycle", zap.Error(err))
		return nil, err
	}

	now := s.now()
	cycle = &model.AcademicCycle{
		Name:      s.defaultName,
		StartDate: now,
		EndDate:   now.AddDate(1, 0, 0),
		IsActive:  true,
		IsLocked:  false,
	}

	created, err := s.repo.Cycle.CreateIfNoActive(ctx, cycle)
	if err != nil {
		s.logger.Error("failed to create default cycle", zap.Error(err))
		return nil, err
	}
	if created {
		s.logger.Info("default academic cycle created",
			zap.String("cycle_id", cycle.CycleID),
			zap.Time("start_date", cycle.StartDate),
			zap.Time("end_date", cycle.EndDate),
		)
		return cycle, nil
	}

	// a concurrent caller inserted first
	cycle, err = s.repo.Cycle.GetActive(ctx)
	if err != nil {
		s.logger.Error("failed to re-read active cycle", zap.Error(err))
		return nil, err
	}
	return cycle, nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *cycleService) GetCurrent(ctx context.Context) (*dto.CycleResponse, error) {
	cycle, err := s.GetActiveCycle(ctx)
	if err != nil {
		return nil, err
	}
	return toCycleResponse(cycle), nil
}

// ────────────────────── List / GetByID ──────────────────────

func (s *cycleService) List(ctx context.Context) ([]dto.CycleResponse, error) {
	cycles, err := s.repo.Cycle.List(ctx)
	if err != nil {
		s.logger.Error("failed to list cycles", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CycleResponse, 0, len(cycles))
	for i := range cycles {
		result = append(result, *toCycleResponse(&cycles[i]))
	}
	return result, nil
}

func (s *cycleService) GetByID(ctx context.Context, id string) (*dto.CycleResponse, error) {
	cycle, err := s.getCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCycleResponse(cycle), nil
}

// ────────────────────── Create ──────────────────────

func (s *cycleService) Create(ctx context.Context, req *dto.CreateCycleRequest, callerID string) (*dto.CycleResponse, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrCycleDateInvalid
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrCycleDateInvalid
	}
	if !endDate.After(startDate) {
		return nil, ErrCycleDateInvalid
	}

	cycle := &model.AcademicCycle{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
	}
	cycle.CreatedBy = &callerID
	cycle.UpdatedBy = &callerID

	if err := s.repo.Cycle.Create(ctx, cycle); err != nil {
		s.logger.Error("failed to create cycle", zap.Error(err))
		return nil, err
	}

	return toCycleResponse(cycle), nil
}

// ────────────────────── Update ──────────────────────

func (s *cycleService) Update(ctx context.Context, id string, req *dto.UpdateCycleRequest, callerID string) (*dto.CycleResponse, error) {
	cycle, err := s.getCycle(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cycle.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrCycleDateInvalid
		}
		cycle.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrCycleDateInvalid
		}
		cycle.EndDate = endDate
	}
	if !cycle.EndDate.After(cycle.StartDate) {
		return nil, ErrCycleDateInvalid
	}

	cycle.UpdatedBy = &callerID

	if err := s.repo.Cycle.Update(ctx, cycle); err != nil {
		s.logger.Error("failed to update cycle", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toCycleResponse(cycle), nil
}

// ────────────────────── Activate ──────────────────────

func (s *cycleService) Activate(ctx context.Context, id string, callerID string) error {
	cycle, err := s.getCycle(ctx, id)
	if err != nil {
		return err
	}
	if cycle.IsActive {
		return nil
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Cycle.ClearActive(ctx); err != nil {
			return err
		}
		cycle.IsActive = true
		cycle.UpdatedBy = &callerID
		return tx.Cycle.Update(ctx, cycle)
	})
	if err != nil {
		s.logger.Error("failed to activate cycle", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("academic cycle activated", zap.String("cycle_id", id), zap.String("by", callerID))
	return nil
}

// ────────────────────── SetLocked ──────────────────────

func (s *cycleService) SetLocked(ctx context.Context, id string, locked bool, callerID string) (*dto.CycleResponse, error) {
	cycle, err := s.getCycle(ctx, id)
	if err != nil {
		return nil, err
	}

	cycle.IsLocked = locked
	cycle.UpdatedBy = &callerID

	if err := s.repo.Cycle.Update(ctx, cycle); err != nil {
		s.logger.Error("failed to change cycle lock", zap.String("id", id), zap.Bool("locked", locked), zap.Error(err))
		return nil, err
	}

	return toCycleResponse(cycle), nil
}

// ────────────────────── EnsureWritable ──────────────────────

func (s *cycleService) EnsureWritable(ctx context.Context, cycleID string) error {
	cycle, err := s.getCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	if cycle.IsLocked {
		return ErrCycleLocked
	}
	return nil
}

// ── helpers ──

func (s *cycleService) getCycle(ctx context.Context, id string) (*model.AcademicCycle, error) {
	cycle, err := s.repo.Cycle.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCycleNotFound
		}
		s.logger.Error("failed to query cycle", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return cycle, nil
}

func toCycleResponse(cycle *model.AcademicCycle) *dto.CycleResponse {
	return &dto.CycleResponse{
		ID:        cycle.CycleID,
		Name:      cycle.Name,
		StartDate: cycle.StartDate.Format(dateLayout),
		EndDate:   cycle.EndDate.Format(dateLayout),
		IsActive:  cycle.IsActive,
		IsLocked:  cycle.IsLocked,
		CreatedAt: cycle.CreatedAt.Format(time.RFC3339),
		UpdatedAt: cycle.UpdatedAt.Format(time.RFC3339),
	}
}
