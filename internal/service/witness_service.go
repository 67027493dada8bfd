package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/internal/repository"
	"teacher-eval/backend/pkg/storage"
)

// ── witness errors ──

var (
	ErrWitnessNotFound       = errors.New("الشاهد غير موجود")
	ErrWitnessEmpty          = errors.New("الملف المرفوع فارغ")
	ErrWitnessTooLarge       = errors.New("حجم الملف يتجاوز الحد المسموح")
	ErrWitnessTypeNotAllowed = errors.New("نوع الملف غير مسموح")
)

// allowedWitnessTypes extension → stored content type
var allowedWitnessTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".mp4":  "video/mp4",
}

// WitnessFile an uploaded file as received by the handler
type WitnessFile struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// WitnessDownload an open witness file; the caller closes Body
type WitnessDownload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// WitnessService evidence files attached to indicators
type WitnessService interface {
	Upload(ctx context.Context, userID, indicatorID string, req *dto.UploadWitnessRequest, file WitnessFile) (*dto.WitnessResponse, error)
	List(ctx context.Context, userID, indicatorID string) ([]dto.WitnessResponse, error)
	// Open owners and reviewers may download
	Open(ctx context.Context, userID, role, id string) (*WitnessDownload, error)
	Delete(ctx context.Context, userID, id string) error
}

type witnessService struct {
	repo     *repository.Repository
	store    storage.Store
	cycles   CycleService
	maxBytes int64
	logger   *zap.Logger
}

// NewWitnessService creates a WitnessService; maxBytes caps a single upload
func NewWitnessService(repo *repository.Repository, store storage.Store, cycles CycleService, maxBytes int64, logger *zap.Logger) WitnessService {
	return &witnessService{
		repo:     repo,
		store:    store,
		cycles:   cycles,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// ────────────────────── Upload ──────────────────────

func (s *witnessService) Upload(ctx context.Context, userID, indicatorID string, req *dto.UploadWitnessRequest, file WitnessFile) (*dto.WitnessResponse, error) {
	if file.Size <= 0 {
		return nil, ErrWitnessEmpty
	}
	if file.Size > s.maxBytes {
		return nil, ErrWitnessTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	contentType, ok := allowedWitnessTypes[ext]
	if !ok {
		return nil, ErrWitnessTypeNotAllowed
	}

	indicator, err := s.indicator(ctx, userID, indicatorID)
	if err != nil {
		return nil, err
	}
	if err := s.cycles.EnsureWritable(ctx, indicator.CycleID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("witnesses/%s/%s/%s%s", indicator.CycleID, userID, uuid.NewString(), ext)
	body := io.LimitReader(file.Reader, file.Size)
	if err := s.store.Put(ctx, key, body, file.Size, contentType); err != nil {
		s.logger.Error("failed to store witness file", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	witness := &model.Witness{
		IndicatorID: indicatorID,
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		FileName:    filepath.Base(file.Name),
		ContentType: contentType,
		Size:        file.Size,
		StorageKey:  key,
	}
	witness.CreatedBy = &userID
	witness.UpdatedBy = &userID

	if err := s.repo.Witness.Create(ctx, witness); err != nil {
		s.logger.Error("failed to record witness, removing stored file", zap.String("key", key), zap.Error(err))
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to remove orphaned witness file", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	return toWitnessResponse(witness), nil
}

// ────────────────────── List ──────────────────────

func (s *witnessService) List(ctx context.Context, userID, indicatorID string) ([]dto.WitnessResponse, error) {
	if _, err := s.indicator(ctx, userID, indicatorID); err != nil {
		return nil, err
	}

	witnesses, err := s.repo.Witness.ListByIndicator(ctx, indicatorID)
	if err != nil {
		s.logger.Error("failed to list witnesses", zap.String("indicator_id", indicatorID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.WitnessResponse, 0, len(witnesses))
	for i := range witnesses {
		result = append(result, *toWitnessResponse(&witnesses[i]))
	}
	return result, nil
}

// ────────────────────── Open ──────────────────────

func (s *witnessService) Open(ctx context.Context, userID, role, id string) (*WitnessDownload, error) {
	witness, err := s.getWitness(ctx, id)
	if err != nil {
		return nil, err
	}
	if witness.UserID != userID && role != model.RoleReviewer && role != model.RoleAdmin {
		return nil, ErrIndicatorForbidden
	}

	body, err := s.store.Open(ctx, witness.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			s.logger.Warn("witness file missing from storage", zap.String("id", id), zap.String("key", witness.StorageKey))
			return nil, ErrWitnessNotFound
		}
		s.logger.Error("failed to open witness file", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &WitnessDownload{
		FileName:    witness.FileName,
		ContentType: witness.ContentType,
		Size:        witness.Size,
		Body:        body,
	}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *witnessService) Delete(ctx context.Context, userID, id string) error {
	witness, err := s.getWitness(ctx, id)
	if err != nil {
		return err
	}
	indicator, err := s.indicator(ctx, userID, witness.IndicatorID)
	if err != nil {
		return err
	}
	if err := s.cycles.EnsureWritable(ctx, indicator.CycleID); err != nil {
		return err
	}

	if err := s.repo.Witness.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete witness", zap.String("id", id), zap.Error(err))
		return err
	}

	// the row is gone; a leftover object is only logged
	if err := s.store.Delete(ctx, witness.StorageKey); err != nil {
		s.logger.Warn("failed to delete witness file", zap.String("key", witness.StorageKey), zap.Error(err))
	}
	return nil
}

// ── helpers ──

func (s *witnessService) indicator(ctx context.Context, userID, indicatorID string) (*model.Indicator, error) {
	indicator, err := s.repo.Indicator.GetByID(ctx, indicatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIndicatorNotFound
		}
		s.logger.Error("failed to query indicator", zap.String("id", indicatorID), zap.Error(err))
		return nil, err
	}
	if indicator.UserID != userID {
		return nil, ErrIndicatorForbidden
	}
	return indicator, nil
}

func (s *witnessService) getWitness(ctx context.Context, id string) (*model.Witness, error) {
	witness, err := s.repo.Witness.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWitnessNotFound
		}
		s.logger.Error("failed to query witness", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return witness, nil
}

func toWitnessResponse(w *model.Witness) *dto.WitnessResponse {
	return &dto.WitnessResponse{
		ID:          w.WitnessID,
		IndicatorID: w.IndicatorID,
		Title:       w.Title,
		Description: w.Description,
		FileName:    w.FileName,
		ContentType: w.ContentType,
		Size:        w.Size,
		CreatedAt:   w.CreatedAt.Format(time.RFC3339),
	}
}
