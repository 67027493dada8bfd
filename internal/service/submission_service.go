package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/internal/repository"
)

// ── submission errors ──

var (
	ErrSubmissionNotFound   = errors.New("لا يوجد تسليم")
	ErrSubmissionEmpty      = errors.New("لا يمكن التسليم قبل إضافة مؤشر واحد على الأقل")
	ErrSubmissionPending    = errors.New("تم تسليم البيانات مسبقاً وهي قيد المراجعة أو معتمدة")
	ErrSubmissionNotPending = errors.New("التسليم ليس بانتظار المراجعة")
)

// SubmissionService hand-in and review of a teacher's cycle data
type SubmissionService interface {
	Submit(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error)
	GetMine(ctx context.Context, userID string) (*dto.SubmissionResponse, error)
	ListPending(ctx context.Context) ([]dto.SubmissionResponse, error)
	Review(ctx context.Context, reviewerID, id string, req *dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error)
}

type submissionService struct {
	repo     *repository.Repository
	cycles   CycleService
	notifier *Notifier
	now      func() time.Time
	logger   *zap.Logger
}

// NewSubmissionService creates a SubmissionService
func NewSubmissionService(repo *repository.Repository, cycles CycleService, notifier *Notifier, logger *zap.Logger) SubmissionService {
	return &submissionService{
		repo:     repo,
		cycles:   cycles,
		notifier: notifier,
		now:      time.Now,
		logger:   logger,
	}
}

// ────────────────────── Submit ──────────────────────

func (s *submissionService) Submit(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	cycle, err := s.cycles.GetActiveCycle(ctx)
	if err != nil {
		return nil, err
	}
	if cycle.IsLocked {
		return nil, ErrCycleLocked
	}

	indicators, err := s.repo.Indicator.ListByUser(ctx, cycle.CycleID, userID, "")
	if err != nil {
		s.logger.Error("failed to list indicators", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if len(indicators) == 0 {
		return nil, ErrSubmissionEmpty
	}

	teacher, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	submission, err := s.repo.Submission.GetByCycleAndUser(ctx, cycle.CycleID, userID)
	switch {
	case err == nil:
		if submission.Status != model.SubmissionReturned {
			return nil, ErrSubmissionPending
		}
		// resubmission after a return reuses the row
		submission.Status = model.SubmissionPending
		submission.Note = req.Note
		submission.ReviewerID = nil
		submission.ReviewNote = ""
		submission.ReviewedAt = nil
		submission.SubmittedAt = s.now()
		submission.UpdatedBy = &userID
		if err := s.repo.Submission.Update(ctx, submission); err != nil {
			s.logger.Error("failed to resubmit", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = &model.Submission{
			CycleID:     cycle.CycleID,
			UserID:      userID,
			Status:      model.SubmissionPending,
			Note:        req.Note,
			SubmittedAt: s.now(),
		}
		submission.CreatedBy = &userID
		submission.UpdatedBy = &userID
		created, err := s.repo.Submission.CreateIfAbsent(ctx, submission)
		if err != nil {
			s.logger.Error("failed to create submission", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
		if !created {
			// a concurrent submit for the same cycle won
			return nil, ErrSubmissionPending
		}
	default:
		s.logger.Error("failed to query submission", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("submission received",
		zap.String("submission_id", submission.SubmissionID),
		zap.String("cycle_id", cycle.CycleID),
		zap.String("user_id", userID),
	)

	reviewers, err := s.repo.User.ListByRole(ctx, model.RoleReviewer)
	if err != nil {
		s.logger.Warn("failed to load reviewers for notification", zap.Error(err))
	} else {
		for _, res := range s.notifier.SubmissionReceived(ctx, reviewers, teacher, cycle, req.Note) {
			logDelivery(s.logger, "submission_received", res)
		}
	}

	submission.User = teacher
	return toSubmissionResponse(submission), nil
}

// ────────────────────── GetMine ──────────────────────

func (s *submissionService) GetMine(ctx context.Context, userID string) (*dto.SubmissionResponse, error) {
	cycle, err := s.cycles.GetActiveCycle(ctx)
	if err != nil {
		return nil, err
	}

	submission, err := s.repo.Submission.GetByCycleAndUser(ctx, cycle.CycleID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("failed to query submission", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toSubmissionResponse(submission), nil
}

// ────────────────────── ListPending ──────────────────────

func (s *submissionService) ListPending(ctx context.Context) ([]dto.SubmissionResponse, error) {
	cycle, err := s.cycles.GetActiveCycle(ctx)
	if err != nil {
		return nil, err
	}

	submissions, err := s.repo.Submission.ListByCycle(ctx, cycle.CycleID, model.SubmissionPending)
	if err != nil {
		s.logger.Error("failed to list pending submissions", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		result = append(result, *toSubmissionResponse(&submissions[i]))
	}
	return result, nil
}

// ────────────────────── Review ──────────────────────

func (s *submissionService) Review(ctx context.Context, reviewerID, id string, req *dto.ReviewSubmissionRequest) (*dto.SubmissionResponse, error) {
	submission, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("failed to query submission", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if submission.Status != model.SubmissionPending {
		return nil, ErrSubmissionNotPending
	}

	cycle, err := s.repo.Cycle.GetByID(ctx, submission.CycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCycleNotFound
		}
		return nil, err
	}
	if cycle.IsLocked {
		return nil, ErrCycleLocked
	}

	now := s.now()
	submission.Status = model.SubmissionReturned
	if req.Approve != nil && *req.Approve {
		submission.Status = model.SubmissionApproved
	}
	submission.ReviewerID = &reviewerID
	submission.ReviewNote = req.Note
	submission.ReviewedAt = &now
	submission.UpdatedBy = &reviewerID

	if err := s.repo.Submission.Update(ctx, submission); err != nil {
		s.logger.Error("failed to save review", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("submission reviewed",
		zap.String("submission_id", id),
		zap.String("status", submission.Status),
		zap.String("reviewer_id", reviewerID),
	)

	if submission.User != nil {
		logDelivery(s.logger, "submission_reviewed", s.notifier.SubmissionReviewed(ctx, submission.User, cycle, submission))
	}

	return toSubmissionResponse(submission), nil
}

// ── helpers ──

func toSubmissionResponse(sub *model.Submission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:          sub.SubmissionID,
		CycleID:     sub.CycleID,
		Status:      sub.Status,
		Note:        sub.Note,
		ReviewNote:  sub.ReviewNote,
		SubmittedAt: sub.SubmittedAt.Format(time.RFC3339),
	}
	if sub.ReviewerID != nil {
		resp.ReviewerID = *sub.ReviewerID
	}
	if sub.ReviewedAt != nil {
		resp.ReviewedAt = sub.ReviewedAt.Format(time.RFC3339)
	}
	if sub.User != nil {
		resp.User = toUserResponse(sub.User)
	}
	return resp
}
