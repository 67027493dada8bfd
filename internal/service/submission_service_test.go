package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/model"
)

func setupTestSubmissionService(sender *fakeSender, policy FailurePolicy) (SubmissionService, *mockRepos) {
	repo, m := newMockRepos()
	seedActiveCycle(m, "c1")
	m.users.users["t1"] = &model.User{UserID: "t1", Name: "سارة", Email: "t1@example.com", Role: model.RoleTeacher}
	m.users.users["r1"] = &model.User{UserID: "r1", Name: "خالد", Email: "r1@example.com", Role: model.RoleReviewer}
	m.indicators.indicators["ind-1"] = &model.Indicator{IndicatorID: "ind-1", CycleID: "c1", UserID: "t1", StandardID: "std-a"}

	notifier := NewNotifier(sender, policy, "", zap.NewNop())
	svc := NewSubmissionService(repo, newTestCycleService(repo), notifier, zap.NewNop())
	return svc, m
}

func TestSubmissionService_Submit(t *testing.T) {
	sender := &fakeSender{enabled: true}
	svc, m := setupTestSubmissionService(sender, FailureSuppress)

	resp, err := svc.Submit(context.Background(), "t1", &dto.SubmitRequest{Note: "جاهز"})
	if err != nil {
		t.Fatalf("Submit should succeed: %v", err)
	}
	if resp.Status != model.SubmissionPending {
		t.Errorf("want pending, got %s", resp.Status)
	}
	if len(m.submissions.submissions) != 1 {
		t.Errorf("want 1 submission row, got %d", len(m.submissions.submissions))
	}
	if len(sender.sent) != 1 || sender.sent[0].To != "r1@example.com" {
		t.Errorf("reviewer should be notified, got %+v", sender.sent)
	}
}

func TestSubmissionService_Submit_MailFailureDoesNotFail(t *testing.T) {
	for _, policy := range []FailurePolicy{FailureSuppress, FailurePropagate} {
		t.Run(policy.String(), func(t *testing.T) {
			sender := &fakeSender{enabled: true, err: errors.New("smtp down")}
			svc, _ := setupTestSubmissionService(sender, policy)

			if _, err := svc.Submit(context.Background(), "t1", &dto.SubmitRequest{}); err != nil {
				t.Fatalf("a mail failure must not fail the submission: %v", err)
			}
		})
	}
}

func TestSubmissionService_Submit_Empty(t *testing.T) {
	svc, m := setupTestSubmissionService(&fakeSender{}, FailureSuppress)
	delete(m.indicators.indicators, "ind-1")

	if _, err := svc.Submit(context.Background(), "t1", &dto.SubmitRequest{}); !errors.Is(err, ErrSubmissionEmpty) {
		t.Fatalf("want ErrSubmissionEmpty, got %v", err)
	}
}

func TestSubmissionService_Submit_Twice(t *testing.T) {
	svc, _ := setupTestSubmissionService(&fakeSender{}, FailureSuppress)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "t1", &dto.SubmitRequest{}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(ctx, "t1", &dto.SubmitRequest{}); !errors.Is(err, ErrSubmissionPending) {
		t.Fatalf("want ErrSubmissionPending, got %v", err)
	}
}

func TestSubmissionService_Submit_ConcurrentDuplicate(t *testing.T) {
	sender := &fakeSender{enabled: true}
	svc, m := setupTestSubmissionService(sender, FailureSuppress)

	cycle, err := m.cycles.GetActive(context.Background())
	if err != nil {
		t.Fatalf("active cycle: %v", err)
	}
	// another request for the same teacher inserts between the lookup and the insert
	m.submissions.raceWinner = &model.Submission{
		SubmissionID: "sub-winner",
		CycleID:      cycle.CycleID,
		UserID:       "t1",
		Status:       model.SubmissionPending,
	}

	if _, err := svc.Submit(context.Background(), "t1", &dto.SubmitRequest{}); !errors.Is(err, ErrSubmissionPending) {
		t.Fatalf("want ErrSubmissionPending, got %v", err)
	}
	if len(m.submissions.submissions) != 1 {
		t.Errorf("want only the winning row, got %d", len(m.submissions.submissions))
	}
	if len(sender.sent) != 0 {
		t.Errorf("the losing request must not notify, got %+v", sender.sent)
	}
}

func TestSubmissionService_Submit_LockedCycle(t *testing.T) {
	svc, m := setupTestSubmissionService(&fakeSender{}, FailureSuppress)
	m.cycles.cycles["c1"].IsLocked = true

	if _, err := svc.Submit(context.Background(), "t1", &dto.SubmitRequest{}); !errors.Is(err, ErrCycleLocked) {
		t.Fatalf("want ErrCycleLocked, got %v", err)
	}
}

func TestSubmissionService_ReviewAndResubmit(t *testing.T) {
	sender := &fakeSender{enabled: true}
	svc, m := setupTestSubmissionService(sender, FailureSuppress)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "t1", &dto.SubmitRequest{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	pending, err := svc.ListPending(ctx)
	if err != nil || len(pending) != 1 {
		t.Fatalf("want 1 pending submission, got %d (%v)", len(pending), err)
	}

	approve := false
	reviewed, err := svc.Review(ctx, "r1", sub.ID, &dto.ReviewSubmissionRequest{Approve: &approve, Note: "أكملي الشواهد"})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if reviewed.Status != model.SubmissionReturned || reviewed.ReviewerID != "r1" || reviewed.ReviewedAt == "" {
		t.Errorf("unexpected review result %+v", reviewed)
	}
	last := sender.sent[len(sender.sent)-1]
	if last.To != "t1@example.com" {
		t.Errorf("teacher should be notified of the review, got %s", last.To)
	}

	if _, err := svc.Review(ctx, "r1", sub.ID, &dto.ReviewSubmissionRequest{Approve: &approve}); !errors.Is(err, ErrSubmissionNotPending) {
		t.Errorf("reviewing twice: want ErrSubmissionNotPending, got %v", err)
	}

	again, err := svc.Submit(ctx, "t1", &dto.SubmitRequest{Note: "تم الاستكمال"})
	if err != nil {
		t.Fatalf("resubmit after return: %v", err)
	}
	if again.ID != sub.ID {
		t.Error("resubmission should reuse the submission row")
	}
	if again.Status != model.SubmissionPending || again.ReviewNote != "" || again.ReviewerID != "" {
		t.Errorf("resubmission should reset the review, got %+v", again)
	}
	if len(m.submissions.submissions) != 1 {
		t.Errorf("want 1 submission row, got %d", len(m.submissions.submissions))
	}
}

func TestSubmissionService_GetMine(t *testing.T) {
	svc, _ := setupTestSubmissionService(&fakeSender{}, FailureSuppress)
	ctx := context.Background()

	if _, err := svc.GetMine(ctx, "t1"); !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("want ErrSubmissionNotFound, got %v", err)
	}
	svc.Submit(ctx, "t1", &dto.SubmitRequest{})

	mine, err := svc.GetMine(ctx, "t1")
	if err != nil {
		t.Fatalf("GetMine: %v", err)
	}
	if mine.Status != model.SubmissionPending {
		t.Errorf("want pending, got %s", mine.Status)
	}
}
