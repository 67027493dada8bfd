package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/model"
)

func TestStandardService_Seed_ReplacesAll(t *testing.T) {
	repo, m := newMockRepos()
	m.standards.addStandard("legacy", "قديم", "100%")
	svc := NewStandardService(repo, zap.NewNop())

	result, err := svc.Seed(context.Background(), DefaultStandards())
	if err != nil {
		t.Fatalf("Seed should succeed: %v", err)
	}
	if len(result) != 11 {
		t.Fatalf("want 11 seeded standards, got %d", len(result))
	}

	stored, _ := m.standards.List(context.Background())
	if len(stored) != 11 {
		t.Fatalf("want 11 stored standards, got %d", len(stored))
	}
	for i, st := range stored {
		if st.StandardID == "legacy" {
			t.Error("previous standards must be deleted")
		}
		if st.SortOrder != i+1 {
			t.Errorf("standard %d: want sort order %d, got %d", i, i+1, st.SortOrder)
		}
	}
	if result[7].WeightValue != 5 {
		t.Errorf("want weight value 5 for the eighth standard, got %v", result[7].WeightValue)
	}
}

func TestStandardService_Seed_RejectsBadTotal(t *testing.T) {
	repo, m := newMockRepos()
	m.standards.addStandard("keep", "قائم", "100%")
	svc := NewStandardService(repo, zap.NewNop())

	input := []dto.StandardInput{
		{Title: "أ", Weight: "50%"},
		{Title: "ب", Weight: "40%"},
	}
	_, err := svc.Seed(context.Background(), input)
	if !errors.Is(err, ErrWeightTotalInvalid) {
		t.Fatalf("want ErrWeightTotalInvalid, got %v", err)
	}
	if len(m.standards.standards) != 1 || m.standards.standards[0].StandardID != "keep" {
		t.Error("a rejected seed must not touch existing standards")
	}
}

func TestStandardService_Seed_Empty(t *testing.T) {
	repo, _ := newMockRepos()
	svc := NewStandardService(repo, zap.NewNop())

	if _, err := svc.Seed(context.Background(), nil); !errors.Is(err, ErrStandardsEmpty) {
		t.Fatalf("want ErrStandardsEmpty, got %v", err)
	}
}

func TestStandardService_Seed_RefusesWhenIndicatorsExist(t *testing.T) {
	repo, m := newMockRepos()
	m.indicators.indicators["ind-x"] = &model.Indicator{IndicatorID: "ind-x", StandardID: "std-1"}
	svc := NewStandardService(repo, zap.NewNop())

	if _, err := svc.Seed(context.Background(), DefaultStandards()); !errors.Is(err, ErrStandardsInUse) {
		t.Fatalf("want ErrStandardsInUse, got %v", err)
	}
}

func TestStandardService_Seed_InsertFailurePropagates(t *testing.T) {
	repo, m := newMockRepos()
	boom := errors.New("insert failed")
	m.standards.createErr = boom
	svc := NewStandardService(repo, zap.NewNop())

	if _, err := svc.Seed(context.Background(), DefaultStandards()); !errors.Is(err, boom) {
		t.Fatalf("want insert error, got %v", err)
	}
}

func TestStandardService_Summary(t *testing.T) {
	repo, m := newMockRepos()
	m.standards.addStandard("a", "أ", "60%")
	m.standards.addStandard("b", "ب", "30%")
	svc := NewStandardService(repo, zap.NewNop())

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Count != 2 || sum.TotalWeight != 90 || sum.Valid {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestStandardService_List_Ordered(t *testing.T) {
	repo, m := newMockRepos()
	m.standards.standards = []model.PerformanceStandard{
		{StandardID: "b", Title: "ب", Weight: "50%", SortOrder: 2},
		{StandardID: "a", Title: "أ", Weight: "50%", SortOrder: 1},
	}
	svc := NewStandardService(repo, zap.NewNop())

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("want a,b ordering, got %+v", list)
	}
	if list[0].SuggestedEvidence == nil {
		t.Error("suggested evidence should render as an empty list, not null")
	}
}
