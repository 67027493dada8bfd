package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"teacher-eval/backend/internal/model"
)

func setupTestExportService() (ExportService, *mockRepos) {
	repo, m := newMockRepos()
	seedActiveCycle(m, "c1")
	m.standards.addStandard("a", "التخطيط", "60%")
	m.standards.addStandard("b", "التقويم", "40%")

	m.users.users["t1"] = &model.User{UserID: "t1", Name: "سارة", Email: "sara@school.edu.sa", Role: model.RoleTeacher}
	m.users.users["t2"] = &model.User{UserID: "t2", Name: "أمل", Email: "amal@school.edu.sa", Role: model.RoleTeacher}
	m.users.users["r1"] = &model.User{UserID: "r1", Name: "خالد", Email: "khalid@school.edu.sa", Role: model.RoleReviewer}

	m.indicators.indicators["i1"] = &model.Indicator{IndicatorID: "i1", CycleID: "c1", UserID: "t1", StandardID: "a"}
	m.criteria.criteria["k1"] = &model.Criterion{CriterionID: "k1", IndicatorID: "i1", IsCompleted: true}
	m.submissions.submissions["s1"] = &model.Submission{SubmissionID: "s1", CycleID: "c1", UserID: "t1", Status: model.SubmissionApproved}

	cycles := newTestCycleService(repo)
	progress := NewProgressService(repo, cycles, zap.NewNop())
	return NewExportService(repo, progress, zap.NewNop()), m
}

func openWorkbook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("export should be a valid workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExportService_ExportProgress(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, name, err := svc.ExportProgress(context.Background(), "t1")
	if err != nil {
		t.Fatalf("ExportProgress should succeed: %v", err)
	}
	if name != "progress_1446-1447.xlsx" {
		t.Errorf("unexpected file name %q", name)
	}

	f := openWorkbook(t, buf)
	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "التقدم" {
		t.Fatalf("want a single progress sheet, got %v", sheets)
	}
	sheet := sheets[0]

	rows, _ := f.GetRows(sheet)
	// title, header, two standards, total
	if len(rows) != 5 {
		t.Fatalf("want 5 rows, got %d", len(rows))
	}
	if rows[2][1] != "التخطيط" || rows[2][5] != "100" || rows[2][6] != "60" {
		t.Errorf("unexpected first standard row %v", rows[2])
	}
	if rows[4][6] != "60" {
		t.Errorf("want overall 60, got %v", rows[4])
	}
}

func TestExportService_ExportCycleSummary(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, name, err := svc.ExportCycleSummary(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ExportCycleSummary should succeed: %v", err)
	}
	if name != "cycle_summary_1446-1447.xlsx" {
		t.Errorf("unexpected file name %q", name)
	}

	f := openWorkbook(t, buf)
	rows, _ := f.GetRows("ملخص الدورة")
	// title, header, two teachers (reviewers excluded)
	if len(rows) != 4 {
		t.Fatalf("want 4 rows, got %d", len(rows))
	}
	// sorted by name: أمل before سارة
	if rows[2][1] != "أمل" || rows[2][5] != "لم يسلّم" || rows[2][6] != "0" {
		t.Errorf("unexpected row for a teacher without data %v", rows[2])
	}
	if rows[3][1] != "سارة" || rows[3][4] != "1" || rows[3][5] != "معتمد" || rows[3][6] != "60" {
		t.Errorf("unexpected row for sara %v", rows[3])
	}
}

func TestExportService_ExportCycleSummary_NotFound(t *testing.T) {
	svc, _ := setupTestExportService()

	if _, _, err := svc.ExportCycleSummary(context.Background(), "missing"); !errors.Is(err, ErrCycleNotFound) {
		t.Errorf("want ErrCycleNotFound, got %v", err)
	}
}
