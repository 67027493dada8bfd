package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/internal/repository"
)

// ── export errors ──

var ErrExportGenerateFail = errors.New("تعذر إنشاء ملف Excel")

// ExportService spreadsheet exports
//
// Both exports return the workbook in a buffer plus a suggested file name;
// the handler sets the download headers.
type ExportService interface {
	// ExportProgress one row per standard for the caller in the active cycle, plus the weighted total
	ExportProgress(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportCycleSummary one row per teacher with submission status and overall completion
	ExportCycleSummary(ctx context.Context, cycleID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	progress ProgressService
	logger   *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, progress ProgressService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, progress: progress, logger: logger}
}

// ────────────────────── ExportProgress ──────────────────────

func (s *exportService) ExportProgress(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	progress, err := s.progress.GetProgress(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "التقدم"
	s.prepareSheet(f, sheet, []float64{6, 42, 10, 14, 12, 14, 16})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("تقدم الأداء - %s", progress.CycleName))
	f.MergeCell(sheet, "A1", "G1")

	headers := []string{"#", "المعيار", "الوزن %", "عدد المؤشرات", "عدد الشواهد", "الإنجاز %", "النتيجة الموزونة"}
	s.writeHeader(f, sheet, 2, headers)

	row := 3
	for i, sp := range progress.Standards {
		f.SetCellValue(sheet, cell("A", row), i+1)
		f.SetCellValue(sheet, cell("B", row), sp.Title)
		f.SetCellValue(sheet, cell("C", row), sp.Weight)
		f.SetCellValue(sheet, cell("D", row), sp.IndicatorCount)
		f.SetCellValue(sheet, cell("E", row), sp.WitnessCount)
		f.SetCellValue(sheet, cell("F", row), sp.Completion)
		f.SetCellValue(sheet, cell("G", row), sp.WeightedScore)
		row++
	}

	f.SetCellValue(sheet, cell("B", row), "الإنجاز الكلي")
	f.SetCellValue(sheet, cell("G", row), progress.OverallCompletion)
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(sheet, cell("A", row), cell("G", row), style)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workbook", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("progress_%s.xlsx", progress.CycleName), nil
}

// ────────────────────── ExportCycleSummary ──────────────────────

func (s *exportService) ExportCycleSummary(ctx context.Context, cycleID string) (*bytes.Buffer, string, error) {
	cycle, err := s.repo.Cycle.GetByID(ctx, cycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCycleNotFound
		}
		s.logger.Error("failed to query cycle", zap.String("id", cycleID), zap.Error(err))
		return nil, "", err
	}

	standards, err := s.repo.Standard.List(ctx)
	if err != nil {
		s.logger.Error("failed to list standards", zap.Error(err))
		return nil, "", err
	}
	teachers, err := s.repo.User.ListByRole(ctx, model.RoleTeacher)
	if err != nil {
		s.logger.Error("failed to list teachers", zap.Error(err))
		return nil, "", err
	}
	indicators, err := s.repo.Indicator.ListByCycle(ctx, cycleID)
	if err != nil {
		s.logger.Error("failed to list indicators", zap.String("cycle_id", cycleID), zap.Error(err))
		return nil, "", err
	}
	submissions, err := s.repo.Submission.ListByCycle(ctx, cycleID, "")
	if err != nil {
		s.logger.Error("failed to list submissions", zap.String("cycle_id", cycleID), zap.Error(err))
		return nil, "", err
	}

	byUser := make(map[string][]model.Indicator)
	for _, ind := range indicators {
		byUser[ind.UserID] = append(byUser[ind.UserID], ind)
	}
	status := make(map[string]string, len(submissions))
	for _, sub := range submissions {
		status[sub.UserID] = sub.Status
	}

	sort.SliceStable(teachers, func(i, j int) bool { return teachers[i].Name < teachers[j].Name })

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "ملخص الدورة"
	s.prepareSheet(f, sheet, []float64{6, 28, 30, 24, 14, 16, 14})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("ملخص الدورة - %s", cycle.Name))
	f.MergeCell(sheet, "A1", "G1")

	headers := []string{"#", "المعلم", "البريد الإلكتروني", "المدرسة", "عدد المؤشرات", "حالة التسليم", "الإنجاز %"}
	s.writeHeader(f, sheet, 2, headers)

	row := 3
	for i, t := range teachers {
		items := byUser[t.UserID]
		progress := buildProgress(cycle, t.UserID, standards, items, nil)

		f.SetCellValue(sheet, cell("A", row), i+1)
		f.SetCellValue(sheet, cell("B", row), t.Name)
		f.SetCellValue(sheet, cell("C", row), t.Email)
		f.SetCellValue(sheet, cell("D", row), t.School)
		f.SetCellValue(sheet, cell("E", row), len(items))
		f.SetCellValue(sheet, cell("F", row), submissionStatusLabel(status[t.UserID]))
		f.SetCellValue(sheet, cell("G", row), progress.OverallCompletion)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workbook", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("cycle_summary_%s.xlsx", cycle.Name), nil
}

// ── helpers ──

// prepareSheet replaces the default sheet with a right-to-left sheet named name
func (s *exportService) prepareSheet(f *excelize.File, name string, widths []float64) {
	idx, _ := f.NewSheet(name)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	rtl := true
	f.SetSheetView(name, 0, &excelize.ViewOptions{RightToLeft: &rtl})

	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(name, col, col, w)
	}
}

func (s *exportService) writeHeader(f *excelize.File, sheet string, row int, headers []string) {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E7D32"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheet, cell("A", row), cell(colName(len(headers)-1), row), style)
}

func submissionStatusLabel(status string) string {
	switch status {
	case model.SubmissionPending:
		return "قيد المراجعة"
	case model.SubmissionApproved:
		return "معتمد"
	case model.SubmissionReturned:
		return "معاد"
	default:
		return "لم يسلّم"
	}
}

// colName zero-based column index → letter
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
