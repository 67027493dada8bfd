package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/internal/repository"
	pkgerrors "teacher-eval/backend/pkg/errors"
)

// ── test fixture ──

type mockRepos struct {
	users       *mockUserRepo
	cycles      *mockCycleRepo
	standards   *mockStandardRepo
	indicators  *mockIndicatorRepo
	criteria    *mockCriterionRepo
	witnesses   *mockWitnessRepo
	submissions *mockSubmissionRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		users:       newMockUserRepo(),
		cycles:      newMockCycleRepo(),
		standards:   newMockStandardRepo(),
		criteria:    newMockCriterionRepo(),
		witnesses:   newMockWitnessRepo(),
		submissions: newMockSubmissionRepo(),
	}
	m.indicators = newMockIndicatorRepo(m.criteria)
	m.submissions.users = m.users

	repo := &repository.Repository{
		User:       m.users,
		Cycle:      m.cycles,
		Standard:   m.standards,
		Indicator:  m.indicators,
		Criterion:  m.criteria,
		Witness:    m.witnesses,
		Submission: m.submissions,
	}
	return repo, m
}

// fixedClock a clock frozen at t
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	if user.Version == 0 {
		user.Version = 1
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	stored, ok := m.users[user.UserID]
	if !ok || stored.Version != user.Version {
		return pkgerrors.ErrOptimisticLock
	}
	user.Version++
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserFilter, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(u.Name, filter.Keyword) && !strings.Contains(u.Email, filter.Keyword) {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })

	total := int64(len(all))
	if offset >= len(all) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock CycleRepository ──

type mockCycleRepo struct {
	cycles map[string]*model.AcademicCycle
	seq    int

	inserts   int   // successful inserts through CreateIfNoActive
	getErr    error // returned by GetActive
	createErr error // returned by CreateIfNoActive
	// raceWinner is stored instead of the caller's row on the next CreateIfNoActive
	raceWinner *model.AcademicCycle
}

func newMockCycleRepo() *mockCycleRepo {
	return &mockCycleRepo{cycles: make(map[string]*model.AcademicCycle)}
}

func (m *mockCycleRepo) nextID() string {
	m.seq++
	return fmt.Sprintf("cycle-%d", m.seq)
}

func (m *mockCycleRepo) active() *model.AcademicCycle {
	for _, c := range m.cycles {
		if c.IsActive {
			return c
		}
	}
	return nil
}

func (m *mockCycleRepo) GetActive(_ context.Context) (*model.AcademicCycle, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if c := m.active(); c != nil {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCycleRepo) CreateIfNoActive(_ context.Context, cycle *model.AcademicCycle) (bool, error) {
	if m.createErr != nil {
		return false, m.createErr
	}
	if m.raceWinner != nil {
		m.cycles[m.raceWinner.CycleID] = m.raceWinner
		m.raceWinner = nil
	}
	if m.active() != nil {
		return false, nil
	}
	if cycle.CycleID == "" {
		cycle.CycleID = m.nextID()
	}
	m.cycles[cycle.CycleID] = cycle
	m.inserts++
	return true, nil
}

func (m *mockCycleRepo) Create(_ context.Context, cycle *model.AcademicCycle) error {
	if cycle.CycleID == "" {
		cycle.CycleID = m.nextID()
	}
	m.cycles[cycle.CycleID] = cycle
	return nil
}

func (m *mockCycleRepo) GetByID(_ context.Context, id string) (*model.AcademicCycle, error) {
	if c, ok := m.cycles[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCycleRepo) List(_ context.Context) ([]model.AcademicCycle, error) {
	result := make([]model.AcademicCycle, 0, len(m.cycles))
	for _, c := range m.cycles {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockCycleRepo) Update(_ context.Context, cycle *model.AcademicCycle) error {
	m.cycles[cycle.CycleID] = cycle
	return nil
}

func (m *mockCycleRepo) ClearActive(_ context.Context) error {
	for _, c := range m.cycles {
		c.IsActive = false
	}
	return nil
}

// ── Mock StandardRepository ──

type mockStandardRepo struct {
	standards []model.PerformanceStandard
	seq       int
	createErr error
}

func newMockStandardRepo() *mockStandardRepo {
	return &mockStandardRepo{}
}

func (m *mockStandardRepo) List(_ context.Context) ([]model.PerformanceStandard, error) {
	result := append([]model.PerformanceStandard(nil), m.standards...)
	sort.SliceStable(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (m *mockStandardRepo) GetByID(_ context.Context, id string) (*model.PerformanceStandard, error) {
	for i := range m.standards {
		if m.standards[i].StandardID == id {
			st := m.standards[i]
			return &st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStandardRepo) DeleteAll(_ context.Context) error {
	m.standards = nil
	return nil
}

func (m *mockStandardRepo) CreateBatch(_ context.Context, standards []model.PerformanceStandard) error {
	if m.createErr != nil {
		return m.createErr
	}
	for i := range standards {
		if standards[i].StandardID == "" {
			m.seq++
			standards[i].StandardID = fmt.Sprintf("std-%d", m.seq)
		}
		m.standards = append(m.standards, standards[i])
	}
	return nil
}

// addStandard test helper
func (m *mockStandardRepo) addStandard(id, title, weight string) {
	m.standards = append(m.standards, model.PerformanceStandard{
		StandardID: id,
		Title:      title,
		Weight:     weight,
		SortOrder:  len(m.standards) + 1,
	})
}

// ── Mock IndicatorRepository ──

type mockIndicatorRepo struct {
	indicators map[string]*model.Indicator
	criteria   *mockCriterionRepo
	seq        int
	deleted    int64 // soft-deleted rows still counted by CountAll
}

func newMockIndicatorRepo(criteria *mockCriterionRepo) *mockIndicatorRepo {
	return &mockIndicatorRepo{indicators: make(map[string]*model.Indicator), criteria: criteria}
}

func (m *mockIndicatorRepo) Create(ctx context.Context, indicator *model.Indicator) error {
	if indicator.IndicatorID == "" {
		m.seq++
		indicator.IndicatorID = fmt.Sprintf("ind-%d", m.seq)
	}
	for i := range indicator.Criteria {
		indicator.Criteria[i].IndicatorID = indicator.IndicatorID
		if err := m.criteria.Create(ctx, &indicator.Criteria[i]); err != nil {
			return err
		}
	}
	stored := *indicator
	stored.Criteria = nil
	m.indicators[indicator.IndicatorID] = &stored
	return nil
}

// withCriteria copy of the stored row with criteria attached in sort order
func (m *mockIndicatorRepo) withCriteria(ind *model.Indicator) model.Indicator {
	out := *ind
	out.Criteria = m.criteria.byIndicator(ind.IndicatorID)
	return out
}

func (m *mockIndicatorRepo) GetByID(_ context.Context, id string) (*model.Indicator, error) {
	if ind, ok := m.indicators[id]; ok {
		out := m.withCriteria(ind)
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIndicatorRepo) ListByUser(_ context.Context, cycleID, userID, standardID string) ([]model.Indicator, error) {
	var result []model.Indicator
	for _, ind := range m.indicators {
		if ind.CycleID != cycleID || ind.UserID != userID {
			continue
		}
		if standardID != "" && ind.StandardID != standardID {
			continue
		}
		result = append(result, m.withCriteria(ind))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].IndicatorID < result[j].IndicatorID })
	return result, nil
}

func (m *mockIndicatorRepo) ListByCycle(_ context.Context, cycleID string) ([]model.Indicator, error) {
	var result []model.Indicator
	for _, ind := range m.indicators {
		if ind.CycleID == cycleID {
			result = append(result, m.withCriteria(ind))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].IndicatorID < result[j].IndicatorID })
	return result, nil
}

func (m *mockIndicatorRepo) Update(_ context.Context, indicator *model.Indicator) error {
	stored, ok := m.indicators[indicator.IndicatorID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.StandardID = indicator.StandardID
	stored.Title = indicator.Title
	stored.Description = indicator.Description
	stored.UpdatedBy = indicator.UpdatedBy
	return nil
}

func (m *mockIndicatorRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.indicators[id]; ok {
		delete(m.indicators, id)
		m.deleted++
	}
	return nil
}

func (m *mockIndicatorRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.indicators)) + m.deleted, nil
}

// ── Mock CriterionRepository ──

type mockCriterionRepo struct {
	criteria map[string]*model.Criterion
	seq      int
}

func newMockCriterionRepo() *mockCriterionRepo {
	return &mockCriterionRepo{criteria: make(map[string]*model.Criterion)}
}

func (m *mockCriterionRepo) byIndicator(indicatorID string) []model.Criterion {
	var result []model.Criterion
	for _, c := range m.criteria {
		if c.IndicatorID == indicatorID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result
}

func (m *mockCriterionRepo) Create(_ context.Context, criterion *model.Criterion) error {
	if criterion.CriterionID == "" {
		m.seq++
		criterion.CriterionID = fmt.Sprintf("crit-%d", m.seq)
	}
	stored := *criterion
	m.criteria[criterion.CriterionID] = &stored
	return nil
}

func (m *mockCriterionRepo) GetByID(_ context.Context, id string) (*model.Criterion, error) {
	if c, ok := m.criteria[id]; ok {
		out := *c
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCriterionRepo) Update(_ context.Context, criterion *model.Criterion) error {
	stored := *criterion
	m.criteria[criterion.CriterionID] = &stored
	return nil
}

func (m *mockCriterionRepo) Delete(_ context.Context, id string) error {
	delete(m.criteria, id)
	return nil
}

// ── Mock WitnessRepository ──

type mockWitnessRepo struct {
	witnesses map[string]*model.Witness
	seq       int
	createErr error
}

func newMockWitnessRepo() *mockWitnessRepo {
	return &mockWitnessRepo{witnesses: make(map[string]*model.Witness)}
}

func (m *mockWitnessRepo) Create(_ context.Context, witness *model.Witness) error {
	if m.createErr != nil {
		return m.createErr
	}
	if witness.WitnessID == "" {
		m.seq++
		witness.WitnessID = fmt.Sprintf("wit-%d", m.seq)
	}
	m.witnesses[witness.WitnessID] = witness
	return nil
}

func (m *mockWitnessRepo) GetByID(_ context.Context, id string) (*model.Witness, error) {
	if w, ok := m.witnesses[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWitnessRepo) ListByIndicator(_ context.Context, indicatorID string) ([]model.Witness, error) {
	var result []model.Witness
	for _, w := range m.witnesses {
		if w.IndicatorID == indicatorID {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WitnessID < result[j].WitnessID })
	return result, nil
}

func (m *mockWitnessRepo) CountByIndicators(_ context.Context, indicatorIDs []string) (map[string]int, error) {
	want := make(map[string]bool, len(indicatorIDs))
	for _, id := range indicatorIDs {
		want[id] = true
	}
	counts := make(map[string]int)
	for _, w := range m.witnesses {
		if want[w.IndicatorID] {
			counts[w.IndicatorID]++
		}
	}
	return counts, nil
}

func (m *mockWitnessRepo) Delete(_ context.Context, id string) error {
	delete(m.witnesses, id)
	return nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	submissions map[string]*model.Submission
	users       *mockUserRepo
	seq         int
	// raceWinner is stored just before the next CreateIfAbsent runs
	raceWinner *model.Submission
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{submissions: make(map[string]*model.Submission)}
}

func (m *mockSubmissionRepo) withUser(sub *model.Submission) *model.Submission {
	out := *sub
	if m.users != nil {
		if u, ok := m.users.users[sub.UserID]; ok {
			out.User = u
		}
	}
	return &out
}

func (m *mockSubmissionRepo) CreateIfAbsent(_ context.Context, submission *model.Submission) (bool, error) {
	if m.raceWinner != nil {
		m.submissions[m.raceWinner.SubmissionID] = m.raceWinner
		m.raceWinner = nil
	}
	for _, s := range m.submissions {
		if s.CycleID == submission.CycleID && s.UserID == submission.UserID {
			return false, nil
		}
	}
	if submission.SubmissionID == "" {
		m.seq++
		submission.SubmissionID = fmt.Sprintf("sub-%d", m.seq)
	}
	stored := *submission
	stored.User = nil
	m.submissions[submission.SubmissionID] = &stored
	return true, nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.submissions[id]; ok {
		return m.withUser(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetByCycleAndUser(_ context.Context, cycleID, userID string) (*model.Submission, error) {
	for _, s := range m.submissions {
		if s.CycleID == cycleID && s.UserID == userID {
			out := *s
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) ListByCycle(_ context.Context, cycleID, status string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.CycleID != cycleID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *m.withUser(s))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubmissionID < result[j].SubmissionID })
	return result, nil
}

func (m *mockSubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	stored := *submission
	stored.User = nil
	m.submissions[submission.SubmissionID] = &stored
	return nil
}

// ── shared fixtures ──

// seedActiveCycle stores an active, unlocked cycle and returns it
func seedActiveCycle(m *mockRepos, id string) *model.AcademicCycle {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	c := &model.AcademicCycle{
		CycleID:   id,
		Name:      "1446-1447",
		StartDate: now,
		EndDate:   now.AddDate(1, 0, 0),
		IsActive:  true,
	}
	m.cycles.cycles[id] = c
	return c
}

func newTestCycleService(repo *repository.Repository) *cycleService {
	return newCycleService(repo, "", fixedClock(time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)), zap.NewNop())
}
