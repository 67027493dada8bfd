package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/internal/repository"
)

// ── user errors ──

var (
	ErrEmailExists = errors.New("البريد الإلكتروني مستخدم مسبقاً")
	ErrInvalidRole = errors.New("الدور غير صالح")
)

// rowValidator checks spreadsheet cells with the rules gin applies to JSON bodies
var rowValidator = validator.New()

// UserService account administration
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.CreateUserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	ResetPassword(ctx context.Context, id string, callerID string) (*dto.ResetPasswordResponse, error)
	ParseImportFile(reader io.Reader) ([]ImportUserRow, error)
	ImportUsers(ctx context.Context, rows []ImportUserRow, callerID string) (*dto.ImportUserResponse, error)
}

// ImportUserRow one parsed spreadsheet row
type ImportUserRow struct {
	Row            int
	Name           string
	Email          string
	Role           string
	School         string
	Specialization string
}

type userService struct {
	repo     *repository.Repository
	notifier *Notifier
	logger   *zap.Logger
}

// NewUserService creates a UserService
func NewUserService(repo *repository.Repository, notifier *Notifier, logger *zap.Logger) UserService {
	return &userService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── CreateUser ──────────────────────

func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.CreateUserResponse, error) {
	if !validRole(req.Role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("failed to generate temporary password", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:       string(hash),
		Role:               req.Role,
		School:             req.School,
		Specialization:     req.Specialization,
		MustChangePassword: true,
	}
	if callerID != "" { // empty when bootstrapped from evalctl
		user.CreatedBy = &callerID
		user.UpdatedBy = &callerID
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	logDelivery(s.logger, "account_created", s.notifier.AccountCreated(ctx, user, tempPassword))

	return &dto.CreateUserResponse{
		User:         toUserResponse(user),
		TempPassword: tempPassword,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to query user", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filter := repository.UserFilter{Role: req.Role, Keyword: req.Keyword}

	users, total, err := s.repo.User.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *userService) ResetPassword(ctx context.Context, id string, callerID string) (*dto.ResetPasswordResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to query user", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("failed to generate temporary password", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.MustChangePassword = true
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("failed to reset password", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

// ────────────────────── ParseImportFile ──────────────────────

const maxImportRows = 1000

var (
	ErrImportNoData      = errors.New("ملف Excel لا يحتوي على بيانات (الصف الأول للعناوين)")
	ErrImportTooManyRows = fmt.Errorf("عدد الصفوف يتجاوز الحد الأقصى %d", maxImportRows)
	ErrImportBadHeader   = errors.New("عناوين ملف Excel تفتقد أعمدة إلزامية (الاسم / البريد الإلكتروني)")
)

// ParseImportFile reads the first sheet; the header row may list columns in any order
func (s *userService) ParseImportFile(reader io.Reader) ([]ImportUserRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("تعذر قراءة ملف Excel: %w", err)
	}
	defer f.Close()

	excelRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("تعذر قراءة ورقة العمل: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	col := parseHeaderIndex(excelRows[0])
	if col["name"] < 0 || col["email"] < 0 {
		return nil, ErrImportBadHeader
	}

	cell := func(row []string, key string) string {
		idx := col[key]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var rows []ImportUserRow
	for i := 1; i < len(excelRows); i++ {
		r := excelRows[i]
		item := ImportUserRow{
			Row:            i + 1,
			Name:           cell(r, "name"),
			Email:          cell(r, "email"),
			Role:           strings.ToLower(cell(r, "role")),
			School:         cell(r, "school"),
			Specialization: cell(r, "specialization"),
		}
		if item.Name == "" && item.Email == "" {
			continue
		}
		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return rows, nil
}

// parseHeaderIndex column key → index, -1 when absent
func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"name":           -1,
		"email":          -1,
		"role":           -1,
		"school":         -1,
		"specialization": -1,
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "الاسم", "name":
			idx["name"] = i
		case "البريد الإلكتروني", "البريد", "email":
			idx["email"] = i
		case "الدور", "role":
			idx["role"] = i
		case "المدرسة", "school":
			idx["school"] = i
		case "التخصص", "specialization":
			idx["specialization"] = i
		}
	}
	return idx
}

// ────────────────────── ImportUsers ──────────────────────

// ImportUsers validates every row first, then creates the valid ones in one transaction
func (s *userService) ImportUsers(ctx context.Context, rows []ImportUserRow, callerID string) (*dto.ImportUserResponse, error) {
	resp := &dto.ImportUserResponse{Total: len(rows)}

	fail := func(row int, reason string) {
		resp.Failed++
		resp.Errors = append(resp.Errors, dto.ImportUserError{Row: row, Reason: reason})
	}

	type validatedRow struct {
		row      ImportUserRow
		password string
		hash     []byte
	}
	var valid []validatedRow
	seen := make(map[string]int)

	for _, row := range rows {
		if row.Name == "" || row.Email == "" {
			fail(row.Row, "حقول إلزامية فارغة")
			continue
		}
		email := strings.ToLower(strings.TrimSpace(row.Email))
		if err := rowValidator.Var(email, "required,email"); err != nil {
			fail(row.Row, fmt.Sprintf("بريد إلكتروني غير صالح: %s", row.Email))
			continue
		}
		if first, dup := seen[email]; dup {
			fail(row.Row, fmt.Sprintf("البريد مكرر في الصف %d", first))
			continue
		}
		if row.Role == "" {
			row.Role = model.RoleTeacher
		}
		if !validRole(row.Role) {
			fail(row.Row, fmt.Sprintf("دور غير صالح: %s", row.Role))
			continue
		}
		if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
			fail(row.Row, fmt.Sprintf("البريد الإلكتروني مستخدم مسبقاً: %s", row.Email))
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		password, err := generateTempPassword(10)
		if err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fail(row.Row, "تعذر تشفير كلمة المرور")
			continue
		}

		seen[email] = row.Row
		row.Email = email
		valid = append(valid, validatedRow{row: row, password: password, hash: hash})
	}

	if len(valid) == 0 {
		return resp, nil
	}

	created := make([]*model.User, 0, len(valid))
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for _, vr := range valid {
			user := &model.User{
				Name:               vr.row.Name,
				Email:              vr.row.Email,
				PasswordHash:       string(vr.hash),
				Role:               vr.row.Role,
				School:             vr.row.School,
				Specialization:     vr.row.Specialization,
				MustChangePassword: true,
			}
			user.CreatedBy = &callerID
			user.UpdatedBy = &callerID

			if err := tx.User.Create(ctx, user); err != nil {
				return fmt.Errorf("الصف %d: %w", vr.row.Row, err)
			}
			created = append(created, user)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("user import rolled back", zap.Error(err))
		return nil, err
	}

	for i, vr := range valid {
		resp.Success++
		resp.Credentials = append(resp.Credentials, dto.ImportedCredential{
			Row:          vr.row.Row,
			Email:        vr.row.Email,
			TempPassword: vr.password,
		})
		logDelivery(s.logger, "account_created", s.notifier.AccountCreated(ctx, created[i], vr.password))
	}

	s.logger.Info("users imported", zap.Int("success", resp.Success), zap.Int("failed", resp.Failed))
	return resp, nil
}

// ── helpers ──

func validRole(role string) bool {
	switch role {
	case model.RoleTeacher, model.RoleReviewer, model.RoleAdmin:
		return true
	}
	return false
}

func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:                 user.UserID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		School:             user.School,
		Specialization:     user.Specialization,
		MustChangePassword: user.MustChangePassword,
	}
	if !user.CreatedAt.IsZero() {
		resp.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

// generateTempPassword random password with at least one letter and one digit
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 8 {
		length = 8
	}

	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, err
		}
		return set[n.Int64()], nil
	}

	result := make([]byte, length)
	var err error
	if result[0], err = pick(letters); err != nil {
		return "", err
	}
	if result[1], err = pick(digits); err != nil {
		return "", err
	}
	for i := 2; i < length; i++ {
		if result[i], err = pick(all); err != nil {
			return "", err
		}
	}

	// Fisher-Yates
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}
