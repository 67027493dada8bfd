package model

// Roles
const (
	RoleTeacher  = "teacher"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

// User users table
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email              string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'teacher'"    json:"role"`
	School             string `gorm:"type:varchar(150);not null;default:''"          json:"school"`
	Specialization     string `gorm:"type:varchar(100);not null;default:''"          json:"specialization"`
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	VersionedModel
}

// TableName table name
func (User) TableName() string { return "users" }
