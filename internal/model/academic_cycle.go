package model

import "time"

// AcademicCycle one school-year evaluation period.
// At most one row has IsActive set; a locked cycle is read-only.
type AcademicCycle struct {
	CycleID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cycle_id"`
	Name      string    `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate time.Time `gorm:"not null"                                       json:"start_date"`
	EndDate   time.Time `gorm:"not null"                                       json:"end_date"`
	IsActive  bool      `gorm:"not null;default:false"                         json:"is_active"`
	IsLocked  bool      `gorm:"not null;default:false"                         json:"is_locked"`
	BaseModel
}

// TableName table name
func (AcademicCycle) TableName() string { return "academic_cycles" }
