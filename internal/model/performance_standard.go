package model

import (
	"time"

	"gorm.io/datatypes"
)

// PerformanceStandard weighted top-level evaluation category.
// Weight keeps the display form, e.g. "10%".
type PerformanceStandard struct {
	StandardID        string                      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"standard_id"`
	Title             string                      `gorm:"type:varchar(200);not null"                     json:"title"`
	Weight            string                      `gorm:"type:varchar(10);not null"                      json:"weight"`
	Icon              string                      `gorm:"type:varchar(50);not null;default:''"           json:"icon"`
	Description       string                      `gorm:"type:text;not null;default:''"                  json:"description"`
	SuggestedEvidence datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"              json:"suggested_evidence"`
	SortOrder         int                         `gorm:"not null;default:0"                             json:"sort_order"`
	CreatedAt         time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt         time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName table name
func (PerformanceStandard) TableName() string { return "performance_standards" }
