package model

// Indicator a trackable performance item recorded by a teacher under a standard
type Indicator struct {
	IndicatorID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"indicator_id"`
	CycleID     string `gorm:"type:uuid;not null;index"                       json:"cycle_id"`
	UserID      string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	StandardID  string `gorm:"type:uuid;not null"                             json:"standard_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:text;not null;default:''"                  json:"description"`
	SoftDeleteModel

	Criteria []Criterion `gorm:"foreignKey:IndicatorID;references:IndicatorID" json:"criteria,omitempty"`
}

// TableName table name
func (Indicator) TableName() string { return "indicators" }

// Completion share of completed criteria in [0,1]; 0 without criteria
func (i *Indicator) Completion() float64 {
	if len(i.Criteria) == 0 {
		return 0
	}
	done := 0
	for _, c := range i.Criteria {
		if c.IsCompleted {
			done++
		}
	}
	return float64(done) / float64(len(i.Criteria))
}

// Criterion one checkable item of an indicator
type Criterion struct {
	CriterionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"criterion_id"`
	IndicatorID string `gorm:"type:uuid;not null;index"                       json:"indicator_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	IsCompleted bool   `gorm:"not null;default:false"                         json:"is_completed"`
	SortOrder   int    `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

// TableName table name
func (Criterion) TableName() string { return "criteria" }
