package model

// Witness uploaded evidence attached to an indicator; the file itself lives in object storage
type Witness struct {
	WitnessID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"witness_id"`
	IndicatorID string `gorm:"type:uuid;not null;index"                       json:"indicator_id"`
	UserID      string `gorm:"type:uuid;not null"                             json:"user_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:text;not null;default:''"                  json:"description"`
	FileName    string `gorm:"type:varchar(255);not null"                     json:"file_name"`
	ContentType string `gorm:"type:varchar(127);not null"                     json:"content_type"`
	Size        int64  `gorm:"not null"                                       json:"size"`
	StorageKey  string `gorm:"type:varchar(512);not null"                     json:"-"`
	BaseModel
}

// TableName table name
func (Witness) TableName() string { return "witnesses" }
