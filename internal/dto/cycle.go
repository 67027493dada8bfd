package dto

// ── academic cycle DTOs ──

// CreateCycleRequest create an (inactive) cycle
type CreateCycleRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	StartDate string `json:"start_date" binding:"required"` // "2025-08-24"
	EndDate   string `json:"end_date"   binding:"required"`
}

// UpdateCycleRequest partial update
type UpdateCycleRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// LockCycleRequest lock or unlock
type LockCycleRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// CycleResponse cycle view
type CycleResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsActive  bool   `json:"is_active"`
	IsLocked  bool   `json:"is_locked"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
