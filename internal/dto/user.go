package dto

// ── user management DTOs ──

// CreateUserRequest admin creates an account
type CreateUserRequest struct {
	Name           string `json:"name"           binding:"required,min=2,max=100"`
	Email          string `json:"email"          binding:"required,email"`
	Role           string `json:"role"           binding:"required,oneof=teacher reviewer admin"`
	School         string `json:"school"         binding:"omitempty,max=150"`
	Specialization string `json:"specialization" binding:"omitempty,max=100"`
}

// CreateUserResponse the new account plus its one-time password
type CreateUserResponse struct {
	User         *UserResponse `json:"user"`
	TempPassword string        `json:"temp_password"`
}

// UserListRequest user list query
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=teacher reviewer admin"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// ResetPasswordResponse temporary password
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}

// ImportUserResponse bulk import outcome
type ImportUserResponse struct {
	Total       int                  `json:"total"`
	Success     int                  `json:"success"`
	Failed      int                  `json:"failed"`
	Errors      []ImportUserError    `json:"errors,omitempty"`
	Credentials []ImportedCredential `json:"credentials,omitempty"`
}

// ImportedCredential one-time password of an imported account
type ImportedCredential struct {
	Row          int    `json:"row"`
	Email        string `json:"email"`
	TempPassword string `json:"temp_password"`
}

// ImportUserError failed row
type ImportUserError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
