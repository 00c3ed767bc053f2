package dto

// ── users ──

// UserListRequest list filters
type UserListRequest struct {
	PaginationRequest
	TeamID          string `form:"team_id"          binding:"omitempty,uuid"`
	Role            string `form:"role"             binding:"omitempty,oneof=admin manager recruiter"`
	Keyword         string `form:"keyword"          binding:"omitempty,max=50"`
	IncludeInactive bool   `form:"include_inactive"`
}

// CreateUserRequest admin creates an account
type CreateUserRequest struct {
	Email     string  `json:"email"      binding:"required,email,max=255"`
	FirstName string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string  `json:"last_name"  binding:"required,min=1,max=100"`
	Password  string  `json:"password"   binding:"required,min=6,max=72"`
	Role      string  `json:"role"       binding:"required,oneof=admin manager recruiter"`
	TeamID    *string `json:"team_id"    binding:"omitempty,uuid"`
}

// UpdateUserRequest admin edits an account.
// TeamID: absent leaves the team unchanged, "" clears it.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=100"`
	Role      *string `json:"role"       binding:"omitempty,oneof=admin manager recruiter"`
	TeamID    *string `json:"team_id"    binding:"omitempty,uuid"`
	IsActive  *bool   `json:"is_active"`
}

// SetActiveRequest activate or deactivate
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
