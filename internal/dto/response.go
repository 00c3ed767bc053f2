package dto

// ── auth responses ──

// TokenResponse token pair
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"` // omitted in cookie mode
	ExpiresIn    int          `json:"expires_in"`              // access token lifetime in seconds
	RememberMe   bool         `json:"remember_me"`
	User         UserResponse `json:"user"`
}

// ── users ──

// UserResponse a user without credentials
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	TeamID      *string    `json:"team_id"`
	Team        *TeamBrief `json:"team,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *string    `json:"last_login_at"`
	CreatedAt   string     `json:"created_at"`
}

// UserBrief compact user reference
type UserBrief struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// TeamBrief compact team reference
type TeamBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ── pagination ──

// PaginationRequest common paging parameters
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage page number with default
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize page size with default
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset row offset
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
