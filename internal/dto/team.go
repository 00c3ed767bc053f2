package dto

// ── teams ──

// CreateTeamRequest create payload
type CreateTeamRequest struct {
	Name       string   `json:"name"        binding:"required,min=1,max=100"`
	ManagerIDs []string `json:"manager_ids" binding:"omitempty,dive,uuid"`
}

// UpdateTeamRequest partial update; a present manager_ids replaces the whole set
type UpdateTeamRequest struct {
	Name       *string  `json:"name"        binding:"omitempty,min=1,max=100"`
	ManagerIDs []string `json:"manager_ids" binding:"omitempty,dive,uuid"`
	Version    int      `json:"version"     binding:"omitempty,min=1"`
}

// TeamResponse team with its managers
type TeamResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ManagerIDs  []string    `json:"manager_ids"`
	Managers    []UserBrief `json:"managers"`
	MemberCount int64       `json:"member_count"`
	Version     int         `json:"version"`
	CreatedAt   string      `json:"created_at"`
}
