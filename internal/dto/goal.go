package dto

// ── goals ──

// GoalListRequest filters; month absent means every month plus annual goals
type GoalListRequest struct {
	Year   int    `form:"year"    binding:"omitempty,min=2000,max=2100"`
	Month  *int   `form:"month"   binding:"omitempty,min=1,max=12"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	TeamID string `form:"team_id" binding:"omitempty,uuid"`
}

// UpsertGoalRequest create or replace the goal at (user, team, year, month, metric)
type UpsertGoalRequest struct {
	UserID      *string `json:"user_id"      binding:"omitempty,uuid"`
	TeamID      *string `json:"team_id"      binding:"omitempty,uuid"`
	Year        int     `json:"year"         binding:"required,min=2000,max=2100"`
	Month       *int    `json:"month"        binding:"omitempty,min=1,max=12"`
	MetricType  string  `json:"metric_type"  binding:"required,oneof=sales fti jo rp mp subs placements"`
	TargetValue float64 `json:"target_value" binding:"min=0"`
}

// GoalResponse a stored goal
type GoalResponse struct {
	ID          string  `json:"id"`
	UserID      *string `json:"user_id"`
	TeamID      *string `json:"team_id"`
	Year        int     `json:"year"`
	Month       *int    `json:"month"`
	MetricType  string  `json:"metric_type"`
	TargetValue float64 `json:"target_value"`
	UpdatedAt   string  `json:"updated_at"`
}
