package dto

import "recruit-tracker/internal/analytics"

// ── forecast ──

// ForecastRequest any field left out falls back to the saved settings
type ForecastRequest struct {
	TargetRevenue             *float64 `json:"target_revenue"`
	AvgPlacementFee           *float64 `json:"avg_placement_fee"`
	InterviewsPerPlacement    *float64 `json:"interviews_per_placement"`
	SubmissionsPerInterview   *float64 `json:"submissions_per_interview"`
	JobOrdersPerSubmission    *float64 `json:"job_orders_per_submission"`
	PresentationsAPerJobOrder *float64 `json:"presentations_a_per_job_order"`
	PresentationsBPerJobOrder *float64 `json:"presentations_b_per_job_order"`
}

// SaveForecastRequest turns a forecast into monthly goals for one team
type SaveForecastRequest struct {
	ForecastRequest
	TeamID string `json:"team_id" binding:"omitempty,uuid"` // admins only; defaults to the caller's team
	Year   int    `json:"year"    binding:"omitempty,min=2000,max=2100"`
	Month  int    `json:"month"   binding:"omitempty,min=1,max=12"`
}

// ForecastInputs the resolved inputs a forecast ran with
type ForecastInputs struct {
	TargetRevenue   float64          `json:"target_revenue"`
	AvgPlacementFee float64          `json:"avg_placement_fee"`
	Ratios          analytics.Ratios `json:"ratios"`
}

// TeamAllocation an equal share of the funnel for one team
type TeamAllocation struct {
	TeamID        string           `json:"team_id"`
	TeamName      string           `json:"team_name"`
	TargetRevenue float64          `json:"target_revenue"`
	Funnel        analytics.Funnel `json:"funnel"`
}

// ForecastResponse computed funnel
type ForecastResponse struct {
	Inputs      ForecastInputs   `json:"inputs"`
	Funnel      analytics.Funnel `json:"funnel"`
	Allocations []TeamAllocation `json:"allocations"`
}

// SaveForecastResponse the goals written
type SaveForecastResponse struct {
	TeamID string         `json:"team_id"`
	Year   int            `json:"year"`
	Month  int            `json:"month"`
	Goals  []GoalResponse `json:"goals"`
}

// UpdateForecastSettingsRequest partial settings update
type UpdateForecastSettingsRequest struct {
	TargetRevenue             *float64 `json:"target_revenue"                binding:"omitempty,min=0"`
	AvgPlacementFee           *float64 `json:"avg_placement_fee"             binding:"omitempty,gt=0"`
	InterviewsPerPlacement    *float64 `json:"interviews_per_placement"      binding:"omitempty,gt=0"`
	SubmissionsPerInterview   *float64 `json:"submissions_per_interview"     binding:"omitempty,gt=0"`
	JobOrdersPerSubmission    *float64 `json:"job_orders_per_submission"     binding:"omitempty,gt=0"`
	PresentationsAPerJobOrder *float64 `json:"presentations_a_per_job_order" binding:"omitempty,gt=0"`
	PresentationsBPerJobOrder *float64 `json:"presentations_b_per_job_order" binding:"omitempty,gt=0"`
}

// ForecastSettingsResponse stored defaults
type ForecastSettingsResponse struct {
	ForecastInputs
	UpdatedAt string `json:"updated_at,omitempty"`
}
