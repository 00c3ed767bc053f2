package dto

import "github.com/shopspring/decimal"

// ── placements ──

// PlacementListRequest filters
type PlacementListRequest struct {
	Year   int    `form:"year"    binding:"omitempty,min=2000,max=2100"`
	TeamID string `form:"team_id" binding:"omitempty,uuid"`
}

// CreatePlacementRequest a closed hire on the caller's team
type CreatePlacementRequest struct {
	CandidateName string          `json:"candidate_name" binding:"required,min=1,max=200"`
	Position      string          `json:"position"       binding:"required,min=1,max=200"`
	Company       string          `json:"company"        binding:"required,min=1,max=200"`
	PlacementDate string          `json:"placement_date" binding:"required,datetime=2006-01-02"`
	FeeAmount     decimal.Decimal `json:"fee_amount"`
}

// PlacementResponse one placement
type PlacementResponse struct {
	ID            string          `json:"id"`
	CandidateName string          `json:"candidate_name"`
	Position      string          `json:"position"`
	Company       string          `json:"company"`
	PlacementDate string          `json:"placement_date"`
	FeeAmount     decimal.Decimal `json:"fee_amount"`
	RecruiterID   string          `json:"recruiter_id"`
	TeamID        string          `json:"team_id"`
	CreatedAt     string          `json:"created_at"`
}
