package dto

import "time"

// ── FTI board ──

// InterviewListRequest filters
type InterviewListRequest struct {
	TeamID string `form:"team_id" binding:"omitempty,uuid"`
	Status string `form:"status"  binding:"omitempty,oneof=submitted scheduled completed"`
}

// CreateInterviewRequest new interview on the caller's team
type CreateInterviewRequest struct {
	CandidateName string     `json:"candidate_name" binding:"required,min=1,max=200"`
	Position      string     `json:"position"       binding:"required,min=1,max=200"`
	Company       string     `json:"company"        binding:"required,min=1,max=200"`
	InterviewAt   *time.Time `json:"interview_at"`
	Status        string     `json:"status"         binding:"omitempty,oneof=submitted scheduled completed"`
	Notes         string     `json:"notes"          binding:"max=2000"`
}

// UpdateInterviewStatusRequest any state to any state
type UpdateInterviewStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=submitted scheduled completed"`
}

// InterviewResponse one interview
type InterviewResponse struct {
	ID            string     `json:"id"`
	CandidateName string     `json:"candidate_name"`
	Position      string     `json:"position"`
	Company       string     `json:"company"`
	InterviewAt   *string    `json:"interview_at"`
	Status        string     `json:"status"`
	RecruiterID   string     `json:"recruiter_id"`
	Recruiter     *UserBrief `json:"recruiter,omitempty"`
	TeamID        string     `json:"team_id"`
	Team          *TeamBrief `json:"team,omitempty"`
	Notes         string     `json:"notes"`
	CreatedAt     string     `json:"created_at"`
	UpdatedAt     string     `json:"updated_at"`
}

// InterviewListResponse board contents with a count per status
type InterviewListResponse struct {
	Items  []InterviewResponse `json:"items"`
	Counts map[string]int      `json:"counts"`
	Total  int                 `json:"total"`
}
