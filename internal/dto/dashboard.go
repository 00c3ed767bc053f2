package dto

import "recruit-tracker/internal/analytics"

// ── dashboard ──

// YearQuery a year, defaulting to the current one
type YearQuery struct {
	Year   int    `form:"year"    binding:"omitempty,min=2000,max=2100"`
	TeamID string `form:"team_id" binding:"omitempty,uuid"`
}

// KPI one year-to-date card
type KPI struct {
	Label   string           `json:"label"`
	Metric  string           `json:"metric"`
	Actual  float64          `json:"actual"`
	Goal    float64          `json:"goal"`
	Percent float64          `json:"percent"`
	Status  analytics.Status `json:"status"`
}

// TeamPerformance one team against its YTD goals, ranked by sales ratio
type TeamPerformance struct {
	Rank         int              `json:"rank"`
	TeamID       string           `json:"team_id"`
	TeamName     string           `json:"team_name"`
	SalesActual  float64          `json:"sales_actual"`
	SalesGoal    float64          `json:"sales_goal"`
	SalesPercent float64          `json:"sales_percent"`
	FTIActual    float64          `json:"fti_actual"`
	FTIGoal      float64          `json:"fti_goal"`
	FTIPercent   float64          `json:"fti_percent"`
	JOActual     float64          `json:"jo_actual"`
	JOGoal       float64          `json:"jo_goal"`
	JOPercent    float64          `json:"jo_percent"`
	Status       analytics.Status `json:"status"`
}

// TopPerformer an active user ordered by YTD presentations
type TopPerformer struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	TeamName string `json:"team_name"`
	RPTotal  int    `json:"rp_total"`
}

// DashboardResponse dashboard payload
type DashboardResponse struct {
	Year          int               `json:"year"`
	From          string            `json:"from"`
	To            string            `json:"to"`
	KPIs          []KPI             `json:"kpis"`
	Teams         []TeamPerformance `json:"teams"`
	TopPerformers []TopPerformer    `json:"top_performers"`
}
