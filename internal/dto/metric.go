package dto

import (
	"github.com/shopspring/decimal"

	"recruit-tracker/internal/analytics"
)

// ── daily metrics ──

// DailyQuery one day, defaults to today
type DailyQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// SaveDailyRequest upsert of the caller's record for one day
type SaveDailyRequest struct {
	Date            string          `json:"date"             binding:"required,datetime=2006-01-02"`
	PresentationsA  int             `json:"presentations_a"  binding:"min=0"`
	PresentationsB  int             `json:"presentations_b"  binding:"min=0"`
	Submissions     int             `json:"submissions"      binding:"min=0"`
	JobOrders       int             `json:"job_orders"       binding:"min=0"`
	Interviews      int             `json:"interviews"       binding:"min=0"`
	PlacementCount  int             `json:"placement_count"  binding:"min=0"`
	PlacementAmount decimal.Decimal `json:"placement_amount"`
	Notes           string          `json:"notes"            binding:"max=2000"`
}

// DailyRecordResponse one day's counters; Saved is false when nothing was recorded yet
type DailyRecordResponse struct {
	Date            string          `json:"date"`
	PresentationsA  int             `json:"presentations_a"`
	PresentationsB  int             `json:"presentations_b"`
	Submissions     int             `json:"submissions"`
	JobOrders       int             `json:"job_orders"`
	Interviews      int             `json:"interviews"`
	PlacementCount  int             `json:"placement_count"`
	PlacementAmount decimal.Decimal `json:"placement_amount"`
	Notes           string          `json:"notes"`
	Saved           bool            `json:"saved"`
	UpdatedAt       string          `json:"updated_at,omitempty"`
}

// MonthQuery year/month, defaulting to the current month
type MonthQuery struct {
	Year  int `form:"year"  binding:"omitempty,min=2000,max=2100"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// MetricProgress actual against goal for one metric
type MetricProgress struct {
	Metric  string           `json:"metric"`
	Actual  float64          `json:"actual"`
	Goal    float64          `json:"goal"`
	Percent float64          `json:"percent"`
	Status  analytics.Status `json:"status"`
}

// MonthlyResponse the caller's month: totals, progress per metric and a daily series
type MonthlyResponse struct {
	Year       int                    `json:"year"`
	Month      int                    `json:"month"`
	Days       int                    `json:"days"`
	Totals     analytics.Totals       `json:"totals"`
	Goals      map[string]float64     `json:"goals"`
	DailyGoals map[string]float64     `json:"daily_goals"`
	Progress   []MetricProgress       `json:"progress"`
	Series     []analytics.DailyPoint `json:"series"`
}

// RankingEntry one user in the monthly ranking
type RankingEntry struct {
	Rank     int              `json:"rank"`
	UserID   string           `json:"user_id"`
	FullName string           `json:"full_name"`
	TeamID   string           `json:"team_id"`
	Totals   analytics.Totals `json:"totals"`
	Actual   float64          `json:"actual"`
	Goal     float64          `json:"goal"`
	Percent  float64          `json:"percent"`
	Status   analytics.Status `json:"status"`
}

// RankingsResponse visible active users ranked on one metric
type RankingsResponse struct {
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Metric  string         `json:"metric"`
	Entries []RankingEntry `json:"entries"`
}
