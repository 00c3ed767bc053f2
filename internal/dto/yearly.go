package dto

import "recruit-tracker/internal/analytics"

// ── yearly tracking ──

// YearlyResponse per-team monthly grid plus overall YTD
type YearlyResponse struct {
	Year   int                   `json:"year"`
	Months []string              `json:"months"`
	Teams  []analytics.TeamYear  `json:"teams"`
	Totals analytics.MonthBucket `json:"totals"`
}
