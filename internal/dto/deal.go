package dto

import "github.com/shopspring/decimal"

// ── pipeline ──

// DealListRequest filters; status=overdue matches the derived value
type DealListRequest struct {
	TeamID string `form:"team_id" binding:"omitempty,uuid"`
	Status string `form:"status"  binding:"omitempty,oneof=pending invoiced paid overdue"`
}

// CreateDealRequest new deal on the caller's team
type CreateDealRequest struct {
	Company         string          `json:"company"          binding:"required,min=1,max=200"`
	JobTitle        string          `json:"job_title"        binding:"required,min=1,max=200"`
	CandidateName   string          `json:"candidate_name"   binding:"required,min=1,max=200"`
	Amount          decimal.Decimal `json:"amount"`
	InvoiceNumber   *string         `json:"invoice_number"   binding:"omitempty,max=100"`
	InvoiceDate     *string         `json:"invoice_date"     binding:"omitempty,datetime=2006-01-02"`
	PaymentDueDate  *string         `json:"payment_due_date" binding:"omitempty,datetime=2006-01-02"`
	Classification  string          `json:"classification"   binding:"required"`
	IsRetainer      bool            `json:"is_retainer"`
	CandidateSource string          `json:"candidate_source" binding:"required"`
	Status          string          `json:"status"           binding:"omitempty,oneof=pending invoiced paid overdue"`
	Notes           string          `json:"notes"            binding:"max=2000"`
}

// UpdateDealStatusRequest status change
type UpdateDealStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending invoiced paid overdue"`
}

// DealResponse one deal; Status is the effective (derived) value
type DealResponse struct {
	ID              string          `json:"id"`
	Company         string          `json:"company"`
	JobTitle        string          `json:"job_title"`
	CandidateName   string          `json:"candidate_name"`
	Amount          decimal.Decimal `json:"amount"`
	InvoiceNumber   *string         `json:"invoice_number"`
	InvoiceDate     *string         `json:"invoice_date"`
	PaymentDueDate  *string         `json:"payment_due_date"`
	Classification  string          `json:"classification"`
	IsRetainer      bool            `json:"is_retainer"`
	CandidateSource string          `json:"candidate_source"`
	Status          string          `json:"status"`
	IsOverdue       bool            `json:"is_overdue"`
	RecruiterID     string          `json:"recruiter_id"`
	Recruiter       *UserBrief      `json:"recruiter,omitempty"`
	TeamID          string          `json:"team_id"`
	Team            *TeamBrief      `json:"team,omitempty"`
	Notes           string          `json:"notes"`
	CreatedAt       string          `json:"created_at"`
}

// DealTotals amount per effective status
type DealTotals struct {
	Count    int             `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
	Pending  decimal.Decimal `json:"pending"`
	Invoiced decimal.Decimal `json:"invoiced"`
	Paid     decimal.Decimal `json:"paid"`
	Overdue  decimal.Decimal `json:"overdue"`
}

// DealListResponse pipeline ordered by due date
type DealListResponse struct {
	Items  []DealResponse `json:"items"`
	Totals DealTotals     `json:"totals"`
}

// DealOptions fixed enumerations for form pickers
type DealOptions struct {
	Classifications  []string `json:"classifications"`
	CandidateSources []string `json:"candidate_sources"`
	Statuses         []string `json:"statuses"`
}
