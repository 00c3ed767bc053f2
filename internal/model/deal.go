package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal payment states. DealOverdue is derived from the due date and is never written.
const (
	DealPending  = "pending"
	DealInvoiced = "invoiced"
	DealPaid     = "paid"
	DealOverdue  = "overdue"
)

// DealClassifications fixed classification values
var DealClassifications = []string{
	"Candidate Sourced 25%",
	"Candidate Submission 25%",
	"Client MP 25%",
	"Client JO 25%",
}

// CandidateSources fixed candidate source values
var CandidateSources = []string{
	"ATS",
	"LinkedIn Email",
	"LinkedIn CR Msg",
	"Zoominfo Cold Call",
	"Reply from Talent Bulletin",
	"Referral",
	"Applied via Website",
}

// Deal a billable placement in the payment pipeline, maps to deals
type Deal struct {
	DealID          string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"deal_id"`
	Company         string          `gorm:"type:varchar(200);not null"                     json:"company"`
	JobTitle        string          `gorm:"type:varchar(200);not null"                     json:"job_title"`
	CandidateName   string          `gorm:"type:varchar(200);not null"                     json:"candidate_name"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"          json:"amount"`
	InvoiceNumber   *string         `gorm:"type:varchar(100)"                              json:"invoice_number"`
	InvoiceDate     *time.Time      `gorm:"type:date"                                      json:"invoice_date"`
	PaymentDueDate  *time.Time      `gorm:"type:date"                                      json:"payment_due_date"`
	Classification  string          `gorm:"type:varchar(50);not null"                      json:"classification"`
	IsRetainer      bool            `gorm:"not null;default:false"                         json:"is_retainer"`
	CandidateSource string          `gorm:"type:varchar(50);not null"                      json:"candidate_source"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	RecruiterID     string          `gorm:"type:uuid;not null"                             json:"recruiter_id"`
	TeamID          string          `gorm:"type:uuid;not null"                             json:"team_id"`
	Notes           string          `gorm:"type:text;not null;default:''"                  json:"notes"`
	BaseModel

	Recruiter *User `gorm:"foreignKey:RecruiterID;references:UserID" json:"recruiter,omitempty"`
	Team      *Team `gorm:"foreignKey:TeamID;references:TeamID"     json:"team,omitempty"`
}

// TableName table name
func (Deal) TableName() string { return "deals" }

func (d Deal) RowOwner() string { return d.RecruiterID }
func (d Deal) RowTeam() string  { return d.TeamID }

// EffectiveStatus the status shown to users on the given day.
// A deal is overdue when its due date is strictly before today and it is not paid.
// A stored "overdue" from older data falls back to invoiced/pending when the rule disagrees.
func (d *Deal) EffectiveStatus(today time.Time) string {
	if d.Status == DealPaid {
		return DealPaid
	}
	if d.PaymentDueDate != nil && dateOnly(*d.PaymentDueDate).Before(dateOnly(today)) {
		return DealOverdue
	}
	if d.Status == DealOverdue {
		if d.InvoiceNumber != nil && *d.InvoiceNumber != "" {
			return DealInvoiced
		}
		return DealPending
	}
	return d.Status
}

// IsWritableDealStatus reports whether s may be stored.
func IsWritableDealStatus(s string) bool {
	return s == DealPending || s == DealInvoiced || s == DealPaid
}

// IsDealClassification reports whether c is a fixed classification value.
func IsDealClassification(c string) bool { return contains(DealClassifications, c) }

// IsCandidateSource reports whether s is a fixed candidate source.
func IsCandidateSource(s string) bool { return contains(CandidateSources, s) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
