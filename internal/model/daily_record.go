package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRecord one recruiter's activity counters for one calendar day, maps to daily_records
type DailyRecord struct {
	RecordID        string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	UserID          string          `gorm:"type:uuid;not null"                             json:"user_id"`
	TeamID          string          `gorm:"type:uuid;not null"                             json:"team_id"`
	RecordDate      time.Time       `gorm:"type:date;not null"                             json:"record_date"`
	PresentationsA  int             `gorm:"not null;default:0"                             json:"presentations_a"`
	PresentationsB  int             `gorm:"not null;default:0"                             json:"presentations_b"`
	Submissions     int             `gorm:"not null;default:0"                             json:"submissions"`
	JobOrders       int             `gorm:"not null;default:0"                             json:"job_orders"`
	Interviews      int             `gorm:"not null;default:0"                             json:"interviews"`
	PlacementCount  int             `gorm:"not null;default:0"                             json:"placement_count"`
	PlacementAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"          json:"placement_amount"`
	Notes           string          `gorm:"type:text;not null;default:''"                  json:"notes"`
	BaseModel
}

// TableName table name
func (DailyRecord) TableName() string { return "daily_records" }

func (r DailyRecord) RowOwner() string { return r.UserID }
func (r DailyRecord) RowTeam() string  { return r.TeamID }
