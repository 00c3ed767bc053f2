package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placement a closed hire with its fee, maps to placements
type Placement struct {
	PlacementID   string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"placement_id"`
	CandidateName string          `gorm:"type:varchar(200);not null"                     json:"candidate_name"`
	Position      string          `gorm:"type:varchar(200);not null"                     json:"position"`
	Company       string          `gorm:"type:varchar(200);not null"                     json:"company"`
	PlacementDate time.Time       `gorm:"type:date;not null"                             json:"placement_date"`
	FeeAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"          json:"fee_amount"`
	RecruiterID   string          `gorm:"type:uuid;not null"                             json:"recruiter_id"`
	TeamID        string          `gorm:"type:uuid;not null"                             json:"team_id"`
	BaseModel
}

// TableName table name
func (Placement) TableName() string { return "placements" }

func (p Placement) RowOwner() string { return p.RecruiterID }
func (p Placement) RowTeam() string  { return p.TeamID }
