package model

// Metric types a goal can target
const (
	MetricSales      = "sales"
	MetricFTI        = "fti"
	MetricJobOrders  = "jo"
	MetricRP         = "rp"
	MetricMP         = "mp"
	MetricSubs       = "subs"
	MetricPlacements = "placements"
)

// MetricTypes every accepted goal metric, in display order
var MetricTypes = []string{
	MetricSales, MetricFTI, MetricJobOrders, MetricRP, MetricMP, MetricSubs, MetricPlacements,
}

// Goal a target for a user or team over a year or a single month, maps to goals
type Goal struct {
	GoalID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"goal_id"`
	UserID      *string `gorm:"type:uuid"                                      json:"user_id"`
	TeamID      *string `gorm:"type:uuid"                                      json:"team_id"`
	Year        int     `gorm:"not null"                                       json:"year"`
	Month       *int    `json:"month"`
	MetricType  string  `gorm:"type:varchar(20);not null"                      json:"metric_type"`
	TargetValue float64 `gorm:"type:numeric(14,2);not null;default:0"          json:"target_value"`
	BaseModel
}

// TableName table name
func (Goal) TableName() string { return "goals" }

// IsMetricType reports whether m is a known goal metric.
func IsMetricType(m string) bool {
	for _, v := range MetricTypes {
		if v == m {
			return true
		}
	}
	return false
}

// RowOwner "" for team-level goals
func (g Goal) RowOwner() string {
	if g.UserID == nil {
		return ""
	}
	return *g.UserID
}

func (g Goal) RowTeam() string {
	if g.TeamID == nil {
		return ""
	}
	return *g.TeamID
}
