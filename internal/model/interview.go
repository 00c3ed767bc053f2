package model

import "time"

// Interview pipeline states; any state may move to any other
const (
	InterviewSubmitted = "submitted"
	InterviewScheduled = "scheduled"
	InterviewCompleted = "completed"
)

// InterviewStatuses accepted interview states
var InterviewStatuses = []string{InterviewSubmitted, InterviewScheduled, InterviewCompleted}

// InterviewSchedule a first-time interview on the FTI board, maps to interview_schedules
type InterviewSchedule struct {
	InterviewID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"interview_id"`
	CandidateName string     `gorm:"type:varchar(200);not null"                     json:"candidate_name"`
	Position      string     `gorm:"type:varchar(200);not null"                     json:"position"`
	Company       string     `gorm:"type:varchar(200);not null"                     json:"company"`
	InterviewAt   *time.Time `json:"interview_at"`
	Status        string     `gorm:"type:varchar(20);not null;default:'submitted'"  json:"status"`
	RecruiterID   string     `gorm:"type:uuid;not null"                             json:"recruiter_id"`
	TeamID        string     `gorm:"type:uuid;not null"                             json:"team_id"`
	Notes         string     `gorm:"type:text;not null;default:''"                  json:"notes"`
	BaseModel

	Recruiter *User `gorm:"foreignKey:RecruiterID;references:UserID" json:"recruiter,omitempty"`
	Team      *Team `gorm:"foreignKey:TeamID;references:TeamID"     json:"team,omitempty"`
}

// TableName table name
func (InterviewSchedule) TableName() string { return "interview_schedules" }

func (i InterviewSchedule) RowOwner() string { return i.RecruiterID }
func (i InterviewSchedule) RowTeam() string  { return i.TeamID }

// IsInterviewStatus reports whether s is a known interview state.
func IsInterviewStatus(s string) bool {
	for _, v := range InterviewStatuses {
		if v == s {
			return true
		}
	}
	return false
}
