package model

import "time"

// Role values stored in users.role
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleRecruiter = "recruiter"
)

// User an authenticated actor, maps to users
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	FirstName    string     `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null"                     json:"last_name"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'recruiter'"  json:"role"`
	TeamID       *string    `gorm:"type:uuid"                                      json:"team_id"`
	IsActive     bool       `gorm:"not null;default:true"                          json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	VersionedModel

	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
}

// TableName table name
func (User) TableName() string { return "users" }

// FullName "First Last", trimmed when either part is empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// TeamRef the team id or "" when unassigned.
func (u *User) TeamRef() string {
	if u.TeamID == nil {
		return ""
	}
	return *u.TeamID
}

// RowOwner / RowTeam let users pass through the visibility filter.
func (u User) RowOwner() string { return u.UserID }
func (u User) RowTeam() string  { return u.TeamRef() }
