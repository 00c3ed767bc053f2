package model

// Team a recruiting team, maps to teams. Deleted teams keep their row so
// history rows that reference them stay valid.
type Team struct {
	TeamID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	Name       string    `gorm:"type:varchar(100);not null"                     json:"name"`
	ManagerIDs UUIDArray `gorm:"type:uuid[];not null;default:'{}'"              json:"manager_ids"`
	VersionedModel
	SoftDeleteModel
}

// TableName table name
func (Team) TableName() string { return "teams" }

// IsManagedBy reports whether userID is listed as a manager of the team.
func (t *Team) IsManagedBy(userID string) bool { return t.ManagerIDs.Contains(userID) }
