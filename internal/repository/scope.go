package repository

import (
	"time"

	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
)

// applyScope translates a visibility scope into SQL on the given owner/team columns.
// A none scope matches no rows.
func applyScope(db *gorm.DB, s analytics.Scope, ownerCol, teamCol string) *gorm.DB {
	switch s.Kind {
	case analytics.ScopeAll:
		return db
	case analytics.ScopeTeam:
		if s.TeamID != "" {
			return db.Where(teamCol+" = ?", s.TeamID)
		}
	case analytics.ScopeOwner:
		if s.OwnerID != "" {
			return db.Where(ownerCol+" = ?", s.OwnerID)
		}
	}
	return db.Where("1 = 0")
}

// applyDateRange adds inclusive bounds; zero times are skipped.
func applyDateRange(db *gorm.DB, col string, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		db = db.Where(col+" >= ?", from)
	}
	if !to.IsZero() {
		db = db.Where(col+" <= ?", to)
	}
	return db
}
