package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/model"
)

// PlacementFilter placement query; From/To bound placement_date
type PlacementFilter struct {
	Scope  analytics.Scope
	TeamID string
	From   time.Time
	To     time.Time
}

// PlacementRepository placement data access
type PlacementRepository interface {
	Create(ctx context.Context, p *model.Placement) error
	List(ctx context.Context, filter PlacementFilter) ([]model.Placement, error)
}

type placementRepo struct {
	db *gorm.DB
}

// NewPlacementRepo creates a PlacementRepository
func NewPlacementRepo(db *gorm.DB) PlacementRepository {
	return &placementRepo{db: db}
}

func (r *placementRepo) Create(ctx context.Context, p *model.Placement) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *placementRepo) List(ctx context.Context, filter PlacementFilter) ([]model.Placement, error) {
	var items []model.Placement

	db := applyScope(r.db.WithContext(ctx), filter.Scope, "recruiter_id", "team_id")
	if filter.TeamID != "" {
		db = db.Where("team_id = ?", filter.TeamID)
	}
	db = applyDateRange(db, "placement_date", filter.From, filter.To)

	err := db.Order("placement_date DESC, created_at DESC").Find(&items).Error
	return items, err
}
