package repository

import (
	"context"

	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/model"
)

// DealFilter pipeline query on stored columns
type DealFilter struct {
	Scope  analytics.Scope
	TeamID string
}

// DealRepository deal data access
type DealRepository interface {
	Create(ctx context.Context, deal *model.Deal) error
	GetByID(ctx context.Context, id string) (*model.Deal, error)
	UpdateStatus(ctx context.Context, id, status, updatedBy string) error
	List(ctx context.Context, filter DealFilter) ([]model.Deal, error)
}

type dealRepo struct {
	db *gorm.DB
}

// NewDealRepo creates a DealRepository
func NewDealRepo(db *gorm.DB) DealRepository {
	return &dealRepo{db: db}
}

func (r *dealRepo) Create(ctx context.Context, deal *model.Deal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

func (r *dealRepo) GetByID(ctx context.Context, id string) (*model.Deal, error) {
	var deal model.Deal
	err := r.db.WithContext(ctx).
		Preload("Recruiter").
		Preload("Team").
		Where("deal_id = ?", id).
		First(&deal).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *dealRepo) UpdateStatus(ctx context.Context, id, status, updatedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Deal{}).
		Where("deal_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List earliest due date first; deals without a due date last.
func (r *dealRepo) List(ctx context.Context, filter DealFilter) ([]model.Deal, error) {
	var deals []model.Deal

	db := applyScope(r.db.WithContext(ctx), filter.Scope, "recruiter_id", "team_id")
	if filter.TeamID != "" {
		db = db.Where("team_id = ?", filter.TeamID)
	}

	err := db.Preload("Recruiter").
		Preload("Team").
		Order("payment_due_date ASC NULLS LAST, created_at ASC").
		Find(&deals).Error
	return deals, err
}
