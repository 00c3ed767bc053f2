package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/model"
)

// GoalFilter goal query
type GoalFilter struct {
	Scope       analytics.Scope
	Year        int
	Month       *int // nil: any month
	AnnualOnly  bool // month IS NULL
	UserID      string
	TeamID      string
	TeamLevel   bool // user_id IS NULL
	MetricTypes []string
}

// GoalRepository goal data access
type GoalRepository interface {
	Upsert(ctx context.Context, goal *model.Goal) error
	GetByID(ctx context.Context, id string) (*model.Goal, error)
	List(ctx context.Context, filter GoalFilter) ([]model.Goal, error)
	Delete(ctx context.Context, id string) error
}

type goalRepo struct {
	db *gorm.DB
}

// NewGoalRepo creates a GoalRepository
func NewGoalRepo(db *gorm.DB) GoalRepository {
	return &goalRepo{db: db}
}

// whereKey matches the (user, team, year, month, metric) key with NULLs compared as equal.
func whereKey(db *gorm.DB, g *model.Goal) *gorm.DB {
	db = nullableEq(db, "user_id", g.UserID)
	db = nullableEq(db, "team_id", g.TeamID)
	if g.Month == nil {
		db = db.Where("month IS NULL")
	} else {
		db = db.Where("month = ?", *g.Month)
	}
	return db.Where("year = ? AND metric_type = ?", g.Year, g.MetricType)
}

func nullableEq(db *gorm.DB, col string, v *string) *gorm.DB {
	if v == nil {
		return db.Where(col + " IS NULL")
	}
	return db.Where(col+" = ?", *v)
}

// Upsert creates the goal or overwrites the target of the one sharing its key.
func (r *goalRepo) Upsert(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Goal
		err := whereKey(tx, goal).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(goal).Error
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"target_value": goal.TargetValue,
			"updated_by":   goal.UpdatedBy,
			"updated_at":   gorm.Expr("NOW()"),
		}).Error; err != nil {
			return err
		}
		goal.GoalID = existing.GoalID
		goal.CreatedAt = existing.CreatedAt
		goal.CreatedBy = existing.CreatedBy
		return nil
	})
}

func (r *goalRepo) GetByID(ctx context.Context, id string) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.WithContext(ctx).
		Where("goal_id = ?", id).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepo) List(ctx context.Context, filter GoalFilter) ([]model.Goal, error) {
	var goals []model.Goal

	db := applyScope(r.db.WithContext(ctx), filter.Scope, "user_id", "team_id")
	if filter.Year != 0 {
		db = db.Where("year = ?", filter.Year)
	}
	switch {
	case filter.AnnualOnly:
		db = db.Where("month IS NULL")
	case filter.Month != nil:
		db = db.Where("month = ?", *filter.Month)
	}
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.TeamID != "" {
		db = db.Where("team_id = ?", filter.TeamID)
	}
	if filter.TeamLevel {
		db = db.Where("user_id IS NULL")
	}
	if len(filter.MetricTypes) > 0 {
		db = db.Where("metric_type IN ?", filter.MetricTypes)
	}

	err := db.Order("year ASC, month ASC NULLS FIRST, metric_type ASC").Find(&goals).Error
	return goals, err
}

func (r *goalRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", id).
		Delete(&model.Goal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
