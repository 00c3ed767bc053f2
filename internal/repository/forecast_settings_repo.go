package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recruit-tracker/internal/model"
)

// ForecastSettingsRepository access to the single settings row
type ForecastSettingsRepository interface {
	Get(ctx context.Context) (*model.ForecastSettings, error)
	Save(ctx context.Context, s *model.ForecastSettings) error
}

type forecastSettingsRepo struct {
	db *gorm.DB
}

// NewForecastSettingsRepo creates a ForecastSettingsRepository
func NewForecastSettingsRepo(db *gorm.DB) ForecastSettingsRepository {
	return &forecastSettingsRepo{db: db}
}

func (r *forecastSettingsRepo) Get(ctx context.Context) (*model.ForecastSettings, error) {
	var s model.ForecastSettings
	err := r.db.WithContext(ctx).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save inserts the row on first use, replaces it afterwards.
func (r *forecastSettingsRepo) Save(ctx context.Context, s *model.ForecastSettings) error {
	s.Singleton = true
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "singleton"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"target_revenue",
				"avg_placement_fee",
				"interviews_per_placement",
				"submissions_per_interview",
				"job_orders_per_submission",
				"presentations_a_per_job_order",
				"presentations_b_per_job_order",
				"updated_by",
				"updated_at",
			}),
		}).
		Create(s).Error
}
