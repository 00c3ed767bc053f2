package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate of every data-access interface
type Repository struct {
	db *gorm.DB

	User             UserRepository
	Team             TeamRepository
	DailyRecord      DailyRecordRepository
	Goal             GoalRepository
	Interview        InterviewRepository
	Deal             DealRepository
	Placement        PlacementRepository
	ForecastSettings ForecastSettingsRepository
}

// NewRepository wires every repository onto one connection
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:               db,
		User:             NewUserRepo(db),
		Team:             NewTeamRepo(db),
		DailyRecord:      NewDailyRecordRepo(db),
		Goal:             NewGoalRepo(db),
		Interview:        NewInterviewRepo(db),
		Deal:             NewDealRepo(db),
		Placement:        NewPlacementRepo(db),
		ForecastSettings: NewForecastSettingsRepo(db),
	}
}

// BeginTx starts a transaction. A Repository assembled without a connection
// (in-memory test doubles) returns a nil tx.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx a Repository whose members all run inside tx; a nil tx returns r.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
