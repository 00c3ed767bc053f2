package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/model"
)

// RecordFilter daily record query; zero From/To leave that side open
type RecordFilter struct {
	Scope   analytics.Scope
	UserIDs []string
	TeamID  string
	From    time.Time
	To      time.Time
}

// DailyRecordRepository daily activity data access
type DailyRecordRepository interface {
	Upsert(ctx context.Context, record *model.DailyRecord) error
	GetByUserAndDate(ctx context.Context, userID string, day time.Time) (*model.DailyRecord, error)
	List(ctx context.Context, filter RecordFilter) ([]model.DailyRecord, error)
}

type dailyRecordRepo struct {
	db *gorm.DB
}

// NewDailyRecordRepo creates a DailyRecordRepository
func NewDailyRecordRepo(db *gorm.DB) DailyRecordRepository {
	return &dailyRecordRepo{db: db}
}

// Upsert inserts or overwrites the record for (user_id, record_date). Last write wins.
func (r *dailyRecordRepo) Upsert(ctx context.Context, record *model.DailyRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "record_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"team_id":          record.TeamID,
				"presentations_a":  record.PresentationsA,
				"presentations_b":  record.PresentationsB,
				"submissions":      record.Submissions,
				"job_orders":       record.JobOrders,
				"interviews":       record.Interviews,
				"placement_count":  record.PlacementCount,
				"placement_amount": record.PlacementAmount,
				"notes":            record.Notes,
				"updated_by":       record.UpdatedBy,
				"updated_at":       gorm.Expr("NOW()"),
			}),
		}).
		Create(record).Error
}

func (r *dailyRecordRepo) GetByUserAndDate(ctx context.Context, userID string, day time.Time) (*model.DailyRecord, error) {
	var rec model.DailyRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND record_date = ?", userID, analytics.Day(day)).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *dailyRecordRepo) List(ctx context.Context, filter RecordFilter) ([]model.DailyRecord, error) {
	var records []model.DailyRecord

	db := applyScope(r.db.WithContext(ctx), filter.Scope, "user_id", "team_id")
	if len(filter.UserIDs) > 0 {
		db = db.Where("user_id IN ?", filter.UserIDs)
	}
	if filter.TeamID != "" {
		db = db.Where("team_id = ?", filter.TeamID)
	}
	db = applyDateRange(db, "record_date", filter.From, filter.To)

	err := db.Order("record_date ASC, user_id ASC").Find(&records).Error
	return records, err
}
