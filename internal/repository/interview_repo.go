package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/model"
)

// InterviewFilter board query; From/To bound interview_at
type InterviewFilter struct {
	Scope  analytics.Scope
	TeamID string
	Status string
	From   time.Time
	To     time.Time
}

// InterviewRepository interview schedule data access
type InterviewRepository interface {
	Create(ctx context.Context, iv *model.InterviewSchedule) error
	GetByID(ctx context.Context, id string) (*model.InterviewSchedule, error)
	UpdateStatus(ctx context.Context, id, status, updatedBy string) error
	List(ctx context.Context, filter InterviewFilter) ([]model.InterviewSchedule, error)
}

type interviewRepo struct {
	db *gorm.DB
}

// NewInterviewRepo creates an InterviewRepository
func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Create(ctx context.Context, iv *model.InterviewSchedule) error {
	return r.db.WithContext(ctx).Create(iv).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*model.InterviewSchedule, error) {
	var iv model.InterviewSchedule
	err := r.db.WithContext(ctx).
		Preload("Recruiter").
		Preload("Team").
		Where("interview_id = ?", id).
		First(&iv).Error
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepo) UpdateStatus(ctx context.Context, id, status, updatedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.InterviewSchedule{}).
		Where("interview_id = ?", id).
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

// List newest first.
func (r *interviewRepo) List(ctx context.Context, filter InterviewFilter) ([]model.InterviewSchedule, error) {
	var items []model.InterviewSchedule

	db := applyScope(r.db.WithContext(ctx), filter.Scope, "recruiter_id", "team_id")
	if filter.TeamID != "" {
		db = db.Where("team_id = ?", filter.TeamID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	db = applyDateRange(db, "interview_at", filter.From, filter.To)

	err := db.Preload("Recruiter").
		Preload("Team").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
