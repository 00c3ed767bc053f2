package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/metrics"
)

// ── goal module errors ──

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrGoalOwnerRequired = errors.New("a goal needs a user or a team")
	ErrGoalTeamMismatch  = errors.New("user does not belong to the given team")
	ErrInvalidMetricType = errors.New("unknown metric type")
	ErrInvalidGoalTarget = errors.New("target value must be a non-negative number")
)

// GoalService user and team targets
type GoalService interface {
	List(ctx context.Context, actor analytics.Actor, req *dto.GoalListRequest) ([]dto.GoalResponse, error)
	Upsert(ctx context.Context, actor analytics.Actor, req *dto.UpsertGoalRequest) (*dto.GoalResponse, error)
	Delete(ctx context.Context, actor analytics.Actor, id string) error
}

type goalService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewGoalService creates a GoalService
func NewGoalService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) GoalService {
	return &goalService{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *goalService) List(ctx context.Context, actor analytics.Actor, req *dto.GoalListRequest) ([]dto.GoalResponse, error) {
	year := req.Year
	if year == 0 {
		year = s.now().Year()
	}

	goals, err := s.repo.Goal.List(ctx, repository.GoalFilter{
		Scope:  analytics.VisibleScope(actor),
		Year:   year,
		Month:  req.Month,
		UserID: req.UserID,
		TeamID: req.TeamID,
	})
	if err != nil {
		readFailed(s.logger, s.metrics, "goals", err)
		goals = nil
	}

	result := make([]dto.GoalResponse, 0, len(goals))
	for i := range goals {
		result = append(result, toGoalResponse(&goals[i]))
	}
	return result, nil
}

// ────────────────────── Upsert ──────────────────────

func (s *goalService) Upsert(ctx context.Context, actor analytics.Actor, req *dto.UpsertGoalRequest) (*dto.GoalResponse, error) {
	if !model.IsMetricType(req.MetricType) {
		return nil, ErrInvalidMetricType
	}
	if req.TargetValue < 0 || math.IsNaN(req.TargetValue) || math.IsInf(req.TargetValue, 0) {
		return nil, ErrInvalidGoalTarget
	}

	userID := nonEmpty(req.UserID)
	teamID := nonEmpty(req.TeamID)
	if userID == nil && teamID == nil {
		return nil, ErrGoalOwnerRequired
	}

	if userID != nil {
		// a user goal is filed under the user's current team
		user, err := s.repo.User.GetByID(ctx, *userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			s.logger.Error("load goal user failed", zap.Error(err))
			return nil, err
		}
		if teamID != nil && *teamID != user.TeamRef() {
			return nil, ErrGoalTeamMismatch
		}
		teamID = user.TeamID
	} else if _, err := s.repo.Team.GetByID(ctx, *teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("load goal team failed", zap.Error(err))
		return nil, err
	}

	team := ""
	if teamID != nil {
		team = *teamID
	}
	if !actor.CanSetGoalsFor(team) {
		return nil, ErrForbidden
	}

	goal := &model.Goal{
		UserID:      userID,
		TeamID:      teamID,
		Year:        req.Year,
		Month:       req.Month,
		MetricType:  req.MetricType,
		TargetValue: req.TargetValue,
	}
	goal.CreatedBy = &actor.ID
	goal.UpdatedBy = &actor.ID

	if err := s.repo.Goal.Upsert(ctx, goal); err != nil {
		s.logger.Error("upsert goal failed", zap.Error(err))
		return nil, err
	}
	goal.UpdatedAt = s.now()

	resp := toGoalResponse(goal)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *goalService) Delete(ctx context.Context, actor analytics.Actor, id string) error {
	goal, err := s.repo.Goal.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoalNotFound
		}
		s.logger.Error("load goal failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if !actor.CanSetGoalsFor(goal.RowTeam()) {
		return ErrForbidden
	}

	if err := s.repo.Goal.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoalNotFound
		}
		s.logger.Error("delete goal failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func toGoalResponse(g *model.Goal) dto.GoalResponse {
	return dto.GoalResponse{
		ID:          g.GoalID,
		UserID:      g.UserID,
		TeamID:      g.TeamID,
		Year:        g.Year,
		Month:       g.Month,
		MetricType:  g.MetricType,
		TargetValue: g.TargetValue,
		UpdatedAt:   formatTime(g.UpdatedAt),
	}
}
