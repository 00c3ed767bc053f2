package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruit-tracker/config"
	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/metrics"
)

// ForecastService revenue funnel planning
type ForecastService interface {
	Compute(ctx context.Context, actor analytics.Actor, req *dto.ForecastRequest) (*dto.ForecastResponse, error)
	Save(ctx context.Context, actor analytics.Actor, req *dto.SaveForecastRequest) (*dto.SaveForecastResponse, error)
	GetSettings(ctx context.Context) (*dto.ForecastSettingsResponse, error)
	UpdateSettings(ctx context.Context, actor analytics.Actor, req *dto.UpdateForecastSettingsRequest) (*dto.ForecastSettingsResponse, error)
}

type forecastService struct {
	cfg     *config.Config
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewForecastService creates a ForecastService
func NewForecastService(cfg *config.Config, repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) ForecastService {
	return &forecastService{cfg: cfg, repo: repo, metrics: m, logger: logger, now: time.Now}
}

// ────────────────────── Compute ──────────────────────

func (s *forecastService) Compute(ctx context.Context, actor analytics.Actor, req *dto.ForecastRequest) (*dto.ForecastResponse, error) {
	inputs := s.resolve(ctx, req)
	funnel, err := s.run(inputs)
	if err != nil {
		return nil, err
	}

	resp := &dto.ForecastResponse{
		Inputs:      inputs,
		Funnel:      funnel,
		Allocations: []dto.TeamAllocation{},
	}
	if !actor.CanViewTeamData() {
		return resp, nil
	}

	var teams []model.Team
	if actor.IsAdmin() {
		teams, err = s.repo.Team.List(ctx)
	} else {
		teams, err = s.repo.Team.ListByIDs(ctx, []string{actor.TeamID})
	}
	if err != nil {
		readFailed(s.logger, s.metrics, "teams", err)
		return resp, nil
	}

	n := int64(len(teams))
	for _, t := range teams {
		resp.Allocations = append(resp.Allocations, dto.TeamAllocation{
			TeamID:        t.TeamID,
			TeamName:      t.Name,
			TargetRevenue: inputs.TargetRevenue / float64(n),
			Funnel:        share(funnel, n),
		})
	}
	return resp, nil
}

// ────────────────────── Save ──────────────────────

// Save writes the forecast as monthly team goals, replacing any existing ones for that month.
func (s *forecastService) Save(ctx context.Context, actor analytics.Actor, req *dto.SaveForecastRequest) (*dto.SaveForecastResponse, error) {
	if !actor.CanViewTeamData() {
		return nil, ErrForbidden
	}
	teamID := actor.TeamID
	if actor.IsAdmin() && req.TeamID != "" {
		teamID = req.TeamID
	}
	if teamID == "" {
		return nil, ErrNoTeam
	}
	if !actor.CanSetGoalsFor(teamID) {
		return nil, ErrForbidden
	}
	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("load forecast team failed", zap.Error(err))
		return nil, err
	}

	inputs := s.resolve(ctx, &req.ForecastRequest)
	funnel, err := s.run(inputs)
	if err != nil {
		return nil, err
	}

	year, month := yearMonth(req.Year, req.Month, s.now())
	m := int(month)
	targets := []struct {
		metric string
		value  float64
	}{
		{model.MetricSales, inputs.TargetRevenue},
		{model.MetricPlacements, float64(funnel.Placements)},
		{model.MetricFTI, float64(funnel.Interviews)},
		{model.MetricSubs, float64(funnel.Submissions)},
		{model.MetricJobOrders, float64(funnel.JobOrders)},
		{model.MetricRP, float64(funnel.PresentationsA)},
		{model.MetricMP, float64(funnel.PresentationsB)},
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("begin transaction failed", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	resp := &dto.SaveForecastResponse{TeamID: teamID, Year: year, Month: m, Goals: make([]dto.GoalResponse, 0, len(targets))}
	for _, t := range targets {
		goal := &model.Goal{
			TeamID:      &teamID,
			Year:        year,
			Month:       &m,
			MetricType:  t.metric,
			TargetValue: t.value,
		}
		goal.CreatedBy = &actor.ID
		goal.UpdatedBy = &actor.ID

		if err := txRepo.Goal.Upsert(ctx, goal); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("save forecast goal failed", zap.String("metric", t.metric), zap.Error(err))
			return nil, err
		}
		goal.UpdatedAt = s.now()
		resp.Goals = append(resp.Goals, toGoalResponse(goal))
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("commit transaction failed", zap.Error(err))
			return nil, err
		}
	}
	return resp, nil
}

// ────────────────────── Settings ──────────────────────

func (s *forecastService) GetSettings(ctx context.Context) (*dto.ForecastSettingsResponse, error) {
	stored, err := s.repo.ForecastSettings.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.ForecastSettingsResponse{ForecastInputs: s.defaults()}, nil
		}
		s.logger.Error("load forecast settings failed", zap.Error(err))
		return nil, err
	}
	return toForecastSettingsResponse(stored), nil
}

func (s *forecastService) UpdateSettings(ctx context.Context, actor analytics.Actor, req *dto.UpdateForecastSettingsRequest) (*dto.ForecastSettingsResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	in := current.ForecastInputs
	override(&in.TargetRevenue, req.TargetRevenue)
	override(&in.AvgPlacementFee, req.AvgPlacementFee)
	override(&in.Ratios.InterviewsPerPlacement, req.InterviewsPerPlacement)
	override(&in.Ratios.SubmissionsPerInterview, req.SubmissionsPerInterview)
	override(&in.Ratios.JobOrdersPerSubmission, req.JobOrdersPerSubmission)
	override(&in.Ratios.PresentationsAPerJobOrder, req.PresentationsAPerJobOrder)
	override(&in.Ratios.PresentationsBPerJobOrder, req.PresentationsBPerJobOrder)

	// a settings row that cannot produce a funnel is never stored
	if _, err := analytics.Forecast(in.TargetRevenue, in.AvgPlacementFee, in.Ratios); err != nil {
		return nil, err
	}

	row := &model.ForecastSettings{
		Singleton:                 true,
		TargetRevenue:             in.TargetRevenue,
		AvgPlacementFee:           in.AvgPlacementFee,
		InterviewsPerPlacement:    in.Ratios.InterviewsPerPlacement,
		SubmissionsPerInterview:   in.Ratios.SubmissionsPerInterview,
		JobOrdersPerSubmission:    in.Ratios.JobOrdersPerSubmission,
		PresentationsAPerJobOrder: in.Ratios.PresentationsAPerJobOrder,
		PresentationsBPerJobOrder: in.Ratios.PresentationsBPerJobOrder,
	}
	row.UpdatedBy = &actor.ID
	row.UpdatedAt = s.now()

	if err := s.repo.ForecastSettings.Save(ctx, row); err != nil {
		s.logger.Error("save forecast settings failed", zap.Error(err))
		return nil, err
	}
	return toForecastSettingsResponse(row), nil
}

// ── helpers ──

// resolve request values over stored settings over configuration defaults.
func (s *forecastService) resolve(ctx context.Context, req *dto.ForecastRequest) dto.ForecastInputs {
	in := s.defaults()
	stored, err := s.repo.ForecastSettings.Get(ctx)
	switch {
	case err == nil:
		in = toForecastSettingsResponse(stored).ForecastInputs
	case !errors.Is(err, gorm.ErrRecordNotFound):
		readFailed(s.logger, s.metrics, "forecast_settings", err)
	}

	override(&in.TargetRevenue, req.TargetRevenue)
	override(&in.AvgPlacementFee, req.AvgPlacementFee)
	override(&in.Ratios.InterviewsPerPlacement, req.InterviewsPerPlacement)
	override(&in.Ratios.SubmissionsPerInterview, req.SubmissionsPerInterview)
	override(&in.Ratios.JobOrdersPerSubmission, req.JobOrdersPerSubmission)
	override(&in.Ratios.PresentationsAPerJobOrder, req.PresentationsAPerJobOrder)
	override(&in.Ratios.PresentationsBPerJobOrder, req.PresentationsBPerJobOrder)
	return in
}

func (s *forecastService) run(in dto.ForecastInputs) (analytics.Funnel, error) {
	funnel, err := analytics.Forecast(in.TargetRevenue, in.AvgPlacementFee, in.Ratios)
	s.metrics.ForecastComputed(err == nil)
	if err != nil {
		return analytics.Funnel{}, fmt.Errorf("compute forecast: %w", err)
	}
	return funnel, nil
}

func (s *forecastService) defaults() dto.ForecastInputs {
	f := s.cfg.Forecast
	return dto.ForecastInputs{
		TargetRevenue:   f.TargetRevenue,
		AvgPlacementFee: f.AvgPlacementFee,
		Ratios: analytics.Ratios{
			InterviewsPerPlacement:    f.InterviewsPerPlacement,
			SubmissionsPerInterview:   f.SubmissionsPerInterview,
			JobOrdersPerSubmission:    f.JobOrdersPerSubmission,
			PresentationsAPerJobOrder: f.PresentationsAPerJobOrder,
			PresentationsBPerJobOrder: f.PresentationsBPerJobOrder,
		},
	}
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// share an equal 1/n slice of every stage, rounded up
func share(f analytics.Funnel, n int64) analytics.Funnel {
	if n <= 1 {
		return f
	}
	ceil := func(v int64) int64 { return (v + n - 1) / n }
	return analytics.Funnel{
		Placements:     ceil(f.Placements),
		Interviews:     ceil(f.Interviews),
		Submissions:    ceil(f.Submissions),
		JobOrders:      ceil(f.JobOrders),
		PresentationsA: ceil(f.PresentationsA),
		PresentationsB: ceil(f.PresentationsB),
	}
}

func toForecastSettingsResponse(row *model.ForecastSettings) *dto.ForecastSettingsResponse {
	resp := &dto.ForecastSettingsResponse{
		ForecastInputs: dto.ForecastInputs{
			TargetRevenue:   row.TargetRevenue,
			AvgPlacementFee: row.AvgPlacementFee,
			Ratios: analytics.Ratios{
				InterviewsPerPlacement:    row.InterviewsPerPlacement,
				SubmissionsPerInterview:   row.SubmissionsPerInterview,
				JobOrdersPerSubmission:    row.JobOrdersPerSubmission,
				PresentationsAPerJobOrder: row.PresentationsAPerJobOrder,
				PresentationsBPerJobOrder: row.PresentationsBPerJobOrder,
			},
		},
	}
	if !row.UpdatedAt.IsZero() {
		resp.UpdatedAt = formatTime(row.UpdatedAt)
	}
	return resp
}
