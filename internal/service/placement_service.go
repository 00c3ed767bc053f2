package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/metrics"
)

// PlacementService closed hires, the source of yearly revenue
type PlacementService interface {
	List(ctx context.Context, actor analytics.Actor, req *dto.PlacementListRequest) ([]dto.PlacementResponse, error)
	Create(ctx context.Context, actor analytics.Actor, req *dto.CreatePlacementRequest) (*dto.PlacementResponse, error)
}

type placementService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewPlacementService creates a PlacementService
func NewPlacementService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) PlacementService {
	return &placementService{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *placementService) List(ctx context.Context, actor analytics.Actor, req *dto.PlacementListRequest) ([]dto.PlacementResponse, error) {
	year := req.Year
	if year == 0 {
		year = s.now().Year()
	}
	period := analytics.YearPeriod(year)

	rows, err := s.repo.Placement.List(ctx, repository.PlacementFilter{
		Scope:  analytics.VisibleScope(actor),
		TeamID: req.TeamID,
		From:   period.Start,
		To:     period.End,
	})
	if err != nil {
		readFailed(s.logger, s.metrics, "placements", err)
		rows = nil
	}

	result := make([]dto.PlacementResponse, 0, len(rows))
	for i := range rows {
		result = append(result, toPlacementResponse(&rows[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *placementService) Create(ctx context.Context, actor analytics.Actor, req *dto.CreatePlacementRequest) (*dto.PlacementResponse, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	if req.FeeAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	day, err := parseDate(req.PlacementDate)
	if err != nil {
		return nil, err
	}

	p := &model.Placement{
		CandidateName: req.CandidateName,
		Position:      req.Position,
		Company:       req.Company,
		PlacementDate: day,
		FeeAmount:     req.FeeAmount,
		RecruiterID:   actor.ID,
		TeamID:        actor.TeamID,
	}
	p.CreatedBy = &actor.ID
	p.UpdatedBy = &actor.ID

	if err := s.repo.Placement.Create(ctx, p); err != nil {
		s.logger.Error("create placement failed", zap.Error(err))
		return nil, err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}

	resp := toPlacementResponse(p)
	return &resp, nil
}

func toPlacementResponse(p *model.Placement) dto.PlacementResponse {
	return dto.PlacementResponse{
		ID:            p.PlacementID,
		CandidateName: p.CandidateName,
		Position:      p.Position,
		Company:       p.Company,
		PlacementDate: formatDate(p.PlacementDate),
		FeeAmount:     p.FeeAmount,
		RecruiterID:   p.RecruiterID,
		TeamID:        p.TeamID,
		CreatedAt:     formatTime(p.CreatedAt),
	}
}
