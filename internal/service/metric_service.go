package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/metrics"
)

// ── daily metrics errors ──

var ErrNegativeMetric = errors.New("metric values must not be negative")

// RankingMetric the counter monthly rankings are ordered by
const RankingMetric = model.MetricRP

// MetricService daily activity entry, monthly progress and rankings
type MetricService interface {
	GetDaily(ctx context.Context, actor analytics.Actor, date string) (*dto.DailyRecordResponse, error)
	SaveDaily(ctx context.Context, actor analytics.Actor, req *dto.SaveDailyRequest) (*dto.DailyRecordResponse, error)
	Monthly(ctx context.Context, actor analytics.Actor, q *dto.MonthQuery) (*dto.MonthlyResponse, error)
	Rankings(ctx context.Context, actor analytics.Actor, q *dto.MonthQuery) (*dto.RankingsResponse, error)
}

type metricService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewMetricService creates a MetricService
func NewMetricService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) MetricService {
	return &metricService{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// ────────────────────── GetDaily ──────────────────────

func (s *metricService) GetDaily(ctx context.Context, actor analytics.Actor, date string) (*dto.DailyRecordResponse, error) {
	day := analytics.Day(s.now())
	if date != "" {
		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		day = d
	}

	rec, err := s.repo.DailyRecord.GetByUserAndDate(ctx, actor.ID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.DailyRecordResponse{Date: formatDate(day), PlacementAmount: decimal.Zero}, nil
		}
		s.logger.Error("load daily record failed", zap.String("user_id", actor.ID), zap.Error(err))
		return nil, err
	}
	return toDailyRecordResponse(rec), nil
}

// ────────────────────── SaveDaily ──────────────────────

func (s *metricService) SaveDaily(ctx context.Context, actor analytics.Actor, req *dto.SaveDailyRequest) (*dto.DailyRecordResponse, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	if req.PresentationsA < 0 || req.PresentationsB < 0 || req.Submissions < 0 ||
		req.JobOrders < 0 || req.Interviews < 0 || req.PlacementCount < 0 ||
		req.PlacementAmount.IsNegative() {
		return nil, ErrNegativeMetric
	}
	day, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	rec := &model.DailyRecord{
		UserID:          actor.ID,
		TeamID:          actor.TeamID,
		RecordDate:      day,
		PresentationsA:  req.PresentationsA,
		PresentationsB:  req.PresentationsB,
		Submissions:     req.Submissions,
		JobOrders:       req.JobOrders,
		Interviews:      req.Interviews,
		PlacementCount:  req.PlacementCount,
		PlacementAmount: req.PlacementAmount,
		Notes:           req.Notes,
	}
	rec.CreatedBy = &actor.ID
	rec.UpdatedBy = &actor.ID

	if err := s.repo.DailyRecord.Upsert(ctx, rec); err != nil {
		s.logger.Error("save daily record failed", zap.String("user_id", actor.ID), zap.Error(err))
		return nil, err
	}
	s.metrics.DailyRecordSaved()

	saved, err := s.repo.DailyRecord.GetByUserAndDate(ctx, actor.ID, day)
	if err != nil {
		s.logger.Warn("reload daily record failed", zap.Error(err))
		saved = rec
	}
	return toDailyRecordResponse(saved), nil
}

// ────────────────────── Monthly ──────────────────────

func (s *metricService) Monthly(ctx context.Context, actor analytics.Actor, q *dto.MonthQuery) (*dto.MonthlyResponse, error) {
	year, month := yearMonth(q.Year, q.Month, s.now())
	period := analytics.MonthPeriod(year, month)
	own := analytics.Scope{Kind: analytics.ScopeOwner, OwnerID: actor.ID}

	records, err := s.repo.DailyRecord.List(ctx, repository.RecordFilter{
		Scope: own,
		From:  period.Start,
		To:    period.End,
	})
	if err != nil {
		readFailed(s.logger, s.metrics, "daily_records", err)
		records = nil
	}

	// goals filed under an earlier team stay with that team
	goals, err := s.repo.Goal.List(ctx, repository.GoalFilter{
		Scope:  own,
		Year:   year,
		UserID: actor.ID,
		TeamID: actor.TeamID,
	})
	if err != nil {
		readFailed(s.logger, s.metrics, "goals", err)
		goals = nil
	}

	totals := analytics.Sum(records, period)
	targets := make(map[string]float64, len(model.MetricTypes))
	daily := make(map[string]float64, len(model.MetricTypes))
	progress := make([]dto.MetricProgress, 0, len(model.MetricTypes))
	for _, metric := range model.MetricTypes {
		target := periodTarget(goals, metric, []int{int(month)})
		targets[metric] = target
		daily[metric] = analytics.DailyGoal(target, period)
		progress = append(progress, newProgress(metric, totals.Value(metric), target))
	}

	return &dto.MonthlyResponse{
		Year:       year,
		Month:      int(month),
		Days:       period.Days(),
		Totals:     totals,
		Goals:      targets,
		DailyGoals: daily,
		Progress:   progress,
		Series:     analytics.DailySeries(records, period, targets),
	}, nil
}

// ────────────────────── Rankings ──────────────────────

type rankedUser struct {
	user   model.User
	totals analytics.Totals
	goal   float64
}

func (s *metricService) Rankings(ctx context.Context, actor analytics.Actor, q *dto.MonthQuery) (*dto.RankingsResponse, error) {
	if !actor.CanViewTeamData() {
		return nil, ErrForbidden
	}
	year, month := yearMonth(q.Year, q.Month, s.now())
	period := analytics.MonthPeriod(year, month)
	scope := analytics.VisibleScope(actor)

	users, err := s.repo.User.ListActive(ctx, scope)
	if err != nil {
		readFailed(s.logger, s.metrics, "users", err)
		users = nil
	}

	ids := make([]string, 0, len(users))
	members := make([]model.User, 0, len(users))
	teamOf := make(map[string]string, len(users))
	for _, u := range users {
		if u.TeamRef() == "" {
			continue
		}
		ids = append(ids, u.UserID)
		members = append(members, u)
		teamOf[u.UserID] = u.TeamRef()
	}

	resp := &dto.RankingsResponse{
		Year:    year,
		Month:   int(month),
		Metric:  RankingMetric,
		Entries: []dto.RankingEntry{},
	}
	if len(members) == 0 {
		return resp, nil
	}

	records, err := s.repo.DailyRecord.List(ctx, repository.RecordFilter{
		Scope:   scope,
		UserIDs: ids,
		From:    period.Start,
		To:      period.End,
	})
	if err != nil {
		readFailed(s.logger, s.metrics, "daily_records", err)
		records = nil
	}
	goals, err := s.repo.Goal.List(ctx, repository.GoalFilter{
		Scope:       scope,
		Year:        year,
		MetricTypes: []string{RankingMetric},
	})
	if err != nil {
		readFailed(s.logger, s.metrics, "goals", err)
		goals = nil
	}

	byUser := analytics.SeedKeys(analytics.Aggregate(records, period, analytics.ByUser), ids...)
	goalsByUser := make(map[string][]model.Goal)
	for _, g := range goals {
		if g.UserID != nil && g.RowTeam() == teamOf[*g.UserID] {
			goalsByUser[*g.UserID] = append(goalsByUser[*g.UserID], g)
		}
	}

	items := make([]rankedUser, 0, len(members))
	for _, u := range members {
		items = append(items, rankedUser{
			user:   u,
			totals: byUser[u.UserID],
			goal:   periodTarget(goalsByUser[u.UserID], RankingMetric, []int{int(month)}),
		})
	}

	ranked := analytics.Rank(items,
		func(r rankedUser) float64 { return r.totals.Value(RankingMetric) },
		func(r rankedUser) float64 { return r.goal },
	)
	for _, r := range ranked {
		resp.Entries = append(resp.Entries, dto.RankingEntry{
			Rank:     r.Rank,
			UserID:   r.Item.user.UserID,
			FullName: r.Item.user.FullName(),
			TeamID:   r.Item.user.TeamRef(),
			Totals:   r.Item.totals,
			Actual:   r.Actual,
			Goal:     r.Goal,
			Percent:  r.Percent,
			Status:   r.Status,
		})
	}
	return resp, nil
}

// ── helpers ──

func newProgress(metric string, actual, goal float64) dto.MetricProgress {
	ratio := analytics.Ratio(actual, goal)
	return dto.MetricProgress{
		Metric:  metric,
		Actual:  actual,
		Goal:    goal,
		Percent: ratio * 100,
		Status:  analytics.StatusFor(ratio),
	}
}

func toDailyRecordResponse(r *model.DailyRecord) *dto.DailyRecordResponse {
	return &dto.DailyRecordResponse{
		Date:            formatDate(r.RecordDate),
		PresentationsA:  r.PresentationsA,
		PresentationsB:  r.PresentationsB,
		Submissions:     r.Submissions,
		JobOrders:       r.JobOrders,
		Interviews:      r.Interviews,
		PlacementCount:  r.PlacementCount,
		PlacementAmount: r.PlacementAmount,
		Notes:           r.Notes,
		Saved:           true,
		UpdatedAt:       formatTime(r.UpdatedAt),
	}
}
