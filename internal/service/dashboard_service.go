package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/model"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/metrics"
)

// topPerformerCount size of the top performers list
const topPerformerCount = 5

// kpiMetrics the dashboard cards, in display order
var kpiMetrics = []struct {
	label  string
	metric string
}{
	{"Sales YTD", model.MetricSales},
	{"Placements YTD", model.MetricPlacements},
	{"FTI YTD", model.MetricFTI},
	{"Job Orders YTD", model.MetricJobOrders},
}

// DashboardService year-to-date overview
type DashboardService interface {
	Get(ctx context.Context, actor analytics.Actor, q *dto.YearQuery) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewDashboardService creates a DashboardService
func NewDashboardService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// dashboardData the independent reads one dashboard is built from
type dashboardData struct {
	records []model.DailyRecord
	goals   []model.Goal
	teams   []model.Team
	users   []model.User
}

// ────────────────────── Get ──────────────────────

func (s *dashboardService) Get(ctx context.Context, actor analytics.Actor, q *dto.YearQuery) (*dto.DashboardResponse, error) {
	year := q.Year
	if year == 0 {
		year = s.now().Year()
	}
	period := analytics.YearToDate(year, s.now())
	scope := analytics.VisibleScope(actor)

	data := s.load(ctx, actor, scope, period, year, q.TeamID)

	resp := &dto.DashboardResponse{
		Year:          year,
		From:          formatDate(period.Start),
		To:            formatDate(period.End),
		KPIs:          make([]dto.KPI, 0, len(kpiMetrics)),
		Teams:         []dto.TeamPerformance{},
		TopPerformers: []dto.TopPerformer{},
	}

	// ── KPI cards ──
	totals := analytics.Sum(data.records, period)
	kpiGoals := make([]model.Goal, 0, len(data.goals))
	for _, g := range data.goals {
		if countsTowardKPI(actor, g) {
			kpiGoals = append(kpiGoals, g)
		}
	}
	for _, k := range kpiMetrics {
		p := newProgress(k.metric, totals.Value(k.metric), periodTarget(kpiGoals, k.metric, months(12)))
		resp.KPIs = append(resp.KPIs, dto.KPI{
			Label:   k.label,
			Metric:  k.metric,
			Actual:  p.Actual,
			Goal:    p.Goal,
			Percent: p.Percent,
			Status:  p.Status,
		})
	}

	// ── team performance ──
	if actor.CanViewTeamData() {
		resp.Teams = teamPerformance(data, period)
	}

	// ── top performers ──
	byUser := analytics.Aggregate(data.records, period, analytics.ByUser)
	top := analytics.TopN(data.users, topPerformerCount, func(u model.User) float64 {
		return float64(byUser[u.UserID].PresentationsA)
	})
	for i := range top {
		name := "No Team"
		if top[i].Team != nil {
			name = top[i].Team.Name
		}
		resp.TopPerformers = append(resp.TopPerformers, dto.TopPerformer{
			UserID:   top[i].UserID,
			FullName: top[i].FullName(),
			TeamName: name,
			RPTotal:  byUser[top[i].UserID].PresentationsA,
		})
	}

	return resp, nil
}

// load issues the four reads concurrently. A failed read is logged and leaves its slice empty.
func (s *dashboardService) load(ctx context.Context, actor analytics.Actor, scope analytics.Scope, period analytics.Period, year int, teamID string) dashboardData {
	var data dashboardData
	var g errgroup.Group

	g.Go(func() error {
		rows, err := s.repo.DailyRecord.List(ctx, repository.RecordFilter{
			Scope:  scope,
			TeamID: teamID,
			From:   period.Start,
			To:     period.End,
		})
		if err != nil {
			readFailed(s.logger, s.metrics, "daily_records", err)
			return nil
		}
		data.records = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.Goal.List(ctx, repository.GoalFilter{Scope: scope, Year: year, TeamID: teamID})
		if err != nil {
			readFailed(s.logger, s.metrics, "goals", err)
			return nil
		}
		data.goals = rows
		return nil
	})
	g.Go(func() error {
		var rows []model.Team
		var err error
		switch {
		case actor.IsAdmin() && teamID != "":
			rows, err = s.repo.Team.ListByIDs(ctx, []string{teamID})
		case actor.IsAdmin():
			rows, err = s.repo.Team.List(ctx)
		case scope.Kind == analytics.ScopeTeam:
			rows, err = s.repo.Team.ListByIDs(ctx, []string{scope.TeamID})
		}
		if err != nil {
			readFailed(s.logger, s.metrics, "teams", err)
			return nil
		}
		data.teams = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.User.ListActive(ctx, scope)
		if err != nil {
			readFailed(s.logger, s.metrics, "users", err)
			return nil
		}
		if teamID != "" {
			rows = analytics.Filter(rows, analytics.Scope{Kind: analytics.ScopeTeam, TeamID: teamID})
		}
		data.users = rows
		return nil
	})

	_ = g.Wait()
	return data
}

// countsTowardKPI managers and admins are measured against team goals, recruiters against their own.
func countsTowardKPI(actor analytics.Actor, g model.Goal) bool {
	if actor.CanViewTeamData() {
		return g.UserID == nil
	}
	return g.UserID != nil && *g.UserID == actor.ID
}

type teamYTD struct {
	team   model.Team
	totals analytics.Totals
	goals  []model.Goal
}

// teamPerformance every visible team against its team-level goals, ranked by sales ratio.
func teamPerformance(data dashboardData, period analytics.Period) []dto.TeamPerformance {
	byTeam := analytics.Aggregate(data.records, period, analytics.ByTeam)
	teamGoals := make(map[string][]model.Goal)
	for _, g := range data.goals {
		if g.UserID == nil && g.TeamID != nil {
			teamGoals[*g.TeamID] = append(teamGoals[*g.TeamID], g)
		}
	}

	items := make([]teamYTD, 0, len(data.teams))
	for _, t := range data.teams {
		items = append(items, teamYTD{team: t, totals: byTeam[t.TeamID], goals: teamGoals[t.TeamID]})
	}

	year := months(12)
	ranked := analytics.Rank(items,
		func(t teamYTD) float64 { return t.totals.Value(model.MetricSales) },
		func(t teamYTD) float64 { return periodTarget(t.goals, model.MetricSales, year) },
	)

	out := make([]dto.TeamPerformance, 0, len(ranked))
	for _, r := range ranked {
		fti := newProgress(model.MetricFTI, r.Item.totals.Value(model.MetricFTI), periodTarget(r.Item.goals, model.MetricFTI, year))
		jo := newProgress(model.MetricJobOrders, r.Item.totals.Value(model.MetricJobOrders), periodTarget(r.Item.goals, model.MetricJobOrders, year))
		out = append(out, dto.TeamPerformance{
			Rank:         r.Rank,
			TeamID:       r.Item.team.TeamID,
			TeamName:     r.Item.team.Name,
			SalesActual:  r.Actual,
			SalesGoal:    r.Goal,
			SalesPercent: r.Percent,
			FTIActual:    fti.Actual,
			FTIGoal:      fti.Goal,
			FTIPercent:   fti.Percent,
			JOActual:     jo.Actual,
			JOGoal:       jo.Goal,
			JOPercent:    jo.Percent,
			Status:       r.Status,
		})
	}
	return out
}
