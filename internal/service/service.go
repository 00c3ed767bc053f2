package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"recruit-tracker/config"
	"recruit-tracker/internal/repository"
	"recruit-tracker/pkg/jwt"
	"recruit-tracker/pkg/metrics"
)

// TokenBlacklist revoked access tokens, keyed by JWT ID.
// A nil TokenBlacklist disables revocation.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Service aggregate entry point for every business service
type Service struct {
	Auth      AuthService
	User      UserService
	Team      TeamService
	Metric    MetricService
	Goal      GoalService
	Interview InterviewService
	Deal      DealService
	Placement PlacementService
	Dashboard DashboardService
	Forecast  ForecastService
	Yearly    YearlyService
}

// NewService wires every service onto the shared repository
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		User:      NewUserService(repo, logger),
		Team:      NewTeamService(repo, logger),
		Metric:    NewMetricService(repo, m, logger),
		Goal:      NewGoalService(repo, m, logger),
		Interview: NewInterviewService(cfg, repo, m, logger),
		Deal:      NewDealService(repo, m, logger),
		Placement: NewPlacementService(repo, m, logger),
		Dashboard: NewDashboardService(repo, m, logger),
		Forecast:  NewForecastService(cfg, repo, m, logger),
		Yearly:    NewYearlyService(repo, m, logger),
	}
}
