package handler

import (
	"recruit-tracker/config"
	"recruit-tracker/internal/service"
)

// Handler every HTTP handler, grouped by module
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Team      *TeamHandler
	Metric    *MetricHandler
	Goal      *GoalHandler
	Interview *InterviewHandler
	Deal      *DealHandler
	Placement *PlacementHandler
	Forecast  *ForecastHandler
	Report    *ReportHandler
	Export    *ExportHandler
	Health    *HealthHandler
}

// NewHandler builds every handler on top of the services
func NewHandler(cfg *config.Config, svc *service.Service, checks ...HealthCheck) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth, &cfg.Auth),
		User:      NewUserHandler(svc.User),
		Team:      NewTeamHandler(svc.Team),
		Metric:    NewMetricHandler(svc.Metric),
		Goal:      NewGoalHandler(svc.Goal),
		Interview: NewInterviewHandler(svc.Interview),
		Deal:      NewDealHandler(svc.Deal),
		Placement: NewPlacementHandler(svc.Placement),
		Forecast:  NewForecastHandler(svc.Forecast),
		Report:    NewReportHandler(svc.Dashboard, svc.Yearly),
		Export:    NewExportHandler(svc.Yearly, svc.Interview),
		Health:    NewHealthHandler(checks...),
	}
}
