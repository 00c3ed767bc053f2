package handler

import (
	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

// ReportHandler the read-only overviews: dashboard and yearly grid
type ReportHandler struct {
	dashboardSvc service.DashboardService
	yearlySvc    service.YearlyService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(dashboardSvc service.DashboardService, yearlySvc service.YearlyService) *ReportHandler {
	return &ReportHandler{dashboardSvc: dashboardSvc, yearlySvc: yearlySvc}
}

// Dashboard year-to-date KPIs, team table and top performers
// GET /api/v1/dashboard?year=&team_id=
func (h *ReportHandler) Dashboard(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var q dto.YearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	resp, err := h.dashboardSvc.Get(c.Request.Context(), actor, &q)
	if err != nil {
		handleCommonError(c, err)
		return
	}

	response.OK(c, resp)
}

// Yearly per-team monthly tracking grid
// GET /api/v1/yearly?year=&team_id=
func (h *ReportHandler) Yearly(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var q dto.YearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	resp, err := h.yearlySvc.Grid(c.Request.Context(), actor, &q)
	if err != nil {
		handleCommonError(c, err)
		return
	}

	response.OK(c, resp)
}
