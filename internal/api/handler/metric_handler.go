package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

// MetricHandler daily entry, monthly view and rankings
type MetricHandler struct {
	metricSvc service.MetricService
}

// NewMetricHandler creates a MetricHandler
func NewMetricHandler(metricSvc service.MetricService) *MetricHandler {
	return &MetricHandler{metricSvc: metricSvc}
}

// GetDaily the caller's record for a day, zeros when nothing was saved
// GET /api/v1/metrics/daily?date=
func (h *MetricHandler) GetDaily(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var q dto.DailyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	rec, err := h.metricSvc.GetDaily(c.Request.Context(), actor, q.Date)
	if err != nil {
		h.handleMetricError(c, err)
		return
	}

	response.OK(c, rec)
}

// SaveDaily upserts the caller's record for a day
// PUT /api/v1/metrics/daily
func (h *MetricHandler) SaveDaily(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.SaveDailyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	rec, err := h.metricSvc.SaveDaily(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleMetricError(c, err)
		return
	}

	response.OK(c, rec)
}

// Monthly
// GET /api/v1/metrics/monthly?year=&month=
func (h *MetricHandler) Monthly(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	m, err := h.metricSvc.Monthly(c.Request.Context(), actor, &q)
	if err != nil {
		h.handleMetricError(c, err)
		return
	}

	response.OK(c, m)
}

// Rankings
// GET /api/v1/metrics/rankings?year=&month=
func (h *MetricHandler) Rankings(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	r, err := h.metricSvc.Rankings(c.Request.Context(), actor, &q)
	if err != nil {
		h.handleMetricError(c, err)
		return
	}

	response.OK(c, r)
}

func (h *MetricHandler) handleMetricError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNegativeMetric):
		response.BadRequest(c, 14001, "metric values must not be negative")
	default:
		handleCommonError(c, err)
	}
}
