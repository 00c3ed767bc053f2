package handler

import (
	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

// ForecastHandler revenue funnel forecast and its settings
type ForecastHandler struct {
	forecastSvc service.ForecastService
}

// NewForecastHandler creates a ForecastHandler
func NewForecastHandler(forecastSvc service.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastSvc: forecastSvc}
}

// Compute an empty body forecasts from the saved settings
// POST /api/v1/forecast
func (h *ForecastHandler) Compute(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.ForecastRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		bindFailed(c, err)
		return
	}

	resp, err := h.forecastSvc.Compute(c.Request.Context(), actor, &req)
	if err != nil {
		handleCommonError(c, err)
		return
	}

	response.OK(c, resp)
}

// Save writes the forecast as monthly team goals
// POST /api/v1/forecast/save
func (h *ForecastHandler) Save(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.SaveForecastRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		bindFailed(c, err)
		return
	}

	resp, err := h.forecastSvc.Save(c.Request.Context(), actor, &req)
	if err != nil {
		handleCommonError(c, err)
		return
	}

	response.OK(c, resp)
}

// GetSettings
// GET /api/v1/forecast/settings
func (h *ForecastHandler) GetSettings(c *gin.Context) {
	resp, err := h.forecastSvc.GetSettings(c.Request.Context())
	if err != nil {
		handleCommonError(c, err)
		return
	}

	response.OK(c, resp)
}

// UpdateSettings
// PUT /api/v1/forecast/settings
func (h *ForecastHandler) UpdateSettings(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.UpdateForecastSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	resp, err := h.forecastSvc.UpdateSettings(c.Request.Context(), actor, &req)
	if err != nil {
		handleCommonError(c, err)
		return
	}

	response.OK(c, resp)
}
