package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

// PlacementHandler placement log
type PlacementHandler struct {
	placementSvc service.PlacementService
}

// NewPlacementHandler creates a PlacementHandler
func NewPlacementHandler(placementSvc service.PlacementService) *PlacementHandler {
	return &PlacementHandler{placementSvc: placementSvc}
}

// ListPlacements
// GET /api/v1/placements?year=&team_id=
func (h *PlacementHandler) ListPlacements(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.PlacementListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.placementSvc.List(c.Request.Context(), actor, &req)
	if err != nil {
		h.handlePlacementError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreatePlacement
// POST /api/v1/placements
func (h *PlacementHandler) CreatePlacement(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.CreatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	p, err := h.placementSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handlePlacementError(c, err)
		return
	}

	response.Created(c, p)
}

func (h *PlacementHandler) handlePlacementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNegativeAmount):
		response.BadRequest(c, 18001, "fee amount must not be negative")
	default:
		handleCommonError(c, err)
	}
}
