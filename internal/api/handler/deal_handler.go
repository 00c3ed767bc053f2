package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

// DealHandler deal pipeline
type DealHandler struct {
	dealSvc service.DealService
}

// NewDealHandler creates a DealHandler
func NewDealHandler(dealSvc service.DealService) *DealHandler {
	return &DealHandler{dealSvc: dealSvc}
}

// ListDeals ordered by payment due date, with derived overdue and totals
// GET /api/v1/deals?team_id=&status=
func (h *DealHandler) ListDeals(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.DealListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	resp, err := h.dealSvc.List(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleDealError(c, err)
		return
	}

	response.OK(c, resp)
}

// CreateDeal
// POST /api/v1/deals
func (h *DealHandler) CreateDeal(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	deal, err := h.dealSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleDealError(c, err)
		return
	}

	response.Created(c, deal)
}

// UpdateStatus
// PUT /api/v1/deals/:id/status
func (h *DealHandler) UpdateStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.UpdateDealStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	deal, err := h.dealSvc.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		h.handleDealError(c, err)
		return
	}

	response.OK(c, deal)
}

// Options the classification and candidate source choices
// GET /api/v1/deals/options
func (h *DealHandler) Options(c *gin.Context) {
	response.OK(c, h.dealSvc.Options())
}

func (h *DealHandler) handleDealError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDealNotFound):
		response.NotFound(c, 17001, "deal not found")
	case errors.Is(err, service.ErrDealStatusDerived):
		response.BadRequest(c, 17002, "overdue is derived from the payment due date and cannot be set")
	case errors.Is(err, service.ErrInvalidDealStatus):
		response.BadRequest(c, 17003, "unknown deal status")
	case errors.Is(err, service.ErrInvalidDealClassification):
		response.BadRequest(c, 17004, "unknown deal classification")
	case errors.Is(err, service.ErrInvalidCandidateSource):
		response.BadRequest(c, 17005, "unknown candidate source")
	case errors.Is(err, service.ErrNegativeAmount):
		response.BadRequest(c, 17006, "amount must not be negative")
	default:
		handleCommonError(c, err)
	}
}
