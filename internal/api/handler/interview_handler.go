package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

// InterviewHandler FTI board
type InterviewHandler struct {
	interviewSvc service.InterviewService
}

// NewInterviewHandler creates an InterviewHandler
func NewInterviewHandler(interviewSvc service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc}
}

// ListInterviews newest first, with per-status counts
// GET /api/v1/interviews?team_id=&status=
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.InterviewListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	resp, err := h.interviewSvc.List(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	response.OK(c, resp)
}

// CreateInterview
// POST /api/v1/interviews
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	iv, err := h.interviewSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	response.Created(c, iv)
}

// UpdateStatus
// PUT /api/v1/interviews/:id/status
func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.UpdateInterviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	iv, err := h.interviewSvc.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	response.OK(c, iv)
}

func (h *InterviewHandler) handleInterviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInterviewNotFound):
		response.NotFound(c, 16001, "interview not found")
	case errors.Is(err, service.ErrInvalidInterviewStatus):
		response.BadRequest(c, 16002, "unknown interview status")
	default:
		handleCommonError(c, err)
	}
}
