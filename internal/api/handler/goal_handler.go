package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

// GoalHandler goal listing and upsert
type GoalHandler struct {
	goalSvc service.GoalService
}

// NewGoalHandler creates a GoalHandler
func NewGoalHandler(goalSvc service.GoalService) *GoalHandler {
	return &GoalHandler{goalSvc: goalSvc}
}

// ListGoals
// GET /api/v1/goals?year=&month=&user_id=&team_id=
func (h *GoalHandler) ListGoals(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.GoalListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	goals, err := h.goalSvc.List(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleGoalError(c, err)
		return
	}

	response.OK(c, gin.H{"list": goals})
}

// UpsertGoal one goal per owner, period and metric
// PUT /api/v1/goals
func (h *GoalHandler) UpsertGoal(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.UpsertGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	goal, err := h.goalSvc.Upsert(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleGoalError(c, err)
		return
	}

	response.OK(c, goal)
}

// DeleteGoal
// DELETE /api/v1/goals/:id
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.goalSvc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.handleGoalError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *GoalHandler) handleGoalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGoalNotFound):
		response.NotFound(c, 15001, "goal not found")
	case errors.Is(err, service.ErrGoalOwnerRequired):
		response.BadRequest(c, 15002, "a goal needs a user or a team")
	case errors.Is(err, service.ErrGoalTeamMismatch):
		response.BadRequest(c, 15003, "user does not belong to the given team")
	case errors.Is(err, service.ErrInvalidMetricType):
		response.BadRequest(c, 15004, "unknown metric type")
	case errors.Is(err, service.ErrInvalidGoalTarget):
		response.BadRequest(c, 15005, "target value must be a non-negative number")
	default:
		handleCommonError(c, err)
	}
}
