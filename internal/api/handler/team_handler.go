package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

// TeamHandler team CRUD and membership
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler creates a TeamHandler
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// ListTeams
// GET /api/v1/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	teams, err := h.teamSvc.List(c.Request.Context(), actor)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, gin.H{"list": teams})
}

// GetTeam
// GET /api/v1/teams/:id
func (h *TeamHandler) GetTeam(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	team, err := h.teamSvc.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, team)
}

// CreateTeam
// POST /api/v1/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	team, err := h.teamSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.Created(c, team)
}

// UpdateTeam
// PUT /api/v1/teams/:id
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	team, err := h.teamSvc.Update(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, team)
}

// DeleteTeam refused while the team has members
// DELETE /api/v1/teams/:id
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.teamSvc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetMembers
// GET /api/v1/teams/:id/members
func (h *TeamHandler) GetMembers(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	members, err := h.teamSvc.Members(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, gin.H{"list": members})
}

// handleTeamError maps team module errors onto responses
func (h *TeamHandler) handleTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNameExists):
		response.Conflict(c, 13002, "team name already exists")
	case errors.Is(err, service.ErrTeamHasMembers):
		response.BadRequest(c, 13003, "team still has members and cannot be deleted")
	case errors.Is(err, service.ErrManagerNotFound):
		response.BadRequest(c, 13004, "manager user not found")
	default:
		handleCommonError(c, err)
	}
}
