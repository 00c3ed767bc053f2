package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/internal/service"
	pkgerrors "recruit-tracker/pkg/errors"
	"recruit-tracker/pkg/response"
)

// handleCommonError replies for the errors every module can return.
// Anything it does not recognise becomes a 500.
func handleCommonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "permission denied")
	case errors.Is(err, service.ErrNoTeam):
		response.BadRequest(c, 10006, "user is not assigned to a team")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10007, "invalid date, expected YYYY-MM-DD")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10008, "record was modified by someone else, reload and retry")
	case errors.Is(err, analytics.ErrInvalidForecastConfig), errors.Is(err, pkgerrors.ErrInvalidConfiguration):
		response.ErrorWithDetails(c, http.StatusBadRequest, 19001, "invalid forecast configuration", err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, 13001, "team not found")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// bindFailed the 400 for a request that did not pass binding
func bindFailed(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid parameters", err.Error())
}
