package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/analytics"
	"recruit-tracker/pkg/response"
)

// MustGetActor builds the caller from what JWTAuth put into the context.
// On failure it has already written a 401; the caller should just return.
func MustGetActor(c *gin.Context) (analytics.Actor, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return analytics.Actor{}, false
	}
	role, ok := analytics.ParseRole(c.GetString("role"))
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return analytics.Actor{}, false
	}
	// deactivation takes effect at the next refresh, which re-reads the user
	return analytics.Actor{
		ID:     userID,
		Role:   role,
		TeamID: c.GetString("team_id"),
		Active: true,
	}, true
}

// tokenInfo the JWT ID and expiry of the access token used for this request
func tokenInfo(c *gin.Context) (string, time.Time) {
	jti := c.GetString("token_jti")
	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)
	return jti, expiresAt
}

// bindOptionalJSON binds a body that may be empty
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
