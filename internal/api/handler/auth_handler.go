package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-tracker/config"
	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
)

// AuthHandler login, token refresh and logout
type AuthHandler struct {
	authSvc service.AuthService
	authCfg *config.AuthConfig
}

// NewAuthHandler creates an AuthHandler. A nil authCfg uses session cookies with default flags.
func NewAuthHandler(authSvc service.AuthService, authCfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, authCfg: authCfg}
}

// Login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setRefreshCookie(c, result)
	response.OK(c, result)
}

// RefreshToken takes the refresh token from the body, falling back to the cookie
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		bindFailed(c, err)
		return
	}
	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		token, _ = c.Cookie(refreshCookieName)
	}
	if token == "" {
		response.BadRequest(c, 10001, "refresh token required")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), token)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setRefreshCookie(c, result)
	response.OK(c, result)
}

// Logout revokes the access token and clears the refresh cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := MustGetActor(c); !ok {
		return
	}
	jti, expiresAt := tokenInfo(c)

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		handleCommonError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	response.OK(c, nil)
}

// GetCurrentUser
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), actor)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

// ── cookies ──

func (h *AuthHandler) setRefreshCookie(c *gin.Context, tokens *dto.TokenResponse) {
	if tokens == nil || tokens.RefreshToken == "" {
		return
	}
	var maxAge time.Duration
	if h.authCfg != nil {
		maxAge = h.authCfg.RefreshTokenTTLDefault
		if tokens.RememberMe {
			maxAge = h.authCfg.RefreshTokenTTLRemember
		}
	}
	h.writeCookie(c, tokens.RefreshToken, int(maxAge.Seconds()))
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	h.writeCookie(c, "", -1)
}

func (h *AuthHandler) writeCookie(c *gin.Context, value string, maxAge int) {
	secure, domain, sameSite := false, "", http.SameSiteLaxMode
	if h.authCfg != nil {
		secure = h.authCfg.Cookie.Secure
		domain = h.authCfg.Cookie.Domain
		switch strings.ToLower(h.authCfg.Cookie.SameSite) {
		case "strict":
			sameSite = http.SameSiteStrictMode
		case "none":
			sameSite = http.SameSiteNoneMode
		}
	}
	c.SetSameSite(sameSite)
	c.SetCookie(refreshCookieName, value, maxAge, refreshCookiePath, domain, secure, true)
}

// handleAuthError maps auth errors onto responses
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "invalid email or password")
	case errors.Is(err, service.ErrUserInactive):
		response.Forbidden(c, 11002, "account is deactivated")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		h.clearRefreshCookie(c)
		response.Unauthorized(c, 11003, "refresh token invalid or expired")
	default:
		handleCommonError(c, err)
	}
}
