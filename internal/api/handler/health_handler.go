package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck one dependency probe
type HealthCheck struct {
	Name     string
	Required bool // a failing required check turns the reply into a 503
	Ping     func(ctx context.Context) error
}

// HealthHandler liveness plus dependency probes
type HealthHandler struct {
	checks []HealthCheck
}

// NewHealthHandler creates a HealthHandler
func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if err := chk.Ping(ctx); err != nil {
			results[chk.Name] = err.Error()
			if chk.Required {
				status, code = "unavailable", http.StatusServiceUnavailable
			} else if status == "ok" {
				status = "degraded"
			}
			continue
		}
		results[chk.Name] = "ok"
	}

	c.JSON(code, gin.H{"status": status, "checks": results})
}
