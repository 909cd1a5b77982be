package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WanderWise/wander-wise-backend/config"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Liveness handles GET /health/liveness
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /health. The service has no backing stores; it is
// ready once the completion provider is configured.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.cfg.OpenAI.APIKey == "" || h.cfg.OpenAI.BaseURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "completion provider not configured",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"version":     h.cfg.Server.Version,
		"environment": string(h.cfg.Server.Environment),
	})
}
