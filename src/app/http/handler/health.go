package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"monhaven/src/core/usecase"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	healthService *usecase.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *usecase.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// Health returns the liveness status of the application.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DetailedHealth additionally reports database reachability.
// GET /health/detailed
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	dbStatus := "ok"
	status := http.StatusOK
	if err := h.healthService.Check(c.Request.Context()); err != nil {
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status": dbStatus,
		"components": gin.H{
			"database": dbStatus,
		},
	})
}
