package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mailgenie-backend/models"
)

// HealthController handles liveness probes
type HealthController struct {
	version string
}

// NewHealthController creates a new health controller instance
func NewHealthController(version string) *HealthController {
	return &HealthController{version: version}
}

// Health handles basic health check
func (hc *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   hc.version,
	})
}
