package handlers

import (
	"net/http"
	"time"

	"rdw-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthService *services.HealthService
}

type HealthResponse struct {
	Status    string `json:"status"`
	RDW       string `json:"rdw"`
	Timestamp string `json:"timestamp"`
}

func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// HealthCheck reports service health based on upstream reachability.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if h.healthService.Probe(c.Request.Context()) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			RDW:       "reachable",
			Timestamp: timestamp,
		})
		return
	}

	c.JSON(http.StatusServiceUnavailable, HealthResponse{
		Status:    "unhealthy",
		RDW:       "unreachable",
		Timestamp: timestamp,
	})
}
