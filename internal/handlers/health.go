package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	Elasticsearch string `json:"elasticsearch"`
}

// HealthCheck reports dependency status. The service is degraded (503) when
// the search backend is unreachable; the catalog only affects its own routes.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	response := HealthResponse{Status: "ok"}
	status := http.StatusOK

	switch {
	case searchBackend == nil:
		response.Elasticsearch = "not configured"
	case searchBackend.Ping(ctx) != nil:
		response.Elasticsearch = "disconnected"
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	default:
		response.Elasticsearch = "connected"
	}

	if catalog == nil {
		response.Database = "not configured"
	} else if pinger, ok := catalog.(Pinger); ok && pinger.Ping(ctx) != nil {
		response.Database = "disconnected"
	} else {
		response.Database = "connected"
	}

	c.JSON(status, response)
}
