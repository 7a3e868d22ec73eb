package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbanmorph/dispatch-service/internal/database"
)

// HealthResponse reports service liveness and dispatch-database
// reachability. TotalConns is included only while connected.
type HealthResponse struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	TotalConns int32  `json:"totalConns,omitempty"`
}

// HealthCheck reports whether the service can serve suggestion requests.
// GET /health
func HealthCheck(c *gin.Context) {
	response := HealthResponse{Status: "ok"}

	if database.Pool() == nil {
		response.Database = "not configured"
		c.JSON(http.StatusOK, response)
		return
	}

	if err := database.Status(c.Request.Context()); err != nil {
		response.Database = "disconnected"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	response.Database = "connected"
	if stats := database.Stats(); stats != nil {
		response.TotalConns = stats.TotalConns()
	}
	c.JSON(http.StatusOK, response)
}
