package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/sdfwot/pkg/api/types"
)

// Pinger reports whether a backing store is reachable. *db.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	database Pinger
}

// NewHealthHandler creates a new health handler. database may be nil when
// history is disabled.
func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{database: database}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and its database
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Service is degraded"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	databaseStatus := "disabled"
	if h.database != nil {
		databaseStatus = "connected"
		if err := h.database.PingContext(c.Request.Context()); err != nil {
			databaseStatus = "disconnected"
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK

	if databaseStatus == "disconnected" {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Database:  databaseStatus,
		Timestamp: time.Now(),
	})
}
