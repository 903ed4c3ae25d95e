// Package handlers provides HTTP handlers for the gateway.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/erp-client/internal/api/dto"
	"github.com/unifiedui/erp-client/internal/core/docdb"
	"github.com/unifiedui/erp-client/internal/core/tokenstore"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	tokenStore  tokenstore.Store
	docDBClient docdb.Client
}

// NewHealthHandler creates a new HealthHandler. docDBClient may be nil when
// the transcript archive is disabled.
func NewHealthHandler(tokenStore tokenstore.Store, docDBClient docdb.Client) *HealthHandler {
	return &HealthHandler{
		tokenStore:  tokenStore,
		docDBClient: docDBClient,
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (h *HealthHandler) components() map[string]pinger {
	components := map[string]pinger{"tokenstore": h.tokenStore}
	if h.docDBClient != nil {
		components["docdb"] = h.docDBClient
	}
	return components
}

// Health handles the /health endpoint.
// @Summary Health check
// @Description Returns the overall health status and component statuses
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Gateway healthy"
// @Failure 503 {object} dto.HealthResponse "Gateway unhealthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	statuses := make(map[string]string)
	healthy := true

	for name, component := range h.components() {
		if err := component.Ping(c.Request.Context()); err != nil {
			statuses[name] = "unhealthy"
			healthy = false
			continue
		}
		statuses[name] = "healthy"
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthResponse{
		Status:     status,
		Components: statuses,
	})
}

// Ready handles the /ready endpoint.
// @Summary Readiness check
// @Description Returns 200 if the gateway can persist sessions
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Gateway ready"
// @Failure 503 {object} map[string]string "Gateway not ready"
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	for name, component := range h.components() {
		if err := component.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": name + " unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// Live handles the /live endpoint.
// @Summary Liveness check
// @Description Returns 200 if the gateway is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Gateway alive"
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
