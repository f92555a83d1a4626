package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storeboard/backend/internal/infrastructure/persistence"
	"github.com/storeboard/backend/internal/interfaces/http/dto"
)

// SystemHandler serves liveness and readiness endpoints.
type SystemHandler struct {
	BaseHandler
	db *persistence.Database
}

// NewSystemHandler creates a system handler. db may be nil in tests.
func NewSystemHandler(db *persistence.Database, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
	}
}

// RegisterRoutes mounts the system endpoints on the public group.
func (h *SystemHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/health", h.Health)
	public.GET("/ping", h.Ping)
}

// Health reports process liveness and database reachability. A broken
// database connection degrades the status but still returns 200 so
// orchestrators can distinguish "up but degraded" from "down".
func (h *SystemHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Database: "ok"}
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("database ping failed", zap.Error(err))
			resp.Status = "degraded"
			resp.Database = "unreachable"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Ping is a trivial liveness probe.
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
