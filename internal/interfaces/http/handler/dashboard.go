package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storeboard/backend/internal/application/dashboard"
)

// DashboardHandler serves the aggregated store summary.
type DashboardHandler struct {
	BaseHandler
	summaryService *dashboard.SummaryService
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(summaryService *dashboard.SummaryService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:    NewBaseHandler(logger),
		summaryService: summaryService,
	}
}

// RegisterRoutes mounts the dashboard endpoint on the protected group.
func (h *DashboardHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/dashboard/summary", h.Summary)
}

// Summary builds and returns the point-in-time store summary.
func (h *DashboardHandler) Summary(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.BuildSummary(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}
