package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storeboard/backend/internal/interfaces/http/dto"
	"github.com/storeboard/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides shared response helpers for all handlers.
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler with the given logger.
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BaseHandler{logger: logger}
}

// Error maps an application error to its HTTP status and writes the
// flat error envelope. Server-side failures are logged with the
// request ID; client errors are not.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	status, message := dto.MapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.Error(err),
			zap.Int("status", status),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")))
	}
	c.JSON(status, dto.NewErrorResponse(message))
}

// BadRequest writes a 400 with the given message.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// BindError writes a 400 for a failed request binding, preferring the
// validator's field-level message over the fallback.
func (h *BaseHandler) BindError(c *gin.Context, err error, fallback string) {
	h.BadRequest(c, middleware.ValidationMessage(err, fallback))
}

// accountID pulls the authenticated account ID out of the context. A
// missing ID means the route was mounted without the JWT middleware;
// respond 401 rather than proceeding unauthenticated.
func (h *BaseHandler) accountID(c *gin.Context) (int64, bool) {
	id, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Access denied. No token provided"))
		return 0, false
	}
	return id, true
}
