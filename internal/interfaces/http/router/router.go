package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storeboard/backend/internal/infrastructure/auth"
	"github.com/storeboard/backend/internal/interfaces/http/handler"
	"github.com/storeboard/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler mounted by the router.
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
}

// Setup mounts all routes on the engine. Registration, login and the
// system probes are public; everything else sits behind JWT auth.
func Setup(engine *gin.Engine, jwtService *auth.JWTService, handlers Handlers, logger *zap.Logger) {
	public := engine.Group("/")
	protected := engine.Group("/")
	protected.Use(middleware.JWTAuth(jwtService, logger))

	handlers.System.RegisterRoutes(public)
	handlers.Auth.RegisterRoutes(public, protected)
	handlers.User.RegisterRoutes(protected)
	handlers.Product.RegisterRoutes(protected)
	handlers.Order.RegisterRoutes(protected)
	handlers.Dashboard.RegisterRoutes(protected)
}
