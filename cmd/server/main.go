package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storeboard/backend/internal/application/dashboard"
	identityapp "github.com/storeboard/backend/internal/application/identity"
	storefrontapp "github.com/storeboard/backend/internal/application/storefront"
	"github.com/storeboard/backend/internal/infrastructure/auth"
	"github.com/storeboard/backend/internal/infrastructure/config"
	"github.com/storeboard/backend/internal/infrastructure/logger"
	"github.com/storeboard/backend/internal/infrastructure/persistence"
	"github.com/storeboard/backend/internal/infrastructure/secrets"
	"github.com/storeboard/backend/internal/infrastructure/woocommerce"
	"github.com/storeboard/backend/internal/interfaces/http/handler"
	"github.com/storeboard/backend/internal/interfaces/http/middleware"
	"github.com/storeboard/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting store dashboard backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	cipher, err := secrets.NewCipher(cfg.Cipher.Key)
	if err != nil {
		log.Fatal("Failed to initialize credential cipher", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	gateway := woocommerce.NewClient(cfg.Store.RequestTimeout)

	authService := identityapp.NewAuthService(accountRepo, jwtService, cipher, log)
	storeService := storefrontapp.NewStoreService(authService, gateway, log)
	summaryService := dashboard.NewSummaryService(authService, gateway, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.SecurityHeaders())

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	router.Setup(engine, jwtService, router.Handlers{
		System:    handler.NewSystemHandler(db, log),
		Auth:      handler.NewAuthHandler(authService, log),
		User:      handler.NewUserHandler(authService, log),
		Product:   handler.NewProductHandler(storeService, log),
		Order:     handler.NewOrderHandler(storeService, log),
		Dashboard: handler.NewDashboardHandler(summaryService, log),
	}, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
