// Package main is the entry point for the ERP client gateway.
// @title ERP Client Gateway API
// @version 1.0
// @description Local gateway over an ERP backend session: login, authorized API calls with transparent token refresh, and a streaming assistant chat.

// @contact.name API Support
// @contact.url https://github.com/unifiedui/erp-client

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8090
// @BasePath /
// @schemes http
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/unifiedui/erp-client/docs"
	"github.com/unifiedui/erp-client/internal/api/handlers"
	"github.com/unifiedui/erp-client/internal/api/middleware"
	"github.com/unifiedui/erp-client/internal/api/routes"
	"github.com/unifiedui/erp-client/internal/app"
	"github.com/unifiedui/erp-client/internal/config"
	"github.com/unifiedui/erp-client/internal/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.Init(logging.Config{})
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	ctx := context.Background()

	application, err := app.New(ctx, cfg, logger, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize application")
	}

	// Resume the previous session, if any
	restored, err := application.Session.Restore(ctx)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("failed to restore session")
	case restored:
		user := application.Session.CurrentUser()
		event := logger.Info()
		if user != nil {
			event = event.Str("email", user.Email)
		}
		event.Msg("session restored")
	default:
		logger.Info().Msg("no stored session, login required")
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	router := setupRouter(application, logger)

	baseCtx, stopRequests := context.WithCancel(ctx)
	defer stopRequests()

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Str("api", cfg.API.BaseURL).Msg("starting gateway")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Event subscribers would otherwise hold Shutdown open.
	application.Chat.Abort()
	stopRequests()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	if err := application.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to release resources")
	}

	logger.Info().Msg("gateway exited")
}

// setupRouter creates and configures the Gin router.
func setupRouter(a *app.App, logger zerolog.Logger) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddlewareWithLogger(logger)
	errorMw := middleware.NewErrorMiddleware()

	routesCfg := &routes.Config{
		HealthHandler:  handlers.NewHealthHandler(a.TokenStore, a.DocDB),
		SessionHandler: handlers.NewSessionHandler(a.Session, a.Vault),
		ChatHandler:    handlers.NewChatHandler(a.Chat, handlers.DefaultKeepAlive),
		ProxyHandler:   handlers.NewProxyHandler(a.Session, a.Config.API.RequestTimeout),
	}
	if a.DocDB != nil {
		routesCfg.TranscriptsHandler = handlers.NewTranscriptsHandler(a.DocDB.Transcripts())
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw, middleware.DefaultCORSConfig())

	// Swagger documentation endpoint
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
