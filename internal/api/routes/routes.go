// Package routes defines the HTTP routes of the ERP client gateway.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/unifiedui/erp-client/internal/api/handlers"
	"github.com/unifiedui/erp-client/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler  *handlers.HealthHandler
	SessionHandler *handlers.SessionHandler
	ChatHandler    *handlers.ChatHandler
	ProxyHandler   *handlers.ProxyHandler
	// TranscriptsHandler is nil when the transcript archive is disabled.
	TranscriptsHandler *handlers.TranscriptsHandler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	r.GET("/health", cfg.HealthHandler.Health)
	r.GET("/ready", cfg.HealthHandler.Ready)
	r.GET("/live", cfg.HealthHandler.Live)

	session := r.Group("/session")
	{
		session.GET("", cfg.SessionHandler.Get)
		session.POST("/login", cfg.SessionHandler.Login)
		session.POST("/logout", cfg.SessionHandler.Logout)
	}

	chat := r.Group("/chat")
	{
		chat.POST("/send", cfg.ChatHandler.Send)
		chat.POST("/abort", cfg.ChatHandler.Abort)
		chat.GET("/state", cfg.ChatHandler.State)
		chat.GET("/events", cfg.ChatHandler.Events)
	}

	if cfg.TranscriptsHandler != nil {
		transcripts := r.Group("/transcripts")
		{
			transcripts.GET("", cfg.TranscriptsHandler.List)
			transcripts.GET("/:transcriptId", cfg.TranscriptsHandler.Get)
		}
	}

	// Backend API, forwarded with the session's bearer token.
	r.Any("/api/*path", cfg.ProxyHandler.Forward)

	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())
}

// SetupWithMiddleware sets up routes with common middleware.
// Request ids are assigned first so every later middleware can log them.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware, cors middleware.CORSConfig) {
	r.HandleMethodNotAllowed = true

	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(middleware.NewCORSMiddleware(cors))

	Setup(r, cfg)
}
