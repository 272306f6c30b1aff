package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wishport/unfurl/api/handler"
	"github.com/wishport/unfurl/api/middleware"
	"github.com/wishport/unfurl/cache"
	"github.com/wishport/unfurl/config"
	"github.com/wishport/unfurl/engine"
	"github.com/wishport/unfurl/extract"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → CORS
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
// CORS is wide open by default because the wishlist UI calls this API straight
// from the browser.
func NewRouter(orc *engine.Orchestrator, ex *extract.Extractor, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-API-Key", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Metadata extraction
	protected.POST("/metadata", handler.Metadata(orc, ex, cc, cfg.Fetch))

	return r
}
