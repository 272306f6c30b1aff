package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wishport/unfurl/api"
	"github.com/wishport/unfurl/cache"
	"github.com/wishport/unfurl/config"
	"github.com/wishport/unfurl/engine"
	"github.com/wishport/unfurl/extract"
	"github.com/wishport/unfurl/extract/sites"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("unfurl starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"renderTier", cfg.Render.APIKey != "",
	)

	// ── 3. Build the fetch tiers ────────────────────────────────────
	// The rendering tier only exists when a service credential is
	// configured; without one, insufficient direct fetches fail outright.
	tiers := []engine.Tier{
		{
			Engine:  engine.NewDirectEngine(cfg.Fetch.MinContentBytes, cfg.Fetch.MaxBodyBytes),
			Timeout: cfg.Fetch.DirectTimeout,
		},
	}
	if cfg.Render.APIKey != "" {
		tiers = append(tiers, engine.Tier{
			Engine:  engine.NewRenderEngine(cfg.Render.Endpoint, cfg.Render.APIKey, cfg.Fetch.MaxBodyBytes),
			Timeout: cfg.Render.Timeout,
		})
	} else {
		slog.Warn("no rendering-service API key configured; JS-heavy pages will fail")
	}
	orc := engine.NewOrchestrator(tiers)

	// ── 4. Initialise the extractor ─────────────────────────────────
	ex := extract.New(cfg.Extract, sites.All(cfg.Extract))

	// ── 4b. Initialise cache ────────────────────────────────────────
	cc := cache.New(cfg.Cache.MaxEntries)

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(orc, ex, cfg, cc, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("unfurl stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
