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

	"github.com/labstack/echo/v4"

	"veritas-dashboard/config"
	"veritas-dashboard/internal/client"
	"veritas-dashboard/internal/handler"
	"veritas-dashboard/internal/logger"
	"veritas-dashboard/internal/session"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx := context.Background()

	// Initialize structured logger with trace context support
	appLogger := logger.Init()

	// Load configuration
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		slog.ErrorContext(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"port", cfg.Port,
		"upstream_url", cfg.UpstreamAPIURL,
		"feed_page_size", cfg.FeedPageSize,
		"stats_cache_ttl", cfg.StatsCacheTTL,
		"session_sweep_interval", cfg.SessionSweepInterval)

	// Initialize dependencies
	api := client.New(cfg.UpstreamAPIURL, cfg.UpstreamTimeout, appLogger)
	sessions := session.NewRegistry(cfg.SessionSweepInterval, appLogger)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sessions.Sweep(sweepCtx)

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	h := handler.New(api, cfg, sessions, appLogger)
	h.RegisterRoutes(e)

	// Start server in a goroutine
	address := fmt.Sprintf(":%s", cfg.Port)
	go func() {
		slog.InfoContext(ctx, "starting veritas-dashboard server", "address", address)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.InfoContext(ctx, "shutting down server...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "server exited properly")
}

// runHealthcheck performs a health check against the local server
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "9300"
	}

	client := &http.Client{
		Timeout: 2 * time.Second,
	}

	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/v1/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}

	return nil
}
