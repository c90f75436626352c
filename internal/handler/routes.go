package handler

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"veritas-dashboard/internal/metrics"
	"veritas-dashboard/internal/middleware"
)

// RegisterRoutes mounts all endpoints and middleware on the Echo server.
// Auth, session and health stay outside the gate; every other /v1 route
// requires a live session.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler(h.logger)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(ctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(ctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	limiter := middleware.NewRateLimiter(rate.Limit(h.cfg.RateLimitRPS), h.cfg.RateLimitBurst)
	e.Use(limiter.Middleware())

	e.GET("/v1/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.POST("/v1/auth/login", h.Login)
	e.POST("/v1/auth/register", h.Register)
	e.POST("/v1/auth/logout", h.Logout)
	e.GET("/v1/session", h.Session)

	v1 := e.Group("/v1", middleware.AuthGate(h.sessions))
	v1.GET("/feed", h.Feed)
	v1.GET("/feed/summary", h.FeedSummary)
	v1.GET("/feed/stream", h.FeedStream)
	v1.POST("/posts/:id/flag", h.FlagPost)
	v1.POST("/posts/:id/dismiss", h.DismissPost)
	v1.PUT("/posts/:id/status", h.UpdatePostStatus)
	v1.DELETE("/posts/:id", h.DeletePost)
	v1.GET("/flagged", h.Flagged)
	v1.GET("/authors", h.Authors)
	v1.GET("/topics", h.Topics)
	v1.POST("/topics", h.CreateTopic)
	v1.PUT("/topics/:id", h.UpdateTopic)
	v1.DELETE("/topics/:id", h.DeleteTopic)
	v1.GET("/overview", h.Overview)
	v1.GET("/audit", h.Audit)
	v1.POST("/audit", h.RecordAudit)
	v1.POST("/chat", h.Chat)
	v1.GET("/chat/history", h.ChatHistory)
}
