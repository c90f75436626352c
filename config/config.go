// Package config provides configuration management for veritas-dashboard.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the dashboard service.
type Config struct {
	// Port is the port number the dashboard service listens on
	Port string
	// UpstreamAPIURL is the base URL of the review API
	UpstreamAPIURL string
	// UpstreamTimeout is the timeout for upstream API requests
	UpstreamTimeout time.Duration
	// FeedPageSize is the page size for the media feed and flagged queue
	FeedPageSize int
	// AuthorsPageSize is the page size for the watchlist authors view
	AuthorsPageSize int
	// StatsCacheTTL is how long aggregate statistics responses are cached
	StatsCacheTTL time.Duration
	// SessionSweepInterval is how often expired sessions are evicted
	SessionSweepInterval time.Duration
	// StreamInterval is how often the SSE live feed reloads from upstream
	StreamInterval time.Duration
	// RateLimitRPS is the per-IP request rate limit
	RateLimitRPS float64
	// RateLimitBurst is the per-IP burst allowance
	RateLimitBurst int
}

// NewConfig creates a new Config from environment variables with defaults.
func NewConfig() *Config {
	return &Config{
		Port:                 getEnv("PORT", "9300"),
		UpstreamAPIURL:       getEnv("UPSTREAM_API_URL", "http://review-api:8080"),
		UpstreamTimeout:      getDurationEnv("UPSTREAM_TIMEOUT", 30*time.Second),
		FeedPageSize:         getIntEnv("FEED_PAGE_SIZE", 10),
		AuthorsPageSize:      getIntEnv("AUTHORS_PAGE_SIZE", 30),
		StatsCacheTTL:        getDurationEnv("STATS_CACHE_TTL", 30*time.Second),
		SessionSweepInterval: getDurationEnv("SESSION_SWEEP_INTERVAL", 60*time.Second),
		StreamInterval:       getDurationEnv("STREAM_INTERVAL", 15*time.Second),
		RateLimitRPS:         getFloatEnv("RATE_LIMIT_RPS", 20),
		RateLimitBurst:       getIntEnv("RATE_LIMIT_BURST", 40),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.UpstreamAPIURL == "" {
		return errors.New("UPSTREAM_API_URL is required")
	}
	if c.FeedPageSize < 1 {
		return errors.New("FEED_PAGE_SIZE must be at least 1")
	}
	if c.AuthorsPageSize < 1 {
		return errors.New("AUTHORS_PAGE_SIZE must be at least 1")
	}
	if c.SessionSweepInterval <= 0 {
		return errors.New("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.StreamInterval <= 0 {
		return errors.New("STREAM_INTERVAL must be positive")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv returns the value of an environment variable as a duration or a default value.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getIntEnv returns the value of an environment variable as an int or a default value.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getFloatEnv returns the value of an environment variable as a float or a default value.
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
