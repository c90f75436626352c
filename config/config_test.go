package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	// Clear environment
	os.Clearenv()

	cfg := NewConfig()

	assert.Equal(t, "9300", cfg.Port)
	assert.Equal(t, "http://review-api:8080", cfg.UpstreamAPIURL)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 10, cfg.FeedPageSize)
	assert.Equal(t, 30, cfg.AuthorsPageSize)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, 60*time.Second, cfg.SessionSweepInterval)
	assert.Equal(t, 15*time.Second, cfg.StreamInterval)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	os.Setenv("PORT", "8080")
	os.Setenv("UPSTREAM_API_URL", "http://localhost:4000")
	os.Setenv("UPSTREAM_TIMEOUT", "60s")
	os.Setenv("FEED_PAGE_SIZE", "25")
	os.Setenv("AUTHORS_PAGE_SIZE", "50")
	os.Setenv("SESSION_SWEEP_INTERVAL", "2m")
	defer os.Clearenv()

	cfg := NewConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:4000", cfg.UpstreamAPIURL)
	assert.Equal(t, 60*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 25, cfg.FeedPageSize)
	assert.Equal(t, 50, cfg.AuthorsPageSize)
	assert.Equal(t, 2*time.Minute, cfg.SessionSweepInterval)
}

func TestNewConfig_InvalidValues_UseDefaults(t *testing.T) {
	os.Setenv("UPSTREAM_TIMEOUT", "invalid")
	os.Setenv("FEED_PAGE_SIZE", "not-a-number")
	os.Setenv("RATE_LIMIT_RPS", "also-invalid")
	defer os.Clearenv()

	cfg := NewConfig()

	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 10, cfg.FeedPageSize)
	assert.Equal(t, float64(20), cfg.RateLimitRPS)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty port",
			modify:  func(c *Config) { c.Port = "" },
			wantErr: true,
		},
		{
			name:    "empty upstream URL",
			modify:  func(c *Config) { c.UpstreamAPIURL = "" },
			wantErr: true,
		},
		{
			name:    "zero feed page size",
			modify:  func(c *Config) { c.FeedPageSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative sweep interval",
			modify:  func(c *Config) { c.SessionSweepInterval = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
