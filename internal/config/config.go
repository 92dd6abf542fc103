// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gitlab.com/mthiha/goaltrack/internal/models"
)

// Config holds all configuration for the application.
type Config struct {
	DataDir            string
	ExchangeRateAPIKey string
	ExchangeRateAPIURL string
	RateCacheTTL       time.Duration
	ListenAddr         string
	AllowedOrigins     []string
	LogLevel           string
	LogFormat          string
}

// Load reads configuration from environment variables. Every key has a
// usable default; the only hard requirement is a resolvable data directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:            os.Getenv("GOALTRACK_DATA_DIR"),
		ExchangeRateAPIKey: os.Getenv("EXCHANGE_RATE_API_KEY"),
		ExchangeRateAPIURL: os.Getenv("EXCHANGE_RATE_API_URL"),
		ListenAddr:         os.Getenv("LISTEN_ADDR"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		LogFormat:          os.Getenv("LOG_FORMAT"),
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".goaltrack")
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:8974"
	}

	cfg.RateCacheTTL = models.RateCacheDuration
	if ttlStr := os.Getenv("RATE_CACHE_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil && ttl > 0 {
			cfg.RateCacheTTL = ttl
		}
	}

	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin == "" {
				continue
			}
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	return cfg, nil
}

// StorePath returns the location of the goal database file.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "goaltrack.db")
}

// Offline reports whether no rate API credential is configured. Offline mode
// is a supported configuration served by the fixed fallback rate.
func (c *Config) Offline() bool {
	return c.ExchangeRateAPIKey == ""
}
