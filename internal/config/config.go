// Package config materializes process configuration once at startup.
// Components receive the resulting struct by reference; nothing reads
// configuration ambiently after Load returns.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the service reads. Immutable after Load.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string
	TokenTTL  time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int
}

// ErrMissingJWTSecret means no signing secret was configured. The server
// refuses to start rather than fall back to a well-known default.
var ErrMissingJWTSecret = errors.New("auth.jwt_secret is required")

// Load reads configuration from the given viper instance (flags, env, and
// optional config file are bound by the CLI layer), applies defaults, and
// validates the result.
func Load(v *viper.Viper) (*Config, error) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.token_ttl", "1h")
	v.SetDefault("ratelimit.window_seconds", 60)
	v.SetDefault("ratelimit.max_requests", 10)

	cfg := &Config{
		Host:            v.GetString("server.host"),
		Port:            v.GetInt("server.port"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		CORSOrigins:     v.GetStringSlice("server.cors_origins"),
		DatabaseDriver:  v.GetString("database.driver"),
		DatabaseDSN:     v.GetString("database.dsn"),
		JWTSecret:       v.GetString("auth.jwt_secret"),
		TokenTTL:        v.GetDuration("auth.token_ttl"),
		RateLimitWindow: time.Duration(v.GetInt("ratelimit.window_seconds")) * time.Second,
		RateLimitMax:    v.GetInt("ratelimit.max_requests"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("server.port out of range: %d", cfg.Port)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("auth.token_ttl must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.RateLimitWindow < time.Second {
		return nil, fmt.Errorf("ratelimit.window_seconds must be at least 1, got %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimitMax < 1 {
		return nil, fmt.Errorf("ratelimit.max_requests must be at least 1, got %d", cfg.RateLimitMax)
	}

	return cfg, nil
}
