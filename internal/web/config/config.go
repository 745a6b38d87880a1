// Package config handles configuration for the web gateway, including
// defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/evmarket/internal/web/guard"
)

// Config holds runtime settings for the web gateway.
//
// Fields:
//   - ListenAddr: bind address of the gateway.
//   - Upstream: page renderer to proxy allowed requests to; empty serves
//     built-in placeholder pages.
//   - Secret: HS256 key shared with the backend. Empty disables signature
//     checks; the guard then only decodes the token.
//   - CheckExpiry / EnforceAdminRole: guard policy switches.
//   - RateLimitRPS / RateLimitBurst: per-IP token bucket.
//   - Routes: the guard's route table.
type Config struct {
	ListenAddr       string        `env:"GATEWAY_ADDR"`
	Upstream         string        `env:"GATEWAY_UPSTREAM"`
	Secret           string        `env:"JWT_SECRET"`
	CheckExpiry      bool          `env:"GUARD_CHECK_EXPIRY"`
	EnforceAdminRole bool          `env:"GUARD_ENFORCE_ADMIN_ROLE"`
	RateLimitRPS     float64       `env:"RATE_LIMIT_RPS"`
	RateLimitBurst   int           `env:"RATE_LIMIT_BURST"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel         string        `env:"LOG_LEVEL"`
	Routes           guard.Routes
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":3000"
	c.Upstream = ""
	c.Secret = ""
	c.CheckExpiry = true
	c.EnforceAdminRole = true
	c.RateLimitRPS = 20
	c.RateLimitBurst = 40
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.Routes = guard.DefaultRoutes()
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
