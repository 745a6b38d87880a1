package config

import "time"

// Config holds runtime settings for the marketplace CLI.
//
// Fields:
//   - APIBaseURL: root of the backend REST API, e.g. http://localhost:8080/api.
//   - SiteURL: the web gateway; the token cookie is scoped to it.
//   - DBPath: SQLite file holding the session.
//   - ExpiryCheckInterval: how often the watchdog re-checks the token.
//   - CookieMaxAge: lifetime of the token cookie.
//   - CapCookieToToken: never let the cookie outlive the token.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL          string
	SiteURL             string
	DBPath              string
	ExpiryCheckInterval time.Duration
	CookieMaxAge        time.Duration
	CapCookieToToken    bool
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.SiteURL = "http://localhost:3000"
	c.DBPath = "evmarket.db"
	c.ExpiryCheckInterval = 60 * time.Second
	c.CookieMaxAge = 7 * 24 * time.Hour
	c.CapCookieToToken = true
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
