package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/evmarket/internal/flagx"
	"github.com/dmitrijs2005/evmarket/internal/timex"
	"github.com/dmitrijs2005/evmarket/internal/web/guard"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ListenAddr       string          `json:"listen_addr"`
	Upstream         string          `json:"upstream"`
	Secret           string          `json:"secret"`
	CheckExpiry      *bool           `json:"check_expiry"`
	EnforceAdminRole *bool           `json:"enforce_admin_role"`
	RateLimitRPS     *float64        `json:"rate_limit_rps"`
	RateLimitBurst   *int            `json:"rate_limit_burst"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	LogLevel         string          `json:"log_level"`
	Routes           *guard.Routes   `json:"routes"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.Upstream != "" {
		cfg.Upstream = jc.Upstream
	}
	if jc.Secret != "" {
		cfg.Secret = jc.Secret
	}
	if jc.CheckExpiry != nil {
		cfg.CheckExpiry = *jc.CheckExpiry
	}
	if jc.EnforceAdminRole != nil {
		cfg.EnforceAdminRole = *jc.EnforceAdminRole
	}
	if jc.RateLimitRPS != nil {
		cfg.RateLimitRPS = *jc.RateLimitRPS
	}
	if jc.RateLimitBurst != nil {
		cfg.RateLimitBurst = *jc.RateLimitBurst
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.Routes != nil {
		cfg.Routes = *jc.Routes
	}
}
