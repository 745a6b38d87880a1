package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/evmarket/internal/flagx"
	"github.com/dmitrijs2005/evmarket/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-able fields are copied only when present, so a partial file keeps the
// defaults for everything it does not mention.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	SiteURL             string          `json:"site_url"`
	DBPath              string          `json:"db_path"`
	ExpiryCheckInterval *timex.Duration `json:"expiry_check_interval"`
	CookieMaxAge        *timex.Duration `json:"cookie_max_age"`
	CapCookieToToken    *bool           `json:"cap_cookie_to_token"`
	LogLevel            string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. It panics on read or
// unmarshal errors.
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
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.SiteURL != "" {
		cfg.SiteURL = jc.SiteURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.ExpiryCheckInterval != nil {
		cfg.ExpiryCheckInterval = jc.ExpiryCheckInterval.Duration
	}
	if jc.CookieMaxAge != nil {
		cfg.CookieMaxAge = jc.CookieMaxAge.Duration
	}
	if jc.CapCookieToToken != nil {
		cfg.CapCookieToToken = *jc.CapCookieToToken
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
