package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name, e.g. EVMARKET_JWT_SECRET.
const EnvPrefix = "EVMARKET_"

// parseEnv overlays Config with environment variables. Unset variables
// leave the current values alone. It panics on malformed values.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(fmt.Errorf("failed to parse env: %w", err))
	}
}
