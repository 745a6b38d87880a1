// Package config loads runtime configuration for the marketplace CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend API base URL
//	-s string   web gateway URL (cookie scope)
//	-d string   session database file
//	-i int      token expiry check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080/api",
//	  "site_url": "http://localhost:3000",
//	  "db_path": "evmarket.db",
//	  "expiry_check_interval": "60s",
//	  "cookie_max_age": "168h",
//	  "cap_cookie_to_token": true,
//	  "log_level": "warn"
//	}
package config
