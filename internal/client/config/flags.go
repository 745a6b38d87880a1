package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend API base URL
//	-s string   web gateway URL
//	-d string   session database file
//	-i int      token expiry check interval in seconds
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.SiteURL, "s", cfg.SiteURL, "web gateway URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "session database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	expiryCheckInterval := fs.Int("i", int(cfg.ExpiryCheckInterval.Seconds()), "token expiry check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ExpiryCheckInterval = time.Duration(*expiryCheckInterval) * time.Second
}
