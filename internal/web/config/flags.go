package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/evmarket/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   listen address
//	-u string   upstream page renderer URL
//	-k string   JWT secret shared with the backend
//	-r float    rate limit, requests per second per IP
//	-b int      rate limit burst
//	-l string   log level
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-k", "-r", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "listen address")
	fs.StringVar(&cfg.Upstream, "u", cfg.Upstream, "upstream page renderer URL")
	fs.StringVar(&cfg.Secret, "k", cfg.Secret, "JWT secret")
	fs.Float64Var(&cfg.RateLimitRPS, "r", cfg.RateLimitRPS, "rate limit (requests per second per IP)")
	fs.IntVar(&cfg.RateLimitBurst, "b", cfg.RateLimitBurst, "rate limit burst")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
