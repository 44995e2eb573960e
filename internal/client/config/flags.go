package config

import (
	"flag"

	"github.com/dmitrijs2005/dashshell/internal/flagx"
)

var knownFlags = []string{"-d", "-role", "-addr", "-log-level", "-scheme", "-login-delay", "-logout-delay", "-posts-url"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string              SQLite file of the durable store
//	-role string           default login role (admin|user)
//	-addr string           HTTP listen address
//	-log-level string      debug|info|warn|error
//	-scheme string         color scheme fallback (auto|dark|light)
//	-login-delay duration  simulated login latency
//	-logout-delay duration simulated logout latency
//	-posts-url string      dashboard posts endpoint
//
// Only these flags are parsed (see flagx.FilterArgs). Panics on bad values.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite file of the durable store")
	fs.StringVar(&cfg.DefaultRole, "role", cfg.DefaultRole, "default login role (admin|user)")
	fs.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.ColorScheme, "scheme", cfg.ColorScheme, "color scheme fallback (auto|dark|light)")
	fs.DurationVar(&cfg.LoginDelay, "login-delay", cfg.LoginDelay, "simulated login latency")
	fs.DurationVar(&cfg.LogoutDelay, "logout-delay", cfg.LogoutDelay, "simulated logout latency")
	fs.StringVar(&cfg.PostsURL, "posts-url", cfg.PostsURL, "dashboard posts endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}
}
