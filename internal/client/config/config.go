package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the dashboard shell.
//
// Fields:
//   - DatabaseDSN: SQLite file backing the durable store (":memory:" for none).
//   - DefaultRole: role used when login is called without one.
//   - LoginDelay / LogoutDelay: simulated identity provider latency.
//   - SessionTTL: lifetime of an issued session.
//   - PostsURL / PostsLimit: source of the dashboard's recent posts.
//   - HTTPAddr: listen address of the HTTP dashboard.
//   - LogLevel: debug, info, warn or error.
//   - ColorScheme: auto, dark or light; the OS preference the theme falls back to.
type Config struct {
	DatabaseDSN string        `env:"DATABASE_DSN"`
	DefaultRole string        `env:"DEFAULT_ROLE"`
	LoginDelay  time.Duration `env:"LOGIN_DELAY"`
	LogoutDelay time.Duration `env:"LOGOUT_DELAY"`
	SessionTTL  time.Duration `env:"SESSION_TTL"`
	PostsURL    string        `env:"POSTS_URL"`
	PostsLimit  int           `env:"POSTS_LIMIT"`
	HTTPAddr    string        `env:"HTTP_ADDR"`
	LogLevel    string        `env:"LOG_LEVEL"`
	ColorScheme string        `env:"COLOR_SCHEME"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "dashboard.db"
	c.DefaultRole = "admin"
	c.LoginDelay = 800 * time.Millisecond
	c.LogoutDelay = 300 * time.Millisecond
	c.SessionTTL = 24 * time.Hour
	c.PostsURL = "https://jsonplaceholder.typicode.com/posts"
	c.PostsLimit = 5
	c.HTTPAddr = ":8080"
	c.LogLevel = "info"
	c.ColorScheme = "auto"
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), DASHBOARD_* environment variables and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, nil)
	parseFlags(cfg, args)
	return cfg
}
