// Package config loads runtime configuration for the dashboard shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. DASHBOARD_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "800ms"
// or integer nanoseconds:
//
//	{
//	  "database_dsn": "dashboard.db",
//	  "default_role": "admin",
//	  "login_delay": "800ms",
//	  "logout_delay": "300ms",
//	  "session_ttl": "24h",
//	  "posts_url": "https://jsonplaceholder.typicode.com/posts",
//	  "posts_limit": 5,
//	  "http_addr": ":8080",
//	  "log_level": "info",
//	  "color_scheme": "auto"
//	}
//
// # Environment
//
//	DASHBOARD_DATABASE_DSN, DASHBOARD_DEFAULT_ROLE, DASHBOARD_LOGIN_DELAY,
//	DASHBOARD_LOGOUT_DELAY, DASHBOARD_SESSION_TTL, DASHBOARD_POSTS_URL,
//	DASHBOARD_POSTS_LIMIT, DASHBOARD_HTTP_ADDR, DASHBOARD_LOG_LEVEL,
//	DASHBOARD_COLOR_SCHEME
package config
