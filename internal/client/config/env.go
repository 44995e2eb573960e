package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name in Config's env tags.
const EnvPrefix = "DASHBOARD_"

// parseEnv overlays Config with DASHBOARD_* variables. Unset variables leave
// fields untouched. environ replaces the process environment when non-nil.
// Panics on malformed values, like the other loaders.
func parseEnv(cfg *Config, environ map[string]string) {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		panic(err)
	}
}
