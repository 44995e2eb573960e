package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dashshell/internal/flagx"
	"github.com/dmitrijs2005/dashshell/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "800ms" or as integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN string         `json:"database_dsn"`
	DefaultRole string         `json:"default_role"`
	LoginDelay  timex.Duration `json:"login_delay"`
	LogoutDelay timex.Duration `json:"logout_delay"`
	SessionTTL  timex.Duration `json:"session_ttl"`
	PostsURL    string         `json:"posts_url"`
	PostsLimit  int            `json:"posts_limit"`
	HTTPAddr    string         `json:"http_addr"`
	LogLevel    string         `json:"log_level"`
	ColorScheme string         `json:"color_scheme"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Fields missing from the file keep their current value; a
// zero delay must therefore be set through env or flags.
//
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.DefaultRole, jc.DefaultRole)
	setString(&cfg.PostsURL, jc.PostsURL)
	setString(&cfg.HTTPAddr, jc.HTTPAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.ColorScheme, jc.ColorScheme)

	if jc.LoginDelay.Duration != 0 {
		cfg.LoginDelay = jc.LoginDelay.Duration
	}
	if jc.LogoutDelay.Duration != 0 {
		cfg.LogoutDelay = jc.LogoutDelay.Duration
	}
	if jc.SessionTTL.Duration != 0 {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.PostsLimit != 0 {
		cfg.PostsLimit = jc.PostsLimit
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
