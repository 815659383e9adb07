// Package config loads application configuration from defaults, an
// optional jobtrack.yaml file, runtime overrides, and JOBTRACK_*
// environment variables, in that precedence order (later wins).
package config

import (
	"time"

	"github.com/printdesk/jobtrack/internal/backup"
	"github.com/printdesk/jobtrack/internal/sheets"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Sheets    sheets.Config   `mapstructure:"sheets"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Backup    backup.Config   `mapstructure:"backup"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig throttles the submit endpoint. Disabled by default;
// the spreadsheet backend serializes appends itself, so the limiter
// exists only to keep a misbehaving client from hammering the quota.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.host":             "localhost",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",

		"logging.level":  "info",
		"logging.format": "json",

		"sheets.spreadsheet_id": "",
		"sheets.client_email":   "",
		"sheets.private_key":    "",
		"sheets.sheet_name":     sheets.DefaultSheetName,
		"sheets.read_range":     sheets.DefaultReadRange,

		"ratelimit.enabled": false,
		"ratelimit.rps":     5.0,
		"ratelimit.burst":   10,

		"backup.bucket":   "",
		"backup.region":   "",
		"backup.endpoint": "",
		"backup.prefix":   "backups/",
	}
}
