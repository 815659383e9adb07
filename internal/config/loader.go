package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// envAliases maps short environment variable suffixes to config keys,
// so deployment-critical settings have stable flat names
// (JOBTRACK_PORT, JOBTRACK_SPREADSHEET_ID, ...) in addition to the
// automatic nested form (JOBTRACK_SERVER_PORT).
var envAliases = map[string]string{
	"PORT":           "server.port",
	"HOST":           "server.host",
	"LOG_LEVEL":      "logging.level",
	"SPREADSHEET_ID": "sheets.spreadsheet_id",
	"CLIENT_EMAIL":   "sheets.client_email",
	"PRIVATE_KEY":    "sheets.private_key",
	"SHEET_NAME":     "sheets.sheet_name",
	"READ_RANGE":     "sheets.read_range",
	"BACKUP_BUCKET":  "backup.bucket",
}

// Load builds the configuration.
//
// Precedence, lowest to highest: built-in defaults, jobtrack.yaml in
// the working directory (optional), runtime override maps (nested
// keys, e.g. {"server": {"port": 9000}}), then JOBTRACK_* environment
// variables.
func Load(ctx context.Context, overrides ...map[string]any) (*Config, error) {
	v := viper.New()

	for key, val := range defaults() {
		v.SetDefault(key, val)
	}

	v.SetConfigName("jobtrack")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("JOBTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for suffix, key := range envAliases {
		if err := v.BindEnv(key, "JOBTRACK_"+suffix); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", suffix, err)
		}
	}

	for _, override := range overrides {
		if err := v.MergeConfigMap(override); err != nil {
			return nil, fmt.Errorf("merge overrides: %w", err)
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Sheets.PrivateKey = normalizePrivateKey(cfg.Sheets.PrivateKey)

	return &cfg, nil
}

// normalizePrivateKey turns literal \n escapes into newlines. Service
// account keys shipped through environment variables commonly arrive
// with escaped newlines.
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
