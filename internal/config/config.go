package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for a planloom invocation.
// Values are populated from .planloom.yaml, PLANLOOM_* env vars, and
// CLI flags.
type Config struct {
	DateFormat  string   `mapstructure:"date_format"`
	WorkingDays []string `mapstructure:"working_days"`
	HistoryDB   string   `mapstructure:"history_db"`
	NoColor     bool     `mapstructure:"no_color"`
	Verbose     bool     `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("date_format", "YYYY-MM-DD")
	viper.SetDefault("working_days", []string{})
	viper.SetDefault("history_db", ".planloom.db")
	viper.SetDefault("no_color", false)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
