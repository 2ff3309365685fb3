// Package config provides Viper-based configuration for trendwatch.
//
// Precedence, lowest first: defaults, config file, TRENDWATCH_* environment
// variables, bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the complete trendwatch configuration.
type Config struct {
	API      APIConfig    `mapstructure:"api"`
	Timezone string       `mapstructure:"timezone"`
	DataDir  string       `mapstructure:"data_dir"`
	Loader   LoaderConfig `mapstructure:"loader"`
	Theme    ThemeConfig  `mapstructure:"theme"`
	Log      LogConfig    `mapstructure:"log"`
}

// APIConfig points at the trend service.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second
	Burst     int           `mapstructure:"burst"`
}

// LoaderConfig tunes backward pagination.
type LoaderConfig struct {
	LookbackHours int `mapstructure:"lookback_hours"` // 0 = unlimited
	PrefetchRows  int `mapstructure:"prefetch_rows"`
}

// ThemeConfig controls OS preference following.
type ThemeConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// EnvPrefix is the environment variable prefix.
const EnvPrefix = "TRENDWATCH"

// FlagKeys maps command-line flag names to config keys. Flags missing
// from the set passed to Load are skipped.
var FlagKeys = map[string]string{
	"api-url":   "api.base_url",
	"timezone":  "timezone",
	"data-dir":  "data_dir",
	"lookback":  "loader.lookback_hours",
	"log-level": "log.level",
}

// Load reads configuration from cfgFile (or the default search paths),
// the environment and flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join("$HOME", ".trendwatch"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.rate_limit", 5.0)
	v.SetDefault("api.burst", 2)

	v.SetDefault("timezone", "")
	v.SetDefault("data_dir", filepath.Join("~", ".trendwatch"))

	v.SetDefault("loader.lookback_hours", 72)
	v.SetDefault("loader.prefetch_rows", 3)

	v.SetDefault("theme.poll_interval", 5*time.Second)

	v.SetDefault("log.level", "info")
}

func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}
	if cfg.API.RateLimit <= 0 {
		return fmt.Errorf("api.rate_limit must be positive, got %g", cfg.API.RateLimit)
	}
	if cfg.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1, got %d", cfg.API.Burst)
	}
	if cfg.Loader.LookbackHours < 0 {
		return fmt.Errorf("loader.lookback_hours must not be negative, got %d", cfg.Loader.LookbackHours)
	}
	if cfg.Loader.PrefetchRows < 0 {
		return fmt.Errorf("loader.prefetch_rows must not be negative, got %d", cfg.Loader.PrefetchRows)
	}
	if cfg.Theme.PollInterval <= 0 {
		return fmt.Errorf("theme.poll_interval must be positive, got %s", cfg.Theme.PollInterval)
	}
	if _, err := loadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", cfg.Timezone, err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}
	return nil
}

// Location is the time zone target hours are computed in.
func (c *Config) Location() *time.Location {
	loc, err := loadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Lookback is the loader's history window as a duration.
func (c *Config) Lookback() time.Duration {
	return time.Duration(c.Loader.LookbackHours) * time.Hour
}

// DBPath is the SQLite database location.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "trendwatch.db")
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
