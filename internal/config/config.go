package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig
	UI      UIConfig
	Clock   ClockConfig
	Weather WeatherConfig
	Drag    DragConfig
	Log     LogConfig
}

// StorageConfig selects where the layout slot lives.
type StorageConfig struct {
	Driver    string // sqlite | file | memory
	Path      string
	LayoutKey string `mapstructure:"layout_key"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Timezone      string
	TimeFormat    string `mapstructure:"time_format"`
	DateFormat    string `mapstructure:"date_format"`
	Columns       int
	EditGate      bool   `mapstructure:"edit_gate"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

type ClockConfig struct {
	Interval time.Duration
}

type WeatherConfig struct {
	Location string
	Interval time.Duration
	MinTemp  int `mapstructure:"min_temp"`
	MaxTemp  int `mapstructure:"max_temp"`
}

type DragConfig struct {
	LeaveDebounce time.Duration `mapstructure:"leave_debounce"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Path       string
	Level      string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "deskboard")
}

// DefaultPath is where the config file is looked up when no override is given.
func DefaultPath() string {
	if p := os.Getenv("DESKBOARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "deskboard", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", filepath.Join(dataDir(), "deskboard.db"))
	v.SetDefault("storage.layout_key", "dashboard-layout")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.time_format", "15:04:05")
	v.SetDefault("ui.date_format", "Monday, January 2, 2006")
	v.SetDefault("ui.columns", 2)
	v.SetDefault("ui.edit_gate", true)
	v.SetDefault("ui.markdown_style", "dark")
	v.SetDefault("clock.interval", "1s")
	v.SetDefault("weather.location", "Stockholm")
	v.SetDefault("weather.interval", "10s")
	v.SetDefault("weather.min_temp", 5)
	v.SetDefault("weather.max_temp", 34)
	v.SetDefault("drag.leave_debounce", "50ms")
	v.SetDefault("log.path", filepath.Join(dataDir(), "deskboard.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Load reads configuration from file and env. Env var overrides use prefix
// DESKBOARD_. An explicit path wins over DESKBOARD_CONFIG and the default
// location; a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	switch {
	case path != "":
		v.SetConfigFile(path)
	case os.Getenv("DESKBOARD_CONFIG") != "":
		v.SetConfigFile(os.Getenv("DESKBOARD_CONFIG"))
	default:
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "deskboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DESKBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the dashboard cannot run with.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.LayoutKey) == "" {
		return fmt.Errorf("config: storage.layout_key is empty")
	}
	if c.UI.Columns < 1 {
		return fmt.Errorf("config: ui.columns must be at least 1")
	}
	if c.Weather.MinTemp > c.Weather.MaxTemp {
		return fmt.Errorf("config: weather.min_temp above weather.max_temp")
	}
	return nil
}

// Location resolves UI.Timezone, falling back to the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.UI.Timezone == "" || strings.EqualFold(c.UI.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("load timezone %q: %w", c.UI.Timezone, err)
	}
	return loc, nil
}

// Save writes the provided config to path (DefaultPath when empty), creating
// the config directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("storage.driver", cfg.Storage.Driver)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.layout_key", cfg.Storage.LayoutKey)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.time_format", cfg.UI.TimeFormat)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.columns", cfg.UI.Columns)
	v.Set("ui.edit_gate", cfg.UI.EditGate)
	v.Set("ui.markdown_style", cfg.UI.MarkdownStyle)
	v.Set("clock.interval", cfg.Clock.Interval.String())
	v.Set("weather.location", cfg.Weather.Location)
	v.Set("weather.interval", cfg.Weather.Interval.String())
	v.Set("weather.min_temp", cfg.Weather.MinTemp)
	v.Set("weather.max_temp", cfg.Weather.MaxTemp)
	v.Set("drag.leave_debounce", cfg.Drag.LeaveDebounce.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.Set("log.max_backups", cfg.Log.MaxBackups)
	v.Set("log.max_age_days", cfg.Log.MaxAgeDays)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
