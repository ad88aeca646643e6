package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TASKMINDER_STORAGE_DRIVER.
const EnvPrefix = "TASKMINDER"

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Settings is the content of config.yaml.
type Settings struct {
	Storage   StorageSettings  `mapstructure:"storage"`
	Reminders ReminderSettings `mapstructure:"reminders"`
	// Timezone is an IANA name; empty means the system zone.
	Timezone string     `mapstructure:"timezone"`
	AI       AISettings `mapstructure:"ai"`
}

type StorageSettings struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type ReminderSettings struct {
	Interval time.Duration `mapstructure:"interval"`
}

type AISettings struct {
	Model string `mapstructure:"model"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string        `mapstructure:"api_key_env"`
	Endpoint  string        `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Storage:   StorageSettings{Driver: DriverFile},
		Reminders: ReminderSettings{Interval: 5 * time.Second},
		AI: AISettings{
			Model:     "gemini-2.5-flash",
			APIKeyEnv: "GEMINI_API_KEY",
			Timeout:   60 * time.Second,
		},
	}
}

// Load reads config.yaml from the config directory, applies TASKMINDER_*
// environment overrides and validates the result. A missing file leaves
// the defaults in place.
func (c *Config) Load() error {
	v := viper.New()
	d := DefaultSettings()
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("reminders.interval", d.Reminders.Interval)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.api_key_env", d.AI.APIKeyEnv)
	v.SetDefault("ai.endpoint", d.AI.Endpoint)
	v.SetDefault("ai.timeout", d.AI.Timeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := c.SettingsPath()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	c.Settings = s
	return nil
}

// Validate checks settings for values the application cannot run with.
func (s Settings) Validate() error {
	switch s.Storage.Driver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("invalid storage.driver: %q (want %s or %s)", s.Storage.Driver, DriverFile, DriverSQLite)
	}
	if s.Reminders.Interval <= 0 {
		return fmt.Errorf("invalid reminders.interval: %s (must be positive)", s.Reminders.Interval)
	}
	if s.AI.Timeout <= 0 {
		return fmt.Errorf("invalid ai.timeout: %s (must be positive)", s.AI.Timeout)
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (s Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %q", s.Timezone)
	}
	return loc, nil
}

// APIKey returns the Gemini API key from the configured variable, falling
// back to API_KEY.
func (s AISettings) APIKey() string {
	if s.APIKeyEnv != "" {
		if key := os.Getenv(s.APIKeyEnv); key != "" {
			return key
		}
	}
	return os.Getenv("API_KEY")
}
