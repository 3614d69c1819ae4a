// Package config loads panesplit settings from a TOML file, PANESPLIT_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved configuration.
type Config struct {
	Axis      string `mapstructure:"axis"`
	FirstMin  int    `mapstructure:"first_min"`
	SecondMin int    `mapstructure:"second_min"`

	Divider   DividerConfig   `mapstructure:"divider"`
	First     RegionConfig    `mapstructure:"first"`
	Second    RegionConfig    `mapstructure:"second"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// DividerConfig holds the divider's presentation overrides.
type DividerConfig struct {
	Color  string `mapstructure:"color"`
	Cursor string `mapstructure:"cursor"`
}

// RegionConfig selects a region's content: a file, or a command run in a PTY.
type RegionConfig struct {
	File    string `mapstructure:"file"`
	Command string `mapstructure:"command"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// TelemetryConfig configures span export.
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// New returns a viper instance with defaults, search paths and environment
// bindings set. configFile, when not empty, replaces the search paths.
func New(configFile string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("panesplit")
		v.SetConfigType("toml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PANESPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("axis", "horizontal")
	v.SetDefault("first_min", 50)
	v.SetDefault("second_min", 50)
	v.SetDefault("divider.color", "")
	v.SetDefault("divider.cursor", "")
	v.SetDefault("first.file", "")
	v.SetDefault("first.command", "")
	v.SetDefault("second.file", "")
	v.SetDefault("second.command", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service_name", "panesplit")
	v.SetDefault("telemetry.insecure", true)
}

// configDir returns $XDG_CONFIG_HOME/panesplit, falling back to ~/.config.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "panesplit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "panesplit"), nil
}

// Load reads the config file if there is one and decodes the result.
// A missing file is not an error unless it was named explicitly.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Axis) {
	case "horizontal", "h", "vertical", "v":
	default:
		return fmt.Errorf("invalid axis %q: want horizontal or vertical", c.Axis)
	}
	if c.FirstMin < 0 || c.SecondMin < 0 {
		return fmt.Errorf("minimum sizes must not be negative (first_min=%d, second_min=%d)", c.FirstMin, c.SecondMin)
	}
	for name, r := range map[string]RegionConfig{"first": c.First, "second": c.Second} {
		if r.File != "" && r.Command != "" {
			return fmt.Errorf("%s region: file and command are mutually exclusive", name)
		}
	}
	return nil
}
