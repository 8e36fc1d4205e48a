// Package config provides configuration management for gantt.
//
// Configuration is loaded from three sources with the following precedence
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (GANTT_ prefix)
//  3. Config file (.gantt.yaml)
//
// Config-file keys mirror flag names and are dash/underscore-insensitive:
// `xtick_interval` and `xtick-interval` address the same setting. The
// Config struct is a fixed enumeration; unknown keys are logged as
// warnings and never stored.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Supported log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the global configuration for gantt.
type Config struct {
	// LogLevel controls the verbosity of log output.
	// Valid values: debug, info, warn, error.
	LogLevel string `mapstructure:"log-level"`

	// LogFormat controls the format of log output.
	// Valid values: text, json.
	LogFormat string `mapstructure:"log-format"`

	// NoColor disables colored output.
	NoColor bool `mapstructure:"no-color"`

	// Quiet suppresses all log output below error level.
	Quiet bool `mapstructure:"quiet"`

	// Output is the rendered image path.
	Output string `mapstructure:"output"`

	// Width and Height of the output image in pixels.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	// Per-element font sizes.
	YTickFontSize  float64 `mapstructure:"ytick-font-size"`
	XTickFontSize  float64 `mapstructure:"xtick-font-size"`
	XLabelFontSize float64 `mapstructure:"xlabel-font-size"`
	LegendFontSize float64 `mapstructure:"legend-font-size"`

	// XTickInterval is the x-axis major tick spacing (0 = automatic).
	XTickInterval float64 `mapstructure:"xtick-interval"`

	// XLabel is the x-axis label text.
	XLabel string `mapstructure:"xlabel"`

	// ConfigFile is the resolved path to the config file used.
	// Set after Load() — not read from config itself.
	ConfigFile string `mapstructure:"-"`
}

// knownKeys enumerates every recognized config-file key (dash form).
var knownKeys = map[string]bool{
	"config":           true,
	"log-level":        true,
	"log-format":       true,
	"no-color":         true,
	"quiet":            true,
	"output":           true,
	"width":            true,
	"height":           true,
	"ytick-font-size":  true,
	"xtick-font-size":  true,
	"xlabel-font-size": true,
	"legend-font-size": true,
	"xtick-interval":   true,
	"xlabel":           true,
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		LogLevel:  LogLevelInfo,
		LogFormat: LogFormatText,
	}
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		// valid
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
		// valid
	default:
		return fmt.Errorf("invalid log format %q: must be one of text, json", c.LogFormat)
	}

	return nil
}

// EffectiveLogLevel returns the log level to use. When Quiet is true the log
// level is overridden to "error" regardless of the configured LogLevel.
func (c *Config) EffectiveLogLevel() string {
	if c.Quiet {
		return LogLevelError
	}

	return c.LogLevel
}

// Load initialises configuration from flags, environment variables, and an
// optional config file. A fresh viper instance is used on every call so that
// Load is safe for concurrent tests.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	configureEnv(v)

	if err := configureFile(v, configFile); err != nil {
		return nil, err
	}

	normalizeFileKeys(v)

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Store the resolved config file path so downstream code can locate it.
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// WarnUnknownKeys logs a warning for each config-file key that does not
// match a recognized setting. Unknown keys are never applied.
func WarnUnknownKeys(cfg *Config, logger *slog.Logger) {
	if cfg.ConfigFile == "" {
		return
	}

	v := viper.New()
	v.SetConfigFile(cfg.ConfigFile)

	if err := v.ReadInConfig(); err != nil {
		return
	}

	for key := range v.AllSettings() {
		if !knownKeys[normalizeKey(key)] {
			logger.Warn("unknown config key ignored",
				slog.String("key", key),
				slog.String("file", cfg.ConfigFile),
			)
		}
	}
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log-level", LogLevelInfo)
	v.SetDefault("log-format", LogFormatText)
	v.SetDefault("no-color", false)
	v.SetDefault("quiet", false)
}

// configureEnv sets up environment variable support.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("GANTT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// configureFile sets up the config file source.
func configureFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", configFile, err)
		}

		return nil
	}

	// Auto-discovery mode.
	v.SetConfigName(".gantt")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "gantt"))
	}

	if err := v.ReadInConfig(); err != nil {
		// No config file found → perfectly fine in auto-discovery.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}

		// Found a file but it was malformed.
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// normalizeFileKeys re-reads the config file and merges underscore-form
// keys under their dash form. The merge happens at config-file
// precedence, so a normalized key never outranks a flag or environment
// variable the way viper's Set override would.
func normalizeFileKeys(v *viper.Viper) {
	path := v.ConfigFileUsed()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return
	}

	normalized := make(map[string]interface{}, len(raw))

	for key, val := range raw {
		norm := normalizeKey(key)
		if norm != key && knownKeys[norm] {
			normalized[norm] = val
		}
	}

	if len(normalized) > 0 {
		v.MergeConfigMap(normalized) //nolint:errcheck
	}
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// bindFlags walks from cmd up to the root and binds all PersistentFlags.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	// Bind the current command's own flags.
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	// Walk up to root and bind all persistent flags at each level.
	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKey struct{}

// NewContext returns a child context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext extracts a Config from ctx, falling back to Default().
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}

	return Default()
}
