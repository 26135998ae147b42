// Package config loads process settings from .env, an optional YAML file and
// JOBFORM_* environment variables, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ulule/limiter/v3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-jobform/internal/logger"
)

// Environment variable names.
const (
	EnvAddr      = "JOBFORM_ADDR"
	EnvLogLevel  = "JOBFORM_LOG_LEVEL"
	EnvLogFormat = "JOBFORM_LOG_FORMAT"
	EnvFormPath  = "JOBFORM_FORM_PATH"
	EnvPreset    = "JOBFORM_PRESET"
	EnvRateLimit = "JOBFORM_RATE_LIMIT"
	EnvEnv       = "JOBFORM_ENV"
)

// Config holds the runtime settings shared by every subcommand.
type Config struct {
	Env       string `yaml:"env"`
	Addr      string `yaml:"addr"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	// FormPath points at an OpenAPI form document. Empty selects the embedded
	// job application form.
	FormPath string `yaml:"form_path"`
	// Preset points at an optional YAML file of label and message overrides.
	Preset string `yaml:"preset"`
	// RateLimit uses the limiter format, e.g. "30-M" for 30 per minute.
	RateLimit string `yaml:"rate_limit"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Env:       "development",
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: logger.FormatText,
		RateLimit: "30-M",
	}
}

// Load builds the configuration. A missing .env is ignored; a missing file
// at path is an error. Pass an empty path to skip the YAML layer.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	override := func(target *string, key string) {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	override(&c.Env, EnvEnv)
	override(&c.Addr, EnvAddr)
	override(&c.LogLevel, EnvLogLevel)
	override(&c.LogFormat, EnvLogFormat)
	override(&c.FormPath, EnvFormPath)
	override(&c.Preset, EnvPreset)
	override(&c.RateLimit, EnvRateLimit)
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	if _, err := c.Rate(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

// Rate parses RateLimit.
func (c Config) Rate() (limiter.Rate, error) {
	rate, err := limiter.NewRateFromFormatted(c.RateLimit)
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("config: rate limit %q: %w", c.RateLimit, err)
	}
	return rate, nil
}

// Production reports whether the process runs in production mode.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}
