package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MIXIN_"

// Config holds composer and logging settings.
type Config struct {
	// MaxEntries bounds the definition store; 0 keeps every definition.
	MaxEntries int `yaml:"max_entries" validate:"gte=0"`
	// BuildConcurrency bounds parallel builds in batch resolution.
	BuildConcurrency int `yaml:"build_concurrency" validate:"gte=1,lte=256"`
	// MaxSuggestions limits "did you mean" hints per diagnostic.
	MaxSuggestions int `yaml:"max_suggestions" validate:"gte=0,lte=20"`
	// FailOnWarnings treats validation warnings as failures.
	FailOnWarnings bool `yaml:"fail_on_warnings"`
	// AlphabeticOrdering lets every mixin be ordered by name when
	// dependencies do not decide its position.
	AlphabeticOrdering bool `yaml:"alphabetic_ordering"`

	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEntries:       0,
		BuildConcurrency: 4,
		MaxSuggestions:   3,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

var validate = validator.New()

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Load reads path (optional; empty skips it), then the .env file in the
// working directory when present, then MIXIN_* variables.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// applyEnv overrides fields from MIXIN_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"MAX_ENTRIES":       &c.MaxEntries,
		"BUILD_CONCURRENCY": &c.BuildConcurrency,
		"MAX_SUGGESTIONS":   &c.MaxSuggestions,
	}

	for name, dst := range ints {
		raw, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}

		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}

		*dst = v
	}

	bools := map[string]*bool{
		"FAIL_ON_WARNINGS":    &c.FailOnWarnings,
		"ALPHABETIC_ORDERING": &c.AlphabeticOrdering,
	}

	for name, dst := range bools {
		raw, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}

		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}

		*dst = v
	}

	if raw, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(strings.TrimSpace(raw))
	}

	if raw, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		c.LogFormat = strings.ToLower(strings.TrimSpace(raw))
	}

	return nil
}

// NewLogger builds a slog logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level

	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
