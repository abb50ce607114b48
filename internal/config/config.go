// Package config loads the editor configuration from casetree.yaml and CASETREE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/casetree/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by the CLI.
const FileName = "casetree.yaml"

// EnvPrefix prefixes environment overrides, e.g. CASETREE_UNDO_LIMIT=50.
const EnvPrefix = "CASETREE_"

// Config holds the editor settings.
type Config struct {
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=text json"`
	// StoreDir is where named cases are kept.
	StoreDir string `mapstructure:"store_dir" validate:"required"`
	// UndoLimit bounds the undo history; 0 keeps everything.
	UndoLimit int    `mapstructure:"undo_limit" validate:"gte=0,lte=10000"`
	Color     string `mapstructure:"color" validate:"oneof=auto always never"`
	// Metrics enables the prometheus collectors.
	Metrics bool `mapstructure:"metrics"`
	// EncryptionKey, when set, is the hex-encoded AES-256 key cases are encrypted with at rest.
	EncryptionKey string `mapstructure:"encryption_key" validate:"omitempty,hexadecimal,len=64"`
}

var keys = []string{"log_level", "log_format", "store_dir", "undo_limit", "color", "metrics", "encryption_key"}

var validate = validator.New()

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		StoreDir:  ".casetree/cases",
		UndoLimit: 100,
		Color:     "auto",
	}
}

// Load reads path, applies environment overrides and validates the result. A missing file yields the
// defaults, still subject to overrides.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parse(data, os.LookupEnv)
}

// Parse decodes YAML data over the defaults and validates it. Environment variables are ignored.
func Parse(data []byte) (Config, error) {
	return parse(data, func(string) (string, bool) { return "", false })
}

func parse(data []byte, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	for _, key := range keys {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(key)); ok {
			raw[key] = v
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings against their constraints, e.g. after command-line overrides.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level returns the slog level for LogLevel.
func (c Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// Logger builds the application logger described by the config.
func (c Config) Logger() *slog.Logger {
	var opts []logging.Option
	if c.LogFormat == "json" {
		opts = append(opts, logging.WithJSON())
	}
	return logging.New(c.Level(), opts...)
}
