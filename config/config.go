package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	InputText = "text"
	InputJSON = "json"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

var ErrInvalidConfig = errors.New("invalid config")

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AppConfig struct {
	MarketID       string    `yaml:"market_id"`
	PricePrecision int32     `yaml:"price_precision"`
	Input          string    `yaml:"input"`
	Log            LogConfig `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *AppConfig {
	return &AppConfig{
		MarketID:       "DEFAULT",
		PricePrecision: 2,
		Input:          InputText,
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

// Load load config from file and environment variables.
// An empty path falls back to $CONFIG_FILE; when both are empty the defaults are returned.
// Fields missing from the file keep their default value.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	cfg := Default()
	if len(filePath) == 0 {
		return cfg, nil
	}

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", filePath, err)
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", filePath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *AppConfig) Validate() error {
	if len(strings.TrimSpace(c.MarketID)) == 0 {
		return fmt.Errorf("%w: market_id is required", ErrInvalidConfig)
	}

	if c.PricePrecision < 0 || c.PricePrecision > 18 {
		return fmt.Errorf("%w: price_precision must be between 0 and 18, got %d", ErrInvalidConfig, c.PricePrecision)
	}

	switch c.Input {
	case InputText, InputJSON:
	default:
		return fmt.Errorf("%w: input must be %q or %q, got %q", ErrInvalidConfig, InputText, InputJSON, c.Input)
	}

	switch c.Log.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("%w: log.format must be %q or %q, got %q", ErrInvalidConfig, LogFormatJSON, LogFormatText, c.Log.Format)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel maps log.level to a slog.Level.
func (c *AppConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return level, nil
}
