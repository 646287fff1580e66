// Package config loads process-level settings from the environment. User
// preferences live in the settings file handled by the storage package.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. FOCUSFLOW_LOG_LEVEL.
const Prefix = "FOCUSFLOW"

// Config holds environment configuration.
type Config struct {
	Logging LogConfig
	Timer   TimerConfig
	Quotes  QuotesConfig
	Audio   AudioConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// TimerConfig holds engine loop configuration.
type TimerConfig struct {
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"250ms"`
}

// QuotesConfig holds the remote quote API configuration.
type QuotesConfig struct {
	URL      string        `envconfig:"QUOTES_URL" default:"https://api.api-ninjas.com/v1/quotes"`
	Category string        `envconfig:"QUOTES_CATEGORY" default:"inspirational"`
	APIKey   string        `envconfig:"QUOTES_API_KEY"`
	Timeout  time.Duration `envconfig:"QUOTES_TIMEOUT" default:"5s"`
}

// AudioConfig holds sound cue configuration.
type AudioConfig struct {
	SoundDir string `envconfig:"SOUND_DIR"`
}

// legacyAPIKeyVar is read when QUOTES_API_KEY is unset.
const legacyAPIKeyVar = "NINJA_API_KEY"

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	for _, section := range []struct {
		name string
		target interface{}
	}{
		{"logging", &cfg.Logging},
		{"timer", &cfg.Timer},
		{"quotes", &cfg.Quotes},
		{"audio", &cfg.Audio},
	} {
		if err := envconfig.Process(Prefix, section.target); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", section.name, err)
		}
	}

	if cfg.Quotes.APIKey == "" {
		cfg.Quotes.APIKey = os.Getenv(legacyAPIKeyVar)
	}
	if cfg.Timer.TickInterval <= 0 || cfg.Timer.TickInterval > time.Second {
		return nil, fmt.Errorf("tick interval must be within (0, 1s], got %s", cfg.Timer.TickInterval)
	}
	return &cfg, nil
}
