package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NINJA_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, 250*time.Millisecond, cfg.Timer.TickInterval)
	assert.Equal(t, "https://api.api-ninjas.com/v1/quotes", cfg.Quotes.URL)
	assert.Equal(t, "inspirational", cfg.Quotes.Category)
	assert.Equal(t, 5*time.Second, cfg.Quotes.Timeout)
	assert.Empty(t, cfg.Quotes.APIKey)
	assert.Empty(t, cfg.Audio.SoundDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FOCUSFLOW_LOG_LEVEL", "debug")
	t.Setenv("FOCUSFLOW_LOG_DEV", "true")
	t.Setenv("FOCUSFLOW_TICK_INTERVAL", "1s")
	t.Setenv("FOCUSFLOW_QUOTES_API_KEY", "secret")
	t.Setenv("FOCUSFLOW_SOUND_DIR", "/tmp/sounds")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, time.Second, cfg.Timer.TickInterval)
	assert.Equal(t, "secret", cfg.Quotes.APIKey)
	assert.Equal(t, "/tmp/sounds", cfg.Audio.SoundDir)
}

func TestLoadLegacyAPIKey(t *testing.T) {
	t.Setenv("NINJA_API_KEY", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Quotes.APIKey)
}

func TestLoadRejectsCoarseTick(t *testing.T) {
	t.Setenv("FOCUSFLOW_TICK_INTERVAL", "5s")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedValue(t *testing.T) {
	t.Setenv("FOCUSFLOW_LOG_DEV", "maybe")

	_, err := Load()
	assert.Error(t, err)
}
