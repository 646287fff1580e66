// Package storage persists user preferences as YAML in the user config dir.
// Timer state itself is never persisted.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"focusflow/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes           int      `yaml:"focus_minutes"`
	ShortBreakMinutes      int      `yaml:"short_break_minutes"`
	LongBreakMinutes       int      `yaml:"long_break_minutes"`
	LongBreakEvery         int      `yaml:"long_break_every"`
	AutoResume             *bool    `yaml:"auto_resume"`
	AutoResumeDelaySeconds int      `yaml:"auto_resume_delay_seconds"`
	NotificationsEnabled   *bool    `yaml:"notifications_enabled"`
	SoundEnabled           *bool    `yaml:"sound_enabled"`
	Volume                 *float64 `yaml:"volume"`
	LaunchAtLogin          bool     `yaml:"launch_at_login"`
	DarkMode               bool     `yaml:"dark_mode"`
}

// LoadSettings reads user preferences for appName.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes user preferences for appName.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// LoadSettingsFile reads preferences from path. Defaults are returned along
// with any error.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes preferences to path, creating parent directories.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:           int(settings.FocusDuration / time.Minute),
		ShortBreakMinutes:      int(settings.ShortBreakDuration / time.Minute),
		LongBreakMinutes:       int(settings.LongBreakDuration / time.Minute),
		LongBreakEvery:         settings.LongBreakEvery,
		AutoResume:             &settings.AutoResume,
		AutoResumeDelaySeconds: int(settings.AutoResumeDelay / time.Second),
		NotificationsEnabled:   &settings.NotificationsEnabled,
		SoundEnabled:           &settings.SoundEnabled,
		Volume:                 &settings.Volume,
		LaunchAtLogin:          settings.LaunchAtLogin,
		DarkMode:               settings.DarkMode,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.FocusDuration = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.LongBreakEvery > 0 {
		settings.LongBreakEvery = fileData.LongBreakEvery
	}
	if fileData.AutoResumeDelaySeconds > 0 {
		settings.AutoResumeDelay = time.Duration(fileData.AutoResumeDelaySeconds) * time.Second
	}
	if fileData.Volume != nil && *fileData.Volume >= 0 && *fileData.Volume <= 1 {
		settings.Volume = *fileData.Volume
	}

	if fileData.AutoResume != nil {
		settings.AutoResume = *fileData.AutoResume
	}
	if fileData.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	settings.LaunchAtLogin = fileData.LaunchAtLogin
	settings.DarkMode = fileData.DarkMode
}
