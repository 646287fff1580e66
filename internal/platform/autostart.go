package platform

import (
	"fmt"
	"os"
	"strings"
)

const defaultSlug = "focusflow"

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// LoginLauncher keeps the OS autostart entry in line with the
// "launch at login" preference.
type LoginLauncher struct {
	service    Service
	appName    string
	executable func() (string, error)
}

// NewLoginLauncher creates a launcher registering the running executable.
func NewLoginLauncher(service Service, appName string) *LoginLauncher {
	return &LoginLauncher{service: service, appName: appName, executable: os.Executable}
}

// Apply enables or disables launching at login.
func (launcher *LoginLauncher) Apply(enabled bool) error {
	if !enabled {
		return launcher.service.DisableAutostart(launcher.appName)
	}
	execPath, err := launcher.executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return launcher.service.EnableAutostart(launcher.appName, execPath)
}

// appSlug turns an app name into a lowercase, dash separated identifier.
func appSlug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		return defaultSlug
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
