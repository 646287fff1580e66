//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}

	entryPath, err := service.autostartEntryPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(entryPath, []byte(buildDesktopEntry(appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}

	entryPath, err := service.autostartEntryPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) autostartEntryPath(appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", appSlug(appName)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

// buildDesktopEntry renders an XDG autostart entry.
func buildDesktopEntry(appName, execPath string) string {
	fields := [][2]string{
		{"Type", "Application"},
		{"Name", appName},
		{"Comment", "Pomodoro focus timer"},
		{"Exec", desktopExec(execPath)},
		{"Icon", appSlug(appName)},
		{"Terminal", "false"},
		{"Categories", "Utility;"},
		{"X-GNOME-Autostart-enabled", "true"},
	}

	var entry strings.Builder
	entry.WriteString("[Desktop Entry]\n")
	for _, field := range fields {
		entry.WriteString(field[0] + "=" + field[1] + "\n")
	}
	return entry.String()
}

// desktopExec quotes the path when it holds characters the Exec key reserves.
func desktopExec(execPath string) string {
	if strings.HasPrefix(execPath, `"`) || !strings.ContainsAny(execPath, " \t\"'`$\\;&|<>()*?#") {
		return execPath
	}
	escaper := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`)
	return `"` + escaper.Replace(execPath) + `"`
}
