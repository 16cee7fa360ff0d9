package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// AppSettings holds presentation and diagnostics preferences. Session state
// such as the idle timeout is not stored here.
type AppSettings struct {
	LogLevel     string
	LogFile      string
	WindowWidth  float32
	WindowHeight float32
}

type yamlSettings struct {
	LogLevel     string  `yaml:"log_level"`
	LogFile      string  `yaml:"log_file"`
	WindowWidth  float32 `yaml:"window_width"`
	WindowHeight float32 `yaml:"window_height"`
}

// DefaultAppSettings returns the settings used when no file exists.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LogLevel:     "info",
		WindowWidth:  700,
		WindowHeight: 500,
	}
}

// LoadSettings reads preferences for appName from the user config directory.
// If the file does not exist, default settings are returned.
func LoadSettings(appName string) (AppSettings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return DefaultAppSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads preferences from an explicit path.
func LoadSettingsFile(configPath string) (AppSettings, error) {
	settings := DefaultAppSettings()

	rawData, err := os.ReadFile(configPath)
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

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *AppSettings, fileData yamlSettings) {
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
	settings.LogFile = fileData.LogFile

	// smaller windows clip the top bar
	if fileData.WindowWidth >= 700 {
		settings.WindowWidth = fileData.WindowWidth
	}
	if fileData.WindowHeight >= 500 {
		settings.WindowHeight = fileData.WindowHeight
	}
}
