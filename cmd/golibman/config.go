// Settings loading for the golibman CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/drauger-os/golibman/pkg/types"
)

const (
	settingsFileName = "settings"
	settingsFileType = "json"
	settingsFileExt  = "settings.json"

	// Settings keys.
	cfgKeyCheckoutDays = "default_checkout_days"
	cfgKeyDataDir      = "data_dir"
	cfgKeyLogLevel     = "log_level"
)

// defaultSettingsJSON is written to settings.json on first run.
const defaultSettingsJSON = `{
    "default_checkout_days": 14,
    "log_level": "info"
}
`

// loadSettings reads settings.json from the config directory using Viper.
// The directory and a default settings.json are created on first run; a
// missing file is not an error.
func loadSettings(configDir string) (types.Settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.Settings{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultSettingsFile(configDir); err != nil {
		return types.Settings{}, fmt.Errorf("ensure default settings: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyCheckoutDays, types.DefaultCheckoutDays)
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	v.SetConfigName(settingsFileName)
	v.SetConfigType(settingsFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	settings := types.NewSettings()
	if err := v.Unmarshal(&settings); err != nil {
		return types.Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return types.Settings{}, err
	}
	return settings, nil
}

// ensureDefaultSettingsFile creates a default settings.json if none exists.
func ensureDefaultSettingsFile(configDir string) error {
	path := filepath.Join(configDir, settingsFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat settings file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultSettingsJSON), 0o644)
}
