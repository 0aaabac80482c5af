package types

import (
	"errors"
	"time"
)

// Default settings values.
const (
	DefaultCheckoutDays = 14
	DefaultLogLevel     = "info"
)

// Settings validation errors.
var (
	ErrCheckoutDaysInvalid = errors.New("default_checkout_days must be positive")
)

// Settings holds runtime configuration loaded from settings.json.
type Settings struct {
	DefaultCheckoutDays int    `json:"default_checkout_days" mapstructure:"default_checkout_days"`
	DataDir             string `json:"data_dir" mapstructure:"data_dir"`
	LogLevel            string `json:"log_level" mapstructure:"log_level"`
}

// NewSettings returns settings populated with defaults.
func NewSettings() Settings {
	return Settings{
		DefaultCheckoutDays: DefaultCheckoutDays,
		LogLevel:            DefaultLogLevel,
	}
}

// Validate checks that the settings are well-formed.
func (s Settings) Validate() error {
	if s.DefaultCheckoutDays <= 0 {
		return ErrCheckoutDaysInvalid
	}
	return nil
}

// CheckoutDuration returns the loan period as a duration.
func (s Settings) CheckoutDuration() time.Duration {
	return time.Duration(s.DefaultCheckoutDays) * 24 * time.Hour
}
