package driving

import "github.com/custodia-labs/mission-control/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// GetValue returns the effective value of one dotted key.
	GetValue(key string) (any, error)

	// SetValue parses raw for the key's type, stores it and saves.
	SetValue(key, raw string) error

	// Keys lists every recognised settings key.
	Keys() []string
}
