package domain

import "fmt"

// Theme is the colour scheme a client selected.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Language is a supported UI language.
type Language string

const (
	LanguageRussian Language = "ru"
	LanguageKazakh  Language = "kk"
)

// Settings are the per-client display preferences.
type Settings struct {
	Theme    Theme    `json:"theme"`
	Language Language `json:"language"`
}

// DefaultSettings returns the settings of a client that never saved any.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeSystem, Language: LanguageRussian}
}

// Validate rejects unknown themes and languages.
func (s Settings) Validate() error {
	switch s.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidSettings, s.Theme)
	}
	switch s.Language {
	case LanguageRussian, LanguageKazakh:
	default:
		return fmt.Errorf("%w: unknown language %q", ErrInvalidSettings, s.Language)
	}
	return nil
}

// SettingsChange is published whenever a client's settings are saved.
type SettingsChange struct {
	ClientID string   `json:"client_id"`
	Settings Settings `json:"settings"`
}
