package enums

import "fmt"

// ThemeMode is the station display preference.
type ThemeMode string

const (
	ThemeModeLight  ThemeMode = "light"
	ThemeModeDark   ThemeMode = "dark"
	ThemeModeSystem ThemeMode = "system"
)

var validThemeModes = []ThemeMode{
	ThemeModeLight,
	ThemeModeDark,
	ThemeModeSystem,
}

// String implements fmt.Stringer.
func (t ThemeMode) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ThemeMode.
func (t ThemeMode) IsValid() bool {
	for _, candidate := range validThemeModes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseThemeMode converts raw input into a ThemeMode.
func ParseThemeMode(value string) (ThemeMode, error) {
	for _, candidate := range validThemeModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid theme mode %q", value)
}
