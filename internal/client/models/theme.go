package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dashshell/internal/common"
)

// Theme is the display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark". A JSON-quoted value is unwrapped
// first, so both `dark` and `"dark"` read back as ThemeDark.
func ParseTheme(s string) (Theme, error) {
	v := Theme(strings.Trim(strings.TrimSpace(s), `"`))
	switch v {
	case ThemeLight, ThemeDark:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownTheme, s)
	}
}

// Opposite flips light and dark.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
