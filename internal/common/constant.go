package common

// Durable store keys. No component other than the owning store writes them.
const (
	SessionStorageKey = "dashboard_auth_token"
	ThemeStorageKey   = "dashboard_theme"
)
