// Package common defines shared constants and sentinel errors used across
// the dashboard shell. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Model validation errors.
	ErrUnknownRole  = errors.New("unknown role")
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrMalformedSession marks a persisted session record that cannot be
	// decoded or lacks the user/token pair.
	ErrMalformedSession = errors.New("malformed session")

	// Identity provider errors.
	ErrLoginFailed = errors.New("login failed")

	// Feed errors.
	ErrFetchFailed = errors.New("failed to fetch posts")
)
