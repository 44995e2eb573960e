// Package models defines client-side data models used by the dashboard shell.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dashshell/internal/common"
)

// Role is a coarse-grained permission tag controlling which views a user sees.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole accepts "admin" or "user" (case-insensitive, surrounding spaces ignored).
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleUser:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownRole, s)
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is the identity record issued at login. It is replaced wholesale on
// re-login and never mutated in place.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}
