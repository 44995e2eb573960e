// Package gate decides what a protected route shows for the current session.
package gate

import (
	"slices"

	"github.com/dmitrijs2005/dashshell/internal/client/models"
)

// Decision is one of the four outcomes a router must implement.
type Decision int

const (
	RenderChildren Decision = iota
	ShowLoading
	RedirectToLogin
	RedirectToDenied
)

func (d Decision) String() string {
	switch d {
	case RenderChildren:
		return "render"
	case ShowLoading:
		return "loading"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToDenied:
		return "redirect_denied"
	default:
		return "unknown"
	}
}

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Input is everything the gate looks at.
type Input struct {
	IsLoading       bool
	IsAuthenticated bool
	User            *models.User
	// AllowedRoles restricts the route; empty means any authenticated user.
	AllowedRoles []models.Role
	// Location is the route that was requested.
	Location string
}

// Outcome is a decision plus where to go for the redirect decisions.
type Outcome struct {
	Decision   Decision
	RedirectTo string
	// From is the originally requested location, set for RedirectToLogin.
	From string
}

// Decide checks loading, then authentication, then role membership.
// It has no side effects.
func Decide(in Input) Outcome {
	switch {
	case in.IsLoading:
		return Outcome{Decision: ShowLoading}
	case !in.IsAuthenticated:
		return Outcome{Decision: RedirectToLogin, RedirectTo: LoginPath, From: in.Location}
	case len(in.AllowedRoles) > 0 && !roleAllowed(in.User, in.AllowedRoles):
		return Outcome{Decision: RedirectToDenied, RedirectTo: UnauthorizedPath}
	default:
		return Outcome{Decision: RenderChildren}
	}
}

func roleAllowed(u *models.User, allowed []models.Role) bool {
	return u != nil && slices.Contains(allowed, u.Role)
}
