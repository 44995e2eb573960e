// Package identity simulates the remote identity provider: a login round trip
// that hands out one of two canned users with a fresh token, and a logout
// round trip that does nothing but wait.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/common"
	"github.com/dmitrijs2005/dashshell/internal/timex"
)

// Provider is the login/logout contract the session store depends on.
//
// Login with an empty role uses the provider's default role. Callers must be
// prepared for Login to fail. Logout performs no state mutation.
type Provider interface {
	Login(ctx context.Context, role models.Role) (*models.AuthToken, error)
	Logout(ctx context.Context) error
}

// Settings tune the simulated round trips. Zero delays make calls return
// immediately, which is what tests use.
type Settings struct {
	LoginDelay  time.Duration
	LogoutDelay time.Duration
	SessionTTL  time.Duration
	DefaultRole models.Role
}

// DefaultSettings returns the stock latencies, TTL and role.
func DefaultSettings() Settings {
	return Settings{
		LoginDelay:  800 * time.Millisecond,
		LogoutDelay: 300 * time.Millisecond,
		SessionTTL:  24 * time.Hour,
		DefaultRole: models.RoleAdmin,
	}
}

var cannedUsers = map[models.Role]models.User{
	models.RoleAdmin: {
		ID:    "admin01",
		Name:  "Anedya Admin",
		Email: "anedyaadmin@gmail.com",
		Role:  models.RoleAdmin,
	},
	models.RoleUser: {
		ID:    "user01",
		Name:  "Yash Prajapati",
		Email: "yashu016@gmail.com",
		Role:  models.RoleUser,
	},
}

// CannedUser returns the static user record for role.
func CannedUser(role models.Role) (models.User, bool) {
	u, ok := cannedUsers[role]
	return u, ok
}

// Option customises a MockProvider.
type Option func(*MockProvider)

// WithClock pins the provider's notion of now.
func WithClock(c timex.Clock) Option {
	return func(p *MockProvider) { p.clock = c }
}

// WithLoginError makes every Login fail with err after the simulated delay.
func WithLoginError(err error) Option {
	return func(p *MockProvider) { p.loginErr = err }
}

// WithLogoutError makes every Logout fail with err after the simulated delay.
func WithLogoutError(err error) Option {
	return func(p *MockProvider) { p.logoutErr = err }
}

type MockProvider struct {
	settings  Settings
	issuer    *TokenIssuer
	clock     timex.Clock
	loginErr  error
	logoutErr error
}

func NewMockProvider(settings Settings, opts ...Option) (*MockProvider, error) {
	if settings.DefaultRole == "" {
		settings.DefaultRole = models.RoleAdmin
	}
	if !settings.DefaultRole.Valid() {
		return nil, fmt.Errorf("default role: %w: %q", common.ErrUnknownRole, settings.DefaultRole)
	}
	if settings.SessionTTL <= 0 {
		settings.SessionTTL = DefaultSettings().SessionTTL
	}

	issuer, err := NewTokenIssuer()
	if err != nil {
		return nil, err
	}

	p := &MockProvider{settings: settings, issuer: issuer}
	for _, opt := range opts {
		opt(p)
	}
	issuer.clock = p.clock
	return p, nil
}

// Issuer exposes the token issuer, e.g. to inspect issued tokens.
func (p *MockProvider) Issuer() *TokenIssuer {
	return p.issuer
}

func (p *MockProvider) Login(ctx context.Context, role models.Role) (*models.AuthToken, error) {
	if err := sleep(ctx, p.settings.LoginDelay); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrLoginFailed, err)
	}
	if p.loginErr != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrLoginFailed, p.loginErr)
	}

	if role == "" {
		role = p.settings.DefaultRole
	}
	user, ok := CannedUser(role)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", common.ErrLoginFailed, common.ErrUnknownRole, role)
	}

	now := p.clock.Now()
	expiresAt := now.Add(p.settings.SessionTTL)
	token, err := p.issuer.Issue(user, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrLoginFailed, err)
	}

	return &models.AuthToken{
		Token:     token,
		ExpiresAt: time.UnixMilli(expiresAt.UnixMilli()),
		User:      user,
	}, nil
}

func (p *MockProvider) Logout(ctx context.Context) error {
	if err := sleep(ctx, p.settings.LogoutDelay); err != nil {
		return err
	}
	return p.logoutErr
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
