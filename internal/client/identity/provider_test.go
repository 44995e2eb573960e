package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/common"
	"github.com/dmitrijs2005/dashshell/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instant() Settings {
	s := DefaultSettings()
	s.LoginDelay = 0
	s.LogoutDelay = 0
	return s
}

func TestLogin_DefaultRoleIsAdmin(t *testing.T) {
	p, err := NewMockProvider(instant())
	require.NoError(t, err)

	tok, err := p.Login(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, tok.User.Role)
	assert.Equal(t, "admin01", tok.User.ID)
}

func TestLogin_ConfiguredDefaultRole(t *testing.T) {
	s := instant()
	s.DefaultRole = models.RoleUser
	p, err := NewMockProvider(s)
	require.NoError(t, err)

	tok, err := p.Login(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, tok.User.Role)
	assert.Equal(t, "yashu016@gmail.com", tok.User.Email)
}

func TestLogin_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p, err := NewMockProvider(instant(), WithClock(timex.Fixed(now)))
	require.NoError(t, err)

	tok, err := p.Login(context.Background(), models.RoleUser)
	require.NoError(t, err)
	assert.True(t, tok.ExpiresAt.Equal(now.Add(24*time.Hour)))
}

func TestLogin_TokensAreUniqueAndSigned(t *testing.T) {
	p, err := NewMockProvider(instant())
	require.NoError(t, err)
	ctx := context.Background()

	a, err := p.Login(ctx, models.RoleAdmin)
	require.NoError(t, err)
	b, err := p.Login(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.NotEqual(t, a.Token, b.Token)

	claims, err := p.Issuer().Parse(a.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin01", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	other, err := NewTokenIssuer()
	require.NoError(t, err)
	_, err = other.Parse(a.Token)
	require.Error(t, err)
}

func TestLogin_UnknownRole(t *testing.T) {
	p, err := NewMockProvider(instant())
	require.NoError(t, err)

	_, err = p.Login(context.Background(), models.Role("root"))
	require.ErrorIs(t, err, common.ErrLoginFailed)
	require.ErrorIs(t, err, common.ErrUnknownRole)
}

func TestLogin_InjectedFailure(t *testing.T) {
	boom := errors.New("network down")
	p, err := NewMockProvider(instant(), WithLoginError(boom))
	require.NoError(t, err)

	tok, err := p.Login(context.Background(), "")
	require.Nil(t, tok)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, common.ErrLoginFailed)
}

func TestLogin_CancelledWhileWaiting(t *testing.T) {
	s := instant()
	s.LoginDelay = time.Hour
	p, err := NewMockProvider(s)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Login(ctx, "")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, common.ErrLoginFailed)
}

func TestLogin_WaitsConfiguredDelay(t *testing.T) {
	s := instant()
	s.LoginDelay = 20 * time.Millisecond
	p, err := NewMockProvider(s)
	require.NoError(t, err)

	start := time.Now()
	_, err = p.Login(context.Background(), "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestLogout(t *testing.T) {
	p, err := NewMockProvider(instant())
	require.NoError(t, err)
	require.NoError(t, p.Logout(context.Background()))

	boom := errors.New("gone")
	p, err = NewMockProvider(instant(), WithLogoutError(boom))
	require.NoError(t, err)
	require.ErrorIs(t, p.Logout(context.Background()), boom)
}

func TestNewMockProvider_RejectsUnknownDefaultRole(t *testing.T) {
	s := instant()
	s.DefaultRole = "guest"
	_, err := NewMockProvider(s)
	require.ErrorIs(t, err, common.ErrUnknownRole)
}

func TestIssuer_ParseUsesProviderClock(t *testing.T) {
	past := time.Date(2020, 5, 1, 9, 0, 0, 0, time.UTC)
	p, err := NewMockProvider(instant(), WithClock(timex.Fixed(past)))
	require.NoError(t, err)

	tok, err := p.Login(context.Background(), models.RoleAdmin)
	require.NoError(t, err)

	claims, err := p.Issuer().Parse(tok.Token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Equal(past.Add(24*time.Hour)))
}
