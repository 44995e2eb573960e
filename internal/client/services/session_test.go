package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/dashshell/internal/client/identity"
	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/dashshell/internal/common"
	"github.com/dmitrijs2005/dashshell/internal/logging"
	"github.com/dmitrijs2005/dashshell/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func adminToken(expiresAt time.Time) *models.AuthToken {
	u, _ := identity.CannedUser(models.RoleAdmin)
	return &models.AuthToken{Token: "tok-admin", ExpiresAt: expiresAt, User: u}
}

func userToken(expiresAt time.Time) *models.AuthToken {
	u, _ := identity.CannedUser(models.RoleUser)
	return &models.AuthToken{Token: "tok-user", ExpiresAt: expiresAt, User: u}
}

func persist(t *testing.T, repo metadata.Repository, tok *models.AuthToken) {
	t.Helper()
	raw, err := json.Marshal(tok)
	require.NoError(t, err)
	require.NoError(t, repo.Set(context.Background(), common.SessionStorageKey, raw))
}

func instantProvider(t *testing.T, opts ...identity.Option) *identity.MockProvider {
	t.Helper()
	s := identity.DefaultSettings()
	s.LoginDelay, s.LogoutDelay = 0, 0
	p, err := identity.NewMockProvider(s, append([]identity.Option{identity.WithClock(timex.Fixed(now))}, opts...)...)
	require.NoError(t, err)
	return p
}

func TestNewSessionService_StartsLoading(t *testing.T) {
	svc := NewSessionService(setupRepo(t), &fakeProvider{}, logging.Discard(), timex.Fixed(now))

	st := svc.Snapshot()
	assert.True(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated())
}

func TestInitialize_NoStoredSession(t *testing.T) {
	svc := NewSessionService(setupRepo(t), &fakeProvider{}, logging.Discard(), timex.Fixed(now))
	svc.Initialize(context.Background())

	st := svc.Snapshot()
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated())
	assert.Nil(t, st.User)
	assert.Empty(t, st.Token)
}

func TestInitialize_RoundTripAfterLogin(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first := NewSessionService(repo, instantProvider(t), logging.Discard(), timex.Fixed(now))
	first.Initialize(ctx)
	require.NoError(t, first.Login(ctx, models.RoleUser))
	want := first.Snapshot()

	second := NewSessionService(repo, instantProvider(t), logging.Discard(), timex.Fixed(now.Add(time.Hour)))
	second.Initialize(ctx)
	got := second.Snapshot()

	require.True(t, got.IsAuthenticated())
	assert.Equal(t, want.User, got.User)
	assert.Equal(t, want.Token, got.Token)
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
	assert.False(t, got.IsAdmin())
}

func TestInitialize_ExpiredSessionIsDiscarded(t *testing.T) {
	for name, expiresAt := range map[string]time.Time{
		"in the past":    now.Add(-time.Minute),
		"exactly at now": now,
	} {
		t.Run(name, func(t *testing.T) {
			repo := setupRepo(t)
			persist(t, repo, adminToken(expiresAt))

			svc := NewSessionService(repo, &fakeProvider{}, logging.Discard(), timex.Fixed(now))
			svc.Initialize(context.Background())

			assert.False(t, svc.Snapshot().IsAuthenticated())
			raw, err := repo.Get(context.Background(), common.SessionStorageKey)
			require.NoError(t, err)
			assert.Nil(t, raw)
		})
	}
}

func TestInitialize_MalformedSessionIsDiscarded(t *testing.T) {
	for name, raw := range map[string]string{
		"garbage":       `{{{`,
		"missing token": `{"expiresAt": 99999999999999, "user": {"id": "admin01", "role": "admin"}}`,
		"unknown role":  `{"token": "t", "expiresAt": 99999999999999, "user": {"id": "x", "role": "root"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			repo := setupRepo(t)
			ctx := context.Background()
			require.NoError(t, repo.Set(ctx, common.SessionStorageKey, []byte(raw)))

			svc := NewSessionService(repo, &fakeProvider{}, logging.Discard(), timex.Fixed(now))
			require.NotPanics(t, func() { svc.Initialize(ctx) })

			st := svc.Snapshot()
			assert.False(t, st.IsLoading)
			assert.False(t, st.IsAuthenticated())
			v, err := repo.Get(ctx, common.SessionStorageKey)
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestInitialize_StoreReadErrorLeavesEmptyState(t *testing.T) {
	repo := &faultyRepo{Repository: setupRepo(t), getErr: errBoom}
	svc := NewSessionService(repo, &fakeProvider{}, logging.Discard(), timex.Fixed(now))

	svc.Initialize(context.Background())

	st := svc.Snapshot()
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated())
}

func TestLogin_DefaultRoleIsAdmin(t *testing.T) {
	svc := NewSessionService(setupRepo(t), instantProvider(t), logging.Discard(), timex.Fixed(now))
	ctx := context.Background()
	svc.Initialize(ctx)

	require.NoError(t, svc.Login(ctx, ""))

	st := svc.Snapshot()
	require.True(t, st.IsAuthenticated())
	assert.Equal(t, models.RoleAdmin, st.User.Role)
	assert.True(t, st.IsAdmin())
}

func TestLogin_PersistsFullSession(t *testing.T) {
	repo := setupRepo(t)
	fp := &fakeProvider{LoginRet: userToken(now.Add(24 * time.Hour))}
	svc := NewSessionService(repo, fp, logging.Discard(), timex.Fixed(now))
	ctx := context.Background()

	persist(t, repo, adminToken(now.Add(time.Hour)))
	require.NoError(t, svc.Login(ctx, models.RoleUser))
	assert.Equal(t, models.RoleUser, fp.LastRole)

	raw, err := repo.Get(ctx, common.SessionStorageKey)
	require.NoError(t, err)
	got, err := models.DecodeAuthToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "tok-user", got.Token)
	assert.Equal(t, "user01", got.User.ID)
	assert.Equal(t, now.Add(24*time.Hour).UnixMilli(), got.ExpiresAt.UnixMilli())
}

func TestLogin_ProviderFailureKeepsPreviousSession(t *testing.T) {
	repo := setupRepo(t)
	fp := &fakeProvider{LoginRet: adminToken(now.Add(time.Hour))}
	svc := NewSessionService(repo, fp, logging.Discard(), timex.Fixed(now))
	ctx := context.Background()
	svc.Initialize(ctx)
	require.NoError(t, svc.Login(ctx, models.RoleAdmin))
	before := svc.Snapshot()

	fp.LoginErr = errBoom
	err := svc.Login(ctx, models.RoleUser)
	require.ErrorIs(t, err, errBoom)

	after := svc.Snapshot()
	assert.False(t, after.IsLoading)
	assert.Equal(t, before.User, after.User)
	assert.Equal(t, before.Token, after.Token)

	raw, err := repo.Get(ctx, common.SessionStorageKey)
	require.NoError(t, err)
	got, err := models.DecodeAuthToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "tok-admin", got.Token)
}

func TestLogin_PersistFailureKeepsState(t *testing.T) {
	repo := &faultyRepo{Repository: setupRepo(t), setErr: errBoom}
	svc := NewSessionService(repo, &fakeProvider{LoginRet: adminToken(now.Add(time.Hour))}, logging.Discard(), timex.Fixed(now))
	ctx := context.Background()
	svc.Initialize(ctx)

	err := svc.Login(ctx, "")
	require.ErrorIs(t, err, errBoom)

	st := svc.Snapshot()
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated())
}

func TestLogin_LoadingWhileInFlight(t *testing.T) {
	fp := &fakeProvider{LoginRet: adminToken(now.Add(time.Hour)), block: make(chan struct{})}
	svc := NewSessionService(setupRepo(t), fp, logging.Discard(), timex.Fixed(now))
	ctx := context.Background()
	svc.Initialize(ctx)

	done := make(chan error, 1)
	go func() { done <- svc.Login(ctx, "") }()

	require.Eventually(t, func() bool { return svc.Snapshot().IsLoading }, time.Second, time.Millisecond)
	close(fp.block)
	require.NoError(t, <-done)

	st := svc.Snapshot()
	assert.False(t, st.IsLoading)
	assert.True(t, st.IsAuthenticated())
}

func TestLogout_ClearsStateAndStore(t *testing.T) {
	repo := setupRepo(t)
	fp := &fakeProvider{LoginRet: adminToken(now.Add(time.Hour))}
	svc := NewSessionService(repo, fp, logging.Discard(), timex.Fixed(now))
	ctx := context.Background()
	svc.Initialize(ctx)
	require.NoError(t, svc.Login(ctx, ""))

	svc.Logout(ctx)

	st := svc.Snapshot()
	assert.Equal(t, 1, fp.LogoutCalls)
	assert.False(t, st.IsLoading)
	assert.Nil(t, st.User)
	assert.Empty(t, st.Token)
	raw, err := repo.Get(ctx, common.SessionStorageKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestLogout_SwallowsFailures(t *testing.T) {
	base := setupRepo(t)
	repo := &faultyRepo{Repository: base}
	fp := &fakeProvider{LoginRet: adminToken(now.Add(time.Hour)), LogoutErr: errBoom}
	svc := NewSessionService(repo, fp, logging.Discard(), timex.Fixed(now))
	ctx := context.Background()
	svc.Initialize(ctx)
	require.NoError(t, svc.Login(ctx, ""))

	repo.deleteErr = errBoom
	require.NotPanics(t, func() { svc.Logout(ctx) })

	st := svc.Snapshot()
	assert.False(t, st.IsAuthenticated())
	assert.False(t, st.IsLoading)
}

func TestLogout_CancelledContextStillClearsStore(t *testing.T) {
	repo := setupRepo(t)
	svc := NewSessionService(repo, instantProvider(t), logging.Discard(), timex.Fixed(now))
	svc.Initialize(context.Background())
	require.NoError(t, svc.Login(context.Background(), models.RoleAdmin))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Logout(ctx)

	assert.False(t, svc.Snapshot().IsAuthenticated())
	raw, err := repo.Get(context.Background(), common.SessionStorageKey)
	require.NoError(t, err)
	assert.Nil(t, raw)

	restarted := NewSessionService(repo, instantProvider(t), logging.Discard(), timex.Fixed(now))
	restarted.Initialize(context.Background())
	assert.False(t, restarted.Snapshot().IsAuthenticated())
}

// cancelAfterGet cancels the caller's context once the stored record has
// been read, like a client that goes away mid-request.
type cancelAfterGet struct {
	metadata.Repository
	cancel context.CancelFunc
}

func (c *cancelAfterGet) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := c.Repository.Get(ctx, key)
	c.cancel()
	return v, err
}

func TestInitialize_CancelledContextStillDropsExpiredRecord(t *testing.T) {
	base := setupRepo(t)
	persist(t, base, adminToken(now.Add(-time.Minute)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := NewSessionService(&cancelAfterGet{Repository: base, cancel: cancel}, &fakeProvider{}, logging.Discard(), timex.Fixed(now))
	svc.Initialize(ctx)

	require.Error(t, ctx.Err())
	raw, err := base.Get(context.Background(), common.SessionStorageKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestSnapshot_UserAndTokenNeverTorn(t *testing.T) {
	svc := NewSessionService(setupRepo(t), instantProvider(t), logging.Discard(), timex.Fixed(now))
	ctx := context.Background()
	svc.Initialize(ctx)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	var torn bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			st := svc.Snapshot()
			if (st.User == nil) != (st.Token == "") {
				torn = true
				return
			}
		}
	}()

	for i := 0; i < 50; i++ {
		require.NoError(t, svc.Login(ctx, ""))
		svc.Logout(ctx)
	}
	close(stop)
	wg.Wait()

	assert.False(t, torn, "observed user without token or token without user")
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	svc := NewSessionService(setupRepo(t), &fakeProvider{LoginRet: adminToken(now.Add(time.Hour))}, logging.Discard(), timex.Fixed(now))
	ctx := context.Background()
	svc.Initialize(ctx)
	require.NoError(t, svc.Login(ctx, ""))

	st := svc.Snapshot()
	st.User.Role = models.RoleUser

	assert.True(t, svc.Snapshot().IsAdmin())
}
