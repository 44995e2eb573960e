package bootstrap

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/dashshell/internal/client/config"
	"github.com/dmitrijs2005/dashshell/internal/client/localdb"
	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/common"
	"github.com/dmitrijs2005/dashshell/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = localdb.MemoryDSN
	cfg.LoginDelay, cfg.LogoutDelay = 0, 0
	cfg.ColorScheme = "dark"
	return cfg
}

func TestNew_WiresServices(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.DefaultRole = "user"

	svc, err := New(ctx, cfg, logging.Discard(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	svc.Session.Initialize(ctx)
	require.NoError(t, svc.Session.Login(ctx, ""))
	st := svc.Session.Snapshot()
	require.NotNil(t, st.User)
	assert.Equal(t, models.RoleUser, st.User.Role)

	require.NoError(t, svc.Theme.Initialize(ctx))
	assert.Equal(t, models.ThemeDark, svc.Theme.Current())
}

func TestNew_RejectsUnknownDefaultRole(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultRole = "root"

	_, err := New(context.Background(), cfg, logging.Discard(), nil)
	require.ErrorIs(t, err, common.ErrUnknownRole)
}
