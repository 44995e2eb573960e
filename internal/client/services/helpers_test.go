package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/dashshell/internal/client/localdb"
	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/client/repositories/metadata"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupRepo(t *testing.T) metadata.Repository {
	t.Helper()
	repo, closeFn, err := localdb.OpenMetadata(context.Background(), localdb.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return repo
}

// faultyRepo wraps a Repository and fails selected operations.
type faultyRepo struct {
	metadata.Repository
	getErr    error
	setErr    error
	deleteErr error
}

func (f *faultyRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Repository.Get(ctx, key)
}

func (f *faultyRepo) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Repository.Set(ctx, key, value)
}

func (f *faultyRepo) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Repository.Delete(ctx, key)
}

// ---- fake provider ----

type fakeProvider struct {
	mu sync.Mutex

	LoginRet  *models.AuthToken
	LoginErr  error
	LogoutErr error

	// block, when set, is waited on inside Login.
	block chan struct{}

	LastRole    models.Role
	LogoutCalls int
}

func (f *fakeProvider) Login(ctx context.Context, role models.Role) (*models.AuthToken, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRole = role
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	tok := *f.LoginRet
	return &tok, nil
}

func (f *fakeProvider) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	return f.LogoutErr
}

var errBoom = errors.New("boom")
