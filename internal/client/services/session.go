// Package services contains application services for the dashboard shell.
// This file defines the session service: restoring a persisted session at
// startup, login and logout through the identity provider, and the derived
// authentication state read by routers.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/dashshell/internal/client/identity"
	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/dashshell/internal/common"
	"github.com/dmitrijs2005/dashshell/internal/logging"
	"github.com/dmitrijs2005/dashshell/internal/timex"
)

// cleanupTimeout bounds removal of the stored session once the caller's
// context no longer applies.
const cleanupTimeout = 5 * time.Second

// SessionState is a consistent copy of the session at one instant.
type SessionState struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
	IsLoading bool
}

// IsAuthenticated holds only when both user and token are present.
func (s SessionState) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

func (s SessionState) IsAdmin() bool {
	return s.User != nil && s.User.Role == models.RoleAdmin
}

// SessionService defines session operations for routers.
//
// Contract:
//   - Initialize: restore the persisted session once per process. Never fails.
//   - Login: obtain a session from the provider, persist it, adopt it.
//     On error the previous session is kept.
//   - Logout: always ends with no session, whatever the provider says.
//   - Snapshot: current state; user and token are never torn.
type SessionService interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, role models.Role) error
	Logout(ctx context.Context)
	Snapshot() SessionState
}

type sessionService struct {
	repo     metadata.Repository
	provider identity.Provider
	logger   logging.Logger
	clock    timex.Clock

	mu        sync.RWMutex
	user      *models.User
	token     string
	expiresAt time.Time
	loading   bool
}

// NewSessionService builds the service in the loading state; routers show
// a loading placeholder until Initialize has run.
func NewSessionService(repo metadata.Repository, provider identity.Provider, logger logging.Logger, clock timex.Clock) SessionService {
	return &sessionService{
		repo:     repo,
		provider: provider,
		logger:   logger.With("component", "session"),
		clock:    clock,
		loading:  true,
	}
}

func (s *sessionService) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := SessionState{Token: s.token, ExpiresAt: s.expiresAt, IsLoading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Initialize adopts the persisted session if it is readable and unexpired.
// Malformed or expired records are removed from the store.
func (s *sessionService) Initialize(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	raw, err := s.repo.Get(ctx, common.SessionStorageKey)
	if err != nil {
		s.logger.Warn(ctx, "failed to load auth state", "error", err)
		return
	}
	if raw == nil {
		return
	}

	tok, err := models.DecodeAuthToken(raw)
	if err != nil {
		s.logger.Warn(ctx, "failed to load auth state", "error", err)
		s.discard(ctx)
		return
	}

	if tok.ExpiredAt(s.clock.Now()) {
		s.logger.Info(ctx, "stored session expired", "expires_at", tok.ExpiresAt, "user_id", tok.User.ID)
		s.discard(ctx)
		return
	}

	s.adopt(tok)
	s.logger.Info(ctx, "session restored", "user_id", tok.User.ID, "role", tok.User.Role)
}

func (s *sessionService) Login(ctx context.Context, role models.Role) error {
	s.setLoading(true)
	defer s.setLoading(false)

	tok, err := s.provider.Login(ctx, role)
	if err != nil {
		s.logger.Error(ctx, "login failed", "role", role, "error", err)
		return fmt.Errorf("login: %w", err)
	}

	raw, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, common.SessionStorageKey, raw); err != nil {
		s.logger.Error(ctx, "login failed", "role", role, "error", err)
		return fmt.Errorf("persist session: %w", err)
	}

	s.adopt(tok)
	s.logger.Info(ctx, "login succeeded", "user_id", tok.User.ID, "role", tok.User.Role)
	return nil
}

// Logout swallows provider and store failures; only the log sees them.
func (s *sessionService) Logout(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.provider.Logout(ctx); err != nil {
		s.logger.Error(ctx, "logout failed", "error", err)
	}

	s.discard(ctx)
	s.logger.Info(ctx, "logged out")
}

func (s *sessionService) adopt(tok *models.AuthToken) {
	u := tok.User

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	s.token = tok.Token
	s.expiresAt = tok.ExpiresAt
}

// discard clears the durable entry and the in-memory session. The delete
// outlives cancellation of ctx so a dropped caller cannot leave the record
// behind for the next Initialize.
func (s *sessionService) discard(ctx context.Context) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.repo.Delete(cleanupCtx, common.SessionStorageKey); err != nil {
		s.logger.Warn(ctx, "failed to clear stored session", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.expiresAt = time.Time{}
}

func (s *sessionService) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}
