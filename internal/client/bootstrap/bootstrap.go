// Package bootstrap assembles the dashboard services from a Config.
// Both the terminal shell and the HTTP server start from here.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dashshell/internal/client/appearance"
	"github.com/dmitrijs2005/dashshell/internal/client/config"
	"github.com/dmitrijs2005/dashshell/internal/client/identity"
	"github.com/dmitrijs2005/dashshell/internal/client/localdb"
	"github.com/dmitrijs2005/dashshell/internal/client/models"
	"github.com/dmitrijs2005/dashshell/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/dashshell/internal/client/services"
	"github.com/dmitrijs2005/dashshell/internal/logging"
)

const feedTimeout = 10 * time.Second

type Services struct {
	Session services.SessionService
	Theme   services.ThemeService
	Feed    services.FeedService
	Store   metadata.Repository

	closeFn func() error
}

// New opens the durable store and builds the services on top of it.
// display may be nil when nothing needs to follow the theme.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger, display services.Display) (*Services, error) {
	role, err := models.ParseRole(cfg.DefaultRole)
	if err != nil {
		return nil, fmt.Errorf("default role: %w", err)
	}

	repo, closeFn, err := localdb.OpenMetadata(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	provider, err := identity.NewMockProvider(identity.Settings{
		LoginDelay:  cfg.LoginDelay,
		LogoutDelay: cfg.LogoutDelay,
		SessionTTL:  cfg.SessionTTL,
		DefaultRole: role,
	})
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	client := &http.Client{Timeout: feedTimeout}

	return &Services{
		Session: services.NewSessionService(repo, provider, logger, nil),
		Theme:   services.NewThemeService(repo, appearance.NewSchemeDetector(cfg.ColorScheme), display, logger),
		Feed:    services.NewFeedService(client, cfg.PostsURL, cfg.PostsLimit, logger),
		Store:   repo,
		closeFn: closeFn,
	}, nil
}

// Close releases the durable store.
func (s *Services) Close() error {
	return s.closeFn()
}
