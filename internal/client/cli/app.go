package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/dashshell/internal/client/gate"
	"github.com/dmitrijs2005/dashshell/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/dashshell/internal/client/services"
	"github.com/dmitrijs2005/dashshell/internal/logging"
)

type App struct {
	session services.SessionService
	theme   services.ThemeService
	feed    services.FeedService
	store   metadata.Repository
	logger  logging.Logger

	location string
	// pending is the route a login redirect interrupted.
	pending string
}

func NewApp(session services.SessionService, theme services.ThemeService, feed services.FeedService,
	store metadata.Repository, logger logging.Logger) *App {
	return &App{
		session:  session,
		theme:    theme,
		feed:     feed,
		store:    store,
		logger:   logger,
		location: gate.LoginPath,
	}
}

// Run restores the session and theme, opens the home route and reads
// commands from in until EOF or exit.
func (a *App) Run(ctx context.Context, in io.Reader) {
	a.session.Initialize(ctx)
	if err := a.theme.Initialize(ctx); err != nil {
		a.logger.Warn(ctx, "failed to persist theme", "error", err)
	}

	printlnFn("Dashboard shell (type 'help' for commands)")
	_ = a.Open(ctx, gate.HomePath)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(in))
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

func (a *App) getStatus() string {
	st := a.session.Snapshot()
	s := a.location
	if st.User != nil {
		s = fmt.Sprintf("%s (%s) %s", st.User.Name, st.User.Role, s)
	}
	return s
}
