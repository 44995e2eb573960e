// Package server runs the dashboard as an HTTP service.
// It wires configuration, the durable store and the dashboard services,
// handles graceful shutdown, and starts the HTTP server.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/dashshell/internal/client/bootstrap"
	"github.com/dmitrijs2005/dashshell/internal/client/config"
	"github.com/dmitrijs2005/dashshell/internal/logging"
	"github.com/dmitrijs2005/dashshell/internal/server/web"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	services *bootstrap.Services
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.SlogLevel())

	svc, err := bootstrap.New(ctx, c, logger, nil)
	if err != nil {
		return nil, err
	}

	return &App{config: c, logger: logger, services: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := web.NewServer(app.config.HTTPAddr, app.services.Session, app.services.Theme, app.services.Feed, app.logger, reg)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	app.services.Session.Initialize(ctx)
	if err := app.services.Theme.Initialize(ctx); err != nil {
		app.logger.Warn(ctx, "failed to persist theme", "error", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.services.Close(); err != nil {
		app.logger.Error(ctx, "failed to close database", "error", err)
	}
}
