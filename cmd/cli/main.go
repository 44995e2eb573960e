package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dashshell/internal/buildinfo"
	"github.com/dmitrijs2005/dashshell/internal/client/appearance"
	"github.com/dmitrijs2005/dashshell/internal/client/bootstrap"
	"github.com/dmitrijs2005/dashshell/internal/client/cli"
	"github.com/dmitrijs2005/dashshell/internal/client/config"
	"github.com/dmitrijs2005/dashshell/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.SlogLevel())

	svc, err := bootstrap.New(ctx, cfg, logger, appearance.NewTerminalDisplay(os.Stdout))
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer svc.Close()

	app := cli.NewApp(svc.Session, svc.Theme, svc.Feed, svc.Store, logger)
	app.Run(ctx, os.Stdin)
}
