package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/dashshell/internal/buildinfo"
	"github.com/dmitrijs2005/dashshell/internal/client/config"
	"github.com/dmitrijs2005/dashshell/internal/server"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
