package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/opoclient/internal/buildinfo"
	"github.com/dmitrijs2005/opoclient/internal/client/api"
	"github.com/dmitrijs2005/opoclient/internal/client/cli"
	"github.com/dmitrijs2005/opoclient/internal/client/config"
	"github.com/dmitrijs2005/opoclient/internal/client/credentials"
	"github.com/dmitrijs2005/opoclient/internal/filex"
	"github.com/dmitrijs2005/opoclient/internal/logging"
	"github.com/joho/godotenv"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	if err := filex.EnsureParentDir(cfg.StorePath); err != nil {
		log.Fatalf("prepare store directory: %v", err)
	}
	store, err := credentials.OpenSQLite(ctx, cfg.StorePath)
	if err != nil {
		log.Fatalf("open credential store: %v", err)
	}
	defer store.Close()

	var app *cli.App
	client := api.New(cfg.APIBaseURL, credentials.NewKeeper(store),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger.With("component", "api")),
		api.WithOnSessionLost(func(ctx context.Context) {
			if app != nil {
				app.OnSessionLost(ctx)
			}
		}),
	)

	app = cli.NewApp(cli.NewServices(client, logger), logger)
	app.Run(ctx)
}
