package main

import (
	"fmt"
	"os"

	"github.com/rmartell/go-site-sync/internal/adapter"
	"github.com/rmartell/go-site-sync/internal/client"
	"github.com/rmartell/go-site-sync/internal/config"
	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/service"
	"github.com/rmartell/go-site-sync/internal/store"
	"github.com/rmartell/go-site-sync/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewFileLogger("site-sync-agent")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	backend := adapter.NewHTTPBackend(cfg.Backend, cfg.Storage.SpoolDir, log)
	if token := os.Getenv("SITE_SYNC_TOKEN"); token != "" {
		backend.SetToken(token)
	}

	services := service.NewClientServices(storages, service.Backend{
		Objects:  backend,
		Records:  backend,
		Identity: backend,
		Probe:    backend,
	}, cfg, log)

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init agent app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("agent run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
