package client

import (
	"context"
	"fmt"

	"github.com/rmartell/go-site-sync/internal/config"
	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/service"
	"github.com/rmartell/go-site-sync/internal/tui"
	"github.com/rmartell/go-site-sync/internal/workers"
)

type App struct {
	services *service.ClientServices
	ui       *tui.TUI
	workers  *workers.Workers
	cfg      config.ClientWorkers
	log      *logger.Logger
}

// NewApp assembles the agent runtime. The connectivity observer and the
// status aggregator run as background workers for the lifetime of the
// dashboard.
func NewApp(services *service.ClientServices, ui *tui.TUI, cfg config.ClientWorkers, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, fmt.Errorf("client app: services and ui are required")
	}

	return &App{
		services: services,
		ui:       ui,
		workers:  workers.NewWorkers(services.Connectivity, services.Status),
		cfg:      cfg,
		log:      log,
	}, nil
}

// Run starts the background workers and the periodic sync job, then blocks
// in the dashboard until the user quits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.workers.Run(ctx)
	defer a.workers.Stop()

	a.services.SyncJob.Start(ctx, a.cfg.SyncInterval)
	defer a.services.SyncJob.Stop()

	a.log.Info().Msg("agent started")

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	return nil
}
