package service

import (
	"context"

	"github.com/rmartell/go-site-sync/internal/adapter"
	"github.com/rmartell/go-site-sync/internal/config"
	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/store"
)

// Backend groups the adapter interfaces the services consume. The HTTP
// backend adapter satisfies all of them; tests substitute fakes per field.
type Backend struct {
	Objects  adapter.ObjectStore
	Records  adapter.MediaStore
	Identity adapter.IdentityProvider
	Probe    adapter.HealthProbe
}

type ClientServices struct {
	Intake       CaptureIntake
	Pipeline     UploadPipeline
	Sync         SyncEngine
	SyncJob      SyncJob
	Connectivity ConnectivityObserver
	Status       StatusAggregator
}

// NewClientServices wires the full client service graph: connectivity feeds
// the intake decision and triggers a drain pass whenever the backend becomes
// reachable again.
func NewClientServices(storages *store.ClientStorages, backend Backend, cfg *config.ClientConfig, log *logger.Logger) *ClientServices {
	connectivity := NewConnectivityObserver(backend.Probe, cfg.Workers.ProbeInterval, log)
	pipeline := NewUploadPipeline(backend.Objects, backend.Records, backend.Identity, cfg.Pipeline, log)
	engine := NewSyncEngine(storages.Queue, pipeline, connectivity, log)
	status := NewStatusAggregator(storages.Queue, connectivity, engine, cfg.Workers.StatusInterval, log)

	connectivity.Subscribe(func(online bool) {
		if online {
			go func() { _ = engine.DrainOnce(context.Background()) }()
		}
	})

	return &ClientServices{
		Intake:       NewCaptureIntake(storages.Queue, pipeline, connectivity, log),
		Pipeline:     pipeline,
		Sync:         engine,
		SyncJob:      NewSyncJob(engine),
		Connectivity: connectivity,
		Status:       status,
	}
}
