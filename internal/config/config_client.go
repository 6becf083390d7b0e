package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] when a field was not set by any
// configuration source.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultSyncInterval   = 3 * time.Second
	DefaultProbeInterval  = 5 * time.Second
	DefaultStatusInterval = time.Second
	DefaultMaxImageEdge   = 1920
	DefaultJPEGQuality    = 80
)

// ClientBackend holds network settings used by the adapter layer.
type ClientBackend struct {
	// BaseURL is the backend origin all adapters share.
	BaseURL string
	// APIKey is the project API key attached to every request.
	APIKey string
	// RequestTimeout is the bound on every outbound request.
	RequestTimeout time.Duration
}

// ClientStorage groups on-device storage settings.
type ClientStorage struct {
	// QueueDBPath is the SQLite file for queue metadata.
	QueueDBPath string
	// SpoolDir is the payload blob spool directory.
	SpoolDir string
}

// ClientPipeline holds the image compression envelope.
type ClientPipeline struct {
	MaxImageEdge int
	JPEGQuality  int
}

// ClientWorkers contains background worker intervals.
type ClientWorkers struct {
	SyncInterval   time.Duration
	ProbeInterval  time.Duration
	StatusInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Backend  ClientBackend
	Storage  ClientStorage
	Pipeline ClientPipeline
	Workers  ClientWorkers
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration, applying defaults for unset intervals
// and the compression envelope.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Backend: ClientBackend{
			BaseURL:        cfg.Backend.BaseURL,
			APIKey:         cfg.Backend.APIKey,
			RequestTimeout: cfg.Backend.RequestTimeout,
		},
		Storage: ClientStorage{
			QueueDBPath: cfg.Storage.QueueDBPath,
			SpoolDir:    cfg.Storage.SpoolDir,
		},
		Pipeline: ClientPipeline{
			MaxImageEdge: cfg.Pipeline.MaxImageEdge,
			JPEGQuality:  cfg.Pipeline.JPEGQuality,
		},
		Workers: ClientWorkers{
			SyncInterval:   cfg.Workers.SyncInterval,
			ProbeInterval:  cfg.Workers.ProbeInterval,
			StatusInterval: cfg.Workers.StatusInterval,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Backend.RequestTimeout <= 0 {
		cfg.Backend.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.ProbeInterval <= 0 {
		cfg.Workers.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Workers.StatusInterval <= 0 {
		cfg.Workers.StatusInterval = DefaultStatusInterval
	}
	if cfg.Pipeline.MaxImageEdge <= 0 {
		cfg.Pipeline.MaxImageEdge = DefaultMaxImageEdge
	}
	if cfg.Pipeline.JPEGQuality <= 0 || cfg.Pipeline.JPEGQuality > 100 {
		cfg.Pipeline.JPEGQuality = DefaultJPEGQuality
	}
}
