package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a backend base URL
//	-api-key backend project API key
//	-q queue database path
//	-spool-dir payload spool directory
//	-c/-config json file path with configs
//	-sync-interval periodic drain interval (e.g., "3s")
//	-probe-interval connectivity probe interval (e.g., "5s")
//	-status-interval status refresh interval (e.g., "1s")
//	-request-timeout outbound request timeout (e.g., "30s")
func ParseFlags() *StructuredConfig {
	var backendURL string
	var apiKey string
	var queueDBPath string
	var spoolDir string
	var jsonConfigPath string
	var syncInterval time.Duration
	var probeInterval time.Duration
	var statusInterval time.Duration
	var requestTimeout time.Duration

	flag.StringVar(&backendURL, "a", "", "Backend base URL")
	flag.StringVar(&apiKey, "api-key", "", "Backend API key")
	flag.StringVar(&queueDBPath, "q", "", "Queue database path")
	flag.StringVar(&spoolDir, "spool-dir", "", "Payload spool directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic drain interval (e.g., 3s)")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval (e.g., 5s)")
	flag.DurationVar(&statusInterval, "status-interval", 0, "Status refresh interval (e.g., 1s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 30s)")

	flag.Parse()

	return &StructuredConfig{
		Backend: Backend{
			BaseURL:        backendURL,
			APIKey:         apiKey,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			QueueDBPath: queueDBPath,
			SpoolDir:    spoolDir,
		},
		Workers: Workers{
			SyncInterval:   syncInterval,
			ProbeInterval:  probeInterval,
			StatusInterval: statusInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
