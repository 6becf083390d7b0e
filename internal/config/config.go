// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for
// go-site-sync. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Backend holds the base address and credentials of the remote
	// backend (object store, media table and identity endpoints share one
	// base URL).
	Backend Backend `envPrefix:"BACKEND_"`

	// Storage holds on-device persistence settings: the queue database
	// and the payload blob spool.
	Storage Storage `envPrefix:"STORAGE_"`

	// Pipeline holds upload pipeline tuning (image compression envelope).
	Pipeline Pipeline `envPrefix:"PIPELINE_"`

	// Workers holds background worker intervals (sync drain, connectivity
	// probe, status refresh).
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Backend holds settings for the remote backend the device syncs against.
type Backend struct {
	// BaseURL is the backend origin, e.g. "https://api.example.com".
	// Env: BACKEND_ADDRESS
	BaseURL string `env:"ADDRESS"`

	// APIKey is the project API key attached to every request.
	// Env: BACKEND_API_KEY
	APIKey string `env:"API_KEY"`

	// RequestTimeout bounds every outbound call so a hung request cannot
	// block the next drain trigger. A timed-out call counts as transient.
	// Env: BACKEND_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups on-device persistence settings.
type Storage struct {
	// QueueDBPath is the SQLite file holding queue metadata rows.
	// Env: STORAGE_QUEUE_DB_PATH
	QueueDBPath string `env:"QUEUE_DB_PATH"`

	// SpoolDir is the directory holding raw payload bytes for queued
	// captures, referenced by QueueEntry.PayloadRef.
	// Env: STORAGE_SPOOL_DIR
	SpoolDir string `env:"SPOOL_DIR"`
}

// Pipeline holds the image compression envelope applied before upload.
type Pipeline struct {
	// MaxImageEdge is the longest allowed image dimension in pixels;
	// larger images are downscaled before upload.
	// Env: PIPELINE_MAX_IMAGE_EDGE
	MaxImageEdge int `env:"MAX_IMAGE_EDGE"`

	// JPEGQuality is the re-encode quality (1-100).
	// Env: PIPELINE_JPEG_QUALITY
	JPEGQuality int `env:"JPEG_QUALITY"`
}

// Workers holds background worker intervals.
type Workers struct {
	// SyncInterval is the periodic drain trigger while online.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ProbeInterval is how often the connectivity observer probes the
	// backend health endpoint.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// StatusInterval is how often the status aggregator recomputes the
	// sync state between pushed events.
	// Env: WORKERS_STATUS_INTERVAL
	StatusInterval time.Duration `env:"STATUS_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
