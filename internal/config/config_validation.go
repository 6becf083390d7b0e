// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Kept permissive on purpose: the structured config is a raw merge result;
// the per-runtime views ([ClientConfig]) enforce what their runtime needs.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	// the queue must survive restarts, so a memory DSN is not acceptable
	if cfg.Storage.QueueDBPath == "" || strings.Contains(cfg.Storage.QueueDBPath, "memory") {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.SpoolDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Backend.BaseURL == "" {
		return ErrInvalidBackendConfigs
	}

	return nil
}
