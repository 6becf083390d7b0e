package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidBackendConfigs indicates invalid backend settings
	// (for example, missing base URL).
	ErrInvalidBackendConfigs = errors.New("invalid backend configuration")
	// ErrInvalidStorageConfigs indicates invalid on-device storage settings
	// (for example, empty queue path or an in-memory DSN, which cannot
	// survive a restart).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
