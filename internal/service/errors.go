package service

import "errors"

var (
	// ErrValidation marks a capture rejected before any I/O happened.
	ErrValidation = errors.New("capture validation failed")

	// ErrPartialFailureRolledBack marks an upload whose object was stored but
	// whose catalog insert failed; the object has been deleted again, so the
	// whole operation can be retried from scratch.
	ErrPartialFailureRolledBack = errors.New("catalog insert failed, stored object rolled back")
)
