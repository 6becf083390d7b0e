package store

import "errors"

var (
	// ErrQueueEmpty is returned by PeekOldest when no entries are queued.
	ErrQueueEmpty = errors.New("capture queue is empty")

	// ErrEntryNotFound is returned by reads for an unknown local id.
	// Remove deliberately does NOT return it.
	ErrEntryNotFound = errors.New("queue entry not found")

	// ErrStorageQuotaExceeded is returned by Enqueue when the device has
	// no room left for the payload. Intake surfaces it to the user.
	ErrStorageQuotaExceeded = errors.New("device storage quota exceeded")
)
