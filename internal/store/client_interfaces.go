package store

import (
	"context"

	"github.com/rmartell/go-site-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/store_mock.go -package=mock

// QueueRepository is the durable on-device queue of pending captures.
// Entries must survive a process restart or crash as soon as Enqueue
// returns.
type QueueRepository interface {
	// Enqueue stores payload durably (blob spool first, then the metadata
	// row) and returns the created entry. Returns
	// [ErrStorageQuotaExceeded] when device storage is insufficient; the
	// caller must surface that to the user, never drop the capture
	// silently.
	Enqueue(ctx context.Context, mediaType models.MediaType, fileName string, payload []byte, metadata models.CaptureMetadata) (models.QueueEntry, error)

	// PeekOldest returns the entry with the smallest enqueued_at without
	// removing it (ties broken by insertion order). Returns
	// [ErrQueueEmpty] when the queue has no entries.
	PeekOldest(ctx context.Context) (models.QueueEntry, error)

	// Remove deletes the entry and its spooled payload. Idempotent:
	// removing an already-removed id is a no-op, which keeps retry races
	// harmless.
	Remove(ctx context.Context, localID string) error

	// Count is a cheap pending-entry count for the status aggregator.
	Count(ctx context.Context) (int, error)

	// AttentionCount counts entries parked with a recorded non-transient
	// error.
	AttentionCount(ctx context.Context) (int, error)

	// IncrementAttempts bumps the retry counter before a processing
	// attempt.
	IncrementAttempts(ctx context.Context, localID string) error

	// SetLastError records a non-transient failure on the entry (empty
	// string clears it). The status aggregator surfaces entries with a
	// recorded error as needing attention.
	SetLastError(ctx context.Context, localID, message string) error

	// List returns all entries oldest-first, for the pending view.
	List(ctx context.Context) ([]models.QueueEntry, error)

	// OpenPayload reads the spooled payload bytes for entry.
	OpenPayload(ctx context.Context, entry models.QueueEntry) ([]byte, error)
}

// BlobSpool persists raw payload bytes outside the queue database, keyed by
// the spool-relative reference stored in QueueEntry.PayloadRef.
type BlobSpool interface {
	// Save writes data and returns the spool-relative reference. Returns
	// [ErrStorageQuotaExceeded] when the device is out of space.
	Save(localID, fileName string, data []byte) (string, error)

	// Read returns the bytes stored under ref.
	Read(ref string) ([]byte, error)

	// Remove deletes the blob under ref; removing a missing ref is a
	// no-op.
	Remove(ref string) error
}
