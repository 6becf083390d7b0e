package service

import (
	"context"
	"time"

	"github.com/rmartell/go-site-sync/models"
)

// CaptureIntake accepts a media capture from the UI and either uploads it
// immediately or parks it in the durable queue, depending on connectivity.
type CaptureIntake interface {
	CaptureAndQueueOrUpload(ctx context.Context, fileName string, payload []byte, metadata models.CaptureMetadata) (models.CaptureResult, error)
}

// UploadPipeline pushes one capture through the full backend sequence:
// compress (images only), store the object, insert the catalog record.
type UploadPipeline interface {
	Upload(ctx context.Context, mediaType models.MediaType, fileName string, payload []byte, metadata models.CaptureMetadata) (models.RemoteMediaRecord, error)
}

// SyncEngine drains the capture queue in FIFO order whenever the backend is
// reachable. At most one drain pass is in flight at any time.
type SyncEngine interface {
	// DrainOnce runs a single drain pass. A call made while another pass is
	// active returns immediately without doing anything.
	DrainOnce(ctx context.Context) error

	// RetryNow clears needs-attention markers and starts a drain pass.
	RetryNow(ctx context.Context) error

	// Draining reports whether a drain pass is currently in flight.
	Draining() bool

	// SubscribeResolved registers a callback fired after a queued capture has
	// been fully uploaded and removed from the queue, so UIs can swap
	// placeholders for the real record.
	SubscribeResolved(fn func(localID string, record models.RemoteMediaRecord))
}

// ConnectivityObserver tracks backend reachability via periodic health probes.
type ConnectivityObserver interface {
	Online() bool
	CheckNow(ctx context.Context) bool
	Subscribe(fn func(online bool))
	Run(ctx context.Context)
}

// StatusAggregator folds queue depth, connectivity and sync activity into a
// single state the UI can render as a banner.
type StatusAggregator interface {
	Current(ctx context.Context) models.SyncState
	PendingCount(ctx context.Context) (int, error)
	ListPending(ctx context.Context) ([]models.QueueEntry, error)
	Subscribe(fn func(state models.SyncState))
	Run(ctx context.Context)
}

// SyncJob periodically triggers the sync engine while the app is running.
type SyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
