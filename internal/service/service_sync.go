// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rmartell/go-site-sync/internal/adapter"
	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/store"
	"github.com/rmartell/go-site-sync/models"
)

type syncEngine struct {
	queue        store.QueueRepository
	pipeline     UploadPipeline
	connectivity ConnectivityObserver
	log          *logger.Logger

	// token enforces at most one drain pass at a time; extra triggers
	// are dropped rather than queued, since an active pass already walks
	// the queue to its end.
	token    chan struct{}
	draining atomic.Bool

	mu       sync.RWMutex
	resolved []func(localID string, record models.RemoteMediaRecord)
}

// NewSyncEngine builds the queue drainer. Triggers come from the periodic
// sync job, from connectivity regained transitions and from user-initiated
// retries; all of them funnel into DrainOnce.
func NewSyncEngine(queue store.QueueRepository, pipeline UploadPipeline, connectivity ConnectivityObserver, log *logger.Logger) SyncEngine {
	e := &syncEngine{
		queue:        queue,
		pipeline:     pipeline,
		connectivity: connectivity,
		log:          log,
		token:        make(chan struct{}, 1),
	}
	e.token <- struct{}{}
	return e
}

func (e *syncEngine) Draining() bool {
	return e.draining.Load()
}

func (e *syncEngine) SubscribeResolved(fn func(localID string, record models.RemoteMediaRecord)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resolved = append(e.resolved, fn)
}

// DrainOnce processes queued captures oldest-first until the queue is empty,
// connectivity drops, or an entry fails. Transient failures end the pass
// quietly; the next trigger resumes from the same entry, so no capture is
// ever skipped or reordered.
func (e *syncEngine) DrainOnce(ctx context.Context) error {
	select {
	case <-e.token:
	default:
		return nil
	}
	e.draining.Store(true)
	defer func() {
		e.draining.Store(false)
		e.token <- struct{}{}
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !e.connectivity.Online() {
			return nil
		}

		entry, err := e.queue.PeekOldest(ctx)
		if errors.Is(err, store.ErrQueueEmpty) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("peek oldest: %w", err)
		}

		// A parked entry waits for an explicit retry. It also blocks the
		// entries behind it: uploads stay in capture order.
		if entry.LastError != "" {
			return nil
		}

		if err = e.processEntry(ctx, entry); err != nil {
			return err
		}
	}
}

// processEntry uploads one queued capture and removes it on success. A nil
// return with the entry still queued means the pass should stop.
func (e *syncEngine) processEntry(ctx context.Context, entry models.QueueEntry) error {
	if err := e.queue.IncrementAttempts(ctx, entry.LocalID); err != nil && !errors.Is(err, store.ErrEntryNotFound) {
		return fmt.Errorf("increment attempts: %w", err)
	}

	payload, err := e.queue.OpenPayload(ctx, entry)
	if err != nil {
		e.park(ctx, entry, fmt.Errorf("open payload: %w", err))
		return nil
	}

	record, err := e.pipeline.Upload(ctx, entry.MediaType, entry.FileName, payload, entry.Metadata)
	if err != nil {
		if errors.Is(err, adapter.ErrTransientNetwork) || errors.Is(err, ErrPartialFailureRolledBack) {
			e.log.Debug().Str("func", "syncEngine.processEntry").Str("local_id", entry.LocalID).Err(err).Msg("transient failure, pass ends")
			return err
		}
		e.park(ctx, entry, err)
		return nil
	}

	if err = e.queue.Remove(ctx, entry.LocalID); err != nil {
		// The upload succeeded; a failed remove means the entry will be
		// retried and the backend may end up with a duplicate object.
		return fmt.Errorf("remove synced entry: %w", err)
	}

	e.log.Info().Str("func", "syncEngine.processEntry").Str("local_id", entry.LocalID).Str("record_id", record.ID).Int("attempts", entry.Attempts+1).Msg("queued capture synced")
	e.notifyResolved(entry.LocalID, record)

	return nil
}

// park records a non-transient failure on the entry so the status aggregator
// flags it. The entry stays in the queue: captures are never dropped.
func (e *syncEngine) park(ctx context.Context, entry models.QueueEntry, cause error) {
	e.log.Err(cause).Str("func", "syncEngine.park").Str("local_id", entry.LocalID).Msg("capture needs attention")
	if err := e.queue.SetLastError(ctx, entry.LocalID, cause.Error()); err != nil {
		e.log.Err(err).Str("func", "syncEngine.park").Str("local_id", entry.LocalID).Msg("record last error")
	}
}

// RetryNow clears every needs-attention marker and drains the queue. Bound
// to the user-facing retry action.
func (e *syncEngine) RetryNow(ctx context.Context) error {
	entries, err := e.queue.List(ctx)
	if err != nil {
		return fmt.Errorf("list queue: %w", err)
	}
	for _, entry := range entries {
		if entry.LastError == "" {
			continue
		}
		if err = e.queue.SetLastError(ctx, entry.LocalID, ""); err != nil {
			return fmt.Errorf("clear last error: %w", err)
		}
	}

	return e.DrainOnce(ctx)
}

func (e *syncEngine) notifyResolved(localID string, record models.RemoteMediaRecord) {
	e.mu.RLock()
	subs := make([]func(string, models.RemoteMediaRecord), len(e.resolved))
	copy(subs, e.resolved)
	e.mu.RUnlock()

	for _, fn := range subs {
		fn(localID, record)
	}
}
