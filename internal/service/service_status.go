// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package service

import (
	"context"
	"sync"
	"time"

	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/store"
	"github.com/rmartell/go-site-sync/models"
)

type statusService struct {
	queue        store.QueueRepository
	connectivity ConnectivityObserver
	engine       SyncEngine
	interval     time.Duration
	log          *logger.Logger

	mu   sync.RWMutex
	last models.SyncState
	subs []func(state models.SyncState)
}

// NewStatusAggregator folds connectivity, queue depth and drain activity
// into one SyncState for the UI banner. It recomputes on its own ticker and
// additionally whenever connectivity flips or a queued capture resolves, so
// the banner reacts within the interval even without an event.
func NewStatusAggregator(queue store.QueueRepository, connectivity ConnectivityObserver, engine SyncEngine, interval time.Duration, log *logger.Logger) StatusAggregator {
	s := &statusService{
		queue:        queue,
		connectivity: connectivity,
		engine:       engine,
		interval:     interval,
		log:          log,
	}

	connectivity.Subscribe(func(bool) { s.refresh(context.Background()) })
	engine.SubscribeResolved(func(string, models.RemoteMediaRecord) { s.refresh(context.Background()) })

	return s
}

// Current computes the state directly from its sources, bypassing the
// cached value.
func (s *statusService) Current(ctx context.Context) models.SyncState {
	count, err := s.queue.Count(ctx)
	if err != nil {
		s.log.Err(err).Str("func", "statusService.Current").Msg("count pending entries")
	}
	attention, err := s.queue.AttentionCount(ctx)
	if err != nil {
		s.log.Err(err).Str("func", "statusService.Current").Msg("count attention entries")
	}

	state := models.SyncState{
		PendingCount:   count,
		NeedsAttention: attention,
	}
	switch {
	case !s.connectivity.Online():
		state.Phase = models.PhaseOffline
	case s.engine.Draining():
		state.Phase = models.PhaseSyncing
	case count > 0:
		state.Phase = models.PhasePendingRetry
	default:
		state.Phase = models.PhaseAllSynced
	}

	return state
}

func (s *statusService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.Count(ctx)
}

func (s *statusService) ListPending(ctx context.Context) ([]models.QueueEntry, error) {
	return s.queue.List(ctx)
}

// Subscribe registers fn for state transitions. fn fires immediately with
// the current state so subscribers never start from a blank banner.
func (s *statusService) Subscribe(fn func(state models.SyncState)) {
	state := s.Current(context.Background())

	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.last = state
	s.mu.Unlock()

	fn(state)
}

// Run recomputes the state every interval until ctx is cancelled.
func (s *statusService) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.refresh(ctx)
		}
	}
}

// refresh recomputes the state and fans it out to subscribers when it
// changed since the last notification.
func (s *statusService) refresh(ctx context.Context) {
	state := s.Current(ctx)

	s.mu.Lock()
	if state == s.last {
		s.mu.Unlock()
		return
	}
	s.last = state
	subs := make([]func(models.SyncState), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
