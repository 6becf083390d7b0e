// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package service

import (
	"context"
	"sync"
	"time"

	"github.com/rmartell/go-site-sync/internal/adapter"
	"github.com/rmartell/go-site-sync/internal/logger"
)

type connectivityObserver struct {
	probe    adapter.HealthProbe
	interval time.Duration
	log      *logger.Logger

	mu     sync.RWMutex
	online bool
	subs   []func(online bool)
}

// NewConnectivityObserver probes the backend health endpoint on a fixed
// interval. The app starts offline; the first successful probe flips it
// online.
func NewConnectivityObserver(probe adapter.HealthProbe, interval time.Duration, log *logger.Logger) ConnectivityObserver {
	return &connectivityObserver{
		probe:    probe,
		interval: interval,
		log:      log,
	}
}

func (o *connectivityObserver) Online() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.online
}

// CheckNow runs one probe immediately and returns the resulting state.
// Subscribers fire if the state changed.
func (o *connectivityObserver) CheckNow(ctx context.Context) bool {
	online := o.probe.Ping(ctx) == nil
	o.setOnline(online)
	return online
}

// Subscribe registers fn to run on every reachability transition. Callbacks
// run on the observer goroutine and must not block.
func (o *connectivityObserver) Subscribe(fn func(online bool)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subs = append(o.subs, fn)
}

// Run probes until ctx is cancelled. Intended to run as a background worker.
func (o *connectivityObserver) Run(ctx context.Context) {
	o.CheckNow(ctx)

	t := time.NewTicker(o.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			o.CheckNow(ctx)
		}
	}
}

func (o *connectivityObserver) setOnline(online bool) {
	o.mu.Lock()
	if o.online == online {
		o.mu.Unlock()
		return
	}
	o.online = online
	subs := make([]func(bool), len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	o.log.Info().Str("func", "connectivityObserver.setOnline").Bool("online", online).Msg("connectivity changed")
	for _, fn := range subs {
		fn(online)
	}
}
