// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// mockWorker is a test implementation of the Worker interface that counts
// starts and blocks until its context is cancelled.
type mockWorker struct {
	started atomic.Int64
}

func (m *mockWorker) Run(ctx context.Context) {
	m.started.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreStarted(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run(context.Background())
	defer ws.Stop()

	deadline := time.After(5 * time.Second)
	for w1.started.Load()+w2.started.Load()+w3.started.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("not all workers started: %d %d %d", w1.started.Load(), w2.started.Load(), w3.started.Load())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestWorkers_Stop_WaitsForWorkers(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)
	ws.Run(context.Background())

	done := make(chan struct{})
	go func() {
		ws.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestWorkers_Stop_WithoutRunIsSafe(t *testing.T) {
	ws := NewWorkers()
	// must not panic when Run was never called
	ws.Stop()
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()
	ws.Run(context.Background())
	ws.Stop()
}
