// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package models

import "fmt"

// SyncPhase is the coarse state shown in the status banner.
type SyncPhase int

const (
	// PhaseOffline: no connectivity; captures are being queued.
	PhaseOffline SyncPhase = iota

	// PhaseSyncing: online with a drain pass in progress.
	PhaseSyncing

	// PhasePendingRetry: online, entries remain queued, no pass running
	// (waiting for the next trigger after a transient failure).
	PhasePendingRetry

	// PhaseAllSynced: online and the queue is empty.
	PhaseAllSynced
)

// SyncState is the derived read-side view of the queue and connectivity.
// It has no independent lifecycle: the status aggregator recomputes it from
// the connectivity observer and the queue count after every event.
type SyncState struct {
	Phase        SyncPhase
	PendingCount int

	// NeedsAttention counts queued entries that failed with a
	// non-transient error and are waiting for a human to intervene.
	NeedsAttention int
}

// String renders the state the way the status banner displays it.
func (s SyncState) String() string {
	switch s.Phase {
	case PhaseOffline:
		return fmt.Sprintf("offline (%d queued)", s.PendingCount)
	case PhaseSyncing:
		return fmt.Sprintf("syncing (%d left)", s.PendingCount)
	case PhasePendingRetry:
		if s.NeedsAttention > 0 {
			return fmt.Sprintf("%d pending, needs attention", s.PendingCount)
		}
		return fmt.Sprintf("%d pending retry", s.PendingCount)
	case PhaseAllSynced:
		return "all synced"
	default:
		return "unknown"
	}
}
