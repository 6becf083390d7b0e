package tui

import (
	"github.com/rmartell/go-site-sync/models"
)

type stateMsg struct {
	state models.SyncState
}

type pendingLoadedMsg struct {
	entries []models.QueueEntry
	err     error
}

type resolvedMsg struct {
	localID string
	record  models.RemoteMediaRecord
}

type retryDoneMsg struct {
	err error
}

type clearStatusMsg struct{}
