package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/mock"
	"github.com/rmartell/go-site-sync/models"
)

// Storage-failure paths that are awkward to provoke through a real SQLite
// queue run against a mocked repository instead.

func TestSyncEngine_DrainOnce_PeekFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockQueueRepository(ctrl)
	dbErr := errors.New("database is locked")
	queue.EXPECT().PeekOldest(gomock.Any()).Return(models.QueueEntry{}, dbErr)

	engine := NewSyncEngine(queue, &fakePipeline{}, &fakeConnectivity{online: true}, logger.Nop())

	err := engine.DrainOnce(context.Background())
	require.ErrorIs(t, err, dbErr)
}

func TestSyncEngine_DrainOnce_UnreadablePayloadParksEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockQueueRepository(ctrl)
	entry := models.QueueEntry{LocalID: "id-1", FileName: "a.jpg", MediaType: models.MediaTypeImage}

	// After parking, the loop peeks again and stops at the marked head.
	parked := entry
	parked.LastError = "open payload: spool blob missing"
	gomock.InOrder(
		queue.EXPECT().PeekOldest(gomock.Any()).Return(entry, nil),
		queue.EXPECT().IncrementAttempts(gomock.Any(), "id-1").Return(nil),
		queue.EXPECT().OpenPayload(gomock.Any(), entry).Return(nil, errors.New("spool blob missing")),
		queue.EXPECT().SetLastError(gomock.Any(), "id-1", gomock.Any()).Return(nil),
		queue.EXPECT().PeekOldest(gomock.Any()).Return(parked, nil),
	)

	pipeline := &fakePipeline{}
	engine := NewSyncEngine(queue, pipeline, &fakeConnectivity{online: true}, logger.Nop())

	require.NoError(t, engine.DrainOnce(context.Background()))
	assert.Empty(t, pipeline.uploadedNames(), "an unreadable payload must never reach the pipeline")
}

func TestSyncEngine_DrainOnce_RemoveFailureStopsPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockQueueRepository(ctrl)
	entry := models.QueueEntry{LocalID: "id-1", FileName: "a.jpg", MediaType: models.MediaTypeImage}
	rmErr := errors.New("database is locked")

	queue.EXPECT().PeekOldest(gomock.Any()).Return(entry, nil)
	queue.EXPECT().IncrementAttempts(gomock.Any(), "id-1").Return(nil)
	queue.EXPECT().OpenPayload(gomock.Any(), entry).Return([]byte("a"), nil)
	queue.EXPECT().Remove(gomock.Any(), "id-1").Return(rmErr)

	engine := NewSyncEngine(queue, &fakePipeline{}, &fakeConnectivity{online: true}, logger.Nop())

	err := engine.DrainOnce(context.Background())
	require.ErrorIs(t, err, rmErr)
}
