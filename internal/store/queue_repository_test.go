package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmartell/go-site-sync/internal/config"
	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/models"
)

func newTestStorages(t *testing.T, dir string) *ClientStorages {
	t.Helper()
	cfg := config.ClientStorage{
		QueueDBPath: filepath.Join(dir, "queue.db"),
		SpoolDir:    filepath.Join(dir, "spool"),
	}
	storages, err := NewClientStorages(cfg, logger.Nop())
	require.NoError(t, err)
	return storages
}

func testMetadata(project, caption string) models.CaptureMetadata {
	return models.CaptureMetadata{
		ProjectID:    project,
		Caption:      caption,
		LocationName: "east footing",
		CapturedAt:   time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
		DeviceModel:  "Pixel 9",
		UploadSource: "camera",
	}
}

func TestEnqueue_CountMatchesEnqueues(t *testing.T) {
	storages := newTestStorages(t, t.TempDir())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := storages.Queue.Enqueue(ctx, models.MediaTypeImage, "site.jpg", []byte("img"), testMetadata("p1", "c"))
		require.NoError(t, err)
	}

	count, err := storages.Queue.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestEnqueue_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := newTestStorages(t, dir)
	entry, err := first.Queue.Enqueue(ctx, models.MediaTypeImage, "site.jpg", []byte("payload-bytes"), testMetadata("p1", "footing poured"))
	require.NoError(t, err)

	// simulate an app restart: fresh storages over the same files
	second := newTestStorages(t, dir)

	count, err := second.Queue.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := second.Queue.PeekOldest(ctx)
	require.NoError(t, err)
	assert.Equal(t, entry.LocalID, got.LocalID)
	assert.Equal(t, "footing poured", got.Metadata.Caption)

	payload, err := second.Queue.OpenPayload(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload-bytes"), payload)
}

func TestPeekOldest_Empty(t *testing.T) {
	storages := newTestStorages(t, t.TempDir())

	_, err := storages.Queue.PeekOldest(context.Background())
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestPeekOldest_FIFOOrder(t *testing.T) {
	storages := newTestStorages(t, t.TempDir())
	ctx := context.Background()

	var ids []string
	for _, caption := range []string{"A", "B", "C"} {
		entry, err := storages.Queue.Enqueue(ctx, models.MediaTypeImage, caption+".jpg", []byte(caption), testMetadata("p1", caption))
		require.NoError(t, err)
		ids = append(ids, entry.LocalID)
	}

	for _, want := range ids {
		got, err := storages.Queue.PeekOldest(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got.LocalID)
		require.NoError(t, storages.Queue.Remove(ctx, got.LocalID))
	}

	count, err := storages.Queue.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRemove_Idempotent(t *testing.T) {
	storages := newTestStorages(t, t.TempDir())
	ctx := context.Background()

	entry, err := storages.Queue.Enqueue(ctx, models.MediaTypeVideo, "clip.mp4", []byte("vid"), testMetadata("p1", "c"))
	require.NoError(t, err)

	require.NoError(t, storages.Queue.Remove(ctx, entry.LocalID))
	require.NoError(t, storages.Queue.Remove(ctx, entry.LocalID))
	require.NoError(t, storages.Queue.Remove(ctx, "never-existed"))

	count, err := storages.Queue.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRemove_DeletesSpooledBlob(t *testing.T) {
	dir := t.TempDir()
	storages := newTestStorages(t, dir)
	ctx := context.Background()

	entry, err := storages.Queue.Enqueue(ctx, models.MediaTypeImage, "site.jpg", []byte("img"), testMetadata("p1", "c"))
	require.NoError(t, err)
	require.NoError(t, storages.Queue.Remove(ctx, entry.LocalID))

	matches, err := filepath.Glob(filepath.Join(dir, "spool", entry.LocalID+"_*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIncrementAttempts(t *testing.T) {
	storages := newTestStorages(t, t.TempDir())
	ctx := context.Background()

	entry, err := storages.Queue.Enqueue(ctx, models.MediaTypeImage, "site.jpg", []byte("img"), testMetadata("p1", "c"))
	require.NoError(t, err)

	require.NoError(t, storages.Queue.IncrementAttempts(ctx, entry.LocalID))
	require.NoError(t, storages.Queue.IncrementAttempts(ctx, entry.LocalID))

	got, err := storages.Queue.PeekOldest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)

	err = storages.Queue.IncrementAttempts(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestSetLastError_AttentionCount(t *testing.T) {
	storages := newTestStorages(t, t.TempDir())
	ctx := context.Background()

	a, err := storages.Queue.Enqueue(ctx, models.MediaTypeImage, "a.jpg", []byte("a"), testMetadata("p1", "a"))
	require.NoError(t, err)
	_, err = storages.Queue.Enqueue(ctx, models.MediaTypeImage, "b.jpg", []byte("b"), testMetadata("p1", "b"))
	require.NoError(t, err)

	require.NoError(t, storages.Queue.SetLastError(ctx, a.LocalID, "permission denied"))

	attention, err := storages.Queue.AttentionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, attention)

	require.NoError(t, storages.Queue.SetLastError(ctx, a.LocalID, ""))
	attention, err = storages.Queue.AttentionCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, attention)
}

func TestList_OldestFirst(t *testing.T) {
	storages := newTestStorages(t, t.TempDir())
	ctx := context.Background()

	for _, caption := range []string{"A", "B", "C"} {
		_, err := storages.Queue.Enqueue(ctx, models.MediaTypeDocument, caption+".pdf", []byte(caption), testMetadata("p1", caption))
		require.NoError(t, err)
	}

	entries, err := storages.Queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "A", entries[0].Metadata.Caption)
	assert.Equal(t, "B", entries[1].Metadata.Caption)
	assert.Equal(t, "C", entries[2].Metadata.Caption)
}

func TestEnqueue_MetadataRoundTrip(t *testing.T) {
	storages := newTestStorages(t, t.TempDir())
	ctx := context.Background()

	alt := 412.5
	dur := 42 * time.Second
	meta := models.CaptureMetadata{
		ProjectID:    "p-9",
		Caption:      "pour complete",
		Description:  "north wall, second lift",
		GPS:          &models.GPS{Latitude: 47.61, Longitude: -122.33, Altitude: &alt},
		LocationName: "north wall",
		CapturedAt:   time.Date(2026, 8, 21, 9, 15, 0, 0, time.UTC),
		DeviceModel:  "iPad Air",
		Duration:     &dur,
		UploadSource: "camera",
	}

	_, err := storages.Queue.Enqueue(ctx, models.MediaTypeVideo, "pour.mp4", []byte("vid"), meta)
	require.NoError(t, err)

	got, err := storages.Queue.PeekOldest(ctx)
	require.NoError(t, err)
	assert.Equal(t, meta, got.Metadata)
	assert.Equal(t, models.MediaTypeVideo, got.MediaType)
}
