package service

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmartell/go-site-sync/internal/adapter"
	"github.com/rmartell/go-site-sync/internal/config"
	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/models"
)

type fakeObjectStore struct {
	mu      sync.Mutex
	putErr  error
	delErr  error
	puts    []string
	deletes []string

	lastContentType string
	lastPayloadLen  int
}

func (f *fakeObjectStore) PutObject(_ context.Context, path, contentType string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	f.puts = append(f.puts, path)
	f.lastContentType = contentType
	f.lastPayloadLen = len(data)
	return "https://cdn.example.com/" + path, nil
}

func (f *fakeObjectStore) DeleteObject(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	f.deletes = append(f.deletes, path)
	return nil
}

type fakeMediaStore struct {
	mu        sync.Mutex
	insertErr error
	inserted  []models.RemoteMediaRecord
}

func (f *fakeMediaStore) InsertMediaRecord(_ context.Context, rec models.RemoteMediaRecord) (models.RemoteMediaRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return models.RemoteMediaRecord{}, f.insertErr
	}
	rec.ID = fmt.Sprintf("srv-%d", len(f.inserted)+1)
	f.inserted = append(f.inserted, rec)
	return rec, nil
}

func (f *fakeMediaStore) setInsertErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertErr = err
}

func (f *fakeMediaStore) insertedRecords() []models.RemoteMediaRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RemoteMediaRecord{}, f.inserted...)
}

type fakeIdentity struct {
	err error
}

func (f *fakeIdentity) SetToken(string) {}

func (f *fakeIdentity) Current(context.Context) (models.Identity, error) {
	if f.err != nil {
		return models.Identity{}, f.err
	}
	return models.Identity{UserID: "u1", Login: "foreman"}, nil
}

func (f *fakeIdentity) Cached() (models.Identity, bool) { return models.Identity{}, false }

func newTestPipeline(objects *fakeObjectStore, records *fakeMediaStore, identity *fakeIdentity) *uploadPipeline {
	p := NewUploadPipeline(objects, records, identity, config.ClientPipeline{
		MaxImageEdge: config.DefaultMaxImageEdge,
		JPEGQuality:  config.DefaultJPEGQuality,
	}, logger.Nop()).(*uploadPipeline)
	p.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return p
}

// ── Upload ──────────────────────────────────────────────────────────────────

func TestUploadPipeline_Upload_StoresObjectThenRecord(t *testing.T) {
	objects := &fakeObjectStore{}
	records := &fakeMediaStore{}
	pipeline := newTestPipeline(objects, records, &fakeIdentity{})

	rec, err := pipeline.Upload(context.Background(), models.MediaTypeDocument, "daily report.pdf", []byte("%PDF-1.7 report"), testMetadata("p1"))
	require.NoError(t, err)

	wantPath := "u1/p1/1700000000000_daily_report.pdf"
	assert.Equal(t, wantPath, rec.ObjectPath)
	assert.Equal(t, "https://cdn.example.com/"+wantPath, rec.ObjectURL)
	assert.Equal(t, "srv-1", rec.ID)
	assert.Equal(t, "u1", rec.UploaderID)
	assert.Equal(t, "footing poured", rec.Metadata.Caption)

	require.Len(t, records.inserted, 1)
	assert.Equal(t, wantPath, records.inserted[0].ObjectPath)
	assert.Empty(t, objects.deletes)
}

func TestUploadPipeline_Upload_CompressesImages(t *testing.T) {
	objects := &fakeObjectStore{}
	pipeline := newTestPipeline(objects, &fakeMediaStore{}, &fakeIdentity{})

	payload := encodeBMP(t, 2560, 1440, color.NRGBA{R: 120, G: 120, B: 120, A: 255})

	_, err := pipeline.Upload(context.Background(), models.MediaTypeImage, "wall.bmp", payload, testMetadata("p1"))
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", objects.lastContentType)
	assert.Less(t, objects.lastPayloadLen, len(payload))
}

func TestUploadPipeline_Upload_UndecodableImageUploadsOriginal(t *testing.T) {
	objects := &fakeObjectStore{}
	pipeline := newTestPipeline(objects, &fakeMediaStore{}, &fakeIdentity{})

	payload := []byte("definitely not an image")
	_, err := pipeline.Upload(context.Background(), models.MediaTypeImage, "broken.jpg", payload, testMetadata("p1"))
	require.NoError(t, err)

	assert.Equal(t, len(payload), objects.lastPayloadLen)
}

func TestUploadPipeline_Upload_PutFailurePropagates(t *testing.T) {
	objects := &fakeObjectStore{putErr: adapter.ErrTransientNetwork}
	records := &fakeMediaStore{}
	pipeline := newTestPipeline(objects, records, &fakeIdentity{})

	_, err := pipeline.Upload(context.Background(), models.MediaTypeDocument, "r.pdf", []byte("%PDF"), testMetadata("p1"))

	require.ErrorIs(t, err, adapter.ErrTransientNetwork)
	assert.Empty(t, records.inserted)
}

func TestUploadPipeline_Upload_InsertFailureRollsBackObject(t *testing.T) {
	objects := &fakeObjectStore{}
	records := &fakeMediaStore{insertErr: adapter.ErrTransientNetwork}
	pipeline := newTestPipeline(objects, records, &fakeIdentity{})

	_, err := pipeline.Upload(context.Background(), models.MediaTypeDocument, "r.pdf", []byte("%PDF"), testMetadata("p1"))

	require.ErrorIs(t, err, ErrPartialFailureRolledBack)
	require.ErrorIs(t, err, adapter.ErrTransientNetwork)
	require.Len(t, objects.puts, 1)
	require.Len(t, objects.deletes, 1)
	assert.Equal(t, objects.puts[0], objects.deletes[0], "rollback must delete the object it just stored")
}

func TestUploadPipeline_Upload_FailedRollbackReturnsInsertError(t *testing.T) {
	objects := &fakeObjectStore{delErr: errors.New("delete refused")}
	records := &fakeMediaStore{insertErr: adapter.ErrQuotaOrPermission}
	pipeline := newTestPipeline(objects, records, &fakeIdentity{})

	_, err := pipeline.Upload(context.Background(), models.MediaTypeDocument, "r.pdf", []byte("%PDF"), testMetadata("p1"))

	require.ErrorIs(t, err, adapter.ErrQuotaOrPermission)
	assert.NotErrorIs(t, err, ErrPartialFailureRolledBack, "a failed rollback is not a clean rollback")
}

func TestUploadPipeline_Upload_IdentityFailurePropagates(t *testing.T) {
	identityErr := fmt.Errorf("%w: %w", adapter.ErrNoCachedIdentity, adapter.ErrTransientNetwork)
	objects := &fakeObjectStore{}
	pipeline := newTestPipeline(objects, &fakeMediaStore{}, &fakeIdentity{err: identityErr})

	_, err := pipeline.Upload(context.Background(), models.MediaTypeDocument, "r.pdf", []byte("%PDF"), testMetadata("p1"))

	require.ErrorIs(t, err, adapter.ErrNoCachedIdentity)
	require.ErrorIs(t, err, adapter.ErrTransientNetwork)
	assert.Empty(t, objects.puts)
}
