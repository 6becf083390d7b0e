package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rmartell/go-site-sync/internal/config"
	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/store"
	"github.com/rmartell/go-site-sync/models"
)

// newTestQueue opens a real SQLite-backed queue in a temp dir so service
// tests exercise the same storage path as production.
func newTestQueue(t *testing.T) store.QueueRepository {
	t.Helper()

	dir := t.TempDir()
	storages, err := store.NewClientStorages(config.ClientStorage{
		QueueDBPath: dir + "/queue.db",
		SpoolDir:    dir + "/spool",
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages.Queue
}

// ── fakes ───────────────────────────────────────────────────────────────────

type fakeConnectivity struct {
	mu     sync.RWMutex
	online bool
	subs   []func(bool)
}

func (f *fakeConnectivity) Online() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.online
}

func (f *fakeConnectivity) CheckNow(context.Context) bool { return f.Online() }

func (f *fakeConnectivity) Subscribe(fn func(bool)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

func (f *fakeConnectivity) Run(context.Context) {}

func (f *fakeConnectivity) set(online bool) {
	f.mu.Lock()
	changed := f.online != online
	f.online = online
	subs := append([]func(bool){}, f.subs...)
	f.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(online)
	}
}

// fakePipeline records uploads and fails those whose file name has a
// scripted error.
type fakePipeline struct {
	mu       sync.Mutex
	failWith map[string]error // keyed by file name; nil entry means succeed
	uploaded []string
}

func (f *fakePipeline) Upload(_ context.Context, mediaType models.MediaType, fileName string, _ []byte, metadata models.CaptureMetadata) (models.RemoteMediaRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failWith[fileName]; ok && err != nil {
		return models.RemoteMediaRecord{}, err
	}
	f.uploaded = append(f.uploaded, fileName)

	return models.RemoteMediaRecord{
		ID:         "rec-" + fileName,
		ObjectPath: "u1/" + metadata.ProjectID + "/" + fileName,
		MediaType:  mediaType,
		Metadata:   metadata,
	}, nil
}

func (f *fakePipeline) uploadedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.uploaded...)
}

func (f *fakePipeline) setFailure(fileName string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith == nil {
		f.failWith = make(map[string]error)
	}
	f.failWith[fileName] = err
}

// fakeSyncEngine is a stub for status aggregator tests.
type fakeSyncEngine struct {
	mu       sync.Mutex
	draining bool
	resolved []func(string, models.RemoteMediaRecord)
}

func (f *fakeSyncEngine) DrainOnce(context.Context) error { return nil }
func (f *fakeSyncEngine) RetryNow(context.Context) error  { return nil }

func (f *fakeSyncEngine) Draining() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draining
}

func (f *fakeSyncEngine) SubscribeResolved(fn func(string, models.RemoteMediaRecord)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolved = append(f.resolved, fn)
}

func (f *fakeSyncEngine) setDraining(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draining = v
}

func testMetadata(projectID string) models.CaptureMetadata {
	return models.CaptureMetadata{
		ProjectID: projectID,
		Caption:   "footing poured",
	}
}
