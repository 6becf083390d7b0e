// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/rmartell/go-site-sync/internal/adapter"
	"github.com/rmartell/go-site-sync/internal/config"
	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/store"
	"github.com/rmartell/go-site-sync/models"
)

type uploadPipeline struct {
	objects    adapter.ObjectStore
	records    adapter.MediaStore
	identity   adapter.IdentityProvider
	compressor *imageCompressor
	now        func() time.Time
	log        *logger.Logger
}

// NewUploadPipeline assembles the put-object / insert-record sequence with
// rollback. The two backend writes are not atomic, so a failed insert deletes
// the already stored object before the error is returned.
func NewUploadPipeline(objects adapter.ObjectStore, records adapter.MediaStore, identity adapter.IdentityProvider, cfg config.ClientPipeline, log *logger.Logger) UploadPipeline {
	return &uploadPipeline{
		objects:    objects,
		records:    records,
		identity:   identity,
		compressor: newImageCompressor(cfg.MaxImageEdge, cfg.JPEGQuality, log),
		now:        time.Now,
		log:        log,
	}
}

func (p *uploadPipeline) Upload(ctx context.Context, mediaType models.MediaType, fileName string, payload []byte, metadata models.CaptureMetadata) (models.RemoteMediaRecord, error) {
	ident, err := p.identity.Current(ctx)
	if err != nil {
		return models.RemoteMediaRecord{}, fmt.Errorf("resolve uploader: %w", err)
	}

	contentType := mimetype.Detect(payload).String()
	if mediaType == models.MediaTypeImage {
		compressed, cErr := p.compressor.Compress(payload)
		if cErr != nil {
			// Undecodable images still upload: better an uncompressed photo
			// on the server than a capture stuck on the device.
			p.log.Warn().Str("func", "uploadPipeline.Upload").Str("file_name", fileName).Err(cErr).Msg("image compression failed, uploading original")
		} else if len(compressed) < len(payload) {
			payload = compressed
			contentType = "image/jpeg"
		}
	}

	objectPath := buildObjectPath(ident.UserID, metadata.ProjectID, p.now(), fileName)

	objectURL, err := p.objects.PutObject(ctx, objectPath, contentType, payload)
	if err != nil {
		return models.RemoteMediaRecord{}, fmt.Errorf("store object: %w", err)
	}

	record := models.RemoteMediaRecord{
		ObjectURL:  objectURL,
		ObjectPath: objectPath,
		Metadata:   metadata,
		MediaType:  mediaType,
		UploaderID: ident.UserID,
	}

	created, err := p.records.InsertMediaRecord(ctx, record)
	if err != nil {
		if delErr := p.objects.DeleteObject(ctx, objectPath); delErr != nil {
			// Rollback failed too: the object is orphaned on the backend.
			p.log.Error().Str("func", "uploadPipeline.Upload").Str("object_path", objectPath).Err(delErr).Msg("rollback delete failed, object orphaned")
			return models.RemoteMediaRecord{}, fmt.Errorf("insert media record: %w", err)
		}
		return models.RemoteMediaRecord{}, fmt.Errorf("%w: %w", ErrPartialFailureRolledBack, err)
	}

	return created, nil
}

// buildObjectPath derives a collision-free storage path for a capture. The
// millisecond timestamp keeps two same-named photos from the same uploader
// apart.
func buildObjectPath(uploaderID string, projectID string, ts time.Time, fileName string) string {
	return fmt.Sprintf("%s/%s/%d_%s", uploaderID, projectID, ts.UnixMilli(), store.SanitizeFileName(fileName))
}
