// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/internal/store"
	"github.com/rmartell/go-site-sync/internal/validators"
	"github.com/rmartell/go-site-sync/models"
)

type captureService struct {
	queue        store.QueueRepository
	pipeline     UploadPipeline
	connectivity ConnectivityObserver
	validator    validators.Validator
	log          *logger.Logger
}

// NewCaptureIntake wires the capture entry point. Online captures go straight
// through the upload pipeline; offline captures land in the durable queue.
func NewCaptureIntake(queue store.QueueRepository, pipeline UploadPipeline, connectivity ConnectivityObserver, log *logger.Logger) CaptureIntake {
	return &captureService{
		queue:        queue,
		pipeline:     pipeline,
		connectivity: connectivity,
		validator:    validators.NewCaptureMetadataValidator(),
		log:          log,
	}
}

func (s *captureService) CaptureAndQueueOrUpload(ctx context.Context, fileName string, payload []byte, metadata models.CaptureMetadata) (models.CaptureResult, error) {
	mediaType, err := classifyCapture(fileName, payload)
	if err != nil {
		return models.CaptureResult{}, err
	}
	if err = s.validator.Validate(ctx, metadata); err != nil {
		return models.CaptureResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if s.connectivity.Online() {
		record, err := s.pipeline.Upload(ctx, mediaType, fileName, payload, metadata)
		if err != nil {
			// Direct-path failures are the caller's to handle; nothing is
			// queued behind their back.
			return models.CaptureResult{}, fmt.Errorf("direct upload: %w", err)
		}
		s.log.Info().Str("func", "captureService.CaptureAndQueueOrUpload").Str("record_id", record.ID).Msg("capture uploaded directly")
		return models.SyncedCapture(record), nil
	}

	entry, err := s.queue.Enqueue(ctx, mediaType, fileName, payload, metadata)
	if err != nil {
		return models.CaptureResult{}, fmt.Errorf("enqueue capture: %w", err)
	}
	s.log.Info().Str("func", "captureService.CaptureAndQueueOrUpload").Str("local_id", entry.LocalID).Msg("capture queued while offline")

	return models.PendingCapture(entry.LocalID), nil
}

// classifyCapture rejects obviously broken captures before any I/O and
// classifies the payload by sniffing its content, never trusting the file
// extension.
func classifyCapture(fileName string, payload []byte) (models.MediaType, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrValidation)
	}
	if strings.TrimSpace(fileName) == "" {
		return "", fmt.Errorf("%w: empty file name", ErrValidation)
	}

	return mediaTypeOf(mimetype.Detect(payload)), nil
}

func mediaTypeOf(mime *mimetype.MIME) models.MediaType {
	switch {
	case strings.HasPrefix(mime.String(), "image/"):
		return models.MediaTypeImage
	case strings.HasPrefix(mime.String(), "video/"):
		return models.MediaTypeVideo
	default:
		return models.MediaTypeDocument
	}
}
