// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

// Package adapter provides transport-layer clients for the three remote
// collaborators of the capture subsystem: the object store holding media
// bytes, the relational media table, and the identity service.
//
// All implementations are HTTP/REST on go-resty. Transport failures are
// mapped by classifyError / mapHTTPError onto the sentinel values in
// errors.go, so callers distinguish retryable from terminal failures with
// [errors.Is] and never inspect status codes themselves.
package adapter

import (
	"context"

	"github.com/rmartell/go-site-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ObjectStore stores and deletes raw media objects at deterministic paths.
type ObjectStore interface {
	// PutObject writes data at path and returns the public object URL.
	// path must be deterministic across retries so a re-upload of the same
	// capture overwrites rather than duplicates.
	// Returns ErrTransientNetwork for retryable failures (timeouts, 5xx),
	// ErrQuotaOrPermission for auth/quota refusals.
	PutObject(ctx context.Context, path, contentType string, data []byte) (string, error)

	// DeleteObject removes the object at path. Deleting a path that does
	// not exist is a no-op, not an error, so the rollback after a failed
	// row insert is safe to repeat.
	DeleteObject(ctx context.Context, path string) error
}

// MediaStore creates authoritative media rows. This subsystem only ever
// inserts; updates and deletes of existing records belong to the rest of
// the application.
type MediaStore interface {
	// InsertMediaRecord creates the row and returns it with the
	// server-issued ID and creation timestamp filled in.
	InsertMediaRecord(ctx context.Context, rec models.RemoteMediaRecord) (models.RemoteMediaRecord, error)
}

// IdentityProvider supplies the current uploader identity for object path
// generation and record attribution.
type IdentityProvider interface {
	// SetToken stores the bearer token attached to subsequent requests.
	SetToken(token string)

	// Current fetches the identity from the identity service, caching it
	// on success. When the service is unreachable it falls back to the
	// cached last-known identity, so capture intake keeps working offline;
	// only when nothing was ever cached does it return an error.
	Current(ctx context.Context) (models.Identity, error)

	// Cached returns the last-known identity without any network call.
	Cached() (models.Identity, bool)
}

// HealthProbe reports whether the backend is currently reachable. Used by
// the connectivity observer; a probe failure is always treated as a
// transient condition, never as a reason to touch queue state.
type HealthProbe interface {
	Ping(ctx context.Context) error
}
