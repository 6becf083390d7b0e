package adapter

import "errors"

var (
	// ErrTransientNetwork marks failures worth retrying on a later drain
	// pass: transport errors, timeouts, 408/429 and server-side 5xx.
	ErrTransientNetwork = errors.New("transient network error")

	// ErrQuotaOrPermission marks refusals that will not succeed without
	// user action: 401/403 and storage quota responses (413/507).
	ErrQuotaOrPermission = errors.New("quota or permission error")

	// ErrObjectNotFound is returned by lookups for a missing object.
	// DeleteObject swallows it so rollback stays idempotent.
	ErrObjectNotFound = errors.New("object not found")

	// ErrNoCachedIdentity is returned when the identity service is
	// unreachable and no identity was ever cached on this device.
	ErrNoCachedIdentity = errors.New("no cached identity")
)
