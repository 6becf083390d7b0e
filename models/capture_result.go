package models

// CaptureResult is the tagged union returned by capture intake: either a
// placeholder for a capture that was queued offline, or the real remote
// record when the direct online path succeeded. Both variants share one
// stable display identifier so a UI element bound to it never re-fetches.
type CaptureResult struct {
	// DisplayID is stable for the lifetime of the capture on this device.
	// For a pending capture it equals LocalID; after resolution it is
	// unchanged even though the backing record is now remote.
	DisplayID string

	// LocalID is set while the capture is still queued, empty afterwards.
	LocalID string

	// Record is set once the capture exists on the server.
	Record *RemoteMediaRecord
}

// PendingCapture builds the placeholder variant.
func PendingCapture(localID string) CaptureResult {
	return CaptureResult{DisplayID: localID, LocalID: localID}
}

// SyncedCapture builds the resolved variant for a capture that was uploaded
// directly (the display identifier is the server id from the start).
func SyncedCapture(rec RemoteMediaRecord) CaptureResult {
	return CaptureResult{DisplayID: rec.ID, Record: &rec}
}

// Pending reports whether the capture is still represented by a queue entry.
func (r CaptureResult) Pending() bool {
	return r.Record == nil
}

// Resolve swaps the pending tag for the real record in place, keeping
// DisplayID untouched. It is the reconciliation step the sync engine applies
// when the upload of a queued entry is confirmed; calling it on an already
// resolved result is a no-op.
func (r *CaptureResult) Resolve(rec RemoteMediaRecord) {
	if r.Record != nil {
		return
	}
	r.LocalID = ""
	r.Record = &rec
}
