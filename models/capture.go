package models

import "time"

// GPS holds the device position at capture time. Altitude is optional on
// devices without a barometer and stays nil in that case.
type GPS struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
}

// CaptureMetadata describes a single capture taken by a field user.
// All fields except ProjectID are optional; the queue stores them verbatim
// and the upload pipeline copies them onto the remote record unchanged.
type CaptureMetadata struct {
	// ProjectID is the construction project the capture belongs to.
	ProjectID string `json:"project_id"`

	// Caption is the short one-line label entered by the crew.
	Caption string `json:"caption,omitempty"`

	// Description is free-form detail text.
	Description string `json:"description,omitempty"`

	// GPS is the device position at capture time, when available.
	GPS *GPS `json:"gps,omitempty"`

	// LocationName is the human-readable site location ("east footing").
	LocationName string `json:"location_name,omitempty"`

	// CapturedAt is the moment the shutter fired, in device time.
	CapturedAt time.Time `json:"captured_at"`

	// DeviceModel identifies the capturing device.
	DeviceModel string `json:"device_model,omitempty"`

	// Duration is set for video captures only.
	Duration *time.Duration `json:"duration,omitempty"`

	// UploadSource tags where the capture entered the app
	// (e.g. "camera", "gallery", "scanner").
	UploadSource string `json:"upload_source,omitempty"`
}

// QueueEntry is one pending capture awaiting upload. Entries are created by
// capture intake while the device is offline, mutated only by the sync
// engine (attempt counter, last error), and deleted exactly once on a
// confirmed upload.
type QueueEntry struct {
	// LocalID is the client-generated identifier, stable until the entry is
	// replaced by a server-issued record.
	LocalID string

	// PayloadRef locates the raw media bytes in the blob spool. Payload
	// bytes are kept out of the queue database because they may be large.
	PayloadRef string

	// FileName is the original capture file name, used for the remote
	// object path.
	FileName string

	MediaType MediaType
	Metadata  CaptureMetadata

	// EnqueuedAt orders the queue (FIFO) and feeds staleness diagnostics.
	EnqueuedAt time.Time

	// Attempts counts upload tries made by the sync engine.
	Attempts int

	// LastError holds the most recent non-transient failure text, empty
	// while the entry is healthy. Surfaced through the status aggregator.
	LastError string
}
