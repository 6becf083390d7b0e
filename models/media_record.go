package models

import "time"

// RemoteMediaRecord is the authoritative server-side row for an uploaded
// capture. This subsystem only ever creates these records; once written they
// are owned by the backend and read by the rest of the application.
type RemoteMediaRecord struct {
	// ID is the server-issued record identifier.
	ID string `json:"id"`

	// ObjectURL is the address of the stored media object.
	ObjectURL string `json:"object_url"`

	// ObjectPath is the deterministic storage path the object was written
	// to. Kept so a failed insert can delete exactly what it stored.
	ObjectPath string `json:"object_path"`

	Metadata CaptureMetadata `json:"metadata"`

	MediaType MediaType `json:"media_type"`

	// UploaderID attributes the capture to the uploading user.
	UploaderID string `json:"uploader_id"`

	// CreatedAt is the server-side creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}
