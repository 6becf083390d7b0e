package models

import "time"

// Identity is the authenticated uploader as reported by the identity
// service. The adapter caches the last successful value on disk so offline
// capture intake can still attribute work when the service is unreachable.
type Identity struct {
	// UserID is the identity-service subject, used in object paths and
	// record attribution.
	UserID string `json:"user_id"`

	Login string `json:"login"`
	Name  string `json:"name,omitempty"`

	// Token is the bearer token attached to authenticated requests.
	Token string `json:"token,omitempty"`

	// FetchedAt records when this identity was last confirmed online.
	FetchedAt time.Time `json:"fetched_at"`
}
