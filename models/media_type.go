// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package models

import "fmt"

// MediaType defines the kind of captured media held by a queue entry or a
// remote media record. The value determines how the payload is processed by
// the upload pipeline (images are compressed, videos and documents are
// uploaded as captured).
type MediaType string

const (
	// MediaTypeImage represents a still photo captured on site.
	MediaTypeImage MediaType = "image"

	// MediaTypeVideo represents a video clip. Video payloads carry a
	// Duration in their metadata and are never recompressed client-side.
	MediaTypeVideo MediaType = "video"

	// MediaTypeDocument represents a scanned or attached document
	// (PDF, plan sheet, delivery ticket).
	MediaTypeDocument MediaType = "document"
)

// ParseMediaType converts a stored string back into a MediaType.
// Returns an error for unknown values so a corrupted queue row is
// detected at read time instead of at upload time.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaTypeImage, MediaTypeVideo, MediaTypeDocument:
		return MediaType(s), nil
	default:
		return "", fmt.Errorf("unknown media type %q", s)
	}
}

// Valid reports whether t is one of the declared media types.
func (t MediaType) Valid() bool {
	_, err := ParseMediaType(string(t))
	return err == nil
}
