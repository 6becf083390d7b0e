// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register webp decoding for imaging.Decode

	"github.com/rmartell/go-site-sync/internal/logger"
)

// imageCompressor shrinks photos before upload so captures from modern phone
// cameras do not eat mobile data. Videos and documents pass through untouched.
type imageCompressor struct {
	maxEdge int
	quality int
	log     *logger.Logger
}

func newImageCompressor(maxEdge int, quality int, log *logger.Logger) *imageCompressor {
	return &imageCompressor{maxEdge: maxEdge, quality: quality, log: log}
}

// Compress decodes the image, scales it down so its longest edge is at most
// maxEdge pixels, and re-encodes it as JPEG. If the result would be larger
// than the original the original bytes are returned unchanged.
func (c *imageCompressor) Compress(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > c.maxEdge || bounds.Dy() > c.maxEdge {
		img = imaging.Fit(img, c.maxEdge, c.maxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	if buf.Len() >= len(data) {
		return data, nil
	}

	return buf.Bytes(), nil
}
