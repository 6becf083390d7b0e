// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rmartell/go-site-sync/internal/logger"
)

// fileBlobSpool keeps raw capture payloads as files under one spool
// directory. Payload bytes live outside the queue database because a single
// site video can run to hundreds of megabytes; the database row only holds
// the spool-relative reference.
type fileBlobSpool struct {
	dir    string
	logger *logger.Logger
}

// NewFileBlobSpool creates the spool directory if needed and returns a
// [BlobSpool] over it.
func NewFileBlobSpool(dir string, log *logger.Logger) (BlobSpool, error) {
	if dir == "" {
		return nil, errors.New("blob spool directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob spool dir: %w", err)
	}
	return &fileBlobSpool{dir: dir, logger: log}, nil
}

func (s *fileBlobSpool) Save(localID, fileName string, data []byte) (string, error) {
	ref := localID + "_" + sanitizeFileName(fileName)
	path := filepath.Join(s.dir, ref)

	// write-then-rename so a crash mid-write never leaves a ref pointing
	// at truncated bytes
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		_ = os.Remove(tmp)
		return "", mapSpoolError(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", mapSpoolError(err)
	}

	return ref, nil
}

func (s *fileBlobSpool) Read(ref string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if err != nil {
		return nil, fmt.Errorf("read spooled blob %s: %w", ref, err)
	}
	return data, nil
}

func (s *fileBlobSpool) Remove(ref string) error {
	err := os.Remove(filepath.Join(s.dir, ref))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove spooled blob %s: %w", ref, err)
	}
	return nil
}

// mapSpoolError translates out-of-space conditions into the sentinel intake
// surfaces to the user; everything else is wrapped as-is.
func mapSpoolError(err error) error {
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		return fmt.Errorf("%w: %v", ErrStorageQuotaExceeded, err)
	}
	return fmt.Errorf("write spooled blob: %w", err)
}

// sanitizeFileName strips path separators and whitespace so a capture file
// name can never escape the spool directory or the remote object prefix.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"\t", "_",
		"#", "_",
		"?", "_",
		"%", "_",
	)
	name = replacer.Replace(name)
	if name == "" || name == "." || name == ".." {
		return "capture.bin"
	}
	return name
}

// SanitizeFileName is the exported form used by the upload pipeline for
// remote object paths.
func SanitizeFileName(name string) string {
	return sanitizeFileName(name)
}
