package store

import (
	"context"
	"fmt"

	"github.com/rmartell/go-site-sync/internal/config"
	"github.com/rmartell/go-site-sync/internal/logger"
)

// ClientStorages groups the on-device storage layer into a single value the
// service layer receives. It holds the durable capture queue; additional
// repositories can be added here as the feature set grows.
type ClientStorages struct {
	// Queue is the SQLite-backed durable queue of pending captures.
	Queue QueueRepository

	db *DB
}

// Close releases the underlying queue database connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}

// NewClientStorages initialises the on-device storage layer:
//  1. Opens the SQLite queue database, creating the file if missing.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Creates the payload blob spool directory.
//  4. Returns a [ClientStorages] wired to a fresh [QueueRepository].
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	spool, err := NewFileBlobSpool(cfg.SpoolDir, logger)
	if err != nil {
		return nil, fmt.Errorf("blob spool init failed: %w", err)
	}

	return &ClientStorages{
		Queue: NewQueueRepository(db, spool, logger),
		db:    db,
	}, nil
}
