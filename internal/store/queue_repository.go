package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/models"
)

// queueRow mirrors a capture_queue row for scanning and inserting.
type queueRow struct {
	localID    string
	payloadRef string
	fileName   string
	mediaType  string
	metadata   string
	enqueuedAt time.Time
	attempts   int
	lastError  string
}

type queueRepository struct {
	*DB
	spool  BlobSpool
	logger *logger.Logger
}

// NewQueueRepository wires the SQLite queue rows and the payload spool into
// one [QueueRepository]. The spool write happens before the row insert so a
// crash between the two leaves at worst an orphaned local blob, never a row
// pointing at missing bytes.
func NewQueueRepository(db *DB, spool BlobSpool, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		spool:  spool,
		logger: logger,
	}
}

func (q *queueRepository) Enqueue(ctx context.Context, mediaType models.MediaType, fileName string, payload []byte, metadata models.CaptureMetadata) (models.QueueEntry, error) {
	log := q.logger

	entry := models.QueueEntry{
		LocalID:    uuid.NewString(),
		FileName:   fileName,
		MediaType:  mediaType,
		Metadata:   metadata,
		EnqueuedAt: time.Now().UTC(),
	}

	ref, err := q.spool.Save(entry.LocalID, fileName, payload)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Str("local_id", entry.LocalID).
			Msg("failed to spool capture payload")
		return models.QueueEntry{}, fmt.Errorf("spool payload (local_id=%s): %w", entry.LocalID, err)
	}
	entry.PayloadRef = ref

	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		_ = q.spool.Remove(ref)
		return models.QueueEntry{}, fmt.Errorf("encode capture metadata: %w", err)
	}

	query, args, err := buildInsertEntryQuery(queueRow{
		localID:    entry.LocalID,
		payloadRef: entry.PayloadRef,
		fileName:   entry.FileName,
		mediaType:  string(entry.MediaType),
		metadata:   string(metaJSON),
		enqueuedAt: entry.EnqueuedAt,
	})
	if err != nil {
		_ = q.spool.Remove(ref)
		return models.QueueEntry{}, fmt.Errorf("build insert query: %w", err)
	}

	if _, err = q.DB.ExecContext(ctx, query, args...); err != nil {
		_ = q.spool.Remove(ref)
		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Str("local_id", entry.LocalID).
			Msg("failed to insert queue entry")
		return models.QueueEntry{}, fmt.Errorf("insert queue entry (local_id=%s): %w", entry.LocalID, err)
	}

	return entry, nil
}

func (q *queueRepository) PeekOldest(ctx context.Context) (models.QueueEntry, error) {
	query, args, err := buildPeekOldestQuery()
	if err != nil {
		return models.QueueEntry{}, fmt.Errorf("build peek query: %w", err)
	}

	row := q.DB.QueryRowContext(ctx, query, args...)
	entry, err := scanQueueEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QueueEntry{}, ErrQueueEmpty
	}
	if err != nil {
		q.logger.Err(err).
			Str("func", "queueRepository.PeekOldest").
			Msg("failed to scan oldest queue entry")
		return models.QueueEntry{}, fmt.Errorf("scan oldest queue entry: %w", err)
	}

	return entry, nil
}

func (q *queueRepository) List(ctx context.Context) ([]models.QueueEntry, error) {
	query, args, err := buildListQuery()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		q.logger.Err(err).
			Str("func", "queueRepository.List").
			Msg("failed to query queue entries")
		return nil, fmt.Errorf("query queue entries: %w", err)
	}
	defer rows.Close()

	var entries []models.QueueEntry
	for rows.Next() {
		entry, scanErr := scanQueueEntry(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("scan queue entry: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate queue entries: %w", rowsErr)
	}

	return entries, nil
}

func (q *queueRepository) Remove(ctx context.Context, localID string) error {
	log := q.logger

	// resolve the blob ref first; a missing row means a concurrent removal
	// already won, which is fine
	refQuery, refArgs, err := buildSelectPayloadRefQuery(localID)
	if err != nil {
		return fmt.Errorf("build payload ref query: %w", err)
	}

	var payloadRef string
	err = q.DB.QueryRowContext(ctx, refQuery, refArgs...).Scan(&payloadRef)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve payload ref (local_id=%s): %w", localID, err)
	}

	query, args, err := buildRemoveQuery(localID)
	if err != nil {
		return fmt.Errorf("build remove query: %w", err)
	}

	if _, err = q.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "queueRepository.Remove").
			Str("local_id", localID).
			Msg("failed to delete queue entry")
		return fmt.Errorf("delete queue entry (local_id=%s): %w", localID, err)
	}

	if err = q.spool.Remove(payloadRef); err != nil {
		// the row is gone so the entry is resolved; an undeletable blob is
		// only wasted space
		log.Warn().Err(err).
			Str("func", "queueRepository.Remove").
			Str("local_id", localID).
			Msg("failed to delete spooled payload")
	}

	return nil
}

func (q *queueRepository) Count(ctx context.Context) (int, error) {
	query, args, err := buildCountQuery()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err = q.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count queue entries: %w", err)
	}

	return count, nil
}

func (q *queueRepository) AttentionCount(ctx context.Context) (int, error) {
	query, args, err := buildAttentionCountQuery()
	if err != nil {
		return 0, fmt.Errorf("build attention count query: %w", err)
	}

	var count int
	if err = q.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count attention entries: %w", err)
	}

	return count, nil
}

func (q *queueRepository) IncrementAttempts(ctx context.Context, localID string) error {
	query, args, err := buildIncrementAttemptsQuery(localID)
	if err != nil {
		return fmt.Errorf("build increment attempts query: %w", err)
	}

	result, err := q.DB.ExecContext(ctx, query, args...)
	if err != nil {
		q.logger.Err(err).
			Str("func", "queueRepository.IncrementAttempts").
			Str("local_id", localID).
			Msg("failed to increment attempts")
		return fmt.Errorf("increment attempts (local_id=%s): %w", localID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected (local_id=%s): %w", localID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w (local_id=%s)", ErrEntryNotFound, localID)
	}

	return nil
}

func (q *queueRepository) SetLastError(ctx context.Context, localID, message string) error {
	query, args, err := buildSetLastErrorQuery(localID, message)
	if err != nil {
		return fmt.Errorf("build set last error query: %w", err)
	}

	if _, err = q.DB.ExecContext(ctx, query, args...); err != nil {
		q.logger.Err(err).
			Str("func", "queueRepository.SetLastError").
			Str("local_id", localID).
			Msg("failed to record entry error")
		return fmt.Errorf("record entry error (local_id=%s): %w", localID, err)
	}

	return nil
}

func (q *queueRepository) OpenPayload(ctx context.Context, entry models.QueueEntry) ([]byte, error) {
	data, err := q.spool.Read(entry.PayloadRef)
	if err != nil {
		return nil, fmt.Errorf("read spooled payload (local_id=%s): %w", entry.LocalID, err)
	}
	return data, nil
}

func scanQueueEntry(scan func(dest ...any) error) (models.QueueEntry, error) {
	var row queueRow
	if err := scan(
		&row.localID,
		&row.payloadRef,
		&row.fileName,
		&row.mediaType,
		&row.metadata,
		&row.enqueuedAt,
		&row.attempts,
		&row.lastError,
	); err != nil {
		return models.QueueEntry{}, err
	}

	mediaType, err := models.ParseMediaType(row.mediaType)
	if err != nil {
		return models.QueueEntry{}, err
	}

	var metadata models.CaptureMetadata
	if err = json.Unmarshal([]byte(row.metadata), &metadata); err != nil {
		return models.QueueEntry{}, fmt.Errorf("decode entry metadata: %w", err)
	}

	return models.QueueEntry{
		LocalID:    row.localID,
		PayloadRef: row.payloadRef,
		FileName:   row.fileName,
		MediaType:  mediaType,
		Metadata:   metadata,
		EnqueuedAt: row.enqueuedAt,
		Attempts:   row.attempts,
		LastError:  row.lastError,
	}, nil
}
