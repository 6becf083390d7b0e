// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const queueTable = "capture_queue"

var queueColumns = []string{
	"local_id",
	"payload_ref",
	"file_name",
	"media_type",
	"metadata",
	"enqueued_at",
	"attempts",
	"last_error",
}

func buildInsertEntryQuery(e queueRow) (string, []any, error) {
	return sq.Insert(queueTable).
		Columns(queueColumns...).
		Values(e.localID, e.payloadRef, e.fileName, e.mediaType, e.metadata, e.enqueuedAt, e.attempts, e.lastError).
		ToSql()
}

// buildPeekOldestQuery selects the single oldest entry. rowid breaks ties
// between entries enqueued within the same clock tick.
func buildPeekOldestQuery() (string, []any, error) {
	return sq.Select(queueColumns...).
		From(queueTable).
		OrderBy("enqueued_at ASC", "rowid ASC").
		Limit(1).
		ToSql()
}

func buildListQuery() (string, []any, error) {
	return sq.Select(queueColumns...).
		From(queueTable).
		OrderBy("enqueued_at ASC", "rowid ASC").
		ToSql()
}

func buildRemoveQuery(localID string) (string, []any, error) {
	return sq.Delete(queueTable).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

func buildCountQuery() (string, []any, error) {
	return sq.Select("COUNT(*)").
		From(queueTable).
		ToSql()
}

func buildIncrementAttemptsQuery(localID string) (string, []any, error) {
	return sq.Update(queueTable).
		Set("attempts", sq.Expr("attempts + 1")).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

func buildSetLastErrorQuery(localID, message string) (string, []any, error) {
	return sq.Update(queueTable).
		Set("last_error", message).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

func buildSelectPayloadRefQuery(localID string) (string, []any, error) {
	return sq.Select("payload_ref").
		From(queueTable).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

func buildAttentionCountQuery() (string, []any, error) {
	return sq.Select("COUNT(*)").
		From(queueTable).
		Where(sq.NotEq{"last_error": ""}).
		ToSql()
}
