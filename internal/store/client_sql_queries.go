// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package store

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/skids-health/skids-sync/models"
)

const (
	upsertCachedRecord = `
		INSERT INTO cached_records (
			entity,
			record_id,
			payload,
			cached_at,
			synced_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entity, record_id) DO UPDATE SET
			payload   = excluded.payload,
			cached_at = excluded.cached_at,
			synced_at = excluded.synced_at;`

	getCachedRecord = `
		SELECT
			entity,
			record_id,
			payload,
			cached_at,
			synced_at
		FROM cached_records
		WHERE entity = $1 AND record_id = $2;`

	getAllCachedRecords = `
		SELECT
			entity,
			record_id,
			payload,
			cached_at,
			synced_at
		FROM cached_records
		WHERE entity = $1
		ORDER BY record_id;`

	getStaleCachedRecords = `
		SELECT
			entity,
			record_id,
			payload,
			cached_at,
			synced_at
		FROM cached_records
		WHERE synced_at IS NULL OR synced_at < $1;`

	markCachedRecordSynced = `
		UPDATE cached_records SET
			synced_at = $1
		WHERE entity = $2 AND record_id = $3;`

	deleteCachedRecord = `
		DELETE FROM cached_records
		WHERE entity = $1 AND record_id = $2;`

	clearCachedRecords = `DELETE FROM cached_records;`

	countCachedRecords = `SELECT COUNT(*) FROM cached_records;`

	enqueueSyncItem = `
		INSERT INTO sync_queue (
			entity,
			entity_id,
			action,
			data,
			created_at,
			retry_count
		) VALUES ($1, $2, $3, $4, $5, 0);`

	listPendingSyncItems = `
		SELECT
			id,
			entity,
			entity_id,
			action,
			data,
			created_at,
			retry_count
		FROM sync_queue
		ORDER BY id;`

	countPendingSyncItems = `SELECT COUNT(*) FROM sync_queue;`

	removeSyncItem = `DELETE FROM sync_queue WHERE id = $1;`

	incrementSyncItemRetry = `
		UPDATE sync_queue SET
			retry_count = retry_count + 1
		WHERE id = $1;`

	clearSyncQueue = `DELETE FROM sync_queue;`

	getSyncMetadataValue = `SELECT value FROM sync_metadata WHERE key = $1;`

	setSyncMetadataValue = `
		INSERT INTO sync_metadata (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	clearSyncMetadata = `DELETE FROM sync_metadata;`
)

// buildRecordsByFieldQuery assembles the indexed-lookup query for records
// whose JSON payload has field equal to value. The field name is interpolated
// into a json_extract path, so it must come from a trusted caller, never from
// user input.
func buildRecordsByFieldQuery(entity models.Entity, field string, value any) (string, []any, error) {
	return squirrel.Select("entity", "record_id", "payload", "cached_at", "synced_at").
		From("cached_records").
		Where(squirrel.Eq{"entity": string(entity)}).
		Where(squirrel.Eq{fmt.Sprintf("json_extract(payload, '$.%s')", field): value}).
		OrderBy("record_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
