// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package store

import (
	"github.com/Masterminds/squirrel"
	"github.com/skids-health/skids-sync/models"
)

const (
	createUser = `
		INSERT INTO users (
			login,
			name,
			clinic_code,
			password
		) VALUES ($1, $2, $3, $4)
		RETURNING user_id, login, name, clinic_code, password, created_at;`

	findUserByLogin = `
		SELECT
			user_id,
			login,
			name,
			clinic_code,
			password,
			created_at
		FROM users
		WHERE login = $1;`

	upsertEntityRecord = `
		INSERT INTO entity_records (
			user_id,
			entity,
			record_id,
			payload,
			updated_at,
			deleted
		) VALUES ($1, $2, $3, $4, now(), false)
		ON CONFLICT (user_id, entity, record_id) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = now(),
			deleted    = false
		RETURNING record_id, payload, updated_at;`

	getEntityRecord = `
		SELECT
			record_id,
			payload,
			updated_at
		FROM entity_records
		WHERE user_id = $1 AND entity = $2 AND record_id = $3 AND deleted = false;`

	markEntityRecordDeleted = `
		UPDATE entity_records SET
			deleted    = true,
			updated_at = now()
		WHERE user_id = $1 AND entity = $2 AND record_id = $3;`
)

// buildListRecordsQuery assembles the per-user listing of live records for
// one entity, newest first.
func buildListRecordsQuery(userID int64, entity models.Entity) (string, []any, error) {
	return squirrel.Select("record_id", "payload", "updated_at").
		From("entity_records").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"entity": string(entity)}).
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("updated_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
