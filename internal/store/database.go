package store

import (
	"database/sql"

	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/migrations"
)

// DB wraps a *sql.DB together with the error classifier appropriate for the
// underlying driver. The same type backs both the server's PostgreSQL
// connection and the agent's SQLite cache file.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// MigrateServer applies the embedded PostgreSQL schema migrations.
func (db *DB) MigrateServer() error {
	return migrations.MigrateServer(db.DB)
}

// MigrateClient applies the embedded SQLite cache schema migrations.
func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}
