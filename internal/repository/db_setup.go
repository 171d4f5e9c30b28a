package repository

import (
	"context"
	"database/sql"
	"fmt"
	"task-api/configs"
)

// completed disimpan sebagai flag 0/1 di kedua dialect.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    completed SMALLINT NOT NULL DEFAULT 0 CHECK (completed IN (0, 1)),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// AUTOINCREMENT keeps deleted ids from being handed out again.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    completed INTEGER NOT NULL DEFAULT 0 CHECK (completed IN (0, 1)),
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
);`

// CreateTableIfNotExists makes sure the tasks table exists. It does not alter
// an existing table.
func CreateTableIfNotExists(ctx context.Context, db *sql.DB, driver string) error {
	schema := postgresSchema
	if driver == configs.DriverSQLite {
		schema = sqliteSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating table: %w", err)
	}
	return nil
}
