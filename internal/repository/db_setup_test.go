package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// deleteAllTable drops the tasks table after an integration run.
func deleteAllTable(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS tasks`); err != nil {
		return fmt.Errorf("error deleting table: %w", err)
	}
	return nil
}
