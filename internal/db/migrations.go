package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: index stock logs by item and location for the
	// per-item history view.
	`CREATE INDEX IF NOT EXISTS idx_stock_logs_item
	     ON stock_logs(item_name, location)`,
	// Migration 2: index requests by status for the pending/approved
	// work queues.
	`CREATE INDEX IF NOT EXISTS idx_requests_status
	     ON requests(status)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
