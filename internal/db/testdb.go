package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns an empty in-memory database with the warehouse
// schema and all migrations applied. It is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	handle, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { handle.Close() })

	if err := Migrate(handle); err != nil {
		t.Fatalf("migrating in-memory database: %v", err)
	}

	return handle
}
