package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path and applies the pragmas the
// service relies on. WAL keeps readers (inventory and request lists)
// from blocking the ledger's write transactions, and the busy timeout
// covers the short lock contention those transactions cause.
func Open(path string) (*sql.DB, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := handle.Exec(p); err != nil {
			handle.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	// SQLite allows one writer at a time; funneling every statement
	// through a single connection turns lock contention into queueing
	// and keeps in-memory databases on one shared handle.
	handle.SetMaxOpenConns(1)

	return handle, nil
}
