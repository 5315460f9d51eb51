package config

import (
	"database/sql"
	"time"
)

// OptimizeDatabaseConnection sets connection pool limits. The service is a
// single process in front of one SQLite file, so the pool stays small.
func OptimizeDatabaseConnection(db *sql.DB) {
	db.SetMaxOpenConns(4)                  // WAL allows one writer, a few readers
	db.SetMaxIdleConns(2)                  // Keep some connections alive
	db.SetConnMaxLifetime(5 * time.Minute) // Recycle connections periodically
	db.SetConnMaxIdleTime(1 * time.Minute) // Close idle connections after 1 minute
}

// ApplyPragmaOptimizations applies SQLite-specific pragmas for a small
// read-mostly inventory workload.
func ApplyPragmaOptimizations(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous = NORMAL", // Balance between safety and performance
		"PRAGMA busy_timeout = 5000",  // Wait on the writer instead of erroring
		"PRAGMA cache_size = -8000",   // 8MB page cache; whole collections fit
		"PRAGMA temp_store = MEMORY",  // Store temporary tables in memory
		"PRAGMA optimize",             // Enable query optimizer
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}

	return nil
}
