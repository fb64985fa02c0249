package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates the SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaSensorReadings = `
CREATE TABLE IF NOT EXISTS sensor_readings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TIMESTAMP NOT NULL,
    ir_detection INTEGER NOT NULL,
    vibration_raw INTEGER NOT NULL,
    vibration_fault BOOLEAN NOT NULL DEFAULT 0,
    distance_adjusted REAL NOT NULL,
    distance_fault BOOLEAN NOT NULL DEFAULT 0,
    acceleration_x REAL NOT NULL,
    acceleration_y REAL NOT NULL,
    acceleration_z REAL NOT NULL,
    ir_fault BOOLEAN NOT NULL DEFAULT 0,
    acceleration_fault BOOLEAN NOT NULL DEFAULT 0,
    fault_detected BOOLEAN NOT NULL DEFAULT 0,
    raw_sensor_data TEXT NOT NULL
);
`

const schemaSensorReadingsIdx = `
CREATE INDEX IF NOT EXISTS idx_sensor_readings_timestamp ON sensor_readings(timestamp);
`

const schemaFaultLogs = `
CREATE TABLE IF NOT EXISTS fault_logs (
    id TEXT PRIMARY KEY,
    timestamp TIMESTAMP NOT NULL,
    fault_type TEXT NOT NULL,
    severity TEXT NOT NULL,
    description TEXT NOT NULL,
    sensor_reading_id INTEGER NOT NULL,
    resolved BOOLEAN NOT NULL DEFAULT 0,
    resolved_at TIMESTAMP
);
`

const schemaFaultLogsIdx = `
CREATE INDEX IF NOT EXISTS idx_fault_logs_timestamp ON fault_logs(timestamp);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaSensorReadings,
		schemaSensorReadingsIdx,
		schemaFaultLogs,
		schemaFaultLogsIdx,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
