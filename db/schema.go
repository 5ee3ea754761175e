// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects with the driver registered for dbType and verifies the connection
func Open(dbType, url string) (*sql.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// One writer at a time; also keeps foreign_keys on the only connection
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

func driverName(dbType string) (string, error) {
	switch dbType {
	case "sqlite", "":
		return "sqlite", nil
	case "postgres":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Portable across SQLite and PostgreSQL
const schema = `
-- Cohorts
CREATE TABLE IF NOT EXISTS cohort (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'allocated')),
    share_slug TEXT NOT NULL UNIQUE,
    max_preferences INTEGER NOT NULL CHECK (max_preferences > 0),
    latest_run_id TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Resources
CREATE TABLE IF NOT EXISTS resource (
    id TEXT PRIMARY KEY,
    cohort_id TEXT NOT NULL REFERENCES cohort(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    capacity INTEGER NOT NULL CHECK (capacity > 0),
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_resource_cohort_id ON resource(cohort_id);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    cohort_id TEXT NOT NULL REFERENCES cohort(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    token TEXT NOT NULL UNIQUE,
    position INTEGER NOT NULL,
    joined_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (cohort_id, name)
);

CREATE INDEX IF NOT EXISTS idx_participant_cohort_id ON participant(cohort_id);

-- Preferences (one active list per participant)
CREATE TABLE IF NOT EXISTS preference (
    participant_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    resource_id TEXT NOT NULL REFERENCES resource(id) ON DELETE CASCADE,
    pref_rank INTEGER NOT NULL CHECK (pref_rank > 0),
    PRIMARY KEY (participant_id, pref_rank),
    UNIQUE (participant_id, resource_id)
);

-- Allocation runs
CREATE TABLE IF NOT EXISTS allocation_run (
    id TEXT PRIMARY KEY,
    cohort_id TEXT NOT NULL REFERENCES cohort(id) ON DELETE CASCADE,
    seed BIGINT NOT NULL,
    stats TEXT NOT NULL,
    computed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_allocation_run_cohort_id ON allocation_run(cohort_id);

-- Group membership of the latest run
CREATE TABLE IF NOT EXISTS group_member (
    cohort_id TEXT NOT NULL REFERENCES cohort(id) ON DELETE CASCADE,
    run_id TEXT NOT NULL REFERENCES allocation_run(id) ON DELETE CASCADE,
    resource_id TEXT NOT NULL REFERENCES resource(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    pref_rank INTEGER NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (cohort_id, participant_id)
);

CREATE INDEX IF NOT EXISTS idx_group_member_resource ON group_member(resource_id);
`
