package db

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS tournaments (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		owner      TEXT NOT NULL,
		teams      JSONB NOT NULL,
		format     TEXT NOT NULL,
		legs       INTEGER NOT NULL DEFAULT 1,
		status     TEXT NOT NULL,
		winner     TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT tournaments_owner_name_key UNIQUE (owner, name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tournaments_owner_created ON tournaments (owner, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id            TEXT PRIMARY KEY,
		tournament_id TEXT NOT NULL REFERENCES tournaments (id) ON DELETE CASCADE,
		round_label   TEXT NOT NULL,
		leg           INTEGER NOT NULL,
		home_team     TEXT NOT NULL,
		away_team     TEXT NOT NULL,
		home_source   TEXT,
		away_source   TEXT,
		match_day     INTEGER NOT NULL,
		home_score    INTEGER CHECK (home_score >= 0),
		away_score    INTEGER CHECK (away_score >= 0),
		completed_at  TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_tournament_day ON matches (tournament_id, match_day)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS tournaments (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		owner      TEXT NOT NULL,
		teams      TEXT NOT NULL,
		format     TEXT NOT NULL,
		legs       INTEGER NOT NULL DEFAULT 1,
		status     TEXT NOT NULL,
		winner     TEXT,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (owner, name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tournaments_owner_created ON tournaments (owner, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id            TEXT PRIMARY KEY,
		tournament_id TEXT NOT NULL REFERENCES tournaments (id) ON DELETE CASCADE,
		round_label   TEXT NOT NULL,
		leg           INTEGER NOT NULL,
		home_team     TEXT NOT NULL,
		away_team     TEXT NOT NULL,
		home_source   TEXT,
		away_source   TEXT,
		match_day     INTEGER NOT NULL,
		home_score    INTEGER CHECK (home_score >= 0),
		away_score    INTEGER CHECK (away_score >= 0),
		completed_at  TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_tournament_day ON matches (tournament_id, match_day)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var statements []string
	switch driver {
	case DriverPostgres:
		statements = postgresSchema
	case DriverSQLite:
		statements = sqliteSchema
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i+1, err)
		}
	}
	return nil
}
