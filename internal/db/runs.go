//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const runsTable = "salesreport_runs"

// createRunsTableSQL creates the run history table if it doesn't exist.
const createRunsTableSQL = `
CREATE TABLE IF NOT EXISTS %s (
    run_id       UUID PRIMARY KEY,
    input        TEXT NOT NULL,
    row_count    BIGINT NOT NULL,
    table_count  INTEGER NOT NULL,
    version      TEXT NOT NULL,
    published_at TIMESTAMPTZ NOT NULL
)`

// RecordRun saves a publish run to the run history table in schema.
func RecordRun(ctx context.Context, db DB, schema string, run Run) error {
	ident := pgx.Identifier{schema, runsTable}.Sanitize()

	if _, err := db.Exec(ctx, fmt.Sprintf(createRunsTableSQL, ident)); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	_, err := db.Exec(ctx, fmt.Sprintf(`
        INSERT INTO %s (run_id, input, row_count, table_count, version, published_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, ident), run.ID, run.Input, run.Rows, run.Tables, run.Version, run.PublishedAt)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LatestRun returns the most recent run recorded in schema.
func LatestRun(ctx context.Context, db DB, schema string) (Run, error) {
	var run Run
	err := db.QueryRow(ctx, fmt.Sprintf(`
        SELECT run_id, input, row_count, table_count, version, published_at
        FROM %s ORDER BY published_at DESC LIMIT 1
    `, pgx.Identifier{schema, runsTable}.Sanitize())).
		Scan(&run.ID, &run.Input, &run.Rows, &run.Tables, &run.Version, &run.PublishedAt)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// CountRuns returns how many runs are recorded in schema.
func CountRuns(ctx context.Context, db DB, schema string) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`,
		pgx.Identifier{schema, runsTable}.Sanitize())).Scan(&n)
	return n, err
}
