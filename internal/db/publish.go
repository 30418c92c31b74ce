//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

// DefaultSchema is the schema reports are published into.
const DefaultSchema = "salesreport"

// Run describes one publish of a set of reports.
type Run struct {
	ID          uuid.UUID
	Input       string
	Rows        int
	Tables      int
	Version     string
	PublishedAt time.Time
}

// columnType maps a report column type to a PostgreSQL type.
func columnType(t report.Type) string {
	switch t {
	case report.Integer:
		return "BIGINT"
	case report.Float:
		return "DOUBLE PRECISION"
	case report.Date:
		return "DATE"
	default:
		return "TEXT"
	}
}

// createTableSQL returns the DDL for a report table in schema.
func createTableSQL(schema string, t *report.Table) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("    %s %s", pgx.Identifier{c.Name}.Sanitize(), columnType(c.Type))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)",
		pgx.Identifier{schema, t.Name}.Sanitize(),
		strings.Join(cols, ",\n"))
}

// Publish replaces the report tables in schema with tables and records the
// run. Everything happens in one transaction; on error nothing changes.
func Publish(ctx context.Context, pool *pgxpool.Pool, schema string, tables []*report.Table, run Run) (Run, error) {
	if schema == "" {
		schema = DefaultSchema
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.PublishedAt.IsZero() {
		run.PublishedAt = time.Now().UTC()
	}
	run.Tables = len(tables)

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}

		for _, t := range tables {
			n, err := publishTable(ctx, tx, schema, t)
			if err != nil {
				return err
			}
			logging.Debug().
				Str("table", t.Name).
				Int64("rows", n).
				Msg("Published report")
		}

		return RecordRun(ctx, tx, schema, run)
	})
	if err != nil {
		return Run{}, err
	}

	logging.Info().
		Str("schema", schema).
		Str("run_id", run.ID.String()).
		Int("tables", run.Tables).
		Msg("Published reports")

	return run, nil
}

// publishTable recreates one report table and bulk-loads its rows.
func publishTable(ctx context.Context, db DB, schema string, t *report.Table) (int64, error) {
	ident := pgx.Identifier{schema, t.Name}

	if _, err := db.Exec(ctx, "DROP TABLE IF EXISTS "+ident.Sanitize()); err != nil {
		return 0, fmt.Errorf("failed to drop table %s: %w", t.Name, err)
	}
	if _, err := db.Exec(ctx, createTableSQL(schema, t)); err != nil {
		return 0, fmt.Errorf("failed to create table %s: %w", t.Name, err)
	}

	n, err := db.CopyFrom(ctx, ident, t.Header(), pgx.CopyFromRows(t.Rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy rows into %s: %w", t.Name, err)
	}
	return n, nil
}
