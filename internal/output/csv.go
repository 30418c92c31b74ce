//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package output writes computed report tables to disk as CSV files and
// as a single XLSX workbook.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

// EnsureDir creates dir and any missing parents. It is a no-op when dir
// already exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// WriteCSV writes t to path, replacing any existing file. The first line
// is the header; there is no index column.
func WriteCSV(path string, t *report.Table) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if err := writeTable(csv.NewWriter(file), t); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	logging.Debug().
		Str("file", path).
		Int("rows", len(t.Rows)).
		Msg("Wrote report")
	return nil
}

func writeTable(w *csv.Writer, t *report.Table) error {
	if err := w.Write(t.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range t.Records() {
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteAll writes each table to its registered file name in dir and
// returns the paths written.
func WriteAll(dir string, tables []*report.Table) ([]string, error) {
	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		def, err := report.Get(t.Name)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, def.File)
		if err := WriteCSV(path, t); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
