//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report computes the pre-aggregated tables derived from a sales
// dataset: the KPI summary, time series, product and category rankings,
// geography and customer summaries, and revenue leakage.
package report

import (
	"fmt"
	"strconv"
	"time"
)

// Type is the type of a table column.
type Type int

const (
	// Text columns hold string values.
	Text Type = iota
	// Integer columns hold int64 values.
	Integer
	// Float columns hold float64 values.
	Float
	// Date columns hold time.Time values formatted as YYYY-MM-DD.
	Date
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Date:
		return "date"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Column describes one column of a table.
type Column struct {
	Name string
	Type Type
}

// Table is a computed report. A nil cell is a missing value.
type Table struct {
	// Name identifies the report, e.g. "monthly_sales".
	Name    string
	Columns []Column
	Rows    [][]any
}

// Header returns the column names.
func (t *Table) Header() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Records returns every row formatted as strings.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = FormatValue(v)
		}
		out[i] = rec
	}
	return out
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// FormatValue renders a cell value the way it is written to CSV.
// Floats use the shortest representation that round-trips.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}
