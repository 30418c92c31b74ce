//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

func sampleTables() []*report.Table {
	return []*report.Table{
		{
			Name: "kpi_summary",
			Columns: []report.Column{
				{Name: "date_range_start", Type: report.Date},
				{Name: "total_orders", Type: report.Integer},
				{Name: "delivered_sales", Type: report.Float},
			},
			Rows: [][]any{{time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), int64(3), 1234.5}},
		},
		{
			Name: "country_sales",
			Columns: []report.Column{
				{Name: "Country", Type: report.Text},
				{Name: "delivered_sales", Type: report.Float},
			},
			Rows: [][]any{{"France", 70.0}, {"Spain, North", 30.25}},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "second call must succeed")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirFileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.Error(t, EnsureDir(path))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "country_sales.csv")
	tbl := sampleTables()[1]

	require.NoError(t, WriteCSV(path, tbl))

	assert.Equal(t, [][]string{
		{"Country", "delivered_sales"},
		{"France", "70"},
		{"Spain, North", "30.25"},
	}, readCSV(t, path))
}

func TestWriteCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "country_sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale,content\n1,2\n3,4\n5,6\n7,8\n"), 0644))

	tbl := sampleTables()[1]
	tbl.Rows = tbl.Rows[:1]
	require.NoError(t, WriteCSV(path, tbl))

	assert.Equal(t, [][]string{{"Country", "delivered_sales"}, {"France", "70"}}, readCSV(t, path))
}

func TestWriteCSVEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	tbl := &report.Table{Name: "empty", Columns: []report.Column{{Name: "Hour", Type: report.Integer}}}

	require.NoError(t, WriteCSV(path, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hour\n", string(data))
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()

	paths, err := WriteAll(dir, sampleTables())
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "kpi_summary.csv"), paths[0])
	assert.Equal(t, filepath.Join(dir, "country_sales.csv"), paths[1])

	assert.Equal(t, [][]string{
		{"date_range_start", "total_orders", "delivered_sales"},
		{"2024-01-05", "3", "1234.5"},
	}, readCSV(t, paths[0]))
}

func TestWriteAllUnknownReport(t *testing.T) {
	_, err := WriteAll(t.TempDir(), []*report.Table{{Name: "nonexistent"}})
	assert.Error(t, err)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.xlsx")

	require.NoError(t, WriteWorkbook(path, sampleTables()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"kpi_summary", "country_sales"}, f.GetSheetList())

	rows, err := f.GetRows("kpi_summary")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"date_range_start", "total_orders", "delivered_sales"},
		{"2024-01-05", "3", "1234.5"},
	}, rows)

	rows, err = f.GetRows("country_sales")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Spain, North", "30.25"}, rows[2])
}

func TestWriteWorkbookNoTables(t *testing.T) {
	assert.Error(t, WriteWorkbook(filepath.Join(t.TempDir(), "empty.xlsx"), nil))
}
