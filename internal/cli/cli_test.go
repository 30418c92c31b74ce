//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestReportsCommand(t *testing.T) {
	out, err := execute(t, "reports", "--log-level", "error")
	if err != nil {
		t.Fatalf("reports failed: %v", err)
	}
	for _, def := range report.All() {
		if !strings.Contains(out, def.File) {
			t.Errorf("Expected %s in output, got %q", def.File, out)
		}
	}
}

func TestProfilesCommand(t *testing.T) {
	out, err := execute(t, "profiles", "--log-level", "error")
	if err != nil {
		t.Fatalf("profiles failed: %v", err)
	}
	if !strings.Contains(out, "store-regional") {
		t.Errorf("Expected store-regional in output, got %q", out)
	}
}

func TestGenerateThenRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	outDir := filepath.Join(dir, "pbix_outputs")
	workbook := filepath.Join(dir, "reports.xlsx")

	if _, err := execute(t, "generate", "--log-level", "error",
		"--rows", "500", "--seed", "7", "--output", input); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := execute(t, "run", "--log-level", "error",
		"--input", input, "--output", outDir, "--workbook", workbook); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, def := range report.All() {
		if _, err := os.Stat(filepath.Join(outDir, def.File)); err != nil {
			t.Errorf("Expected %s to be written: %v", def.File, err)
		}
	}
	if _, err := os.Stat(workbook); err != nil {
		t.Errorf("Expected workbook to be written: %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "run", "--log-level", "error",
		"--input", filepath.Join(dir, "missing.csv"),
		"--output", filepath.Join(dir, "out"),
		"--workbook", filepath.Join(dir, "unused.xlsx"))
	if err == nil {
		t.Error("Expected error for missing input file")
	}
}
