//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
)

func generate(t *testing.T, opts Options) []byte {
	t.Helper()
	g, err := NewSalesGenerator(opts)
	if err != nil {
		t.Fatalf("NewSalesGenerator failed: %v", err)
	}
	var buf bytes.Buffer
	n, err := g.Generate(context.Background(), &buf, "buffer")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if n != opts.Rows {
		t.Fatalf("Expected %d rows, got %d", opts.Rows, n)
	}
	return buf.Bytes()
}

func TestGenerateReadable(t *testing.T) {
	data := generate(t, Options{Rows: 2000, Seed: 42})

	ds, err := dataset.Read(context.Background(), bytes.NewReader(data), dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("Generated export is not readable: %v", err)
	}
	if ds.Len() != 2000 {
		t.Fatalf("Expected 2000 records, got %d", ds.Len())
	}

	stats := ds.Stats()
	if stats.DateFailures != 0 {
		t.Errorf("Expected every date to parse, %d failed", stats.DateFailures)
	}
	if stats.TimeFailures != 0 {
		t.Errorf("Expected every time to parse, %d failed", stats.TimeFailures)
	}
	if stats.Delivered+stats.Cancelled+stats.Returned != stats.Rows {
		t.Errorf("Every status should normalize to a known cohort: %+v", stats)
	}
	if stats.Delivered == 0 || stats.Cancelled == 0 || stats.Returned == 0 {
		t.Errorf("Expected all three cohorts to be present: %+v", stats)
	}
}

func TestGenerateRecordInvariants(t *testing.T) {
	data := generate(t, Options{Rows: 1000, Seed: 3})

	ds, err := dataset.Read(context.Background(), bytes.NewReader(data), dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	invoices := make(map[string]int)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, r := range ds.Records {
		invoices[r.InvoiceNo]++

		switch r.Status {
		case dataset.StatusDelivered:
			if r.Sales != r.GrossSales || r.LostOnCancels != 0 || r.LostOnReturns != 0 {
				t.Errorf("Row %d: delivered row should have sales equal to gross: %+v", i, r)
			}
			if r.DeliveredQuantity <= 0 {
				t.Errorf("Row %d: delivered row should have a quantity", i)
			}
		case dataset.StatusCancelled:
			if r.Sales != 0 || r.LostOnCancels != r.GrossSales {
				t.Errorf("Row %d: cancelled row should lose its gross: %+v", i, r)
			}
		case dataset.StatusReturned:
			if r.Sales != 0 || r.LostOnReturns != r.GrossSales {
				t.Errorf("Row %d: returned row should lose its gross: %+v", i, r)
			}
		}

		if r.Date.Before(start) || !r.Date.Before(end) {
			t.Errorf("Row %d: date %v outside the order period", i, r.Date)
		}
	}

	if len(invoices) >= ds.Len() {
		t.Error("Expected invoices with more than one line item")
	}
}

func TestGenerateReproducible(t *testing.T) {
	a := generate(t, Options{Rows: 300, Seed: 99})
	b := generate(t, Options{Rows: 300, Seed: 99})

	if !bytes.Equal(a, b) {
		t.Error("Same seed should produce identical exports")
	}
}

func TestGenerateZeroRows(t *testing.T) {
	data := generate(t, Options{Rows: 0, Seed: 1})

	ds, err := dataset.Read(context.Background(), bytes.NewReader(data), dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if ds.Len() != 0 {
		t.Errorf("Expected no records, got %d", ds.Len())
	}
}

func TestGenerateHonoursProfile(t *testing.T) {
	data := generate(t, Options{Rows: 3000, Seed: 5, Profile: "local-office"})

	ds, err := dataset.Read(context.Background(), bytes.NewReader(data), dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	var office, night int
	for _, r := range ds.Records {
		switch {
		case r.Hour >= 8 && r.Hour < 18:
			office++
		case r.Hour < 6 || r.Hour >= 22:
			night++
		}
	}
	if office <= night*5 {
		t.Errorf("Expected office hours to dominate: office=%d night=%d", office, night)
	}
}

func TestNewSalesGeneratorErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative rows", Options{Rows: -1}},
		{"negative months", Options{Rows: 1, Months: -1}},
		{"unknown profile", Options{Rows: 1, Profile: "nonexistent"}},
		{"bad timezone", Options{Rows: 1, Timezone: "Not/AZone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSalesGenerator(tt.opts); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestGenerateCancelled(t *testing.T) {
	g, err := NewSalesGenerator(Options{Rows: 5000, Seed: 1})
	if err != nil {
		t.Fatalf("NewSalesGenerator failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if _, err := g.Generate(ctx, &buf, "buffer"); err == nil {
		t.Error("Expected cancellation error, got nil")
	}
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")

	n, err := GenerateFile(context.Background(), path, Options{Rows: 50, Seed: 8})
	if err != nil {
		t.Fatalf("GenerateFile failed: %v", err)
	}
	if n != 50 {
		t.Errorf("Expected 50 rows, got %d", n)
	}

	ds, err := dataset.Load(context.Background(), path, dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Len() != 50 {
		t.Errorf("Expected 50 records, got %d", ds.Len())
	}
}

func TestProgressReporter(t *testing.T) {
	p := NewProgressReporter("test", 250, 100)
	for i := 0; i < 250; i++ {
		p.Update(1)
	}
	p.Done()

	if p.currentRow != 250 {
		t.Errorf("Expected 250 rows, got %d", p.currentRow)
	}
}
