// Package datagen generates synthetic sales exports in the format the
// report pipeline reads.
package datagen

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
	"github.com/pgEdge/pgedge-salesreport/internal/datagen/profiles"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
)

// exportHeader is the header row of a generated export, spelled the way
// the upstream system writes it.
var exportHeader = []string{
	"InvoiceNo", "CustomerID", "Description", "Category", "Sub Category",
	"Country", "Date", "Time", "Status", "Sales", "Gross Sales",
	"LostOnCancles", "LostOnReturns", "DeliveredQuantity",
}

// statusSpellings are the raw status values written for each canonical
// status.
var statusSpellings = map[string][]string{
	dataset.StatusDelivered: {"Delivered", "delivered", "DELIVERED", "Delivered "},
	dataset.StatusCancelled: {"Cancelled", "cancelled", "CANCELLED"},
	dataset.StatusReturned:  {"Returned", "returned", " Returned"},
}

var subCategoryTiers = []string{"Essentials", "Premium", "Accessories", "Outlet"}

// Options configures a synthetic export.
type Options struct {
	// Rows is the number of line items to write.
	Rows int

	// Seed makes the output reproducible. Zero picks a random seed.
	Seed uint64

	// Profile names the activity profile that shapes order times.
	Profile string

	// Timezone is the profile's local timezone; order times are written
	// in it. Empty means UTC.
	Timezone string

	// Start is the first day orders may be placed on.
	Start time.Time

	// Months is the length of the order period.
	Months int
}

// DefaultOptions returns the options for a year of store-regional orders
// starting 2024-01-01.
func DefaultOptions() Options {
	return Options{
		Rows:    10000,
		Profile: profiles.Default,
		Start:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Months:  12,
	}
}

// BatchInsertConfig configures how often generation checks for
// cancellation and reports progress.
type BatchInsertConfig struct {
	// BatchSize is the number of rows between cancellation checks.
	BatchSize int

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
}

// DefaultBatchConfig returns default batch configuration.
func DefaultBatchConfig() BatchInsertConfig {
	return BatchInsertConfig{
		BatchSize:        1000,
		ProgressInterval: 100000,
	}
}

// ProgressReporter tracks and reports data generation progress.
type ProgressReporter struct {
	target           string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(target string, totalRows int64, interval int64) *ProgressReporter {
	return &ProgressReporter{
		target:           target,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
func (p *ProgressReporter) Update(rowsWritten int64) {
	oldRow := p.currentRow
	p.currentRow += rowsWritten

	// Check if we crossed a progress interval
	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Info().
			Str("target", p.target).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Generating data")
	}
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("target", p.target).
		Int64("rows", p.currentRow).
		Msg("Generation complete")
}

type product struct {
	description string
	category    string
	subCategory string
	price       decimal.Decimal
}

type customer struct {
	id      string
	country string
}

// SalesGenerator produces synthetic sales export rows. Line items are
// grouped into invoices that share a customer, timestamp and status.
type SalesGenerator struct {
	opts      Options
	batch     BatchInsertConfig
	faker     *Faker
	profile   profiles.Profile
	start     time.Time
	end       time.Time
	products  []product
	customers []customer
	nextNo    int
}

// NewSalesGenerator validates opts and builds the product and customer
// catalogs.
func NewSalesGenerator(opts Options) (*SalesGenerator, error) {
	if opts.Rows < 0 {
		return nil, fmt.Errorf("rows must not be negative: %d", opts.Rows)
	}
	if opts.Months < 0 {
		return nil, fmt.Errorf("months must not be negative: %d", opts.Months)
	}
	if opts.Months == 0 {
		opts.Months = DefaultOptions().Months
	}
	if opts.Start.IsZero() {
		opts.Start = DefaultOptions().Start
	}
	if opts.Profile == "" {
		opts.Profile = profiles.Default
	}

	profile, err := profiles.Get(opts.Profile, opts.Timezone)
	if err != nil {
		return nil, err
	}

	f := NewFaker()
	if opts.Seed != 0 {
		f = NewFakerWithSeed(opts.Seed)
	}

	start := time.Date(opts.Start.Year(), opts.Start.Month(), opts.Start.Day(), 0, 0, 0, 0, time.UTC)
	g := &SalesGenerator{
		opts:    opts,
		batch:   DefaultBatchConfig(),
		faker:   f,
		profile: profile,
		start:   start,
		end:     start.AddDate(0, opts.Months, 0),
		nextNo:  536365,
	}
	g.buildCatalog()
	return g, nil
}

func (g *SalesGenerator) buildCatalog() {
	categories := make([]string, 6)
	for i := range categories {
		categories[i] = g.faker.ProductCategory()
	}
	for i := 0; i < 60; i++ {
		cat := Choose(g.faker, categories)
		g.products = append(g.products, product{
			description: g.faker.ProductName(),
			category:    cat,
			subCategory: cat + " " + Choose(g.faker, subCategoryTiers),
			price:       g.faker.UnitPrice(1, 250),
		})
	}

	countries := make([]string, 8)
	for i := range countries {
		countries[i] = g.faker.Country()
	}
	for i := 0; i < 400; i++ {
		g.customers = append(g.customers, customer{
			id:      g.faker.CustomerID(),
			country: Choose(g.faker, countries),
		})
	}
}

// orderTime picks an order timestamp, weighted by the activity profile.
func (g *SalesGenerator) orderTime() time.Time {
	peak := g.profile.Peak()
	var t time.Time
	for range 1000 {
		t = g.faker.DateRange(g.start, g.end)
		if g.faker.Float64(0, peak) < g.profile.Activity(t) {
			break
		}
	}
	return t
}

// invoice returns the line items of the next invoice in export column order.
func (g *SalesGenerator) invoice() [][]string {
	no := strconv.Itoa(g.nextNo)
	g.nextNo++

	cust := Choose(g.faker, g.customers)
	customerID := g.faker.NullableString(cust.id, 0.02)
	at := g.orderTime().In(g.profile.Location())
	status := ChooseWeighted(g.faker,
		[]string{dataset.StatusDelivered, dataset.StatusCancelled, dataset.StatusReturned},
		[]int{85, 10, 5})

	lines := make([][]string, g.faker.Int(1, 5))
	for i := range lines {
		p := Choose(g.faker, g.products)
		qty := g.faker.Int(1, 12)
		gross := p.price.Mul(decimal.NewFromInt(int64(qty))).Round(2)

		sales, lostCancel, lostReturn, delivered := decimal.Zero, decimal.Zero, decimal.Zero, 0
		switch status {
		case dataset.StatusDelivered:
			sales, delivered = gross, qty
		case dataset.StatusCancelled:
			lostCancel = gross
		case dataset.StatusReturned:
			lostReturn = gross
		}

		lines[i] = []string{
			no,
			customerID,
			p.description,
			p.category,
			p.subCategory,
			cust.country,
			at.Format("02-01-2006"),
			at.Format(dataset.TimeLayout),
			Choose(g.faker, statusSpellings[status]),
			sales.StringFixed(2),
			gross.StringFixed(2),
			lostCancel.StringFixed(2),
			lostReturn.StringFixed(2),
			strconv.Itoa(delivered),
		}
	}
	return lines
}

// Generate writes a header and opts.Rows line items to w as CSV. It
// returns the number of line items written.
func (g *SalesGenerator) Generate(ctx context.Context, w io.Writer, target string) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	progress := NewProgressReporter(target, int64(g.opts.Rows), g.batch.ProgressInterval)
	written := 0
	for written < g.opts.Rows {
		for _, line := range g.invoice() {
			if written == g.opts.Rows {
				break
			}
			if err := cw.Write(line); err != nil {
				return written, fmt.Errorf("failed to write row %d: %w", written+1, err)
			}
			written++
			progress.Update(1)

			if written%g.batch.BatchSize == 0 {
				if err := ctx.Err(); err != nil {
					return written, err
				}
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("failed to flush export: %w", err)
	}
	progress.Done()
	return written, nil
}

// GenerateFile writes a synthetic export to path, replacing any existing
// file.
func GenerateFile(ctx context.Context, path string, opts Options) (int, error) {
	g, err := NewSalesGenerator(opts)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export: %w", err)
	}

	bw := bufio.NewWriter(f)
	n, err := g.Generate(ctx, bw, path)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("failed to generate %s: %w", path, err)
	}
	return n, nil
}
