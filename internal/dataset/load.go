//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
)

// Column labels after normalization.
const (
	ColInvoiceNo         = "InvoiceNo"
	ColCustomerID        = "CustomerID"
	ColDescription       = "Description"
	ColCategory          = "Category"
	ColSubCategory       = "Sub_Category"
	ColCountry           = "Country"
	ColDate              = "Date"
	ColTime              = "Time"
	ColStatus            = "Status"
	ColSales             = "Sales"
	ColGrossSales        = "Gross_Sales"
	ColLostOnCancels     = "LostOnCancles"
	ColLostOnReturns     = "LostOnReturns"
	ColDeliveredQuantity = "DeliveredQuantity"

	// colCategoryAlt is the spelling used by older exports.
	colCategoryAlt = "Categoty"
)

// RequiredColumns lists the columns every export must carry.
var RequiredColumns = []string{
	ColInvoiceNo, ColCustomerID, ColDescription, ColCategory, ColSubCategory,
	ColCountry, ColDate, ColTime, ColStatus, ColSales, ColGrossSales,
	ColLostOnCancels, ColLostOnReturns, ColDeliveredQuantity,
}

// nullMarkers are cell values read as missing, in addition to the empty string.
var nullMarkers = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// progressInterval is how often (in rows) Read checks for cancellation and
// logs progress.
const progressInterval = 100000

// Options configures how an export is read.
type Options struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
}

// DefaultOptions returns the options for a comma separated export.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// Load opens the export at path and reads it with Read.
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	logging.Debug().Str("path", path).Msg("Reading sales export")

	ds, err := Read(ctx, bufio.NewReader(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// Read parses a delimited export from r. Column labels are normalized
// before lookup. Unparseable dates and times leave the derived features
// unset; a non-numeric value in a numeric column is an error.
func Read(ctx context.Context, r io.Reader, opts Options) (*Dataset, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = NormalizeColumn(h)
	}

	idx, err := indexColumns(columns)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Columns: columns}
	row := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row+1, err)
		}
		row++

		if len(fields) > len(columns) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", row, len(columns), len(fields))
		}

		rec, err := idx.record(row, fields)
		if err != nil {
			return nil, err
		}
		rec.Features = Derive(rec.RawDate, rec.Time)
		ds.Records = append(ds.Records, rec)

		if row%progressInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			logging.Debug().Int("rows", row).Msg("Reading sales export")
		}
	}

	return ds, nil
}

// NormalizeColumn trims a header label and replaces spaces and hyphens
// with underscores.
func NormalizeColumn(label string) string {
	label = strings.TrimSpace(label)
	label = strings.ReplaceAll(label, " ", "_")
	return strings.ReplaceAll(label, "-", "_")
}

// columnIndex maps each required column to its position in a row.
type columnIndex map[string]int

func indexColumns(columns []string) (columnIndex, error) {
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, seen := pos[c]; !seen {
			pos[c] = i
		}
	}
	if _, ok := pos[ColCategory]; !ok {
		if i, alt := pos[colCategoryAlt]; alt {
			pos[ColCategory] = i
		}
	}

	idx := make(columnIndex, len(RequiredColumns))
	var missing []string
	for _, c := range RequiredColumns {
		i, ok := pos[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		idx[c] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// text returns the cell for column, or "" when the cell is absent or a null marker.
func (idx columnIndex) text(fields []string, column string) string {
	i := idx[column]
	if i >= len(fields) {
		return ""
	}
	v := fields[i]
	if _, null := nullMarkers[v]; null {
		return ""
	}
	return v
}

func (idx columnIndex) number(row int, fields []string, column string) (float64, error) {
	v := strings.TrimSpace(idx.text(fields, column))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ParseError{Row: row, Column: column, Value: v, Err: err}
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	return f, nil
}

func (idx columnIndex) record(row int, fields []string) (Record, error) {
	rec := Record{
		InvoiceNo:   idx.text(fields, ColInvoiceNo),
		CustomerID:  idx.text(fields, ColCustomerID),
		Description: idx.text(fields, ColDescription),
		Category:    idx.text(fields, ColCategory),
		SubCategory: idx.text(fields, ColSubCategory),
		Country:     idx.text(fields, ColCountry),
		RawDate:     idx.text(fields, ColDate),
		Time:        idx.text(fields, ColTime),
		Status:      NormalizeStatus(idx.text(fields, ColStatus)),
	}

	numbers := []struct {
		column string
		dst    *float64
	}{
		{ColSales, &rec.Sales},
		{ColGrossSales, &rec.GrossSales},
		{ColLostOnCancels, &rec.LostOnCancels},
		{ColLostOnReturns, &rec.LostOnReturns},
		{ColDeliveredQuantity, &rec.DeliveredQuantity},
	}
	for _, n := range numbers {
		v, err := idx.number(row, fields, n.column)
		if err != nil {
			return Record{}, err
		}
		*n.dst = v
	}

	return rec, nil
}
