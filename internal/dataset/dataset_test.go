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
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "InvoiceNo,CustomerID,Description,Category,Sub Category,Country,Date,Time,Status,Sales,Gross Sales,LostOnCancles,LostOnReturns,DeliveredQuantity\n"

func readString(t *testing.T, content string) *Dataset {
	t.Helper()
	ds, err := Read(context.Background(), strings.NewReader(content), DefaultOptions())
	require.NoError(t, err)
	return ds
}

func TestReadNormalizesColumns(t *testing.T) {
	content := " InvoiceNo ,CustomerID,Description,Category,Sub-Category,Country,Date,Time,Status,Sales,Gross Sales,LostOnCancles,LostOnReturns,DeliveredQuantity\n" +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,10,10,0,0,1\n"

	ds := readString(t, content)

	assert.Equal(t, "InvoiceNo", ds.Columns[0])
	assert.Equal(t, "Sub_Category", ds.Columns[4])
	assert.Equal(t, "Gross_Sales", ds.Columns[10])
	require.Len(t, ds.Records, 1)
	assert.Equal(t, "Kitchen", ds.Records[0].SubCategory)
	assert.Equal(t, 10.0, ds.Records[0].GrossSales)
}

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sales", "Sales"},
		{"  Gross Sales ", "Gross_Sales"},
		{"Sub-Category", "Sub_Category"},
		{"Sub - Category", "Sub___Category"},
		{"\tDate", "Date"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeColumn(tt.in), "NormalizeColumn(%q)", tt.in)
	}
}

func TestReadAcceptsLegacyCategorySpelling(t *testing.T) {
	content := strings.Replace(header, "Category", "Categoty", 1) +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,10,10,0,0,1\n"

	ds := readString(t, content)

	require.Len(t, ds.Records, 1)
	assert.Equal(t, "Home", ds.Records[0].Category)
}

func TestReadMissingColumn(t *testing.T) {
	content := "InvoiceNo,CustomerID,Description\n1,2,3\n"

	_, err := Read(context.Background(), strings.NewReader(content), DefaultOptions())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "Sub_Category")
	assert.Contains(t, err.Error(), "DeliveredQuantity")
}

func TestReadEmptyInput(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader(""), DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestReadNonNumericIsStructuralError(t *testing.T) {
	content := header +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,10,10,0,0,1\n" +
		"1002,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,ten,10,0,0,1\n"

	_, err := Read(context.Background(), strings.NewReader(content), DefaultOptions())

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Row)
	assert.Equal(t, ColSales, perr.Column)
	assert.Equal(t, "ten", perr.Value)
}

func TestReadTooManyFields(t *testing.T) {
	content := header +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,10,10,0,0,1,extra\n"

	_, err := Read(context.Background(), strings.NewReader(content), DefaultOptions())
	assert.Error(t, err)
}

func TestReadShortRowFillsBlanks(t *testing.T) {
	content := header +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,10\n"

	ds := readString(t, content)

	require.Len(t, ds.Records, 1)
	rec := ds.Records[0]
	assert.Equal(t, 10.0, rec.Sales)
	assert.Equal(t, 0.0, rec.GrossSales)
	assert.Equal(t, 0.0, rec.DeliveredQuantity)
}

func TestReadNullMarkers(t *testing.T) {
	content := header +
		"1001,,Mug,NA,Kitchen,NULL,05-01-2024,13:45:00,Delivered,,10,nan,0,1\n"

	ds := readString(t, content)

	rec := ds.Records[0]
	assert.Empty(t, rec.CustomerID)
	assert.Empty(t, rec.Category)
	assert.Empty(t, rec.Country)
	assert.Equal(t, 0.0, rec.Sales)
	assert.Equal(t, 0.0, rec.LostOnCancels)
}

func TestReadDelimiter(t *testing.T) {
	content := strings.ReplaceAll(header, ",", ";") +
		"1001;C1;Mug;Home;Kitchen;France;05-01-2024;13:45:00;Delivered;10.5;10.5;0;0;1\n"

	ds, err := Read(context.Background(), strings.NewReader(content), Options{Delimiter: ';'})

	require.NoError(t, err)
	require.Len(t, ds.Records, 1)
	assert.Equal(t, 10.5, ds.Records[0].Sales)
}

func TestReadByteOrderMark(t *testing.T) {
	content := "\ufeff" + header +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,10,10,0,0,1\n"

	ds := readString(t, content)
	assert.Equal(t, "1001", ds.Records[0].InvoiceNo)
}

func TestReadKeepsRowsWithBadDates(t *testing.T) {
	content := header +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,10,10,0,0,1\n" +
		"1002,C2,Mug,Home,Kitchen,France,31-02-2024,13:45:00,Delivered,10,10,0,0,1\n" +
		"1003,C3,Mug,Home,Kitchen,France,not a date,25:00:00,Delivered,10,10,0,0,1\n" +
		"1004,C4,Mug,Home,Kitchen,France,,,Delivered,10,10,0,0,1\n"

	ds := readString(t, content)

	require.Equal(t, 4, ds.Len())
	assert.True(t, ds.Records[0].HasDate)
	assert.False(t, ds.Records[1].HasDate)
	assert.True(t, ds.Records[1].HasHour)
	assert.False(t, ds.Records[2].HasDate)
	assert.False(t, ds.Records[2].HasHour)
	assert.False(t, ds.Records[3].HasDate)

	stats := ds.Stats()
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 3, stats.DateFailures)
	assert.Equal(t, 2, stats.TimeFailures)
}

func TestDerive(t *testing.T) {
	f := Derive("05-01-2024", "13:45:10")

	require.True(t, f.HasDate)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), f.Date)
	assert.Equal(t, 2024, f.Year)
	assert.Equal(t, 1, f.Month)
	assert.Equal(t, "2024-01", f.YearMonth)
	assert.Equal(t, "Friday", f.Weekday)
	require.True(t, f.HasDateTime)
	assert.Equal(t, time.Date(2024, 1, 5, 13, 45, 10, 0, time.UTC), f.DateTime)
	require.True(t, f.HasHour)
	assert.Equal(t, 13, f.Hour)
}

func TestDeriveSingleDigitDayAndMonth(t *testing.T) {
	f := Derive("5-3-2023", "07:00:00")

	require.True(t, f.HasDate)
	assert.Equal(t, "2023-03", f.YearMonth)
	assert.Equal(t, 7, f.Hour)
}

func TestDeriveHourWithoutDate(t *testing.T) {
	f := Derive("2024/01/05", "09:30:00")

	assert.False(t, f.HasDate)
	assert.False(t, f.HasDateTime)
	assert.Empty(t, f.YearMonth)
	assert.Empty(t, f.Weekday)
	assert.True(t, f.HasHour)
	assert.Equal(t, 9, f.Hour)
}

func TestDeriveDateWithoutTime(t *testing.T) {
	f := Derive("05-01-2024", "lunch")

	assert.True(t, f.HasDate)
	assert.False(t, f.HasDateTime)
	assert.False(t, f.HasHour)
}

func TestDeriveDateTimeWithoutSeconds(t *testing.T) {
	f := Derive("05-01-2024", "13:45")

	assert.True(t, f.HasDateTime)
	assert.False(t, f.HasHour)
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Delivered", "Delivered"},
		{"delivered ", "Delivered"},
		{"DELIVERED ", "Delivered"},
		{"  cancelled", "Cancelled"},
		{"rETURNED", "Returned"},
		{"partially returned", "Partially Returned"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStatus(tt.in), "NormalizeStatus(%q)", tt.in)
	}
}

func TestCohorts(t *testing.T) {
	content := header +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,delivered ,10,10,0,0,1\n" +
		"1001,C1,Cup,Home,Kitchen,France,05-01-2024,13:45:00,DELIVERED,5,5,0,0,2\n" +
		"1002,C2,Mug,Home,Kitchen,Spain,06-01-2024,10:00:00,cancelled,0,10,10,0,0\n" +
		"1003,C3,Mug,Home,Kitchen,Spain,07-01-2024,11:00:00,Returned,0,10,0,10,0\n" +
		"1004,C3,Mug,Home,Kitchen,Spain,07-01-2024,11:00:00,Pending,0,10,0,0,0\n"

	ds := readString(t, content)

	delivered := ds.Delivered()
	require.Len(t, delivered, 2)
	assert.Equal(t, "Mug", delivered[0].Description)
	assert.Equal(t, "Cup", delivered[1].Description)
	assert.Len(t, ds.Cancelled(), 1)
	assert.Len(t, ds.Returned(), 1)
	assert.Len(t, ds.WithStatus("Pending"), 1)

	// Cohorts are views; the full set is unchanged
	assert.Equal(t, 5, ds.Len())

	stats := ds.Stats()
	assert.Equal(t, 2, stats.Delivered)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 1, stats.Returned)
	assert.Equal(t, 4, stats.DistinctStatus)
}

func TestCohortIsACopy(t *testing.T) {
	content := header +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,10,10,0,0,1\n"

	ds := readString(t, content)
	delivered := ds.Delivered()
	delivered[0].Sales = 999

	assert.Equal(t, 10.0, ds.Records[0].Sales)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	content := header +
		"1001,C1,Mug,Home,Kitchen,France,05-01-2024,13:45:00,Delivered,10,10,0,0,1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ds, err := Load(context.Background(), path, DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, path, ds.Source)
	assert.Equal(t, 1, ds.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions())

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
