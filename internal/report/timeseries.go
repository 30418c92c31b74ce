package report

import (
	"strconv"
	"time"

	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
)

// weekdayOrder is the row order of the weekday table.
var weekdayOrder = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

type salesTotal struct {
	sales float64
}

func addSales(agg *salesTotal, r dataset.Record) {
	agg.sales += r.Sales
}

// MonthlySales sums delivered sales per calendar month.
func MonthlySales(ds *dataset.Dataset) *Table {
	groups := groupBy(ds.Delivered(), func(r dataset.Record) (string, bool) {
		return r.YearMonth, r.HasDate
	}, addSales)

	t := &Table{
		Name:    "monthly_sales",
		Columns: []Column{{"YearMonth", Text}, {"delivered_sales", Float}},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, []any{g.key, g.agg.sales})
	}
	return t
}

// WeekdaySales sums delivered sales per day of the week, Monday first.
// Days without sales are omitted.
func WeekdaySales(ds *dataset.Dataset) *Table {
	groups := groupBy(ds.Delivered(), func(r dataset.Record) (string, bool) {
		return r.Weekday, r.HasDate
	}, addSales)

	byDay := make(map[string]float64, len(groups))
	for _, g := range groups {
		byDay[g.key] = g.agg.sales
	}

	t := &Table{
		Name:    "weekday_sales",
		Columns: []Column{{"Weekday", Text}, {"delivered_sales", Float}},
	}
	for _, day := range weekdayOrder {
		if v, ok := byDay[day]; ok {
			t.Rows = append(t.Rows, []any{day, v})
		}
	}
	return t
}

// HourSales sums delivered sales per hour of the day.
func HourSales(ds *dataset.Dataset) *Table {
	groups := groupBy(ds.Delivered(), func(r dataset.Record) (string, bool) {
		return strconv.Itoa(r.Hour), r.HasHour
	}, addSales)

	t := &Table{
		Name:    "hour_sales",
		Columns: []Column{{"Hour", Integer}, {"delivered_sales", Float}},
	}
	for _, g := range groups {
		hour, _ := strconv.ParseInt(g.key, 10, 64)
		t.Rows = append(t.Rows, []any{hour, g.agg.sales})
	}
	return t
}
