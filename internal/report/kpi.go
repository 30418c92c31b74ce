package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
)

// KPI holds the headline figures of a dataset before rounding.
type KPI struct {
	DateStart       time.Time
	DateEnd         time.Time
	HasDates        bool
	TotalOrders     int
	UniqueCustomers int
	Countries       int
	GrossSales      float64
	DeliveredSales  float64
	LostOnCancels   float64
	LostOnReturns   float64
}

// LostTotal returns the revenue lost to cancellations and returns.
func (k KPI) LostTotal() float64 {
	return k.LostOnCancels + k.LostOnReturns
}

// LossPct returns lost revenue as a percentage of gross sales, or 0 when
// there are no gross sales.
func (k KPI) LossPct() float64 {
	if k.GrossSales == 0 {
		return 0
	}
	return k.LostTotal() / k.GrossSales * 100
}

// AvgOrderValue returns delivered sales per distinct order, or 0 when
// there are no orders.
func (k KPI) AvgOrderValue() float64 {
	if k.TotalOrders == 0 {
		return 0
	}
	return k.DeliveredSales / float64(k.TotalOrders)
}

// ComputeKPI summarizes ds. Counts and leakage cover every row; delivered
// sales cover the delivered cohort only.
func ComputeKPI(ds *dataset.Dataset) KPI {
	k := KPI{
		TotalOrders:     distinct(ds.Records, invoiceNo),
		UniqueCustomers: distinct(ds.Records, customerID),
		Countries:       distinct(ds.Records, country),
		GrossSales:      sum(ds.Records, grossSales),
		DeliveredSales:  sum(ds.Delivered(), sales),
		LostOnCancels:   sum(ds.Records, lostOnCancels),
		LostOnReturns:   sum(ds.Records, lostOnReturns),
	}

	for _, r := range ds.Records {
		if !r.HasDate {
			continue
		}
		if !k.HasDates || r.Date.Before(k.DateStart) {
			k.DateStart = r.Date
		}
		if !k.HasDates || r.Date.After(k.DateEnd) {
			k.DateEnd = r.Date
		}
		k.HasDates = true
	}

	return k
}

// round2 rounds to two decimal places, half to even.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(2).InexactFloat64()
}

// KPISummary builds the single-row kpi_summary table.
func KPISummary(ds *dataset.Dataset) *Table {
	k := ComputeKPI(ds)

	var start, end any
	if k.HasDates {
		start, end = k.DateStart, k.DateEnd
	}

	return &Table{
		Name: "kpi_summary",
		Columns: []Column{
			{"date_range_start", Date},
			{"date_range_end", Date},
			{"total_orders", Integer},
			{"unique_customers", Integer},
			{"countries", Integer},
			{"gross_sales_incl_lost", Float},
			{"delivered_sales", Float},
			{"revenue_lost_cancels", Float},
			{"revenue_lost_returns", Float},
			{"revenue_lost_total", Float},
			{"revenue_loss_pct_of_gross", Float},
			{"avg_order_value_delivered", Float},
		},
		Rows: [][]any{{
			start,
			end,
			int64(k.TotalOrders),
			int64(k.UniqueCustomers),
			int64(k.Countries),
			round2(k.GrossSales),
			round2(k.DeliveredSales),
			round2(k.LostOnCancels),
			round2(k.LostOnReturns),
			round2(k.LostTotal()),
			round2(k.LossPct()),
			round2(k.AvgOrderValue()),
		}},
	}
}
