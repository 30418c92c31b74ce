package report

import (
	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
)

// CountrySales ranks countries by delivered sales.
func CountrySales(ds *dataset.Dataset) *Table {
	groups := groupBy(ds.Delivered(), textKey(country), addSales)
	sortDesc(groups, func(agg *salesTotal) float64 { return agg.sales })

	t := &Table{
		Name:    "country_sales",
		Columns: []Column{{dataset.ColCountry, Text}, {"delivered_sales", Float}},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, []any{g.key, g.agg.sales})
	}
	return t
}

type customerTotal struct {
	sales    float64
	quantity float64
	invoices map[string]struct{}
}

// CustomerSummary gives delivered sales, distinct orders and quantity per
// customer, in customer order. Rows without a customer are left out.
func CustomerSummary(ds *dataset.Dataset) *Table {
	groups := groupBy(ds.Delivered(), textKey(customerID), func(agg *customerTotal, r dataset.Record) {
		agg.sales += r.Sales
		agg.quantity += r.DeliveredQuantity
		if r.InvoiceNo == "" {
			return
		}
		if agg.invoices == nil {
			agg.invoices = make(map[string]struct{})
		}
		agg.invoices[r.InvoiceNo] = struct{}{}
	})

	t := &Table{
		Name: "customer_summary",
		Columns: []Column{
			{dataset.ColCustomerID, Text},
			{"total_sales", Float},
			{"orders", Integer},
			{"total_quantity", Float},
			{"avg_order_value", Float},
		},
	}
	for _, g := range groups {
		orders := len(g.agg.invoices)
		var avg any
		if orders > 0 {
			avg = g.agg.sales / float64(orders)
		}
		t.Rows = append(t.Rows, []any{g.key, g.agg.sales, int64(orders), g.agg.quantity, avg})
	}
	return t
}
