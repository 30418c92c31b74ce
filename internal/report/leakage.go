package report

import (
	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
)

type leakageTotal struct {
	gross   float64
	net     float64
	cancels float64
	returns float64
}

func (l *leakageTotal) lost() float64 {
	return l.cancels + l.returns
}

func addLeakage(agg *leakageTotal, r dataset.Record) {
	agg.gross += r.GrossSales
	agg.net += r.Sales
	agg.cancels += r.LostOnCancels
	agg.returns += r.LostOnReturns
}

// StatusSalesSummary gives gross, net and lost revenue per status over
// every row, in status order.
func StatusSalesSummary(ds *dataset.Dataset) *Table {
	groups := groupBy(ds.Records, textKey(status), addLeakage)

	t := &Table{
		Name: "status_sales_summary",
		Columns: []Column{
			{dataset.ColStatus, Text},
			{"gross_sales", Float},
			{"net_sales", Float},
			{"lost_on_cancels", Float},
			{"lost_on_returns", Float},
			{"total_lost", Float},
		},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, []any{g.key, g.agg.gross, g.agg.net, g.agg.cancels, g.agg.returns, g.agg.lost()})
	}
	return t
}

// CategoryLeakage ranks categories by revenue lost to cancellations and
// returns.
func CategoryLeakage(ds *dataset.Dataset) *Table {
	return leakageBy(ds, "category_leakage", dataset.ColCategory, category)
}

// ProductLeakage ranks products by revenue lost to cancellations and
// returns.
func ProductLeakage(ds *dataset.Dataset) *Table {
	return leakageBy(ds, "product_leakage", dataset.ColDescription, description)
}

func leakageBy(ds *dataset.Dataset, name, column string, field func(r dataset.Record) string) *Table {
	groups := groupBy(ds.Records, textKey(field), addLeakage)
	sortDesc(groups, (*leakageTotal).lost)

	t := &Table{
		Name: name,
		Columns: []Column{
			{column, Text},
			{"lost_on_cancels", Float},
			{"lost_on_returns", Float},
			{"total_loss", Float},
		},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, []any{g.key, g.agg.cancels, g.agg.returns, g.agg.lost()})
	}
	return t
}
