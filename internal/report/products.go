package report

import (
	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
)

type productTotal struct {
	sales    float64
	quantity float64
}

// ProductSales ranks products by delivered sales.
func ProductSales(ds *dataset.Dataset) *Table {
	groups := groupBy(ds.Delivered(), textKey(description), func(agg *productTotal, r dataset.Record) {
		agg.sales += r.Sales
		agg.quantity += r.DeliveredQuantity
	})
	sortDesc(groups, func(agg *productTotal) float64 { return agg.sales })

	t := &Table{
		Name: "product_sales",
		Columns: []Column{
			{"Description", Text},
			{"delivered_sales", Float},
			{"delivered_quantity", Float},
		},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, []any{g.key, g.agg.sales, g.agg.quantity})
	}
	return t
}

// CategorySales ranks categories by delivered sales and gives each
// category's share of the total.
func CategorySales(ds *dataset.Dataset) *Table {
	groups := groupBy(ds.Delivered(), textKey(category), addSales)
	sortDesc(groups, func(agg *salesTotal) float64 { return agg.sales })

	var total float64
	for _, g := range groups {
		total += g.agg.sales
	}

	t := &Table{
		Name: "category_sales",
		Columns: []Column{
			{dataset.ColCategory, Text},
			{"delivered_sales", Float},
			{"contribution_pct", Float},
		},
	}
	for _, g := range groups {
		var pct float64
		if total != 0 {
			pct = g.agg.sales / total * 100
		}
		t.Rows = append(t.Rows, []any{g.key, g.agg.sales, pct})
	}
	return t
}

// SubCategorySales ranks sub-categories by delivered sales.
func SubCategorySales(ds *dataset.Dataset) *Table {
	groups := groupBy(ds.Delivered(), textKey(subCategory), addSales)
	sortDesc(groups, func(agg *salesTotal) float64 { return agg.sales })

	t := &Table{
		Name:    "sub_category_sales",
		Columns: []Column{{dataset.ColSubCategory, Text}, {"delivered_sales", Float}},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, []any{g.key, g.agg.sales})
	}
	return t
}
