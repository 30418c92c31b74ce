package report

import (
	"fmt"
	"sync"

	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
)

// Definition describes one output table.
type Definition struct {
	// Name is the report identifier; it is also the published table name.
	Name string

	// File is the CSV file name inside the output directory.
	File string

	// Description is a human-readable summary.
	Description string

	// Build computes the table from a loaded dataset.
	Build func(ds *dataset.Dataset) *Table
}

var (
	registry = make(map[string]Definition)
	order    []string
	mu       sync.RWMutex
)

func init() {
	for _, def := range []Definition{
		{"kpi_summary", "kpi_summary.csv", "Headline KPIs: date range, orders, customers, sales and leakage", KPISummary},
		{"monthly_sales", "monthly_sales.csv", "Delivered sales per month", MonthlySales},
		{"weekday_sales", "weekday_sales.csv", "Delivered sales per weekday, Monday to Sunday", WeekdaySales},
		{"hour_sales", "hour_sales.csv", "Delivered sales per hour of day", HourSales},
		{"product_sales", "product_sales.csv", "Delivered sales and quantity per product", ProductSales},
		{"category_sales", "category_sales.csv", "Delivered sales and contribution per category", CategorySales},
		{"sub_category_sales", "sub_category_sales.csv", "Delivered sales per sub-category", SubCategorySales},
		{"country_sales", "country_sales.csv", "Delivered sales per country", CountrySales},
		{"customer_summary", "customer_summary.csv", "Delivered sales, orders and quantity per customer", CustomerSummary},
		{"status_sales_summary", "status_sales_summary.csv", "Gross, net and lost sales per status", StatusSalesSummary},
		{"category_leakage", "category_leakage.csv", "Revenue lost to cancels and returns per category", CategoryLeakage},
		{"product_leakage", "product_leakage.csv", "Revenue lost to cancels and returns per product", ProductLeakage},
	} {
		Register(def)
	}
}

// Register adds a report to the registry. Registering an existing name
// replaces its definition and keeps its position.
func Register(def Definition) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[def.Name]; !ok {
		order = append(order, def.Name)
	}
	registry[def.Name] = def
}

// Get retrieves a report by name.
func Get(name string) (Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	def, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown report: %s", name)
	}
	return def, nil
}

// List returns all registered report names in output order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// All returns all registered reports in output order.
func All() []Definition {
	mu.RLock()
	defer mu.RUnlock()

	defs := make([]Definition, 0, len(order))
	for _, name := range order {
		defs = append(defs, registry[name])
	}
	return defs
}

// BuildAll computes every registered report from ds in output order.
func BuildAll(ds *dataset.Dataset) []*Table {
	defs := All()
	tables := make([]*Table, 0, len(defs))
	for _, def := range defs {
		tables = append(tables, def.Build(ds))
	}
	return tables
}
