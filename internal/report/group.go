package report

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/pgEdge/pgedge-salesreport/internal/dataset"
)

// group is one bucket of a group-by with its accumulated state.
type group[A any] struct {
	key string
	agg *A
}

// keyFunc extracts a grouping key from a record. ok is false when the key
// is missing, in which case the record is left out of the grouping.
type keyFunc func(r dataset.Record) (key string, ok bool)

// groupBy buckets records by key and folds each record into its bucket
// with add. Buckets are returned in ascending key order.
func groupBy[A any](records []dataset.Record, key keyFunc, add func(agg *A, r dataset.Record)) []group[A] {
	index := make(map[string]*A)
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		agg, seen := index[k]
		if !seen {
			agg = new(A)
			index[k] = agg
		}
		add(agg, r)
	}

	groups := make([]group[A], 0, len(index))
	for k, agg := range index {
		groups = append(groups, group[A]{key: k, agg: agg})
	}
	slices.SortFunc(groups, func(a, b group[A]) int {
		return compareKeys(a.key, b.key)
	})
	return groups
}

// sortDesc orders groups by value, largest first. Ties keep their
// ascending key order.
func sortDesc[A any](groups []group[A], value func(agg *A) float64) {
	slices.SortStableFunc(groups, func(a, b group[A]) int {
		return cmp.Compare(value(b.agg), value(a.agg))
	})
}

// compareKeys orders grouping keys numerically when both parse as numbers
// and lexically otherwise. Numeric keys sort before non-numeric ones.
func compareKeys(a, b string) int {
	an, aErr := strconv.ParseFloat(a, 64)
	bn, bErr := strconv.ParseFloat(b, 64)
	aNum, bNum := aErr == nil, bErr == nil
	switch {
	case aNum && bNum:
		if c := cmp.Compare(an, bn); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// textKey returns a keyFunc over a categorical field; blank values are missing.
func textKey(field func(r dataset.Record) string) keyFunc {
	return func(r dataset.Record) (string, bool) {
		v := field(r)
		return v, v != ""
	}
}

// distinct counts the distinct non-blank values of a field.
func distinct(records []dataset.Record, field func(r dataset.Record) string) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		if v := field(r); v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// sum adds up a numeric field.
func sum(records []dataset.Record, field func(r dataset.Record) float64) float64 {
	var total float64
	for _, r := range records {
		total += field(r)
	}
	return total
}

// Field accessors shared by the reports.
var (
	invoiceNo   = func(r dataset.Record) string { return r.InvoiceNo }
	customerID  = func(r dataset.Record) string { return r.CustomerID }
	description = func(r dataset.Record) string { return r.Description }
	category    = func(r dataset.Record) string { return r.Category }
	subCategory = func(r dataset.Record) string { return r.SubCategory }
	country     = func(r dataset.Record) string { return r.Country }
	status      = func(r dataset.Record) string { return r.Status }

	sales         = func(r dataset.Record) float64 { return r.Sales }
	grossSales    = func(r dataset.Record) float64 { return r.GrossSales }
	lostOnCancels = func(r dataset.Record) float64 { return r.LostOnCancels }
	lostOnReturns = func(r dataset.Record) float64 { return r.LostOnReturns }
)
