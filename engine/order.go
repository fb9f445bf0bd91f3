package engine

import (
	"sort"

	"cogentcore.org/core/base/keylist"
)

// ============================================================================
// ORDER TABLE — Deterministic ordering of grouping values
// ============================================================================
// For every grouping column: the user's category_orders prefix first, then
// the remaining distinct values in first-occurrence order across the whole
// dataset. Every value of the column appears exactly once.
// ============================================================================

// OrderTable maps a column to its ordered distinct values, keyed by valueKey.
type OrderTable map[string]*keylist.List[string, any]

// buildOrders computes the order of every column in columns.
// Columns may repeat; each is scanned once.
func buildOrders(view RecordView, columns []string, prefixes map[string][]any) OrderTable {
	orders := make(OrderTable)
	for _, col := range columns {
		if col == "" {
			continue
		}
		if _, done := orders[col]; done {
			continue
		}
		kl := prefixOrder(prefixes[col])
		n := view.Len()
		for i := 0; i < n; i++ {
			v := view.Value(i, col)
			k := valueKey(v)
			if kl.IndexByKey(k) < 0 {
				kl.Set(k, v)
			}
		}
		orders[col] = kl
	}
	// Explicit orders of columns that do not group still order their axes.
	for _, col := range sortedKeys(prefixes) {
		if _, done := orders[col]; !done {
			orders[col] = prefixOrder(prefixes[col])
		}
	}
	return orders
}

func prefixOrder(prefix []any) *keylist.List[string, any] {
	kl := keylist.New[string, any]()
	for _, v := range prefix {
		k := valueKey(v)
		if kl.IndexByKey(k) < 0 {
			kl.Set(k, v)
		}
	}
	return kl
}

// Index returns the position of v in column's order, or -1 when the column
// or the value is unknown.
func (o OrderTable) Index(column string, v any) int {
	kl, ok := o[column]
	if !ok {
		return -1
	}
	return kl.IndexByKey(valueKey(v))
}

// Values returns the ordered values of column.
func (o OrderTable) Values(column string) []any {
	kl, ok := o[column]
	if !ok {
		return nil
	}
	return kl.Values
}

// Has reports whether column is ordered.
func (o OrderTable) Has(column string) bool {
	_, ok := o[column]
	return ok
}

// sortGroups orders groups by their key tuples. columns is aligned with
// RowGroup.Key. One stable pass per column, innermost first, so the
// outermost column ends up most significant.
func sortGroups(groups []RowGroup, columns []string, orders OrderTable) {
	for i := len(columns) - 1; i >= 0; i-- {
		col := columns[i]
		sort.SliceStable(groups, func(a, b int) bool {
			return orders.Index(col, groups[a].Key[i]) < orders.Index(col, groups[b].Key[i])
		})
	}
}
