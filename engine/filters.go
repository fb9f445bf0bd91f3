package engine

import (
	"sort"
	"strings"
)

// ============================================================================
// FILTERS — Row selection before a build
// ============================================================================
// Single-pass filter: checks ALL column constraints per row in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// ============================================================================

// Filters restricts rows by column value. Columns are AND-combined; values
// within a column are OR-combined and compared case-insensitively on
// their printed form.
type Filters map[string][]string

// IsEmpty reports whether f restricts nothing.
func (f Filters) IsEmpty() bool {
	for _, allowed := range f {
		if len(allowed) > 0 {
			return false
		}
	}
	return true
}

// ApplyFilters returns a view of the rows matching every column filter.
// Empty filter = no restriction (returns original view). Filtering on a
// column the view does not have is a *ColumnError.
func ApplyFilters(view RecordView, filters Filters) (RecordView, error) {
	if filters.IsEmpty() {
		return view, nil
	}

	// Pre-build lowercase lookup sets, in column order for stable errors
	cols := make([]string, 0, len(filters))
	for col, allowed := range filters {
		if len(allowed) > 0 {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	sets := make([]map[string]bool, len(cols))
	for i, col := range cols {
		if !HasColumn(view, col) {
			return nil, &ColumnError{Param: "filter", Column: col, Valid: view.Columns()}
		}
		sets[i] = toLowerSet(filters[col])
	}

	// Single pass — row passes if it matches ALL column filters
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for c, col := range cols {
			val := strings.ToLower(valueKey(view.Value(i, col)))
			if !sets[c][val] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices), nil
}

// ParseFilter parses "column=v1,v2" into its column and values.
func ParseFilter(s string) (string, []string, bool) {
	col, vals, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(col) == "" {
		return "", nil, false
	}
	var out []string
	for _, v := range strings.Split(vals, ",") {
		out = append(out, strings.TrimSpace(v))
	}
	return strings.TrimSpace(col), out, true
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
