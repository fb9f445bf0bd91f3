package engine

import (
	"github.com/pkg/errors"
)

// ============================================================================
// GROUPING — Partition rows by the full grouping key
// ============================================================================
// The key is the tuple of values of every distinct, non-empty mapping
// column. Groups are disjoint and cover every row. With no grouping
// column the whole dataset is a single group (none when it is empty).
// ============================================================================

// groupColumns returns the distinct non-empty mapping columns, in mapping
// order (outermost first).
func groupColumns(mappings []*mapping) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, m := range mappings {
		if m.column == "" || seen[m.column] {
			continue
		}
		seen[m.column] = true
		cols = append(cols, m.column)
	}
	return cols
}

// partition splits view into groups keyed by columns, using the view's own
// group-by primitive when it has one.
func partition(view RecordView, columns []string) ([]RowGroup, error) {
	if view.Len() == 0 {
		return nil, nil
	}
	if g, ok := view.(Grouper); ok {
		groups, err := g.GroupRows(columns)
		if err != nil {
			return nil, errors.Wrap(err, "grouping rows")
		}
		return groups, nil
	}
	return scanGroups(view, columns), nil
}

// scanGroups is the generic partition: one pass, first-appearance order.
func scanGroups(view RecordView, columns []string) []RowGroup {
	n := view.Len()
	if len(columns) == 0 {
		return []RowGroup{{Key: []any{}, Rows: seq(n)}}
	}
	index := make(map[string]int)
	var out []RowGroup
	keyBuf := make([]byte, 0, 64)
	for i := 0; i < n; i++ {
		key := make([]any, len(columns))
		keyBuf = keyBuf[:0]
		for c, col := range columns {
			key[c] = view.Value(i, col)
			keyBuf = append(keyBuf, valueKey(key[c])...)
			keyBuf = append(keyBuf, 0)
		}
		if gi, ok := index[string(keyBuf)]; ok {
			out[gi].Rows = append(out[gi].Rows, i)
			continue
		}
		index[string(keyBuf)] = len(out)
		out = append(out, RowGroup{Key: key, Rows: []int{i}})
	}
	return out
}

// groupValue returns the value of column in a group's key, or nil when the
// column is not part of the key.
func groupValue(g RowGroup, columns []string, column string) any {
	for i, c := range columns {
		if c == column {
			return g.Key[i]
		}
	}
	return nil
}
