package engine

import (
	"math"
	"reflect"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// ============================================================================
// TABLE VIEW — go-gg table as a RecordView
// ============================================================================
// Columns are typed Go slices ([]string, []int, []float64, []time.Time ...).
// Numeric columns are converted to []float64 once, on first Float() read.
// Grouping is delegated to table.GroupBy over string key columns.
// ============================================================================

// rowIndexColumn is the hidden column GroupRows adds so that grouped
// sub-tables can be traced back to the rows they came from.
const rowIndexColumn = "\x00row"

// keyColumnPrefix names the hidden string columns GroupRows groups on.
const keyColumnPrefix = "\x00key:"

// TableView wraps a go-gg table.
type TableView struct {
	t      *table.Table
	kinds  map[string]ColumnKind
	floats map[string][]float64
}

// NewTableView creates a RecordView over t. Zero-copy — holds reference.
func NewTableView(t *table.Table) *TableView {
	v := &TableView{
		t:      t,
		kinds:  make(map[string]ColumnKind),
		floats: make(map[string][]float64),
	}
	for _, col := range t.Columns() {
		v.kinds[col] = kindOfSlice(t.Column(col))
	}
	return v
}

// Table returns the underlying go-gg table.
func (v *TableView) Table() *table.Table { return v.t }

func (v *TableView) Len() int          { return v.t.Len() }
func (v *TableView) Columns() []string { return v.t.Columns() }

func (v *TableView) Kind(column string) ColumnKind { return v.kinds[column] }

func (v *TableView) Value(i int, column string) any {
	if i < 0 || i >= v.t.Len() {
		return nil
	}
	col := v.t.Column(column)
	if col == nil {
		return nil
	}
	return reflect.ValueOf(col).Index(i).Interface()
}

func (v *TableView) Float(i int, column string) float64 {
	if v.kinds[column] != KindNumeric || i < 0 || i >= v.t.Len() {
		return math.NaN()
	}
	fs, ok := v.floats[column]
	if !ok {
		fs = toFloats(v.t.Column(column))
		v.floats[column] = fs
	}
	return fs[i]
}

// GroupRows partitions the table with table.GroupBy. Groups come back in
// first-appearance order. GroupBy runs over the valueKey rendering of each
// column so that NaN cells share one group; keys are read back off each
// group's first row.
func (v *TableView) GroupRows(columns []string) ([]RowGroup, error) {
	n := v.t.Len()
	if len(columns) == 0 {
		if n == 0 {
			return nil, nil
		}
		return []RowGroup{{Key: []any{}, Rows: seq(n)}}, nil
	}

	b := table.NewBuilder(v.t).Add(rowIndexColumn, seq(n))
	keyColumns := make([]string, len(columns))
	for c, col := range columns {
		keys := make([]string, n)
		for i := range keys {
			keys[i] = valueKey(v.Value(i, col))
		}
		keyColumns[c] = keyColumnPrefix + col
		b.Add(keyColumns[c], keys)
	}
	grouped := table.GroupBy(b.Done(), keyColumns...)

	var out []RowGroup
	for _, gid := range grouped.Tables() {
		sub := grouped.Table(gid)
		if sub.Len() == 0 {
			continue
		}
		rows := sub.MustColumn(rowIndexColumn).([]int)
		key := make([]any, len(columns))
		for c, col := range columns {
			key[c] = v.Value(rows[0], col)
		}
		out = append(out, RowGroup{Key: key, Rows: append([]int(nil), rows...)})
	}
	return out, nil
}

// kindOfSlice classifies a go-gg column by its element type.
func kindOfSlice(col slice.T) ColumnKind {
	if col == nil {
		return KindCategorical
	}
	elem := reflect.TypeOf(col).Elem()
	if elem == reflect.TypeOf(time.Time{}) {
		return KindTemporal
	}
	switch elem.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return KindNumeric
	}
	return KindCategorical
}

func toFloats(col slice.T) []float64 {
	if b, ok := col.([]bool); ok {
		out := make([]float64, len(b))
		for i, x := range b {
			if x {
				out[i] = 1
			}
		}
		return out
	}
	var out []float64
	slice.Convert(&out, col)
	return out
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
