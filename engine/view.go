package engine

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   TableView      — wraps a go-gg *table.Table (CSV, generated data)
//   SliceView      — wraps []Record (dimension/measure maps)
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — one group's rows (indices into parent, zero-copy)
//
// Consumers register accessors once at init; engine reads many times.
// ============================================================================

// ColumnKind is the broad data type of a column.
type ColumnKind int

const (
	KindCategorical ColumnKind = iota
	KindNumeric
	KindTemporal
)

func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	default:
		return "categorical"
	}
}

// RecordView provides indexed, column-oriented access to a dataset.
// The engine calls Value/Float in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	Columns() []string
	Kind(column string) ColumnKind
	// Value returns the cell as a comparable Go value (string, float64,
	// int, bool, time.Time). Missing cells are nil.
	Value(index int, column string) any
	// Float returns the cell as a float64, or NaN when it is not numeric.
	Float(index int, column string) float64
}

// RowGroup is one partition of a dataset: the grouping values (aligned with
// the requested columns) and the row indices that share them.
type RowGroup struct {
	Key  []any
	Rows []int
}

// Grouper is implemented by views that provide their own group-by primitive.
// Views that do not are partitioned by a linear scan.
type Grouper interface {
	GroupRows(columns []string) ([]RowGroup, error)
}

// HasColumn reports whether view exposes column.
func HasColumn(view RecordView, column string) bool {
	for _, c := range view.Columns() {
		if c == column {
			return true
		}
	}
	return false
}

// valueKey is the identity used for group keys, order tables and
// user-supplied encoding maps. Values that print the same are the same.
func valueKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
// Dimensions are categorical columns, measures numeric ones. Map keys carry
// no order, so columns are listed dimensions first, each set sorted.
type SliceView struct {
	records []Record
	dimKeys []string
	mesKeys []string
	kinds   map[string]ColumnKind
}

// NewSliceView creates a RecordView from a []Record slice.
func NewSliceView(records []Record) RecordView {
	v := &SliceView{records: records, kinds: make(map[string]ColumnKind)}
	v.cacheKeys()
	return v
}

func (v *SliceView) cacheKeys() {
	for _, r := range v.records {
		for k := range r.Dimensions {
			if _, seen := v.kinds[k]; !seen {
				v.kinds[k] = KindCategorical
				v.dimKeys = append(v.dimKeys, k)
			}
		}
		for k := range r.Measures {
			if _, seen := v.kinds[k]; !seen {
				v.kinds[k] = KindNumeric
				v.mesKeys = append(v.mesKeys, k)
			}
		}
	}
	sort.Strings(v.dimKeys)
	sort.Strings(v.mesKeys)
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Columns() []string {
	out := make([]string, 0, len(v.dimKeys)+len(v.mesKeys))
	out = append(out, v.dimKeys...)
	return append(out, v.mesKeys...)
}

func (v *SliceView) Kind(column string) ColumnKind { return v.kinds[column] }

func (v *SliceView) Value(i int, column string) any {
	if i < 0 || i >= len(v.records) {
		return nil
	}
	r := v.records[i]
	if s, ok := r.Dimensions[column]; ok {
		return s
	}
	if f, ok := r.Measures[column]; ok {
		return f
	}
	return nil
}

func (v *SliceView) Float(i int, column string) float64 {
	if i < 0 || i >= len(v.records) {
		return math.NaN()
	}
	if f, ok := v.records[i].Measures[column]; ok {
		return f
	}
	return math.NaN()
}

// ============================================================================
// SUB VIEW — one group's rows (zero-copy)
// ============================================================================

// SubView is a subset of a parent RecordView.
// Holds indices into the parent — no data copy. Indices may repeat.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) *SubView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int                      { return len(v.indices) }
func (v *SubView) Columns() []string             { return v.parent.Columns() }
func (v *SubView) Kind(column string) ColumnKind { return v.parent.Kind(column) }

func (v *SubView) Value(i int, column string) any {
	if i < 0 || i >= len(v.indices) {
		return nil
	}
	return v.parent.Value(v.indices[i], column)
}

func (v *SubView) Float(i int, column string) float64 {
	if i < 0 || i >= len(v.indices) {
		return math.NaN()
	}
	return v.parent.Float(v.indices[i], column)
}

// Rows returns the parent indices backing this view.
func (v *SubView) Rows() []int { return v.indices }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Country]().
//	    Categorical("continent", func(c Country) string { return c.Continent }).
//	    Numeric("gdp", func(c Country) float64 { return c.GDP }).
//	    Temporal("year", func(c Country) time.Time { return c.Year })
//
//	view := adapter.Bind(countries)
//	fig, _ := engine.Build("scatter", view, engine.Args{X: "gdp", Y: "life_exp", Color: "continent"})
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	order []string
	cats  map[string]func(T) string
	nums  map[string]func(T) float64
	times map[string]func(T) time.Time
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		cats:  make(map[string]func(T) string),
		nums:  make(map[string]func(T) float64),
		times: make(map[string]func(T) time.Time),
	}
}

func (a *DomainAdapter[T]) register(key string) {
	for _, k := range a.order {
		if k == key {
			return
		}
	}
	a.order = append(a.order, key)
}

// Categorical registers a string column accessor.
func (a *DomainAdapter[T]) Categorical(key string, fn func(T) string) *DomainAdapter[T] {
	a.register(key)
	a.cats[key] = fn
	return a
}

// Numeric registers a numeric column accessor.
func (a *DomainAdapter[T]) Numeric(key string, fn func(T) float64) *DomainAdapter[T] {
	a.register(key)
	a.nums[key] = fn
	return a
}

// Temporal registers a time column accessor.
func (a *DomainAdapter[T]) Temporal(key string, fn func(T) time.Time) *DomainAdapter[T] {
	a.register(key)
	a.times[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy — holds reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{data: data, adapter: a}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data    []T
	adapter *DomainAdapter[T]
}

func (v *DomainView[T]) Len() int          { return len(v.data) }
func (v *DomainView[T]) Columns() []string { return v.adapter.order }

func (v *DomainView[T]) Kind(column string) ColumnKind {
	if _, ok := v.adapter.nums[column]; ok {
		return KindNumeric
	}
	if _, ok := v.adapter.times[column]; ok {
		return KindTemporal
	}
	return KindCategorical
}

func (v *DomainView[T]) Value(i int, column string) any {
	if i < 0 || i >= len(v.data) {
		return nil
	}
	if fn, ok := v.adapter.nums[column]; ok {
		return fn(v.data[i])
	}
	if fn, ok := v.adapter.times[column]; ok {
		return fn(v.data[i])
	}
	if fn, ok := v.adapter.cats[column]; ok {
		return fn(v.data[i])
	}
	return nil
}

func (v *DomainView[T]) Float(i int, column string) float64 {
	if i < 0 || i >= len(v.data) {
		return math.NaN()
	}
	if fn, ok := v.adapter.nums[column]; ok {
		return fn(v.data[i])
	}
	return math.NaN()
}
