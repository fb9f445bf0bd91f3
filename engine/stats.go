package engine

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// ============================================================================
// COLUMN STATISTICS — via RecordView
// ============================================================================
// Small reductions the assembler needs: bounds for color ranges and size
// references, means for map centers, distinct counts for dimension
// filtering. NaN cells are skipped.
// ============================================================================

// columnFloats returns the non-NaN numeric values of column.
func columnFloats(view RecordView, column string) []float64 {
	n := view.Len()
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		f := view.Float(i, column)
		if !math.IsNaN(f) {
			out = append(out, f)
		}
	}
	return out
}

// columnBounds returns min and max of column, or NaN, NaN when it has no
// numeric values.
func columnBounds(view RecordView, column string) (float64, float64) {
	xs := columnFloats(view, column)
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	return stats.Bounds(xs)
}

// columnMax returns the maximum of column, or NaN.
func columnMax(view RecordView, column string) float64 {
	_, hi := columnBounds(view, column)
	return hi
}

// columnMean returns the mean of column, or NaN.
func columnMean(view RecordView, column string) float64 {
	xs := columnFloats(view, column)
	if len(xs) == 0 {
		return math.NaN()
	}
	return stats.Mean(xs)
}

// distinctCount returns the number of distinct values in column.
func distinctCount(view RecordView, column string) int {
	seen := make(map[string]bool)
	n := view.Len()
	for i := 0; i < n; i++ {
		seen[valueKey(view.Value(i, column))] = true
	}
	return len(seen)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
