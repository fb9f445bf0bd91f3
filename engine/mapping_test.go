package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingCyclesSequence(t *testing.T) {
	a := &Args{Color: "c", ColorDiscreteSequence: []string{"red", "green"}}
	m := newMapping(a, "marker.color")

	assert.Equal(t, "color", m.variable)
	assert.Equal(t, ParamColor, m.param)
	assert.Equal(t, "c", m.column)
	assert.True(t, m.showInName)

	assert.Equal(t, "red", m.assign("a"))
	assert.Equal(t, "green", m.assign("b"))
	assert.Equal(t, "red", m.assign("c"))
	assert.Equal(t, "green", m.assign("b"))
	assert.Equal(t, 3, m.values.Len())
}

func TestMappingSeededFromMap(t *testing.T) {
	a := &Args{
		Symbol:         "s",
		SymbolSequence: []string{"circle", "square"},
		SymbolMap:      map[string]string{"y": "x", "b": "star"},
	}
	m := newMapping(a, "marker.symbol")

	assert.Equal(t, "star", m.assign("b"))
	assert.Equal(t, "x", m.assign("y"))
	// Seeded entries count toward the cycle position.
	assert.Equal(t, "circle", m.assign("new"))
	assert.Equal(t, []string{"b", "y", "new"}, m.values.Keys)
}

func TestMappingFacetAxes(t *testing.T) {
	a := &Args{FacetCol: "f", FacetRow: "g"}

	col := newMapping(a, string(ParamFacetCol))
	assert.Equal(t, "x", col.variable)
	assert.False(t, col.showInName)
	assert.Equal(t, "x", col.assign("p"))
	assert.Equal(t, "x2", col.assign("q"))

	row := newMapping(a, string(ParamFacetRow))
	assert.Equal(t, "y", row.variable)
	assert.Equal(t, "y", row.assign("p"))

	trace := Object{"type": MarkBar}
	require.NoError(t, col.update.apply(trace, "x2"))
	assert.Equal(t, "x2", trace["xaxis"])

	err := col.update.apply(Object{"type": MarkScatterPolar}, "x2")
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestMappingGroupingOnly(t *testing.T) {
	a := &Args{AnimationFrame: "year"}
	m := newMapping(a, string(ParamAnimationFrame))

	assert.Equal(t, "", m.assign(2000))
	trace := Object{"type": MarkScatter}
	require.NoError(t, m.update.apply(trace, ""))
	assert.Equal(t, Object{"type": MarkScatter}, trace)
}

func TestUpdaterValidatesTraceType(t *testing.T) {
	symbol := updater{target: targetMarker, field: "symbol"}
	dash := updater{target: targetLine, field: "dash"}

	for _, tc := range []struct {
		name string
		u    updater
		path string
		mark string
		enc  string
		ok   bool
	}{
		{"symbol on scatter", symbol, "marker.symbol", MarkScatter, "diamond-open", true},
		{"symbol on histogram", symbol, "marker.symbol", MarkHistogram, "circle", false},
		{"unknown symbol", symbol, "marker.symbol", MarkScatter, "blob", false},
		{"3d symbol subset", symbol, "marker.symbol", MarkScatter3d, "star", false},
		{"mapbox icon", symbol, "marker.symbol", MarkScatterMapbox, "airport", true},
		{"dash on line", dash, "line.dash", MarkScatter, "dot", true},
		{"dash on bar", dash, "line.dash", MarkBar, "dot", false},
		{"dash on box", dash, "line.dash", MarkBox, "dot", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			trace := Object{"type": tc.mark}
			err := tc.u.apply(trace, tc.enc)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.enc, trace.Get(tc.path))
				return
			}
			require.ErrorIs(t, err, ErrInvalidEncoding)
			assert.Nil(t, trace.Get(tc.path))
		})
	}
}

func TestAxisIDs(t *testing.T) {
	ids := axisSequence("y")
	assert.Len(t, ids, maxAxes)
	assert.Equal(t, []string{"y", "y2", "y3"}, ids[:3])

	assert.Equal(t, 1, axisNumber("x"))
	assert.Equal(t, 12, axisNumber("x12"))
	assert.Equal(t, "xaxis", axisLayoutKey("x"))
	assert.Equal(t, "yaxis3", axisLayoutKey("y3"))
}
