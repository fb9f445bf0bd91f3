package engine

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// RECORD VIEW TESTS
// ============================================================================

func TestTableViewKinds(t *testing.T) {
	view := tableView(t, countriesCSV)

	assert.Equal(t, 12, view.Len())
	assert.Equal(t, []string{"country", "continent", "year", "gdp", "life_exp", "pop"}, view.Columns())
	assert.Equal(t, KindCategorical, view.Kind("country"))
	assert.Equal(t, KindNumeric, view.Kind("year"))
	assert.Equal(t, KindNumeric, view.Kind("life_exp"))

	assert.Equal(t, "Kenya", view.Value(0, "country"))
	assert.Equal(t, 2000, view.Value(0, "year"))
	assert.Equal(t, 52.1, view.Value(0, "life_exp"))
	assert.Equal(t, 2000.0, view.Float(0, "year"))
	assert.True(t, math.IsNaN(view.Float(0, "country")))
	assert.Nil(t, view.Value(99, "country"))
	assert.Nil(t, view.Value(0, "missing"))
}

func TestTableViewGroupRows(t *testing.T) {
	view := tableView(t, countriesCSV)

	groups, err := view.GroupRows([]string{"continent", "year"})
	require.NoError(t, err)
	require.Len(t, groups, 6)

	covered := 0
	for _, g := range groups {
		require.Len(t, g.Key, 2)
		for _, row := range g.Rows {
			assert.Equal(t, g.Key[0], view.Value(row, "continent"))
			assert.Equal(t, g.Key[1], view.Value(row, "year"))
		}
		covered += len(g.Rows)
	}
	assert.Equal(t, view.Len(), covered)

	all, err := view.GroupRows(nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, seq(12), all[0].Rows)
}

func TestScanGroupsMatchesTableGrouping(t *testing.T) {
	view := tableView(t, countriesCSV)
	columns := []string{"continent"}

	scanned := scanGroups(view, columns)
	grouped, err := view.GroupRows(columns)
	require.NoError(t, err)

	orders := buildOrders(view, columns, nil)
	sortGroups(scanned, columns, orders)
	sortGroups(grouped, columns, orders)
	assert.Equal(t, scanned, grouped)
	assert.Equal(t, "Africa", scanned[0].Key[0])
	assert.Equal(t, []int{0, 1, 2, 3}, scanned[0].Rows)
}

func TestTableViewGroupRowsMergesNaN(t *testing.T) {
	nan := math.NaN()
	view := NewTableView(table.NewBuilder(nil).
		Add("x", []int{1, 2, 3, 4}).
		Add("f", []float64{1, nan, 1, nan}).
		Done())

	grouped, err := view.GroupRows([]string{"f"})
	require.NoError(t, err)
	scanned := scanGroups(view, []string{"f"})
	require.Len(t, grouped, 2)
	require.Len(t, scanned, 2)
	for i := range grouped {
		assert.Equal(t, scanned[i].Rows, grouped[i].Rows)
	}
	assert.Equal(t, 1.0, grouped[0].Key[0])
	assert.Equal(t, []int{0, 2}, grouped[0].Rows)
	assert.True(t, math.IsNaN(grouped[1].Key[0].(float64)))
	assert.Equal(t, []int{1, 3}, grouped[1].Rows)

	fig, err := Build("scatter", view, Args{X: "x", Y: "x", FacetCol: "f"})
	require.NoError(t, err)
	assert.Len(t, fig.Data, 2)
	_, err = json.Marshal(fig)
	assert.NoError(t, err)
}

func TestSliceView(t *testing.T) {
	view := NewSliceView([]Record{
		{Dimensions: map[string]string{"team": "a"}, Measures: map[string]float64{"points": 3}},
		{Dimensions: map[string]string{"team": "b"}, Measures: map[string]float64{"points": 5}},
	})

	assert.Equal(t, []string{"team", "points"}, view.Columns())
	assert.Equal(t, KindNumeric, view.Kind("points"))
	assert.Equal(t, "b", view.Value(1, "team"))
	assert.Equal(t, 5.0, view.Float(1, "points"))
	assert.True(t, math.IsNaN(view.Float(1, "team")))

	fig, err := Build("bar", view, Args{X: "team", Y: "points"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, fig.Data[0]["x"])
	assert.Equal(t, []any{3.0, 5.0}, fig.Data[0]["y"])
}

type sale struct {
	region string
	amount float64
	day    time.Time
}

func TestDomainView(t *testing.T) {
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	view := NewDomainAdapter[sale]().
		Categorical("region", func(s sale) string { return s.region }).
		Numeric("amount", func(s sale) float64 { return s.amount }).
		Temporal("day", func(s sale) time.Time { return s.day }).
		Bind([]sale{{"north", 10, day}, {"south", 20, day.AddDate(0, 0, 1)}})

	assert.Equal(t, []string{"region", "amount", "day"}, view.Columns())
	assert.Equal(t, KindTemporal, view.Kind("day"))
	assert.Equal(t, day, view.Value(0, "day"))
	assert.Equal(t, 20.0, view.Float(1, "amount"))

	fig, err := Build("line", view, Args{X: "day", Y: "amount", Color: "region"})
	require.NoError(t, err)
	assert.Equal(t, []string{"region=north", "region=south"}, fig.TraceNames())
}

func TestSubViewRepeatsRows(t *testing.T) {
	view := tableView(t, categoryCSV)
	sub := newSubView(view, []int{2, 0, 2})

	assert.Equal(t, 3, sub.Len())
	assert.Equal(t, 3, sub.Value(0, "value"))
	assert.Equal(t, 1.0, sub.Float(1, "value"))
	assert.Equal(t, []int{2, 0, 2}, sub.Rows())
	assert.Nil(t, sub.Value(3, "value"))
}

func TestValueKey(t *testing.T) {
	assert.Equal(t, "", valueKey(nil))
	assert.Equal(t, "3", valueKey(3))
	assert.Equal(t, "3", valueKey(3.0))
	assert.Equal(t, "2.5", valueKey(2.5))
	assert.Equal(t, "true", valueKey(true))
	assert.Equal(t, "2026-01-02T00:00:00Z", valueKey(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
}
