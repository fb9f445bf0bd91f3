package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TABLE / TEXT BUILDER TESTS
// ============================================================================

func TestBuildTraceTable(t *testing.T) {
	view := tableView(t, countriesCSV)
	fig, err := Build("scatter", view, Args{X: "gdp", Y: "life_exp", Color: "continent", AnimationFrame: "year"})
	require.NoError(t, err)

	td := BuildTraceTable(fig, "traces")
	assert.Equal(t, "traces", td.Title)
	require.Len(t, td.Columns, 6)
	require.Len(t, td.Rows, 6)
	assert.Equal(t, []string{"0", "2000", "continent=Africa", "scatter", "x/y", "2"}, td.Rows[0])
	assert.Equal(t, "2010", td.Rows[5][1])
	assert.Equal(t, "Total (6 traces)", td.Summary.Label)
	assert.Equal(t, "12", td.Summary.Values["points"])
}

func TestBuildTraceTableNonCartesian(t *testing.T) {
	view := tableView(t, countriesCSV)
	fig, err := Build("parallel_coordinates", view, Args{Dimensions: []string{"gdp", "pop"}})
	require.NoError(t, err)

	td := BuildTraceTable(fig, "")
	require.Len(t, td.Rows, 1)
	assert.Equal(t, "", td.Rows[0][4])
	assert.Equal(t, "12", td.Rows[0][5])
}

func TestBuildText(t *testing.T) {
	view := tableView(t, lineCSV)
	fig, err := Build("scatter", view, Args{X: "x", Y: "y", Color: "g", Trendline: TrendlineOLS})
	require.NoError(t, err)

	td := BuildText("scatter", fig)
	assert.Equal(t, 4, td.Traces)
	assert.Equal(t, 0, td.Frames)
	assert.Equal(t, []string{"g=a", "g=b"}, td.Legend)
	require.Len(t, td.Trendlines, 2)
	assert.Contains(t, td.Trendlines[0], "OLS trendline for g=a: y = 2 * x + 1")
	assert.Contains(t, td.Text, "scatter chart with 4 traces.")
	assert.Contains(t, td.Text, "Legend: g=a; g=b.")
}

func TestBuildTextSingular(t *testing.T) {
	view := tableView(t, categoryCSV)
	fig, err := Build("histogram", view, Args{X: "value"})
	require.NoError(t, err)

	td := BuildText("histogram", fig)
	assert.Equal(t, "histogram chart with 1 trace.", td.Text)
	assert.Empty(t, td.Legend)
}
