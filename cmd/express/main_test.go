package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/express/colors"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const gapminderCSV = `country,continent,year,gdp,life_exp
Kenya,Africa,2000,1000.5,52.1
Kenya,Africa,2010,1500.5,60.3
Peru,Americas,2000,5000.5,70.5
Peru,Americas,2010,7000.5,74.1
India,Asia,2000,800.5,62.5
India,Asia,2010,1300.5,66.7
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parse(t *testing.T, argv ...string) options {
	t.Helper()
	var o options
	fs := newFlagSet(&o)
	fs.SetOutput(io.Discard)
	require.NoError(t, fs.Parse(argv))
	return o
}

func figureJSON(t *testing.T, out []byte) map[string]any {
	t.Helper()
	var fig map[string]any
	require.NoError(t, json.Unmarshal(out, &fig))
	return fig
}

// ============================================================================
// BUILD MODES
// ============================================================================

func TestRunFlags(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	o := parse(t, "--file", file, "--x", "gdp", "--y", "life_exp", "--color", "continent", "--log-x")

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))

	fig := figureJSON(t, buf.Bytes())
	data := fig["data"].([]any)
	require.Len(t, data, 3)
	assert.Equal(t, "continent=Africa", data[0].(map[string]any)["name"])

	xaxis := fig["layout"].(map[string]any)["xaxis"].(map[string]any)
	assert.Equal(t, "log", xaxis["type"])
}

func TestRunArgsFile(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	argsFile := writeFile(t, "chart.yaml", `
x: year
y: gdp
color: country
labels:
  gdp: GDP per capita
title: Growth
`)
	o := parse(t, "--file", file, "--kind", "line", "--args", argsFile, "--color", "continent")

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))

	fig := figureJSON(t, buf.Bytes())
	data := fig["data"].([]any)
	// The --color flag wins over the file.
	require.Len(t, data, 3)
	assert.Equal(t, "continent=Africa", data[0].(map[string]any)["name"])

	layout := fig["layout"].(map[string]any)
	yaxis := layout["yaxis"].(map[string]any)
	assert.Equal(t, "GDP per capita", yaxis["title"])
	assert.Equal(t, "Growth", layout["title"])
}

func TestRunSuggest(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	o := parse(t, "--file", file, "--suggest", "--format", "text", "--nice-labels")

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "scatter chart with 3 traces."), buf.String())
	assert.Contains(t, buf.String(), "Country=Kenya")
}

func TestRunWhere(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	o := parse(t, "--file", file, "--kind", "bar", "--x", "country", "--y", "gdp",
		"--where", "continent=asia,africa", "--where", "year=2010", "--format", "csv")

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "#,Frame,Name,Type,Axes,Points", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",bar,x/y,2"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Total (1 trace"), lines[2])
}

func TestRunHTML(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	o := parse(t, "--file", file, "--kind", "histogram", "--x", "gdp", "--format", "html", "--page-title", "GDP")

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))
	assert.Contains(t, buf.String(), "<title>GDP</title>")
	assert.Contains(t, buf.String(), `"type":"histogram"`)
}

func TestRunMapboxToken(t *testing.T) {
	file := writeFile(t, "p.csv", "city,lat,lon\nA,1.5,2.5\nB,3.5,4.5\n")
	o := parse(t, "--file", file, "--kind", "scatter_mapbox", "--lat", "lat", "--lon", "lon", "--mapbox-token", "pk.cli")

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))
	mapbox := figureJSON(t, buf.Bytes())["layout"].(map[string]any)["mapbox"].(map[string]any)
	assert.Equal(t, "pk.cli", mapbox["accesstoken"])
}

func markerOf(t *testing.T, fig map[string]any, trace int) map[string]any {
	t.Helper()
	data := fig["data"].([]any)
	require.Greater(t, len(data), trace)
	return data[trace].(map[string]any)["marker"].(map[string]any)
}

func scaleColors(t *testing.T, marker map[string]any) []string {
	t.Helper()
	var out []string
	for _, stop := range marker["colorscale"].([]any) {
		out = append(out, stop.([]any)[1].(string))
	}
	return out
}

func TestRunColorScaleByName(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	o := parse(t, "--file", file, "--x", "gdp", "--y", "life_exp", "--color", "life_exp", "--color-scale", "viridis")

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))

	viridis, ok := colors.ByName("viridis")
	require.True(t, ok)
	assert.Equal(t, viridis, scaleColors(t, markerOf(t, figureJSON(t, buf.Bytes()), 0)))
}

func TestRunColorScaleFromArgsFile(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	argsFile := writeFile(t, "chart.yaml", `
x: gdp
y: life_exp
color: life_exp
color_continuous_scale: rdbu_r
`)
	o := parse(t, "--file", file, "--args", argsFile)

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))

	scale := scaleColors(t, markerOf(t, figureJSON(t, buf.Bytes()), 0))
	assert.Equal(t, colors.Reversed(colors.RdBu), scale)

	buf.Reset()
	o = parse(t, "--file", file, "--args", argsFile, "--color-steps", "3")
	require.NoError(t, run(o, &buf))
	scale = scaleColors(t, markerOf(t, figureJSON(t, buf.Bytes()), 0))
	require.Len(t, scale, 3)
	assert.Equal(t, "#053061", scale[0])
	assert.Equal(t, "#67001f", scale[2])
}

func TestRunColorSequence(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	o := parse(t, "--file", file, "--x", "gdp", "--y", "life_exp", "--color", "continent", "--color-sequence", "d3")

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))
	fig := figureJSON(t, buf.Bytes())
	assert.Equal(t, colors.D3[0], markerOf(t, fig, 0)["color"])
	assert.Equal(t, colors.D3[1], markerOf(t, fig, 1)["color"])

	buf.Reset()
	o = parse(t, "--file", file, "--x", "gdp", "--y", "life_exp", "--color", "continent", "--color-sequence", "teal, #ff0000")
	require.NoError(t, run(o, &buf))
	fig = figureJSON(t, buf.Bytes())
	assert.Equal(t, "teal", markerOf(t, fig, 0)["color"])
	assert.Equal(t, "teal", markerOf(t, fig, 2)["color"])

	var ue usageError
	err := run(parse(t, "--file", file, "--x", "gdp", "--color-scale", "nosuchscale"), io.Discard)
	assert.True(t, errors.As(err, &ue))
}

// ============================================================================
// OTHER MODES AND ERRORS
// ============================================================================

func TestRunDiscover(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	o := parse(t, "--file", file, "--discover")

	var buf bytes.Buffer
	require.NoError(t, run(o, &buf))
	var sch map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &sch))
	assert.Equal(t, float64(6), sch["rows"])
	assert.Len(t, sch["columns"], 5)
}

func TestRunKinds(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(parse(t, "--kinds"), &buf))
	out := buf.String()
	assert.Contains(t, out, "parallel_categories")
	assert.Contains(t, out, "color(grouped)")
	assert.Contains(t, out, "facet_row(facet)")
	assert.NotContains(t, out, "title(")
}

func TestRunErrors(t *testing.T) {
	file := writeFile(t, "g.csv", gapminderCSV)
	var ue usageError

	err := run(parse(t), io.Discard)
	assert.True(t, errors.As(err, &ue))

	err = run(parse(t, "--file", file, "--x", "gdp", "--format", "svg"), io.Discard)
	assert.True(t, errors.As(err, &ue))

	err = run(parse(t, "--file", file, "--x", "gdp", "--where", "novalue"), io.Discard)
	assert.True(t, errors.As(err, &ue))

	err = run(parse(t, "--file", file, "--x", "nope"), io.Discard)
	require.Error(t, err)
	assert.False(t, errors.As(err, &ue))

	err = run(parse(t, "--file", file, "--kind", "pie"), io.Discard)
	assert.Error(t, err)

	err = run(parse(t, "--file", file, "--args", filepath.Join(t.TempDir(), "none.yaml")), io.Discard)
	assert.Error(t, err)
}

func TestMergeArgs(t *testing.T) {
	dst := parse(t, "--x", "a", "--dimensions", "p, q", "--width", "300", "--color-scale", "viridis").args
	src := parse(t, "--x", "b", "--y", "c", "--hover-data", "h", "--color-sequence", "g10").args
	mergeArgs(&dst, src)
	assert.Equal(t, []string{"g10"}, dst.ColorDiscreteSequence)
	assert.Equal(t, []string{"viridis"}, dst.ColorContinuousScale)
	assert.Equal(t, "b", dst.X)
	assert.Equal(t, "c", dst.Y)
	assert.Equal(t, []string{"p", "q"}, dst.Dimensions)
	assert.Equal(t, []string{"h"}, dst.HoverData)
	assert.Equal(t, 300, dst.Width)
}
