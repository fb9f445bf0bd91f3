package engine

import (
	"fmt"
	"reflect"
)

// ============================================================================
// TABLE BUILDER — Tabular listing of a Figure's traces
// ============================================================================
// One row per trace of the figure's first frame (or of every frame when
// animated), for terminal output and quick inspection in tests.
// ============================================================================

// TableData is a display-ready table.
type TableData struct {
	Title   string     `json:"title,omitempty"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column describes one table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // text, number
	Align string `json:"align"` // left, right, center
}

// Summary is the footer row of a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// pointFields are the trace attributes whose length is the point count,
// in lookup order.
var pointFields = []string{"x", "y", "z", "a", "r", "lat", "locations", "hovertext"}

// BuildTraceTable lists the traces of fig.
func BuildTraceTable(fig *Figure, title string) *TableData {
	columns := []Column{
		{Key: "index", Label: "#", Type: "number", Align: "right"},
		{Key: "frame", Label: "Frame", Type: "text", Align: "left"},
		{Key: "name", Label: "Name", Type: "text", Align: "left"},
		{Key: "type", Label: "Type", Type: "text", Align: "left"},
		{Key: "axes", Label: "Axes", Type: "text", Align: "left"},
		{Key: "points", Label: "Points", Type: "number", Align: "right"},
	}

	frames := fig.Frames
	if len(frames) == 0 {
		frames = []Frame{{Data: fig.Data}}
	}

	rows := make([][]string, 0, len(fig.Data))
	total := 0
	for _, f := range frames {
		for _, t := range f.Data {
			n := pointCount(t)
			total += n
			rows = append(rows, []string{
				fmt.Sprintf("%d", len(rows)),
				f.Name,
				fmt.Sprint(t["name"]),
				fmt.Sprint(t["type"]),
				traceAxes(t),
				fmt.Sprintf("%d", n),
			})
		}
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d traces)", len(rows)),
			Values: map[string]string{
				"points": fmt.Sprintf("%d", total),
			},
		},
	}
}

// pointCount returns the number of data points a trace carries.
func pointCount(t Object) int {
	for _, f := range pointFields {
		if v, ok := t[f]; ok && v != nil {
			rv := reflect.ValueOf(v)
			if rv.Kind() == reflect.Slice {
				return rv.Len()
			}
		}
	}
	if dims, ok := t["dimensions"].([]Object); ok && len(dims) > 0 {
		if vals, ok := dims[0]["values"].([]any); ok {
			return len(vals)
		}
	}
	return 0
}

func traceAxes(t Object) string {
	x, _ := t["xaxis"].(string)
	y, _ := t["yaxis"].(string)
	if x == "" && y == "" {
		return ""
	}
	if x == "" {
		x = "x"
	}
	if y == "" {
		y = "y"
	}
	return x + "/" + y
}
