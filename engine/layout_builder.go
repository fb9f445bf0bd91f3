package engine

import (
	"math"
)

// ============================================================================
// LAYOUT BUILDER — subplot geometry per chart kind
// ============================================================================
// Each geometry has its own configurator. Cartesian kinds lay traces out
// on a facet grid (or a main pane plus marginal panes); the others only
// title and scale their single subplot.
// ============================================================================

// layoutInput carries what the configurators read.
type layoutInput struct {
	args     *Args
	kind     *ChartKind
	traces   []Object // every trace of every frame
	mappings []*mapping
	orders   OrderTable
	dataset  RecordView
	cfg      *config
	settings *Settings
}

// configureAxes returns the geometry part of the layout.
func configureAxes(in layoutInput) Object {
	switch in.kind.Geometry {
	case GeometryCartesian:
		if in.args.MarginalX != "" || in.args.MarginalY != "" {
			return configureMarginalAxes(in)
		}
		return configureCartesianAxes(in)
	case GeometryTernary:
		return configureTernaryAxes(in)
	case GeometryPolar:
		return configurePolarAxes(in)
	case GeometryScene:
		return configure3dAxes(in)
	case GeometryMapbox:
		return configureMapbox(in)
	case GeometryGeo:
		return configureGeo(in)
	}
	return Object{}
}

// letterParam is the column argument drawn along an axis letter.
func letterParam(letter string) Param { return Param(letter) }

// setAxisOpts applies log type, range and category order to one axis.
// Ranges of log axes are given in log10 units.
func setAxisOpts(in layoutInput, axis Object, letter string, reverse bool) {
	a := in.args
	rng := a.axisRange(letter)
	if a.axisLog(letter) {
		axis["type"] = "log"
		if len(rng) > 0 {
			axis["range"] = log10All(rng)
		}
	} else if len(rng) > 0 {
		axis["range"] = rng
	}

	col := a.Column(letterParam(letter))
	if col != "" && in.orders.Has(col) {
		axis["categoryorder"] = "array"
		values := in.orders.Values(col)
		if reverse {
			values = reversed(values)
		}
		axis["categoryarray"] = values
	}
}

// ============================================================================
// CARTESIAN
// ============================================================================

func configureMarginalAxes(in layoutInput) Object {
	a := in.args
	layout := Object{"barmode": "overlay", "violinmode": "overlay"}
	for _, letter := range []string{"x", "y"} {
		axis := Object{"title": a.Label(a.Column(letterParam(letter)))}
		setAxisOpts(in, axis, letter, letter == "y")
		layout[letter+"axis"] = axis
	}
	for _, letter := range []string{"x", "y"} {
		other := "y"
		marginal := a.MarginalX
		if letter == "y" {
			other = "x"
			marginal = a.MarginalY
		}
		if marginal == "" {
			continue
		}
		main := in.cfg.MainPane
		if marginal == "histogram" || a.Color != "" {
			main = in.cfg.MainPaneDense
		}
		axis := layout.Sub(other + "axis")
		axis["domain"] = []float64{0, main}
		axis["showgrid"] = true
		layout[other+"axis2"] = Object{
			"domain":         []float64{main + in.cfg.MarginalGap, 1},
			"showticklabels": false,
		}
	}
	return layout
}

func configureCartesianAxes(in layoutInput) Object {
	a := in.args
	gap := in.cfg.FacetGap
	grid := Object{
		"xgap":  gap,
		"ygap":  gap,
		"xside": "bottom",
		"yside": "left",
	}
	annotations := []Object{}
	layout := Object{"grid": grid}

	for _, dir := range []struct {
		letter string
		facet  Param
		row    bool
	}{
		{"x", ParamFacetCol, false},
		{"y", ParamFacetRow, true},
	} {
		letter := dir.letter
		var ids []string
		seen := make(map[string]bool)
		for _, t := range in.traces {
			id, _ := t[letter+"axis"].(string)
			if id == "" {
				id = letter
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)

			axis := Object{"title": decoratedLabel(a, in.kind, a.Column(letterParam(letter)), letterParam(letter))}
			if id == letter {
				setAxisOpts(in, axis, letter, letter == "y")
			} else {
				axis["matches"] = letter
				if a.axisLog(letter) {
					axis["type"] = "log"
				}
			}
			layout[axisLayoutKey(id)] = axis
		}
		if ids == nil {
			ids = []string{}
		}
		grid[letter+"axes"] = ids

		column := a.Column(dir.facet)
		m := findMapping(in.mappings, letter)
		if column == "" || m == nil {
			continue
		}
		n := len(ids)
		step := 1.0 / (float64(n) - gap)
		for j, key := range m.values.Keys {
			i := axisNumber(m.values.Values[j])
			if dir.row {
				i = n - i
			} else {
				i--
			}
			pos := step * (float64(i) + (0.5 - gap/2))
			ann := Object{
				"xref":      "paper",
				"yref":      "paper",
				"showarrow": false,
				"xanchor":   "center",
				"yanchor":   "middle",
				"text":      a.Label(column) + "=" + key,
				"x":         pos,
				"y":         1.02,
				"textangle": 0,
			}
			if dir.row {
				ann["x"] = 1.01
				ann["y"] = pos
				ann["textangle"] = 90
			}
			annotations = append(annotations, ann)
		}
	}
	layout["annotations"] = annotations
	return layout
}

func findMapping(ms []*mapping, variable string) *mapping {
	for _, m := range ms {
		if m.variable == variable {
			return m
		}
	}
	return nil
}

// ============================================================================
// OTHER GEOMETRIES
// ============================================================================

func configureTernaryAxes(in layoutInput) Object {
	a := in.args
	return Object{"ternary": Object{
		"aaxis": Object{"title": a.Label(a.A)},
		"baxis": Object{"title": a.Label(a.B)},
		"caxis": Object{"title": a.Label(a.C)},
	}}
}

func configurePolarAxes(in layoutInput) Object {
	a := in.args
	angular := Object{"direction": a.Direction}
	if a.StartAngle != nil {
		angular["rotation"] = *a.StartAngle
	}
	radial := Object{}
	for _, ax := range []struct {
		col  string
		axis Object
	}{{a.R, radial}, {a.Theta, angular}} {
		if ax.col != "" && in.orders.Has(ax.col) {
			ax.axis["categoryorder"] = "array"
			ax.axis["categoryarray"] = in.orders.Values(ax.col)
		}
	}
	if a.LogR {
		radial["type"] = "log"
		if len(a.RangeR) > 0 {
			radial["range"] = log10All(a.RangeR)
		}
	} else if len(a.RangeR) > 0 {
		radial["range"] = a.RangeR
	}
	return Object{"polar": Object{"angularaxis": angular, "radialaxis": radial}}
}

func configure3dAxes(in layoutInput) Object {
	a := in.args
	scene := Object{}
	for _, letter := range []string{"x", "y", "z"} {
		axis := Object{"title": a.Label(a.Column(letterParam(letter)))}
		setAxisOpts(in, axis, letter, false)
		scene[letter+"axis"] = axis
	}
	return Object{"scene": scene}
}

func configureMapbox(in layoutInput) Object {
	a := in.args
	mapbox := Object{"accesstoken": in.settings.MapboxAccessToken()}
	if a.Zoom != nil {
		mapbox["zoom"] = *a.Zoom
	}
	lat, lon := columnMean(in.dataset, a.Lat), columnMean(in.dataset, a.Lon)
	if !math.IsNaN(lat) && !math.IsNaN(lon) {
		mapbox["center"] = Object{"lat": lat, "lon": lon}
	}
	return Object{"mapbox": mapbox}
}

func configureGeo(in layoutInput) Object {
	a := in.args
	geo := Object{}
	if a.Center != nil {
		geo["center"] = Object{"lat": a.Center.Lat, "lon": a.Center.Lon}
	}
	if a.Scope != "" {
		geo["scope"] = a.Scope
	}
	if a.Projection != "" {
		geo["projection"] = Object{"type": a.Projection}
	}
	return Object{"geo": geo}
}

func log10All(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Log10(x)
	}
	return out
}

func reversed(xs []any) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}
