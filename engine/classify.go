package engine

import (
	"math"

	"github.com/spektr-org/express/colors"
)

// ============================================================================
// ARGUMENT CLASSIFIER
// ============================================================================
// Decides, for one build, which arguments feed trace fields directly
// (plain attributes), which split the data into groups with a cyclic
// encoding (mappings), which derived traces are needed (trace specs), and
// the size reference and continuous color range.
// ============================================================================

// traceSpec is the template for one trace-construction pass per group.
type traceSpec struct {
	Mark  string
	Attrs []Param
	Patch Object
}

// plan is the classifier's output.
type plan struct {
	specs      []traceSpec
	mappings   []*mapping
	sizeref    float64
	colorRange []float64 // nil unless color is continuous
}

// hasAttr reports whether p is one of the trace spec's plain attributes.
func (s traceSpec) hasAttr(p Param) bool {
	for _, a := range s.Attrs {
		if a == p {
			return true
		}
	}
	return false
}

// inferConfig classifies the arguments of one build.
func inferConfig(a *Args, kind *ChartKind, view RecordView) (*plan, error) {
	var attrs []Param
	for _, p := range plainOrder {
		if kind.Declares(p) {
			attrs = append(attrs, p)
		}
	}
	var grouped []string
	for _, p := range groupableOrder {
		if kind.Declares(p) {
			grouped = append(grouped, string(p))
		}
	}

	pl := &plan{}
	if a.Size != "" && kind.Declares(ParamSize) {
		max := columnMax(view, a.Size)
		if !math.IsNaN(max) {
			pl.sizeref = max / (a.SizeMax * a.SizeMax)
		}
	}

	if kind.Declares(ParamColor) {
		switch {
		case kind.Declares(ParamColorContinuousScale) && !kind.Declares(ParamColorDiscreteSequence):
			attrs = append(attrs, ParamColor)
		case kind.Declares(ParamColorContinuousScale):
			if a.Color != "" && view.Kind(a.Color) == KindNumeric {
				attrs = append(attrs, ParamColor)
			} else {
				grouped = append(grouped, "marker.color")
			}
		case kind.Declares(ParamLineGroup) || kind.Mark == MarkHistogram2dContour:
			grouped = append(grouped, "line.color")
		default:
			grouped = append(grouped, "marker.color")
		}

		if a.Color != "" && containsParam(attrs, ParamColor) {
			if view.Kind(a.Color) != KindNumeric {
				return nil, invalidArgf("color column %q must be numeric for a continuous color scale, got %s",
					a.Color, view.Kind(a.Color))
			}
			pl.colorRange = colorRange(view, a.Color, a.ColorContinuousMidpoint)
		}
	}
	if kind.Declares(ParamLineDash) {
		grouped = append(grouped, "line.dash")
	}
	if kind.Declares(ParamSymbol) {
		grouped = append(grouped, "marker.symbol")
	}

	patch := kind.TracePatch(a)
	if kind.Declares(ParamOpacity) && a.Opacity != nil {
		patch.Sub("marker")["opacity"] = *a.Opacity
	}
	if kind.Declares(ParamLineGroup) {
		mode := "lines"
		if a.Text != "" {
			mode += "+markers+text"
		}
		patch["mode"] = mode
	} else if kind.Mark != MarkSplom && (kind.Declares(ParamSymbol) || kind.Mark == MarkScatterMapbox) {
		mode := "markers"
		if a.Text != "" {
			mode += "+text"
		}
		patch["mode"] = mode
	}
	if kind.Declares(ParamLineShape) && a.LineShape != "" {
		patch.Sub("line")["shape"] = a.LineShape
	}

	for _, g := range grouped {
		pl.mappings = append(pl.mappings, newMapping(a, g))
	}
	pl.specs = makeTraceSpecs(a, kind, attrs, patch)
	return pl, nil
}

// colorRange is [min, max] of column, or symmetric around midpoint when set.
func colorRange(view RecordView, column string, midpoint *float64) []float64 {
	lo, hi := columnBounds(view, column)
	if midpoint == nil {
		return []float64{lo, hi}
	}
	mid := *midpoint
	delta := math.Max(hi-mid, mid-lo)
	return []float64{mid - delta, mid + delta}
}

// ============================================================================
// TRACE SPECS — main trace, marginals, trendline
// ============================================================================

var rugSymbols = map[string]string{"x": "line-ns-open", "y": "line-ew-open"}

func makeTraceSpecs(a *Args, kind *ChartKind, attrs []Param, patch Object) []traceSpec {
	specs := []traceSpec{{Mark: kind.Mark, Attrs: attrs, Patch: patch}}

	for _, letter := range []string{"x", "y"} {
		marginal := a.MarginalX
		if letter == "y" {
			marginal = a.MarginalY
		}
		if marginal == "" || !kind.Declares(ParamMarginalX) {
			continue
		}
		axes := Object{"xaxis": "x2", "yaxis": "y"}
		if letter == "x" {
			axes = Object{"xaxis": "x", "yaxis": "y2"}
		}
		spec := traceSpec{Attrs: []Param{Param(letter)}, Patch: axes}
		switch marginal {
		case "histogram":
			spec.Mark = MarkHistogram
			spec.Patch["opacity"] = 0.5
		case "violin":
			spec.Mark = MarkViolin
		case "box":
			spec.Mark = MarkBox
			spec.Patch["notched"] = true
		case "rug":
			spec.Mark = MarkBox
			spec.Patch.Update(Object{
				"fillcolor": "rgba(255,255,255,0)",
				"line":      Object{"color": "rgba(255,255,255,0)"},
				"boxpoints": "all",
				"jitter":    0,
				"hoveron":   "points",
				"marker":    Object{"symbol": rugSymbols[letter]},
			})
		}
		if containsParam(attrs, ParamColor) {
			spec.Patch.Sub("marker")["color"] = colors.Plotly[0]
		}
		specs = append(specs, spec)
	}

	if a.Trendline != "" && kind.Declares(ParamTrendline) {
		spec := traceSpec{
			Mark:  MarkScatter,
			Attrs: []Param{ParamTrendline},
			Patch: Object{"mode": "lines"},
		}
		if a.TrendlineColorOverride != "" {
			spec.Patch["line"] = Object{"color": a.TrendlineColorOverride}
		}
		specs = append(specs, spec)
	}
	return specs
}

func containsParam(ps []Param, p Param) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
