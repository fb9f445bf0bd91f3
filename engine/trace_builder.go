package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================================
// TRACE BUILDER — per-group trace attributes
// ============================================================================
// Given one group's rows and one trace spec, emit the data-bearing trace
// attributes (x, y, marker.size, error bars, hover text, continuous color,
// dimensions, trendline fit) and the hover template that describes them.
// ============================================================================

// traceInput is everything makeTraceKwargs needs for one (group, spec).
type traceInput struct {
	args       *Args
	kind       *ChartKind
	spec       traceSpec
	group      *SubView
	dataset    RecordView // full dataset, for whole-column properties
	labels     []string   // "label=value" fragments of the group, copied
	sizeref    float64
	colorRange []float64 // nil on every trace but the first of a frame
	regressor  Regressor
}

// noHoverTemplate lists the trace types plotly.js draws its own hover for.
var noHoverTemplate = map[string]bool{
	MarkBox: true, MarkViolin: true, MarkHistogram2dContour: true,
	MarkSplom: true, MarkParcoords: true, MarkParcats: true,
}

// maxParcatsValues bounds the distinct values of a parallel-categories
// dimension.
const maxParcatsValues = 20

// makeTraceKwargs builds the attributes of one trace. It returns the fit
// performed when the trace spec is a trendline and one was drawn.
func makeTraceKwargs(in traceInput) (Object, *TrendlineFit, error) {
	a := in.args
	g := in.group
	if a.LineClose && in.kind.Declares(ParamLineClose) && g.Len() > 0 {
		rows := append(append([]int(nil), g.Rows()...), g.Rows()[0])
		g = newSubView(g.parent, rows)
	}

	result := in.spec.Patch.Clone()
	labels := in.labels
	header := ""
	var fitted *TrendlineFit

	for _, k := range in.spec.Attrs {
		col := a.Column(k)
		label := decoratedLabel(a, in.kind, col, k)

		switch {
		case k == ParamDimensions:
			result["dimensions"] = dimensions(a, in.spec.Mark, g, in.dataset)

		case k == ParamHoverData:
			cols := a.HoverData
			if len(cols) == 0 {
				continue
			}
			custom := make([][]any, g.Len())
			for i := range custom {
				row := make([]any, len(cols))
				for j, c := range cols {
					row[j] = jsonValue(g.Value(i, c))
				}
				custom[i] = row
			}
			result["customdata"] = custom
			for j, c := range cols {
				labels = append(labels, fmt.Sprintf("%s=%%{customdata[%d]}", a.Label(c), j))
			}

		case k == ParamTrendline:
			fit, err := trendline(in, g, result, &header, &labels)
			if err != nil {
				return nil, nil, err
			}
			fitted = fit

		case col == "" && !(in.spec.Mark == MarkHistogram && (k == ParamX || k == ParamY)):
			continue

		case k == ParamSize:
			marker := result.Sub("marker")
			marker["size"] = columnValues(g, col)
			marker["sizemode"] = "area"
			marker["sizeref"] = in.sizeref
			labels = append(labels, fmt.Sprintf("%s=%%{marker.size}", label))

		case strings.HasPrefix(string(k), "error_"):
			field := "array"
			if strings.HasSuffix(string(k), "_minus") {
				field = "arrayminus"
			}
			result.Sub(string(k)[:7])[field] = columnValues(g, col)

		case k == ParamHoverName:
			result["hovertext"] = columnValues(g, col)
			if header == "" {
				header = "<b>%{hovertext}</b><br><br>"
			}

		case k == ParamColor:
			colorKwargs(in, g, col, label, result, &labels)

		case k == ParamAnimationGroup:
			result["ids"] = columnValues(g, col)

		case k == ParamLocations:
			result["locations"] = columnValues(g, col)
			labels = append(labels, fmt.Sprintf("%s=%%{location}", label))

		default:
			if col != "" {
				result[string(k)] = columnValues(g, col)
			}
			if label != "" {
				labels = append(labels, fmt.Sprintf("%s=%%{%s}", label, k))
			}
		}
	}

	if !noHoverTemplate[in.spec.Mark] {
		result["hovertemplate"] = header + strings.Join(labels, "<br>") + "<extra></extra>"
	}
	return result, fitted, nil
}

// colorKwargs writes a continuous color column and its color scale.
// Choropleths color by z; parallel plots color their lines.
func colorKwargs(in traceInput, g RecordView, col, label string, result Object, labels *[]string) {
	var container Object
	letter := "c"
	switch in.spec.Mark {
	case MarkChoropleth:
		result["z"] = columnValues(g, col)
		container = result
		letter = "z"
		*labels = append(*labels, fmt.Sprintf("%s=%%{z}", label))
	case MarkParcats, MarkParcoords:
		container = result.Sub("line")
		container["color"] = columnValues(g, col)
		*labels = append(*labels, fmt.Sprintf("%s=%%{line.color}", label))
	default:
		container = result.Sub("marker")
		container["color"] = columnValues(g, col)
		*labels = append(*labels, fmt.Sprintf("%s=%%{marker.color}", label))
	}

	container["colorscale"] = colorscale(in.args.ColorContinuousScale)
	if in.colorRange == nil {
		container["showscale"] = false
		return
	}
	container["showscale"] = true
	container["colorbar"] = Object{"title": label}
	// An all-null color column has no range; plotly then autoscales.
	if lo, hi := in.colorRange[0], in.colorRange[1]; !math.IsNaN(lo) && !math.IsNaN(hi) {
		container[letter+"min"] = lo
		container[letter+"max"] = hi
	}
}

// colorscale spreads colors evenly over [0, 1]. A single color becomes a
// flat scale.
func colorscale(scale []string) [][]any {
	switch len(scale) {
	case 0:
		return nil
	case 1:
		return [][]any{{0.0, scale[0]}, {1.0, scale[0]}}
	}
	d := float64(len(scale) - 1)
	out := make([][]any, len(scale))
	for i, c := range scale {
		out[i] = []any{float64(i) / d, c}
	}
	return out
}

// dimensions lists the columns drawn by splom, parcoords and parcats.
// An empty dimensions argument selects every column.
func dimensions(a *Args, mark string, g RecordView, dataset RecordView) []Object {
	want := make(map[string]bool, len(a.Dimensions))
	for _, d := range a.Dimensions {
		want[d] = true
	}
	var out []Object
	for _, name := range g.Columns() {
		if len(want) > 0 && !want[name] {
			continue
		}
		if mark == MarkParcoords && dataset.Kind(name) != KindNumeric {
			continue
		}
		if mark == MarkParcats && distinctCount(dataset, name) > maxParcatsValues {
			continue
		}
		dim := Object{"label": a.Label(name), "values": columnValues(g, name)}
		if mark == MarkSplom {
			dim["axis"] = Object{"matches": true}
		}
		out = append(out, dim)
	}
	return out
}

// trendline fits the group's (x, y) pairs and writes the fitted line.
// Groups with fewer than two rows draw nothing.
func trendline(in traceInput, g RecordView, result Object, header *string, labels *[]string) (*TrendlineFit, error) {
	a := in.args
	if a.X == "" || a.Y == "" || g.Len() <= 1 {
		return nil, nil
	}
	if in.regressor == nil {
		return nil, ErrNoRegressor
	}
	if in.dataset.Kind(a.X) != KindNumeric || in.dataset.Kind(a.Y) != KindNumeric {
		return nil, invalidArgf("trendline needs numeric x and y, got %s and %s",
			in.dataset.Kind(a.X), in.dataset.Kind(a.Y))
	}

	type point struct{ x, y float64 }
	pts := make([]point, 0, g.Len())
	for i := 0; i < g.Len(); i++ {
		x, y := g.Float(i, a.X), g.Float(i, a.Y)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		pts = append(pts, point{x, y})
	}
	if len(pts) <= 1 {
		return nil, nil
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.x, p.y
	}

	reg, err := in.regressor.Fit(a.Trendline, xs, ys)
	if err != nil {
		return nil, errors.Wrapf(err, "fitting %s trendline", a.Trendline)
	}
	result["x"] = xs
	result["y"] = floatValues(reg.Fitted)

	fit := &TrendlineFit{Kind: a.Trendline, Group: append([]string(nil), in.labels...), Points: len(pts)}
	switch a.Trendline {
	case TrendlineOLS:
		fit.Intercept, fit.Slope, fit.RSquared = reg.Intercept, reg.Slope, reg.RSquared
		*header = "<b>OLS trendline</b><br>" +
			fmt.Sprintf("%s = %f * %s + %f<br>", a.Y, reg.Slope, a.X, reg.Intercept) +
			fmt.Sprintf("R<sup>2</sup>=%f<br><br>", reg.RSquared)
	case TrendlineLOWESS:
		*header = "<b>LOWESS trendline</b><br><br>"
	}
	*labels = append(*labels,
		fmt.Sprintf("%s=%%{x}", a.Label(a.X)),
		fmt.Sprintf("%s=%%{y} <b>(trend)</b>", a.Label(a.Y)),
	)
	return fit, nil
}

// decoratedLabel is the label of column in role p. On histogram-like
// kinds the value axis reads "<histfunc> of <label>", or "count".
func decoratedLabel(a *Args, kind *ChartKind, column string, p Param) string {
	label := a.Label(column)
	if kind.Declares(ParamHistfunc) &&
		((p == ParamX && a.Orientation == "h") || (p == ParamY && a.Orientation == "v")) {
		if label == "" {
			return "count"
		}
		fn := a.Histfunc
		if fn == "" {
			fn = "count"
		}
		return fn + " of " + label
	}
	return label
}

// columnValues reads column for every row of g. NaN becomes nil so the
// result marshals to JSON.
func columnValues(g RecordView, column string) []any {
	out := make([]any, g.Len())
	for i := range out {
		out[i] = jsonValue(g.Value(i, column))
	}
	return out
}

func floatValues(xs []float64) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = jsonValue(x)
	}
	return out
}

func jsonValue(v any) any {
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return nil
		}
	}
	return v
}
