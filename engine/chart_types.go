package engine

import (
	"sort"
)

// ============================================================================
// CHART KINDS — Declarative descriptors consumed by Build
// ============================================================================
// A ChartKind names the plotly.js trace type it emits, the subplot geometry
// it lives in, the arguments it accepts, and the fixed trace/layout patches
// it contributes. There is no per-kind build code: Build reads the
// descriptor.
// ============================================================================

// Trace types (plotly.js "type" values).
const (
	MarkScatter            = "scatter"
	MarkScatterGL          = "scattergl"
	MarkBar                = "bar"
	MarkHistogram          = "histogram"
	MarkHistogram2dContour = "histogram2dcontour"
	MarkViolin             = "violin"
	MarkBox                = "box"
	MarkScatter3d          = "scatter3d"
	MarkScatterTernary     = "scatterternary"
	MarkScatterPolar       = "scatterpolar"
	MarkScatterPolarGL     = "scatterpolargl"
	MarkBarPolar           = "barpolar"
	MarkChoropleth         = "choropleth"
	MarkScatterGeo         = "scattergeo"
	MarkScatterMapbox      = "scattermapbox"
	MarkSplom              = "splom"
	MarkParcoords          = "parcoords"
	MarkParcats            = "parcats"
)

// Geometry is the subplot family a kind is drawn in.
type Geometry int

const (
	GeometryNone Geometry = iota
	GeometryCartesian
	GeometryPolar
	GeometryTernary
	GeometryScene
	GeometryGeo
	GeometryMapbox
)

// ChartKind is the declarative description of one chart type.
type ChartKind struct {
	Name     string
	Mark     string
	Geometry Geometry
	Params   []Param

	tracePatch  func(a *Args) Object
	layoutPatch func(a *Args) Object

	declared map[Param]bool
}

// Declares reports whether the kind accepts argument p.
func (k *ChartKind) Declares(p Param) bool {
	return k.declared[p]
}

// TracePatch returns the fixed trace attributes for this kind.
func (k *ChartKind) TracePatch(a *Args) Object {
	if k.tracePatch == nil {
		return Object{}
	}
	return k.tracePatch(a)
}

// LayoutPatch returns the fixed layout attributes for this kind.
func (k *ChartKind) LayoutPatch(a *Args) Object {
	if k.layoutPatch == nil {
		return Object{}
	}
	return k.layoutPatch(a)
}

// ============================================================================
// PARAMETER SETS
// ============================================================================

var (
	layoutParams    = []Param{ParamTitle, ParamTemplate, ParamWidth, ParamHeight}
	orderParams     = []Param{ParamCategoryOrders, ParamLabels}
	animationParams = []Param{ParamAnimationFrame, ParamAnimationGroup}
	facetParams     = []Param{ParamFacetRow, ParamFacetCol}
	discreteColor   = []Param{ParamColor, ParamColorDiscreteSequence, ParamColorDiscreteMap}
	continuousColor = []Param{ParamColor, ParamColorContinuousScale, ParamColorContinuousMid}
	symbolParams    = []Param{ParamSymbol, ParamSymbolSequence, ParamSymbolMap}
	dashParams      = []Param{ParamLineDash, ParamLineDashSequence, ParamLineDashMap}
	sizeParams      = []Param{ParamSize, ParamSizeMax}
	hoverParams     = []Param{ParamHoverName, ParamHoverData}
	xyErrorParams   = []Param{ParamErrorX, ParamErrorXMinus, ParamErrorY, ParamErrorYMinus}
	zErrorParams    = []Param{ParamErrorZ, ParamErrorZMinus}
	xyAxisParams    = []Param{ParamLogX, ParamLogY, ParamRangeX, ParamRangeY}
	zAxisParams     = []Param{ParamLogZ, ParamRangeZ}
	marginalParams  = []Param{ParamMarginalX, ParamMarginalY}
	trendParams     = []Param{ParamTrendline, ParamTrendlineColorOverride}
	polarParams     = []Param{ParamDirection, ParamStartAngle, ParamRangeR, ParamLogR}
	geoParams       = []Param{ParamLocationmode, ParamProjection, ParamScope, ParamCenter}
)

func params(sets ...[]Param) []Param {
	var out []Param
	seen := make(map[Param]bool)
	for _, set := range sets {
		for _, p := range set {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// ============================================================================
// REGISTRY
// ============================================================================

var kinds = map[string]*ChartKind{}

func register(k *ChartKind) *ChartKind {
	k.declared = make(map[Param]bool, len(k.Params))
	for _, p := range k.Params {
		k.declared[p] = true
	}
	kinds[k.Name] = k
	return k
}

// KindByName returns the registered kind, or nil.
func KindByName(name string) *ChartKind {
	return kinds[name]
}

// KindNames lists the registered kinds in sorted order.
func KindNames() []string {
	out := make([]string, 0, len(kinds))
	for name := range kinds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func orientationPatch(a *Args) Object {
	return Object{"orientation": a.Orientation}
}

func locationmodePatch(a *Args) Object {
	if a.Locationmode == "" {
		return Object{}
	}
	return Object{"locationmode": a.Locationmode}
}

func barLayout(defaultMode string) func(a *Args) Object {
	return func(a *Args) Object {
		mode := a.Barmode
		if mode == "" {
			mode = defaultMode
		}
		out := Object{"barmode": mode}
		if a.Barnorm != "" {
			out["barnorm"] = a.Barnorm
		}
		return out
	}
}

// ============================================================================
// KINDS
// ============================================================================

var (
	Scatter = register(&ChartKind{
		Name: "scatter", Mark: MarkScatter, Geometry: GeometryCartesian,
		Params: params(
			[]Param{ParamX, ParamY}, discreteColor, continuousColor,
			[]Param{ParamOpacity}, symbolParams, sizeParams, hoverParams,
			[]Param{ParamText}, facetParams, xyErrorParams, animationParams,
			orderParams, marginalParams, trendParams, xyAxisParams,
			[]Param{ParamRenderMode}, layoutParams,
		),
	})

	DensityContour = register(&ChartKind{
		Name: "density_contour", Mark: MarkHistogram2dContour, Geometry: GeometryCartesian,
		Params: params(
			[]Param{ParamX, ParamY}, discreteColor, facetParams, animationParams,
			orderParams, marginalParams, trendParams, xyAxisParams, layoutParams,
		),
		tracePatch: func(a *Args) Object {
			return Object{"contours": Object{"coloring": "none"}}
		},
	})

	Line = register(&ChartKind{
		Name: "line", Mark: MarkScatter, Geometry: GeometryCartesian,
		Params: params(
			[]Param{ParamX, ParamY, ParamLineGroup}, discreteColor, dashParams,
			hoverParams, []Param{ParamText}, facetParams, xyErrorParams,
			animationParams, orderParams, xyAxisParams,
			[]Param{ParamLineShape, ParamRenderMode}, layoutParams,
		),
	})

	Bar = register(&ChartKind{
		Name: "bar", Mark: MarkBar, Geometry: GeometryCartesian,
		Params: params(
			[]Param{ParamX, ParamY}, discreteColor, facetParams, hoverParams,
			[]Param{ParamText}, xyErrorParams, animationParams, orderParams,
			[]Param{ParamOrientation}, xyAxisParams, layoutParams,
		),
		tracePatch: func(a *Args) Object {
			return Object{"orientation": a.Orientation, "textposition": "auto"}
		},
		layoutPatch: func(a *Args) Object { return Object{"barmode": "relative"} },
	})

	Histogram = register(&ChartKind{
		Name: "histogram", Mark: MarkHistogram, Geometry: GeometryCartesian,
		Params: params(
			[]Param{ParamX, ParamY}, discreteColor, facetParams, animationParams,
			orderParams, []Param{ParamOrientation, ParamBarmode, ParamBarnorm, ParamHistnorm},
			xyAxisParams, []Param{ParamHistfunc, ParamCumulative, ParamNbins}, layoutParams,
		),
		tracePatch: func(a *Args) Object {
			out := orientationPatch(a)
			if a.Histnorm != "" {
				out["histnorm"] = a.Histnorm
			}
			if a.Histfunc != "" {
				out["histfunc"] = a.Histfunc
			}
			if a.Nbins > 0 {
				if a.Orientation == "h" {
					out["nbinsy"] = a.Nbins
				} else {
					out["nbinsx"] = a.Nbins
				}
			}
			if a.Cumulative {
				out["cumulative"] = Object{"enabled": true}
			}
			return out
		},
		layoutPatch: barLayout("stack"),
	})

	Violin = register(&ChartKind{
		Name: "violin", Mark: MarkViolin, Geometry: GeometryCartesian,
		Params: params(
			[]Param{ParamX, ParamY}, discreteColor, facetParams, animationParams,
			orderParams, []Param{ParamOrientation}, xyAxisParams,
			[]Param{ParamPoints, ParamBox}, layoutParams,
		),
		tracePatch: func(a *Args) Object {
			out := orientationPatch(a)
			out["box"] = Object{"visible": a.Box}
			if a.Points != "" {
				out["points"] = pointsValue(a.Points)
			}
			return out
		},
		layoutPatch: func(a *Args) Object { return Object{"violinmode": "group"} },
	})

	BoxPlot = register(&ChartKind{
		Name: "box", Mark: MarkBox, Geometry: GeometryCartesian,
		Params: params(
			[]Param{ParamX, ParamY}, discreteColor, facetParams, animationParams,
			orderParams, []Param{ParamOrientation}, xyAxisParams,
			[]Param{ParamPoints, ParamNotched}, layoutParams,
		),
		tracePatch: func(a *Args) Object {
			out := orientationPatch(a)
			out["notched"] = a.Notched
			if a.Points != "" {
				out["boxpoints"] = pointsValue(a.Points)
			}
			return out
		},
		layoutPatch: func(a *Args) Object { return Object{"boxmode": "group"} },
	})

	Scatter3d = register(&ChartKind{
		Name: "scatter_3d", Mark: MarkScatter3d, Geometry: GeometryScene,
		Params: params(
			[]Param{ParamX, ParamY, ParamZ}, discreteColor, continuousColor,
			[]Param{ParamOpacity}, symbolParams, sizeParams, []Param{ParamText},
			hoverParams, xyErrorParams, zErrorParams, animationParams, orderParams,
			xyAxisParams, zAxisParams, layoutParams,
		),
	})

	Line3d = register(&ChartKind{
		Name: "line_3d", Mark: MarkScatter3d, Geometry: GeometryScene,
		Params: params(
			[]Param{ParamX, ParamY, ParamZ}, discreteColor, dashParams,
			[]Param{ParamText, ParamLineGroup}, hoverParams, xyErrorParams,
			zErrorParams, animationParams, orderParams, xyAxisParams, zAxisParams,
			layoutParams,
		),
	})

	ScatterTernary = register(&ChartKind{
		Name: "scatter_ternary", Mark: MarkScatterTernary, Geometry: GeometryTernary,
		Params: params(
			[]Param{ParamA, ParamB, ParamC}, discreteColor, continuousColor,
			[]Param{ParamOpacity}, symbolParams, sizeParams, []Param{ParamText},
			hoverParams, animationParams, orderParams, layoutParams,
		),
	})

	LineTernary = register(&ChartKind{
		Name: "line_ternary", Mark: MarkScatterTernary, Geometry: GeometryTernary,
		Params: params(
			[]Param{ParamA, ParamB, ParamC}, discreteColor, dashParams,
			[]Param{ParamLineGroup}, hoverParams, []Param{ParamText},
			animationParams, orderParams, []Param{ParamLineShape}, layoutParams,
		),
	})

	ScatterPolar = register(&ChartKind{
		Name: "scatter_polar", Mark: MarkScatterPolar, Geometry: GeometryPolar,
		Params: params(
			[]Param{ParamR, ParamTheta}, discreteColor, continuousColor,
			[]Param{ParamOpacity}, symbolParams, sizeParams, hoverParams,
			[]Param{ParamText}, animationParams, orderParams, polarParams,
			[]Param{ParamRenderMode}, layoutParams,
		),
	})

	LinePolar = register(&ChartKind{
		Name: "line_polar", Mark: MarkScatterPolar, Geometry: GeometryPolar,
		Params: params(
			[]Param{ParamR, ParamTheta}, discreteColor, dashParams, hoverParams,
			[]Param{ParamLineGroup, ParamText}, animationParams, orderParams,
			polarParams, []Param{ParamLineClose, ParamLineShape, ParamRenderMode},
			layoutParams,
		),
	})

	BarPolar = register(&ChartKind{
		Name: "bar_polar", Mark: MarkBarPolar, Geometry: GeometryPolar,
		Params: params(
			[]Param{ParamR, ParamTheta}, discreteColor, hoverParams, animationParams,
			orderParams, []Param{ParamBarnorm, ParamBarmode}, polarParams, layoutParams,
		),
		layoutPatch: barLayout("relative"),
	})

	Choropleth = register(&ChartKind{
		Name: "choropleth", Mark: MarkChoropleth, Geometry: GeometryGeo,
		Params: params(
			[]Param{ParamLat, ParamLon, ParamLocations}, continuousColor,
			hoverParams, sizeParams, animationParams, orderParams, geoParams,
			layoutParams,
		),
		tracePatch: locationmodePatch,
	})

	ScatterGeo = register(&ChartKind{
		Name: "scatter_geo", Mark: MarkScatterGeo, Geometry: GeometryGeo,
		Params: params(
			[]Param{ParamLat, ParamLon, ParamLocations}, discreteColor,
			continuousColor, []Param{ParamText}, hoverParams, sizeParams,
			animationParams, orderParams, geoParams, layoutParams,
		),
		tracePatch: locationmodePatch,
	})

	LineGeo = register(&ChartKind{
		Name: "line_geo", Mark: MarkScatterGeo, Geometry: GeometryGeo,
		Params: params(
			[]Param{ParamLat, ParamLon, ParamLocations}, discreteColor, dashParams,
			[]Param{ParamText}, hoverParams, []Param{ParamLineGroup},
			animationParams, orderParams, geoParams, layoutParams,
		),
		tracePatch: locationmodePatch,
	})

	ScatterMapbox = register(&ChartKind{
		Name: "scatter_mapbox", Mark: MarkScatterMapbox, Geometry: GeometryMapbox,
		Params: params(
			[]Param{ParamLat, ParamLon}, discreteColor, continuousColor,
			[]Param{ParamText}, hoverParams, sizeParams, animationParams,
			orderParams, []Param{ParamZoom}, layoutParams,
		),
	})

	LineMapbox = register(&ChartKind{
		Name: "line_mapbox", Mark: MarkScatterMapbox, Geometry: GeometryMapbox,
		Params: params(
			[]Param{ParamLat, ParamLon}, discreteColor, []Param{ParamText},
			hoverParams, []Param{ParamLineGroup}, animationParams, orderParams,
			[]Param{ParamZoom}, layoutParams,
		),
	})

	ScatterMatrix = register(&ChartKind{
		Name: "scatter_matrix", Mark: MarkSplom, Geometry: GeometryNone,
		Params: params(
			[]Param{ParamDimensions}, discreteColor, continuousColor,
			[]Param{ParamOpacity}, symbolParams, sizeParams, orderParams,
			layoutParams,
		),
		layoutPatch: func(a *Args) Object { return Object{"dragmode": "select"} },
	})

	ParallelCoordinates = register(&ChartKind{
		Name: "parallel_coordinates", Mark: MarkParcoords, Geometry: GeometryNone,
		Params: params(
			[]Param{ParamDimensions}, continuousColor, []Param{ParamLabels},
			layoutParams,
		),
	})

	ParallelCategories = register(&ChartKind{
		Name: "parallel_categories", Mark: MarkParcats, Geometry: GeometryNone,
		Params: params(
			[]Param{ParamDimensions}, continuousColor, []Param{ParamLabels},
			layoutParams,
		),
	})
)

// pointsValue maps the points argument onto plotly's boolean-or-string
// attribute: "false" disables point display.
func pointsValue(s string) any {
	if s == "false" {
		return false
	}
	return s
}
