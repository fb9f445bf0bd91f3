package engine

import (
	"github.com/spektr-org/express/colors"
)

// ============================================================================
// ARGS — Chart configuration
// ============================================================================
// One flat record holds every argument any chart kind accepts. A kind only
// reads the arguments it declares (ChartKind.Params); the rest are ignored.
// Column selectors are column names; empty means "not set".
//
// Args is treated as immutable: Build works on a defaulted copy.
// ============================================================================

// Args is the configuration of one figure build.
type Args struct {
	// ── Column selectors ─────────────────────────────────────────────────
	X              string   `json:"x,omitempty" yaml:"x,omitempty"`
	Y              string   `json:"y,omitempty" yaml:"y,omitempty"`
	Z              string   `json:"z,omitempty" yaml:"z,omitempty"`
	A              string   `json:"a,omitempty" yaml:"a,omitempty"`
	B              string   `json:"b,omitempty" yaml:"b,omitempty"`
	C              string   `json:"c,omitempty" yaml:"c,omitempty"`
	R              string   `json:"r,omitempty" yaml:"r,omitempty"`
	Theta          string   `json:"theta,omitempty" yaml:"theta,omitempty"`
	Lat            string   `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lon            string   `json:"lon,omitempty" yaml:"lon,omitempty"`
	Locations      string   `json:"locations,omitempty" yaml:"locations,omitempty"`
	Dimensions     []string `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Color          string   `json:"color,omitempty" yaml:"color,omitempty"`
	Symbol         string   `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Size           string   `json:"size,omitempty" yaml:"size,omitempty"`
	LineDash       string   `json:"line_dash,omitempty" yaml:"line_dash,omitempty"`
	LineGroup      string   `json:"line_group,omitempty" yaml:"line_group,omitempty"`
	HoverName      string   `json:"hover_name,omitempty" yaml:"hover_name,omitempty"`
	HoverData      []string `json:"hover_data,omitempty" yaml:"hover_data,omitempty"`
	Text           string   `json:"text,omitempty" yaml:"text,omitempty"`
	FacetRow       string   `json:"facet_row,omitempty" yaml:"facet_row,omitempty"`
	FacetCol       string   `json:"facet_col,omitempty" yaml:"facet_col,omitempty"`
	ErrorX         string   `json:"error_x,omitempty" yaml:"error_x,omitempty"`
	ErrorXMinus    string   `json:"error_x_minus,omitempty" yaml:"error_x_minus,omitempty"`
	ErrorY         string   `json:"error_y,omitempty" yaml:"error_y,omitempty"`
	ErrorYMinus    string   `json:"error_y_minus,omitempty" yaml:"error_y_minus,omitempty"`
	ErrorZ         string   `json:"error_z,omitempty" yaml:"error_z,omitempty"`
	ErrorZMinus    string   `json:"error_z_minus,omitempty" yaml:"error_z_minus,omitempty"`
	AnimationFrame string   `json:"animation_frame,omitempty" yaml:"animation_frame,omitempty"`
	AnimationGroup string   `json:"animation_group,omitempty" yaml:"animation_group,omitempty"`

	// ── Ordering & labels ────────────────────────────────────────────────
	CategoryOrders map[string][]any  `json:"category_orders,omitempty" yaml:"category_orders,omitempty"`
	Labels         map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// ── Encodings ────────────────────────────────────────────────────────
	ColorDiscreteSequence   []string          `json:"color_discrete_sequence,omitempty" yaml:"color_discrete_sequence,omitempty"`
	ColorDiscreteMap        map[string]string `json:"color_discrete_map,omitempty" yaml:"color_discrete_map,omitempty"`
	ColorContinuousScale    []string          `json:"color_continuous_scale,omitempty" yaml:"color_continuous_scale,omitempty"`
	ColorContinuousMidpoint *float64          `json:"color_continuous_midpoint,omitempty" yaml:"color_continuous_midpoint,omitempty"`
	SymbolSequence          []string          `json:"symbol_sequence,omitempty" yaml:"symbol_sequence,omitempty"`
	SymbolMap               map[string]string `json:"symbol_map,omitempty" yaml:"symbol_map,omitempty"`
	LineDashSequence        []string          `json:"line_dash_sequence,omitempty" yaml:"line_dash_sequence,omitempty"`
	LineDashMap             map[string]string `json:"line_dash_map,omitempty" yaml:"line_dash_map,omitempty"`
	SizeMax                 float64           `json:"size_max,omitempty" yaml:"size_max,omitempty"`
	Opacity                 *float64          `json:"opacity,omitempty" yaml:"opacity,omitempty"`

	// ── Derived traces ───────────────────────────────────────────────────
	// MarginalX and MarginalY take histogram, violin, box or rug.
	MarginalX string `json:"marginal_x,omitempty" yaml:"marginal_x,omitempty"`
	MarginalY string `json:"marginal_y,omitempty" yaml:"marginal_y,omitempty"`
	// Trendline takes ols or lowess.
	Trendline              string `json:"trendline,omitempty" yaml:"trendline,omitempty"`
	TrendlineColorOverride string `json:"trendline_color_override,omitempty" yaml:"trendline_color_override,omitempty"`

	// ── Axes ─────────────────────────────────────────────────────────────
	LogX   bool      `json:"log_x,omitempty" yaml:"log_x,omitempty"`
	LogY   bool      `json:"log_y,omitempty" yaml:"log_y,omitempty"`
	LogZ   bool      `json:"log_z,omitempty" yaml:"log_z,omitempty"`
	LogR   bool      `json:"log_r,omitempty" yaml:"log_r,omitempty"`
	RangeX []float64 `json:"range_x,omitempty" yaml:"range_x,omitempty"`
	RangeY []float64 `json:"range_y,omitempty" yaml:"range_y,omitempty"`
	RangeZ []float64 `json:"range_z,omitempty" yaml:"range_z,omitempty"`
	RangeR []float64 `json:"range_r,omitempty" yaml:"range_r,omitempty"`

	// ── Mark options ─────────────────────────────────────────────────────
	RenderMode  string   `json:"render_mode,omitempty" yaml:"render_mode,omitempty"` // auto, svg, webgl
	Orientation string   `json:"orientation,omitempty" yaml:"orientation,omitempty"` // v, h
	Barmode     string   `json:"barmode,omitempty" yaml:"barmode,omitempty"`
	Barnorm     string   `json:"barnorm,omitempty" yaml:"barnorm,omitempty"`
	Histnorm    string   `json:"histnorm,omitempty" yaml:"histnorm,omitempty"`
	Histfunc    string   `json:"histfunc,omitempty" yaml:"histfunc,omitempty"`
	Cumulative  bool     `json:"cumulative,omitempty" yaml:"cumulative,omitempty"`
	Nbins       int      `json:"nbins,omitempty" yaml:"nbins,omitempty"`
	Points      string   `json:"points,omitempty" yaml:"points,omitempty"` // outliers, suspectedoutliers, all, false
	Box         bool     `json:"box,omitempty" yaml:"box,omitempty"`
	Notched     bool     `json:"notched,omitempty" yaml:"notched,omitempty"`
	Direction   string   `json:"direction,omitempty" yaml:"direction,omitempty"` // clockwise, counterclockwise
	StartAngle  *float64 `json:"start_angle,omitempty" yaml:"start_angle,omitempty"`
	LineShape   string   `json:"line_shape,omitempty" yaml:"line_shape,omitempty"`
	LineClose   bool     `json:"line_close,omitempty" yaml:"line_close,omitempty"`

	// ── Maps ─────────────────────────────────────────────────────────────
	Locationmode string     `json:"locationmode,omitempty" yaml:"locationmode,omitempty"`
	Projection   string     `json:"projection,omitempty" yaml:"projection,omitempty"`
	Scope        string     `json:"scope,omitempty" yaml:"scope,omitempty"`
	Center       *GeoCenter `json:"center,omitempty" yaml:"center,omitempty"`
	Zoom         *float64   `json:"zoom,omitempty" yaml:"zoom,omitempty"`

	// ── Layout ───────────────────────────────────────────────────────────
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
	Width    int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// GeoCenter is a map center in degrees.
type GeoCenter struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Default argument values.
const (
	DefaultSizeMax    = 20
	DefaultTemplate   = "plotly"
	DefaultHeight     = 600
	DefaultZoom       = 8
	DefaultStartAngle = 90
)

// Column returns the column named by a single-column parameter.
func (a *Args) Column(p Param) string {
	if f := a.columnField(p); f != nil {
		return *f
	}
	return ""
}

// SetColumn sets a single-column parameter. Other params are ignored.
func (a *Args) SetColumn(p Param, column string) {
	if dst := a.columnField(p); dst != nil {
		*dst = column
	}
}

func (a *Args) columnField(p Param) *string {
	switch p {
	case ParamX:
		return &a.X
	case ParamY:
		return &a.Y
	case ParamZ:
		return &a.Z
	case ParamA:
		return &a.A
	case ParamB:
		return &a.B
	case ParamC:
		return &a.C
	case ParamR:
		return &a.R
	case ParamTheta:
		return &a.Theta
	case ParamLat:
		return &a.Lat
	case ParamLon:
		return &a.Lon
	case ParamLocations:
		return &a.Locations
	case ParamColor:
		return &a.Color
	case ParamSymbol:
		return &a.Symbol
	case ParamSize:
		return &a.Size
	case ParamLineDash:
		return &a.LineDash
	case ParamLineGroup:
		return &a.LineGroup
	case ParamHoverName:
		return &a.HoverName
	case ParamText:
		return &a.Text
	case ParamFacetRow:
		return &a.FacetRow
	case ParamFacetCol:
		return &a.FacetCol
	case ParamErrorX:
		return &a.ErrorX
	case ParamErrorXMinus:
		return &a.ErrorXMinus
	case ParamErrorY:
		return &a.ErrorY
	case ParamErrorYMinus:
		return &a.ErrorYMinus
	case ParamErrorZ:
		return &a.ErrorZ
	case ParamErrorZMinus:
		return &a.ErrorZMinus
	case ParamAnimationFrame:
		return &a.AnimationFrame
	case ParamAnimationGroup:
		return &a.AnimationGroup
	}
	return nil
}

// ColumnList returns the columns named by a list parameter.
func (a *Args) ColumnList(p Param) []string {
	switch p {
	case ParamDimensions:
		return a.Dimensions
	case ParamHoverData:
		return a.HoverData
	}
	return nil
}

// Label returns the display label of a column: the labels override when
// present, otherwise the column name itself.
func (a *Args) Label(column string) string {
	if l, ok := a.Labels[column]; ok {
		return l
	}
	return column
}

// axisLog reports the log flag for an axis letter.
func (a *Args) axisLog(letter string) bool {
	switch letter {
	case "x":
		return a.LogX
	case "y":
		return a.LogY
	case "z":
		return a.LogZ
	case "r":
		return a.LogR
	}
	return false
}

// axisRange returns the range for an axis letter.
func (a *Args) axisRange(letter string) []float64 {
	switch letter {
	case "x":
		return a.RangeX
	case "y":
		return a.RangeY
	case "z":
		return a.RangeZ
	case "r":
		return a.RangeR
	}
	return nil
}

// withDefaults returns a copy of a with every unset argument that kind
// declares filled from the package defaults.
func (a Args) withDefaults(kind *ChartKind) Args {
	out := a
	if kind.Declares(ParamColorDiscreteSequence) && len(out.ColorDiscreteSequence) == 0 {
		out.ColorDiscreteSequence = colors.Plotly
	}
	if kind.Declares(ParamColorContinuousScale) && len(out.ColorContinuousScale) == 0 {
		out.ColorContinuousScale = colors.PlotlySequential
	}
	if kind.Declares(ParamSymbolSequence) && len(out.SymbolSequence) == 0 {
		out.SymbolSequence = DefaultSymbolSequence
	}
	if kind.Declares(ParamLineDashSequence) && len(out.LineDashSequence) == 0 {
		out.LineDashSequence = DefaultLineDashSequence
	}
	if kind.Declares(ParamSizeMax) && out.SizeMax <= 0 {
		out.SizeMax = DefaultSizeMax
	}
	if kind.Declares(ParamOrientation) && out.Orientation == "" {
		out.Orientation = "v"
	}
	if kind.Declares(ParamRenderMode) && out.RenderMode == "" {
		out.RenderMode = "auto"
	}
	if kind.Declares(ParamDirection) && out.Direction == "" {
		out.Direction = "clockwise"
	}
	if kind.Declares(ParamStartAngle) && out.StartAngle == nil {
		v := float64(DefaultStartAngle)
		out.StartAngle = &v
	}
	if kind.Declares(ParamZoom) && out.Zoom == nil {
		v := float64(DefaultZoom)
		out.Zoom = &v
	}
	if out.Template == "" {
		out.Template = DefaultTemplate
	}
	if out.Height <= 0 {
		out.Height = DefaultHeight
	}
	return out
}

// DefaultSymbolSequence is the default marker symbol cycle.
var DefaultSymbolSequence = []string{"circle", "diamond", "square", "x", "cross"}

// DefaultLineDashSequence is the default line dash cycle.
var DefaultLineDashSequence = []string{"solid", "dot", "dash", "longdash", "dashdot", "longdashdot"}
