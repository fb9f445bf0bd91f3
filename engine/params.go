package engine

// ============================================================================
// PARAMETERS & ROLES
// ============================================================================
// Every chart argument has a static role. The classifier uses the role to
// decide whether a column feeds a trace field directly, is split into
// groups with a cyclic encoding, routes groups to subplots/frames, spawns
// derived traces, or only touches the layout.
// ============================================================================

// Param names a chart argument, using the snake_case spelling of Args tags.
type Param string

const (
	ParamX              Param = "x"
	ParamY              Param = "y"
	ParamZ              Param = "z"
	ParamA              Param = "a"
	ParamB              Param = "b"
	ParamC              Param = "c"
	ParamR              Param = "r"
	ParamTheta          Param = "theta"
	ParamLat            Param = "lat"
	ParamLon            Param = "lon"
	ParamLocations      Param = "locations"
	ParamDimensions     Param = "dimensions"
	ParamColor          Param = "color"
	ParamSymbol         Param = "symbol"
	ParamSize           Param = "size"
	ParamLineDash       Param = "line_dash"
	ParamLineGroup      Param = "line_group"
	ParamHoverName      Param = "hover_name"
	ParamHoverData      Param = "hover_data"
	ParamText           Param = "text"
	ParamFacetRow       Param = "facet_row"
	ParamFacetCol       Param = "facet_col"
	ParamErrorX         Param = "error_x"
	ParamErrorXMinus    Param = "error_x_minus"
	ParamErrorY         Param = "error_y"
	ParamErrorYMinus    Param = "error_y_minus"
	ParamErrorZ         Param = "error_z"
	ParamErrorZMinus    Param = "error_z_minus"
	ParamAnimationFrame Param = "animation_frame"
	ParamAnimationGroup Param = "animation_group"

	ParamMarginalX Param = "marginal_x"
	ParamMarginalY Param = "marginal_y"
	ParamTrendline Param = "trendline"

	ParamCategoryOrders         Param = "category_orders"
	ParamLabels                 Param = "labels"
	ParamColorDiscreteSequence  Param = "color_discrete_sequence"
	ParamColorDiscreteMap       Param = "color_discrete_map"
	ParamColorContinuousScale   Param = "color_continuous_scale"
	ParamColorContinuousMid     Param = "color_continuous_midpoint"
	ParamSymbolSequence         Param = "symbol_sequence"
	ParamSymbolMap              Param = "symbol_map"
	ParamLineDashSequence       Param = "line_dash_sequence"
	ParamLineDashMap            Param = "line_dash_map"
	ParamSizeMax                Param = "size_max"
	ParamOpacity                Param = "opacity"
	ParamTrendlineColorOverride Param = "trendline_color_override"
	ParamLogX                   Param = "log_x"
	ParamLogY                   Param = "log_y"
	ParamLogZ                   Param = "log_z"
	ParamLogR                   Param = "log_r"
	ParamRangeX                 Param = "range_x"
	ParamRangeY                 Param = "range_y"
	ParamRangeZ                 Param = "range_z"
	ParamRangeR                 Param = "range_r"
	ParamRenderMode             Param = "render_mode"
	ParamOrientation            Param = "orientation"
	ParamBarmode                Param = "barmode"
	ParamBarnorm                Param = "barnorm"
	ParamHistnorm               Param = "histnorm"
	ParamHistfunc               Param = "histfunc"
	ParamCumulative             Param = "cumulative"
	ParamNbins                  Param = "nbins"
	ParamPoints                 Param = "points"
	ParamBox                    Param = "box"
	ParamNotched                Param = "notched"
	ParamDirection              Param = "direction"
	ParamStartAngle             Param = "start_angle"
	ParamLineShape              Param = "line_shape"
	ParamLineClose              Param = "line_close"
	ParamLocationmode           Param = "locationmode"
	ParamProjection             Param = "projection"
	ParamScope                  Param = "scope"
	ParamCenter                 Param = "center"
	ParamZoom                   Param = "zoom"
	ParamTitle                  Param = "title"
	ParamTemplate               Param = "template"
	ParamWidth                  Param = "width"
	ParamHeight                 Param = "height"
)

// Role classifies how an argument participates in a build.
type Role int

const (
	RoleLayout  Role = iota // layout-only: sequences, maps, ranges, titles
	RolePlain               // one column feeds one trace field
	RoleGrouped             // distinct values receive a cyclic encoding
	RoleFacet               // distinct values route to subplots or frames
	RoleDerived             // spawns extra trace specs
)

func (r Role) String() string {
	switch r {
	case RolePlain:
		return "plain"
	case RoleGrouped:
		return "grouped"
	case RoleFacet:
		return "facet"
	case RoleDerived:
		return "derived"
	default:
		return "layout"
	}
}

var paramRoles = map[Param]Role{
	ParamX: RolePlain, ParamY: RolePlain, ParamZ: RolePlain,
	ParamA: RolePlain, ParamB: RolePlain, ParamC: RolePlain,
	ParamR: RolePlain, ParamTheta: RolePlain,
	ParamLat: RolePlain, ParamLon: RolePlain, ParamLocations: RolePlain,
	ParamDimensions: RolePlain, ParamSize: RolePlain,
	ParamHoverName: RolePlain, ParamHoverData: RolePlain, ParamText: RolePlain,
	ParamErrorX: RolePlain, ParamErrorXMinus: RolePlain,
	ParamErrorY: RolePlain, ParamErrorYMinus: RolePlain,
	ParamErrorZ: RolePlain, ParamErrorZMinus: RolePlain,
	ParamAnimationGroup: RolePlain,

	ParamColor: RoleGrouped, ParamSymbol: RoleGrouped,
	ParamLineDash: RoleGrouped, ParamLineGroup: RoleGrouped,

	ParamFacetRow: RoleFacet, ParamFacetCol: RoleFacet,
	ParamAnimationFrame: RoleFacet,

	ParamMarginalX: RoleDerived, ParamMarginalY: RoleDerived,
	ParamTrendline: RoleDerived,
}

// RoleOf returns the static role of p. Unknown params are layout-only.
func RoleOf(p Param) Role {
	return paramRoles[p]
}

// attributeOrder is the emission order of the column-valued arguments.
// plainOrder and groupableOrder are its role-filtered views.
var attributeOrder = []Param{
	ParamAnimationFrame, ParamFacetRow, ParamFacetCol, ParamLineGroup,
	ParamX, ParamY, ParamZ, ParamA, ParamB, ParamC, ParamR, ParamTheta,
	ParamSize, ParamDimensions, ParamHoverName, ParamHoverData, ParamText,
	ParamErrorX, ParamErrorXMinus, ParamErrorY, ParamErrorYMinus,
	ParamErrorZ, ParamErrorZMinus,
	ParamLat, ParamLon, ParamLocations, ParamAnimationGroup,
	ParamColor, ParamSymbol, ParamLineDash,
}

var (
	// plainOrder is the order in which plain attributes are emitted.
	plainOrder = paramsWhere(func(p Param) bool { return RoleOf(p) == RolePlain })

	// groupableOrder is the order of the always-grouped attributes: the
	// facet roles plus line_group, which groups without an encoding. The
	// first is the outermost sort key.
	groupableOrder = paramsWhere(func(p Param) bool {
		return RoleOf(p) == RoleFacet || p == ParamLineGroup
	})
)

func paramsWhere(keep func(Param) bool) []Param {
	var out []Param
	for _, p := range attributeOrder {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// columnParams are the arguments that name exactly one dataset column.
var columnParams = []Param{
	ParamX, ParamY, ParamZ, ParamA, ParamB, ParamC, ParamR, ParamTheta,
	ParamLat, ParamLon, ParamLocations,
	ParamColor, ParamSymbol, ParamSize, ParamLineDash, ParamLineGroup,
	ParamHoverName, ParamText, ParamFacetRow, ParamFacetCol,
	ParamErrorX, ParamErrorXMinus, ParamErrorY, ParamErrorYMinus,
	ParamErrorZ, ParamErrorZMinus,
	ParamAnimationFrame, ParamAnimationGroup,
}

// ColumnParams lists the single-column arguments in emission order.
func ColumnParams() []Param {
	return append([]Param(nil), columnParams...)
}

// listParams are the arguments that name a list of dataset columns.
var listParams = []Param{ParamDimensions, ParamHoverData}
