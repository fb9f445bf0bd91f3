package engine

// ============================================================================
// VALIDATION — fail fast, before any grouping
// ============================================================================

var (
	validTrendlines  = map[string]bool{TrendlineOLS: true, TrendlineLOWESS: true}
	validMarginals   = map[string]bool{"histogram": true, "violin": true, "box": true, "rug": true}
	validRenderModes = map[string]bool{"auto": true, "svg": true, "webgl": true}
	validOrientation = map[string]bool{"v": true, "h": true}
)

// validateArgs checks that every column argument the kind declares names a
// dataset column, and that enumerated arguments hold known values.
func validateArgs(a *Args, kind *ChartKind, view RecordView, cfg *config) error {
	columns := make(map[string]bool)
	for _, c := range view.Columns() {
		columns[c] = true
	}
	check := func(p Param, col string) error {
		if col == "" || columns[col] {
			return nil
		}
		return &ColumnError{Param: p, Column: col, Valid: view.Columns()}
	}

	for _, p := range columnParams {
		if !kind.Declares(p) {
			continue
		}
		if err := check(p, a.Column(p)); err != nil {
			return err
		}
	}
	for _, p := range listParams {
		if !kind.Declares(p) {
			continue
		}
		for _, col := range a.ColumnList(p) {
			if col == "" {
				return invalidArgf("%s contains an empty column name", p)
			}
			if err := check(p, col); err != nil {
				return err
			}
		}
	}

	if kind.Declares(ParamTrendline) && a.Trendline != "" {
		if !validTrendlines[a.Trendline] {
			return invalidArgf("trendline must be %q or %q, got %q", TrendlineOLS, TrendlineLOWESS, a.Trendline)
		}
		if cfg.Regressor == nil {
			return ErrNoRegressor
		}
	}
	if kind.Declares(ParamMarginalX) {
		if m := a.MarginalX; m != "" && !validMarginals[m] {
			return invalidArgf("marginal_x must be one of histogram, violin, box or rug, got %q", m)
		}
		if m := a.MarginalY; m != "" && !validMarginals[m] {
			return invalidArgf("marginal_y must be one of histogram, violin, box or rug, got %q", m)
		}
		if (a.MarginalX != "" || a.MarginalY != "") && (a.FacetRow != "" || a.FacetCol != "") {
			return invalidArgf("marginal plots cannot be combined with facet_row or facet_col")
		}
	}
	if kind.Declares(ParamRenderMode) && a.RenderMode != "" && !validRenderModes[a.RenderMode] {
		return invalidArgf("render_mode must be auto, svg or webgl, got %q", a.RenderMode)
	}
	if kind.Declares(ParamOrientation) && a.Orientation != "" && !validOrientation[a.Orientation] {
		return invalidArgf("orientation must be \"v\" or \"h\", got %q", a.Orientation)
	}
	if kind.Declares(ParamSize) && a.Size != "" && view.Kind(a.Size) != KindNumeric {
		return invalidArgf("size column %q must be numeric, got %s", a.Size, view.Kind(a.Size))
	}
	for _, p := range []Param{ParamLogX, ParamLogY, ParamLogZ, ParamLogR} {
		letter := string(p)[len("log_"):]
		if !kind.Declares(p) || !a.axisLog(letter) {
			continue
		}
		for _, r := range a.axisRange(letter) {
			if r <= 0 {
				return invalidArgf("range_%s must be positive on a log axis, got %v", letter, a.axisRange(letter))
			}
		}
	}
	return nil
}
