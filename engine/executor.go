package engine

import (
	"log"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================================
// EXECUTOR — Build entry point
// ============================================================================
// Entry point: Build(kind, view, args, opts...)
//
// Pipeline:
//   1. Apply kind defaults to a copy of Args, validate columns
//   2. Classify arguments → trace specs + mappings
//   3. Order and partition rows by the grouping key
//   4. Per group, per trace spec: name, encode, fill trace attributes
//   5. Split traces into animation frames
//   6. Assemble layout: kind patch, geometry, animation controls
//
// The engine never renders. Build is a pure function of (view, args) plus
// the process-wide Settings read for mapbox layouts.
// ============================================================================

// Build compiles a figure for the chart kind registered as kind.
func Build(kind string, view RecordView, args Args, opts ...Option) (*Figure, error) {
	k := KindByName(kind)
	if k == nil {
		return nil, errors.Wrapf(ErrUnknownKind, "%q (known: %s)", kind, strings.Join(KindNames(), ", "))
	}
	return BuildKind(k, view, args, opts...)
}

// BuildKind compiles a figure for k.
func BuildKind(k *ChartKind, view RecordView, args Args, opts ...Option) (*Figure, error) {
	if k == nil {
		return nil, ErrUnknownKind
	}
	if view == nil {
		return nil, invalidArgf("nil dataset")
	}
	cfg := applyOptions(opts)
	a := args.withDefaults(k)

	if err := validateArgs(&a, k, view, cfg); err != nil {
		return nil, err
	}

	log.Printf("📈 Express: Building %s from %d rows, %d columns", k.Name, view.Len(), len(view.Columns()))

	pl, err := inferConfig(&a, k, view)
	if err != nil {
		return nil, err
	}

	// ── ORDER & PARTITION ─────────────────────────────────────────────────
	columns := groupColumns(pl.mappings)
	orders := buildOrders(view, columns, a.CategoryOrders)
	groups, err := partition(view, columns)
	if err != nil {
		return nil, err
	}
	sortGroups(groups, columns, orders)

	log.Printf("📈 Express: %d groups by %v, %d trace specs", len(groups), columns, len(pl.specs))

	// ── TRACES ────────────────────────────────────────────────────────────
	marks := effectiveMarks(&a, k, pl.specs, view.Len(), cfg)
	fig := &Figure{}
	var frames []Frame
	frameIndex := make(map[string]int)
	namesByFrame := make(map[string]map[string]bool)

	for _, g := range groups {
		labels, shown, frameName := groupLabels(&a, pl.mappings, g, columns)
		name := strings.Join(shown, ", ")

		names, ok := namesByFrame[frameName]
		if !ok {
			names = make(map[string]bool)
			namesByFrame[frameName] = names
		}

		sub := newSubView(view, g.Rows)
		for si, spec := range pl.specs {
			trace := newTrace(marks[si], spec.Mark, name, names)
			names[name] = true

			for _, m := range pl.mappings {
				enc := m.assign(groupValue(g, columns, m.column))
				if err := m.update.apply(trace, enc); err != nil {
					if len(pl.specs) == 1 || !isScatterMark(pl.specs[0].Mark) || m.variable != "symbol" {
						return nil, errors.Wrapf(err, "encoding %s", m.variable)
					}
				}
			}

			var colorRange []float64
			if _, seen := frameIndex[frameName]; !seen {
				colorRange = pl.colorRange
			}
			kwargs, fit, err := makeTraceKwargs(traceInput{
				args:       &a,
				kind:       k,
				spec:       spec,
				group:      sub,
				dataset:    view,
				labels:     append([]string(nil), labels...),
				sizeref:    pl.sizeref,
				colorRange: colorRange,
				regressor:  cfg.Regressor,
			})
			if err != nil {
				return nil, err
			}
			trace.Update(kwargs)
			if fit != nil {
				fig.Trendlines = append(fig.Trendlines, *fit)
			}

			fi, ok := frameIndex[frameName]
			if !ok {
				fi = len(frames)
				frameIndex[frameName] = fi
				frames = append(frames, Frame{Name: frameName})
			}
			frames[fi].Data = append(frames[fi].Data, trace)
		}
	}

	fig.Data = []Object{}
	if len(frames) > 0 {
		fig.Data = frames[0].Data
	}
	if len(frames) > 1 {
		fig.Frames = frames
	}

	// ── LAYOUT ────────────────────────────────────────────────────────────
	var all []Object
	for _, f := range frames {
		all = append(all, f.Data...)
	}
	fig.Layout = baseLayout(&a, k)
	fig.Layout.Update(configureAxes(layoutInput{
		args:     &a,
		kind:     k,
		traces:   all,
		mappings: pl.mappings,
		orders:   orders,
		dataset:  view,
		cfg:      cfg,
		settings: cfg.Settings,
	}))
	if len(marks) > 0 {
		if controls := animationControls(&a, marks[0], frames); controls != nil {
			fig.Layout.Update(controls)
		}
	}

	log.Printf("📈 Express: %s done, %d traces, %d frames", k.Name, len(fig.Data), len(fig.Frames))
	return fig, nil
}

// groupLabels returns the "label=value" fragments of a group (deduplicated),
// the subset shown in trace names, and the animation frame name.
func groupLabels(a *Args, mappings []*mapping, g RowGroup, columns []string) (labels, shown []string, frame string) {
	type entry struct {
		s    string
		show bool
	}
	seen := make(map[entry]bool)
	for _, m := range mappings {
		if m.column == "" {
			continue
		}
		v := groupValue(g, columns, m.column)
		e := entry{a.Label(m.column) + "=" + valueKey(v), m.showInName}
		if !seen[e] {
			seen[e] = true
			labels = append(labels, e.s)
			if e.show {
				shown = append(shown, e.s)
			}
		}
		if m.param == ParamAnimationFrame {
			frame = valueKey(v)
		}
	}
	return labels, shown, frame
}

// newTrace starts a trace with its identity attributes. An empty name
// renders as a single space and never shows in the legend.
func newTrace(mark, baseMark, name string, names map[string]bool) Object {
	display := name
	if display == "" {
		display = " "
	}
	trace := Object{"type": mark, "name": display}
	if baseMark != MarkParcats {
		trace["legendgroup"] = name
		trace["showlegend"] = name != "" && !names[name]
	}
	switch baseMark {
	case MarkBar, MarkViolin, MarkBox, MarkHistogram:
		trace["alignmentgroup"] = true
		trace["offsetgroup"] = name
	}
	return trace
}

// effectiveMarks returns the trace type of each spec after the render mode
// is applied: scatter and scatterpolar switch to WebGL for "webgl", or for
// "auto" on large, non-animated datasets.
func effectiveMarks(a *Args, k *ChartKind, specs []traceSpec, rows int, cfg *config) []string {
	webgl := k.Declares(ParamRenderMode) &&
		(a.RenderMode == "webgl" ||
			(a.RenderMode == "auto" && rows > cfg.WebGLThreshold && a.AnimationFrame == ""))
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Mark
		if !webgl {
			continue
		}
		switch s.Mark {
		case MarkScatter:
			out[i] = MarkScatterGL
		case MarkScatterPolar:
			out[i] = MarkScatterPolarGL
		}
	}
	return out
}

func isScatterMark(mark string) bool {
	return mark == MarkScatter || mark == MarkScatterGL
}

// baseLayout is the kind's layout patch plus the figure-level options.
func baseLayout(a *Args, k *ChartKind) Object {
	layout := k.LayoutPatch(a)
	if a.Title != "" {
		layout["title"] = a.Title
	}
	if a.Height > 0 {
		layout["height"] = a.Height
	}
	if a.Width > 0 {
		layout["width"] = a.Width
	}
	if a.Template != "" {
		layout["template"] = a.Template
	}
	layout["legend"] = Object{"tracegroupgap": 0}
	if a.Title == "" {
		layout["margin"] = Object{"t": 60}
	}
	return layout
}
