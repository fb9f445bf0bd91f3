package engine

import (
	"strings"
)

// ============================================================================
// EXPRESS ENGINE TYPES — Figure payloads handed to plotly.js
// ============================================================================
// The engine never renders. It produces loosely typed attribute trees
// (Object) arranged the way plotly.js expects them: a list of traces, one
// layout, and optional animation frames.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// Used by SliceView for ad-hoc datasets that are not backed by a table.
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// OBJECT — plotly.js attribute tree
// ============================================================================

// Object is a nested attribute dictionary (trace or layout fragment).
type Object map[string]any

// Update deep-merges patch into o and returns o.
// Nested Objects are merged key by key; any other value replaces the
// existing one.
func (o Object) Update(patch Object) Object {
	for k, v := range patch {
		pv, ok := v.(Object)
		if !ok {
			o[k] = v
			continue
		}
		if cur, ok := o[k].(Object); ok {
			cur.Update(pv)
			continue
		}
		o[k] = pv.Clone()
	}
	return o
}

// Clone returns a deep copy of the nested Objects. Leaf slices are shared.
func (o Object) Clone() Object {
	if o == nil {
		return Object{}
	}
	out := make(Object, len(o))
	for k, v := range o {
		if sub, ok := v.(Object); ok {
			out[k] = sub.Clone()
			continue
		}
		out[k] = v
	}
	return out
}

// Sub returns the nested Object stored at key, creating it when absent.
func (o Object) Sub(key string) Object {
	if sub, ok := o[key].(Object); ok {
		return sub
	}
	sub := Object{}
	o[key] = sub
	return sub
}

// Get resolves a dotted path such as "marker.color".
// Returns nil when any segment is missing.
func (o Object) Get(path string) any {
	var cur any = o
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(Object)
		if !ok {
			return nil
		}
		cur, ok = obj[part]
		if !ok {
			return nil
		}
	}
	return cur
}

// ============================================================================
// FIGURE — Build output
// ============================================================================

// Figure is the engine's render-ready output.
// Data holds the traces of the first animation frame (or all traces when
// there is no animation). Frames is populated only when more than one
// animation frame exists.
type Figure struct {
	Data   []Object `json:"data"`
	Layout Object   `json:"layout"`
	Frames []Frame  `json:"frames,omitempty"`

	// Trendlines carries the regression result for every group that
	// produced a trendline trace, keyed by that group's values.
	Trendlines []TrendlineFit `json:"-"`
}

// Frame is one animation step.
type Frame struct {
	Name string   `json:"name"`
	Data []Object `json:"data"`
}

// TrendlineFit records one regression performed during a build.
type TrendlineFit struct {
	Kind      string   `json:"kind"`      // "ols", "lowess"
	Group     []string `json:"group"`     // "label=value" pairs of the originating group
	Points    int      `json:"points"`    // rows fitted
	Intercept float64  `json:"intercept"` // OLS only
	Slope     float64  `json:"slope"`     // OLS only
	RSquared  float64  `json:"rSquared"`  // OLS only
}

// TraceTypes lists the "type" of each trace in Data, in order.
func (f *Figure) TraceTypes() []string {
	out := make([]string, len(f.Data))
	for i, t := range f.Data {
		out[i], _ = t["type"].(string)
	}
	return out
}

// TraceNames lists the "name" of each trace in Data, in order.
func (f *Figure) TraceNames() []string {
	out := make([]string, len(f.Data))
	for i, t := range f.Data {
		out[i], _ = t["name"].(string)
	}
	return out
}
