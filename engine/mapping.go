package engine

import (
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/core/base/keylist"
	"github.com/pkg/errors"
)

// ============================================================================
// MAPPINGS — Encoding Allocator
// ============================================================================
// A mapping turns the distinct values of one grouping column into visual
// encodings (a color, a symbol, a dash style, a subplot axis). Values are
// assigned on first sight, cycling through the sequence:
//
//	encoding(v) = sequence[len(values) % len(sequence)]
//
// and cached, so the same value always gets the same encoding within a
// build. The table is seeded from the user's *_map argument.
// ============================================================================

// target is the splice point an encoding is written to.
type target int

const (
	targetNone   target = iota // grouping only
	targetMarker               // trace.marker.<field>
	targetLine                 // trace.line.<field>
	targetAxis                 // trace.<letter>axis
)

// updater writes an encoding into a trace.
type updater struct {
	target target
	field  string // marker/line attribute, or the axis letter
}

// mapping is one grouped or facet attribute of a build.
type mapping struct {
	variable   string // "color", "symbol", "dash", "x", "y", "line_group", "animation_frame"
	param      Param
	column     string
	showInName bool
	values     *keylist.List[string, string]
	sequence   []string
	update     updater
}

// assign returns the encoding for v, allocating the next one in the
// sequence the first time v is seen.
func (m *mapping) assign(v any) string {
	k := valueKey(v)
	if enc, ok := m.values.AtTry(k); ok {
		return enc
	}
	enc := ""
	if len(m.sequence) > 0 {
		enc = m.sequence[m.values.Len()%len(m.sequence)]
	}
	m.values.Set(k, enc)
	return enc
}

// apply splices enc into trace, validating it against the trace type.
func (u updater) apply(trace Object, enc string) error {
	mark, _ := trace["type"].(string)
	switch u.target {
	case targetNone:
		return nil
	case targetAxis:
		if !cartesianMarks[mark] {
			return errors.Wrapf(ErrInvalidEncoding, "%s traces have no %saxis", mark, u.field)
		}
		trace[u.field+"axis"] = enc
		return nil
	case targetMarker:
		if !acceptsMarker(mark, u.field) {
			return errors.Wrapf(ErrInvalidEncoding, "%s traces have no marker.%s", mark, u.field)
		}
		if u.field == "symbol" && !validSymbol(mark, enc) {
			return errors.Wrapf(ErrInvalidEncoding, "%q is not a valid %s marker symbol", enc, mark)
		}
		trace.Sub("marker")[u.field] = enc
		return nil
	case targetLine:
		if !acceptsLine(mark, u.field) {
			return errors.Wrapf(ErrInvalidEncoding, "%s traces have no line.%s", mark, u.field)
		}
		trace.Sub("line")[u.field] = enc
		return nil
	}
	return errors.Errorf("unknown encoding target %d", u.target)
}

// ============================================================================
// MAPPING CONSTRUCTION
// ============================================================================

// newMapping builds the mapping for a groupable param or a "parent.field"
// encoding attribute ("marker.color", "line.dash" ...).
func newMapping(a *Args, attr string) *mapping {
	switch Param(attr) {
	case ParamLineGroup, ParamAnimationFrame:
		return &mapping{
			variable: attr,
			param:    Param(attr),
			column:   a.Column(Param(attr)),
			values:   keylist.New[string, string](),
			sequence: []string{""},
		}
	case ParamFacetRow, ParamFacetCol:
		letter := "y"
		if Param(attr) == ParamFacetCol {
			letter = "x"
		}
		return &mapping{
			variable: letter,
			param:    Param(attr),
			column:   a.Column(Param(attr)),
			values:   keylist.New[string, string](),
			sequence: axisSequence(letter),
			update:   updater{target: targetAxis, field: letter},
		}
	}

	parent, field, _ := strings.Cut(attr, ".")
	m := &mapping{
		variable:   field,
		showInName: true,
		values:     keylist.New[string, string](),
		update:     updater{target: targetMarker, field: field},
	}
	if parent == "line" {
		m.update.target = targetLine
	}
	var seed map[string]string
	switch field {
	case "color":
		m.param = ParamColor
		m.sequence, seed = a.ColorDiscreteSequence, a.ColorDiscreteMap
	case "symbol":
		m.param = ParamSymbol
		m.sequence, seed = a.SymbolSequence, a.SymbolMap
	case "dash":
		m.param = ParamLineDash
		m.sequence, seed = a.LineDashSequence, a.LineDashMap
	}
	m.column = a.Column(m.param)
	for _, k := range sortedKeys(seed) {
		m.values.Set(k, seed[k])
	}
	return m
}

// maxAxes bounds the number of facet cells in one direction.
const maxAxes = 999

// axisSequence returns the axis ids for one facet direction: "x", "x2", "x3" ...
func axisSequence(letter string) []string {
	out := make([]string, maxAxes)
	out[0] = letter
	for i := 1; i < maxAxes; i++ {
		out[i] = letter + strconv.Itoa(i+1)
	}
	return out
}

// axisNumber returns the 1-based position of an axis id ("x" is 1).
func axisNumber(id string) int {
	if len(id) <= 1 {
		return 1
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 1
	}
	return n
}

// axisLayoutKey maps an axis id to its layout key: "x2" -> "xaxis2".
func axisLayoutKey(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("%saxis%s", id[:1], id[1:])
}

// ============================================================================
// TRACE TYPE CAPABILITIES
// ============================================================================

var cartesianMarks = map[string]bool{
	MarkScatter: true, MarkScatterGL: true, MarkBar: true, MarkHistogram: true,
	MarkHistogram2dContour: true, MarkViolin: true, MarkBox: true,
}

func acceptsMarker(mark, field string) bool {
	switch mark {
	case MarkParcoords, MarkParcats, MarkChoropleth:
		return false
	}
	if field != "symbol" {
		return true
	}
	switch mark {
	case MarkBar, MarkBarPolar, MarkHistogram, MarkHistogram2dContour:
		return false
	}
	return true
}

func acceptsLine(mark, field string) bool {
	switch mark {
	case MarkBar, MarkBarPolar, MarkHistogram, MarkSplom, MarkChoropleth:
		return false
	case MarkScatterMapbox, MarkBox, MarkViolin, MarkParcoords, MarkParcats:
		return field == "color"
	}
	return true
}

var symbolBases = []string{
	"circle", "square", "diamond", "cross", "x",
	"triangle-up", "triangle-down", "triangle-left", "triangle-right",
	"triangle-ne", "triangle-se", "triangle-sw", "triangle-nw",
	"pentagon", "hexagon", "hexagon2", "octagon", "star", "hexagram",
	"star-triangle-up", "star-triangle-down", "star-square", "star-diamond",
	"diamond-tall", "diamond-wide", "hourglass", "bowtie",
	"circle-cross", "circle-x", "square-cross", "square-x",
	"diamond-cross", "diamond-x", "cross-thin", "x-thin", "asterisk", "hash",
	"y-up", "y-down", "y-left", "y-right", "line-ew", "line-ns", "line-ne", "line-nw",
}

var (
	validSymbols   = map[string]bool{}
	validSymbols3d = map[string]bool{
		"circle": true, "circle-open": true, "square": true, "square-open": true,
		"diamond": true, "diamond-open": true, "cross": true, "x": true,
	}
)

func init() {
	for _, s := range symbolBases {
		for _, suffix := range []string{"", "-open", "-dot", "-open-dot"} {
			validSymbols[s+suffix] = true
		}
	}
}

// validSymbol reports whether sym is a marker symbol the trace type draws.
// Mapbox symbols are icon names and are not checked.
func validSymbol(mark, sym string) bool {
	switch mark {
	case MarkScatterMapbox:
		return true
	case MarkScatter3d:
		return validSymbols3d[sym]
	}
	return validSymbols[sym]
}
