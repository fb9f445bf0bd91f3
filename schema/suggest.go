package schema

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/spektr-org/express/engine"
)

// ============================================================================
// SUGGEST — Heuristic chart arguments from a discovered schema
// ============================================================================
// Fills the column selectors a chart kind needs from column roles:
// measures go to positions, the first low-cardinality dimension to color,
// temporal dimensions to the x axis of line charts, lat/lon by name.
// Only arguments the kind declares are set; anything the schema cannot
// supply is left empty for the caller.
// ============================================================================

var (
	latNames = []string{"lat", "latitude"}
	lonNames = []string{"lon", "lng", "long", "longitude"}
)

// Suggest proposes arguments for the chart kind named kind.
func (c Config) Suggest(kind string) (engine.Args, error) {
	k := engine.KindByName(kind)
	if k == nil {
		return engine.Args{}, errors.Wrapf(engine.ErrUnknownKind, "%q", kind)
	}

	measures := c.MeasureKeys()
	var temporal, categorical, lowCard []string
	for _, col := range c.Columns {
		if col.Role != RoleDimension {
			continue
		}
		if col.Kind == engine.KindTemporal {
			temporal = append(temporal, col.Key)
			continue
		}
		categorical = append(categorical, col.Key)
		if col.CardinalityHint == "low" {
			lowCard = append(lowCard, col.Key)
		}
	}

	var a engine.Args
	pick := newPicker(measures)

	switch k.Geometry {
	case engine.GeometryCartesian:
		switch k.Mark {
		case engine.MarkHistogram:
			a.X = pick.next()
		case engine.MarkBar, engine.MarkBox, engine.MarkViolin:
			a.X = first(categorical)
			a.Y = pick.next()
		default:
			if k.Declares(engine.ParamLineGroup) && len(temporal) > 0 {
				a.X = temporal[0]
			} else {
				a.X = pick.next()
			}
			a.Y = pick.next()
		}
		a.Color = firstExcept(lowCard, a.X)

	case engine.GeometryScene:
		a.X, a.Y, a.Z = pick.next(), pick.next(), pick.next()
		a.Color = first(lowCard)

	case engine.GeometryTernary:
		a.A, a.B, a.C = pick.next(), pick.next(), pick.next()
		a.Color = first(lowCard)

	case engine.GeometryPolar:
		a.R = pick.next()
		a.Theta = first(categorical)
		a.Color = firstExcept(lowCard, a.Theta)

	case engine.GeometryMapbox, engine.GeometryGeo:
		a.Lat = c.byName(latNames)
		a.Lon = c.byName(lonNames)
		if k.Mark == engine.MarkChoropleth || a.Lat == "" || a.Lon == "" {
			a.Lat, a.Lon = "", ""
			a.Locations = first(categorical)
		}
		if k.Mark == engine.MarkChoropleth {
			a.Color = pick.next()
		} else {
			a.Color = firstExcept(lowCard, a.Locations)
		}

	default:
		switch k.Mark {
		case engine.MarkParcats:
			a.Dimensions = lowCard
		case engine.MarkParcoords:
			a.Dimensions = measures
		default:
			a.Dimensions = measures
			a.Color = first(lowCard)
		}
	}

	if !k.Declares(engine.ParamColor) {
		a.Color = ""
	}
	return a, nil
}

// byName finds a column whose lower-cased key is one of names.
func (c Config) byName(names []string) string {
	for _, col := range c.Columns {
		key := strings.ToLower(strings.TrimSpace(col.Key))
		for _, n := range names {
			if key == n {
				return col.Key
			}
		}
	}
	return ""
}

// picker hands out columns in order, then "" once exhausted.
type picker struct {
	cols []string
	i    int
}

func newPicker(cols []string) *picker { return &picker{cols: cols} }

func (p *picker) next() string {
	if p.i >= len(p.cols) {
		return ""
	}
	p.i++
	return p.cols[p.i-1]
}

func first(cols []string) string {
	if len(cols) == 0 {
		return ""
	}
	return cols[0]
}

func firstExcept(cols []string, skip string) string {
	for _, c := range cols {
		if c != skip {
			return c
		}
	}
	return ""
}
