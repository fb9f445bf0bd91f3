// Package colors holds the named color sequences used as encoding defaults
// and the helpers that turn go-gg continuous palettes into discrete scales.
package colors

import (
	"image/color"
	"strings"

	cc "cogentcore.org/core/colors"
	"github.com/aclements/go-gg/palette"
	"github.com/pkg/errors"
)

// ============================================================================
// QUALITATIVE — cycled for discrete color encodings
// ============================================================================

// Plotly is the default discrete color sequence.
var Plotly = []string{"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#19d3f3", "#e763fa"}

var D3 = []string{
	"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
	"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
}

var G10 = []string{
	"#3366CC", "#DC3912", "#FF9900", "#109618", "#990099",
	"#0099C6", "#DD4477", "#66AA00", "#B82E2E", "#316395",
}

var T10 = []string{
	"#4C78A8", "#F58518", "#E45756", "#72B7B2", "#54A24B",
	"#EECA3B", "#B279A2", "#FF9DA6", "#9D755D", "#BAB0AC",
}

// ============================================================================
// SEQUENTIAL — continuous color scales
// ============================================================================

// PlotlySequential is the default continuous color scale.
var PlotlySequential = []string{
	"#0508b8", "#1910d8", "#3c19f0", "#6b1cfb", "#981cfd", "#bf1cfd",
	"#dd2bfd", "#f246fe", "#fc67fd", "#fea5fd", "#febefe", "#fec3fe",
}

// ============================================================================
// DIVERGING — continuous scales with a meaningful midpoint (colorbrewer)
// ============================================================================

var (
	BrBG     = []string{"rgb(84,48,5)", "rgb(140,81,10)", "rgb(191,129,45)", "rgb(223,194,125)", "rgb(246,232,195)", "rgb(245,245,245)", "rgb(199,234,229)", "rgb(128,205,193)", "rgb(53,151,143)", "rgb(1,102,94)", "rgb(0,60,48)"}
	PRGn     = []string{"rgb(64,0,75)", "rgb(118,42,131)", "rgb(153,112,171)", "rgb(194,165,207)", "rgb(231,212,232)", "rgb(247,247,247)", "rgb(217,240,211)", "rgb(166,219,160)", "rgb(90,174,97)", "rgb(27,120,55)", "rgb(0,68,27)"}
	PiYG     = []string{"rgb(142,1,82)", "rgb(197,27,125)", "rgb(222,119,174)", "rgb(241,182,218)", "rgb(253,224,239)", "rgb(247,247,247)", "rgb(230,245,208)", "rgb(184,225,134)", "rgb(127,188,65)", "rgb(77,146,33)", "rgb(39,100,25)"}
	PuOr     = []string{"rgb(127,59,8)", "rgb(179,88,6)", "rgb(224,130,20)", "rgb(253,184,99)", "rgb(254,224,182)", "rgb(247,247,247)", "rgb(216,218,235)", "rgb(178,171,210)", "rgb(128,115,172)", "rgb(84,39,136)", "rgb(45,0,75)"}
	RdBu     = []string{"rgb(103,0,31)", "rgb(178,24,43)", "rgb(214,96,77)", "rgb(244,165,130)", "rgb(253,219,199)", "rgb(247,247,247)", "rgb(209,229,240)", "rgb(146,197,222)", "rgb(67,147,195)", "rgb(33,102,172)", "rgb(5,48,97)"}
	RdGy     = []string{"rgb(103,0,31)", "rgb(178,24,43)", "rgb(214,96,77)", "rgb(244,165,130)", "rgb(253,219,199)", "rgb(255,255,255)", "rgb(224,224,224)", "rgb(186,186,186)", "rgb(135,135,135)", "rgb(77,77,77)", "rgb(26,26,26)"}
	RdYlBu   = []string{"rgb(165,0,38)", "rgb(215,48,39)", "rgb(244,109,67)", "rgb(253,174,97)", "rgb(254,224,144)", "rgb(255,255,191)", "rgb(224,243,248)", "rgb(171,217,233)", "rgb(116,173,209)", "rgb(69,117,180)", "rgb(49,54,149)"}
	RdYlGn   = []string{"rgb(165,0,38)", "rgb(215,48,39)", "rgb(244,109,67)", "rgb(253,174,97)", "rgb(254,224,139)", "rgb(255,255,191)", "rgb(217,239,139)", "rgb(166,217,106)", "rgb(102,189,99)", "rgb(26,152,80)", "rgb(0,104,55)"}
	Spectral = []string{"rgb(158,1,66)", "rgb(213,62,79)", "rgb(244,109,67)", "rgb(253,174,97)", "rgb(254,224,139)", "rgb(255,255,191)", "rgb(230,245,152)", "rgb(171,221,164)", "rgb(102,194,165)", "rgb(50,136,189)", "rgb(94,79,162)"}
)

// viridisSteps is how many stops Viridis is sampled into when looked up by name.
const viridisSteps = 11

var named = map[string][]string{
	"plotly":   Plotly,
	"d3":       D3,
	"g10":      G10,
	"t10":      T10,
	"brbg":     BrBG,
	"prgn":     PRGn,
	"piyg":     PiYG,
	"puor":     PuOr,
	"rdbu":     RdBu,
	"rdgy":     RdGy,
	"rdylbu":   RdYlBu,
	"rdylgn":   RdYlGn,
	"spectral": Spectral,
}

// ByName looks up a sequence by case-insensitive name. "plotly_sequential"
// and "viridis" resolve to continuous scales; a "_r" suffix reverses.
func ByName(name string) ([]string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	reverse := strings.HasSuffix(key, "_r")
	key = strings.TrimSuffix(key, "_r")

	var seq []string
	switch key {
	case "plotly_sequential":
		seq = PlotlySequential
	case "viridis":
		seq = Sample(palette.Viridis, viridisSteps)
	default:
		s, ok := named[key]
		if !ok {
			return nil, false
		}
		seq = s
	}
	if reverse {
		return Reversed(seq), true
	}
	return seq, true
}

// Reversed returns a reversed copy of seq.
func Reversed(seq []string) []string {
	out := make([]string, len(seq))
	for i, c := range seq {
		out[len(seq)-1-i] = c
	}
	return out
}

// ============================================================================
// PALETTE SAMPLING — go-gg continuous palettes → discrete scales
// ============================================================================

// Sample evaluates p at n evenly spaced points in [0, 1] and returns the
// colors as hex strings. n < 2 yields the palette's start color only.
func Sample(p palette.Continuous, n int) []string {
	if n < 2 {
		return []string{Hex(p.Map(0))}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = Hex(p.Map(float64(i) / float64(n-1)))
	}
	return out
}

// Gradient builds a go-gg palette that interpolates between the given
// CSS colors.
func Gradient(seq []string) (palette.RGBGradient, error) {
	if len(seq) == 0 {
		return palette.RGBGradient{}, errors.New("colors: empty sequence")
	}
	g := palette.RGBGradient{Colors: make([]color.RGBA, len(seq))}
	for i, s := range seq {
		c, err := Parse(s)
		if err != nil {
			return palette.RGBGradient{}, err
		}
		g.Colors[i] = c
	}
	return g, nil
}

// Resample re-spaces seq into n colors by interpolating through it.
func Resample(seq []string, n int) ([]string, error) {
	g, err := Gradient(seq)
	if err != nil {
		return nil, err
	}
	return Sample(g, n), nil
}

// Hex renders c as "#rrggbb".
func Hex(c color.Color) string {
	return strings.ToLower(cc.AsHex(cc.AsRGBA(c))[:7])
}

// Parse reads a CSS color: hex, rgb(), rgba(), hsl() or a named color.
func Parse(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, errors.New("colors: empty color")
	}
	c, err := cc.FromString(s, color.Black)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "colors: bad color %q", s)
	}
	return c, nil
}
