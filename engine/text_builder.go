package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TEXT BUILDER — One-paragraph description of a Figure
// ============================================================================

// TextData is a short human-readable description of a build.
type TextData struct {
	Kind       string   `json:"kind"`
	Traces     int      `json:"traces"`
	Frames     int      `json:"frames"`
	Legend     []string `json:"legend,omitempty"`
	Trendlines []string `json:"trendlines,omitempty"`
	Text       string   `json:"text"`
}

// BuildText describes fig, built for kind.
func BuildText(kind string, fig *Figure) *TextData {
	td := &TextData{Kind: kind, Traces: len(fig.Data), Frames: len(fig.Frames)}

	seen := make(map[string]bool)
	for _, t := range fig.Data {
		name, _ := t["name"].(string)
		if show, _ := t["showlegend"].(bool); !show || seen[name] {
			continue
		}
		seen[name] = true
		td.Legend = append(td.Legend, name)
	}

	for _, fit := range fig.Trendlines {
		td.Trendlines = append(td.Trendlines, describeFit(fit))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s chart with %s", kind, plural(td.Traces, "trace"))
	if td.Frames > 0 {
		fmt.Fprintf(&b, " across %s", plural(td.Frames, "animation frame"))
	}
	b.WriteString(".")
	if len(td.Legend) > 0 {
		fmt.Fprintf(&b, " Legend: %s.", strings.Join(td.Legend, "; "))
	}
	for _, t := range td.Trendlines {
		fmt.Fprintf(&b, " %s.", t)
	}
	td.Text = b.String()
	return td
}

func describeFit(fit TrendlineFit) string {
	group := "all rows"
	if len(fit.Group) > 0 {
		group = strings.Join(fit.Group, ", ")
	}
	if fit.Kind == TrendlineOLS {
		return fmt.Sprintf("OLS trendline for %s: y = %.4g * x + %.4g, R² = %.3f (%d points)",
			group, fit.Slope, fit.Intercept, fit.RSquared, fit.Points)
	}
	return fmt.Sprintf("LOWESS trendline for %s (%d points)", group, fit.Points)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
