package helpers

import (
	"encoding/json"
	"html/template"
	"io"

	"github.com/pkg/errors"

	"github.com/spektr-org/express/engine"
)

// ============================================================================
// HTML HELPER — Standalone page that hands the figure to plotly.js
// ============================================================================

// PlotlyCDN is the plotly.js bundle the page loads.
const PlotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.CDN}}"></script>
</head>
<body>
<div id="figure" style="width:100%;height:100vh"></div>
<script>
var fig = {{.Figure}};
Plotly.newPlot("figure", fig.data, fig.layout, {responsive: true}).then(function () {
  if (fig.frames) { Plotly.addFrames("figure", fig.frames); }
});
</script>
</body>
</html>
`))

type page struct {
	Title  string
	CDN    string
	Figure template.JS
}

// WriteHTML writes fig as a self-contained HTML page.
func WriteHTML(w io.Writer, fig *engine.Figure, title string) error {
	if fig == nil {
		return errors.New("nil figure")
	}
	raw, err := json.Marshal(fig)
	if err != nil {
		return errors.Wrap(err, "failed to encode figure")
	}
	if title == "" {
		title = "Figure"
	}
	return pageTemplate.Execute(w, page{Title: title, CDN: PlotlyCDN, Figure: template.JS(raw)})
}
