package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/express/colors"
	"github.com/spektr-org/express/engine"
	"github.com/spektr-org/express/helpers"
)

// ============================================================================
// EXPRESS CLI — CSV in, plotly.js figure out
// ============================================================================

const version = "0.3.0"

// options is everything the command line selects.
type options struct {
	file     string
	kind     string
	argsFile string
	format   string
	out      string
	title    string
	token    string

	colorSteps int

	discover   bool
	suggest    bool
	niceLabels bool
	listKinds  bool
	version    bool

	where listFlag
	args  engine.Args
}

// listFlag collects a repeatable flag.
type listFlag []string

func (l *listFlag) String() string     { return strings.Join(*l, "; ") }
func (l *listFlag) Set(s string) error { *l = append(*l, s); return nil }

// commaFlag is a comma-separated column list.
type commaFlag struct{ dst *[]string }

func (c commaFlag) String() string {
	if c.dst == nil {
		return ""
	}
	return strings.Join(*c.dst, ",")
}

func (c commaFlag) Set(s string) error {
	*c.dst = nil
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*c.dst = append(*c.dst, part)
		}
	}
	return nil
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("express", flag.ContinueOnError)

	// ── Input / output ────────────────────────────────────────────────────
	fs.StringVar(&o.file, "file", "", "Path to CSV data file (required)")
	fs.StringVar(&o.kind, "kind", "scatter", "Chart kind (see --kinds)")
	fs.StringVar(&o.argsFile, "args", "", "YAML file of chart arguments; column flags override it")
	fs.StringVar(&o.format, "format", "json", "Output format: json, pretty, html, csv, text")
	fs.StringVar(&o.out, "out", "", "Write output to file instead of stdout")
	fs.StringVar(&o.title, "page-title", "", "HTML page title (default: chart title)")
	fs.StringVar(&o.token, "mapbox-token", os.Getenv("MAPBOX_TOKEN"), "Mapbox access token for *_mapbox kinds")
	fs.Var(&o.where, "where", "Row filter column=v1,v2 (repeatable, case-insensitive)")

	// ── Modes ─────────────────────────────────────────────────────────────
	fs.BoolVar(&o.discover, "discover", false, "Print the discovered schema and exit")
	fs.BoolVar(&o.suggest, "suggest", false, "Fill unset column arguments from the discovered schema")
	fs.BoolVar(&o.niceLabels, "nice-labels", false, "Label axes and legends with display names")
	fs.BoolVar(&o.listKinds, "kinds", false, "List chart kinds and their arguments, then exit")
	fs.BoolVar(&o.version, "version", false, "Print version and exit")

	// ── Column arguments ──────────────────────────────────────────────────
	a := &o.args
	for name, dst := range map[string]*string{
		"x": &a.X, "y": &a.Y, "z": &a.Z, "a": &a.A, "b": &a.B, "c": &a.C,
		"r": &a.R, "theta": &a.Theta, "lat": &a.Lat, "lon": &a.Lon,
		"locations": &a.Locations, "color": &a.Color, "symbol": &a.Symbol,
		"size": &a.Size, "line-dash": &a.LineDash, "line-group": &a.LineGroup,
		"hover-name": &a.HoverName, "text": &a.Text,
		"facet-row": &a.FacetRow, "facet-col": &a.FacetCol,
		"error-x": &a.ErrorX, "error-y": &a.ErrorY,
		"animation-frame": &a.AnimationFrame, "animation-group": &a.AnimationGroup,
		"marginal-x": &a.MarginalX, "marginal-y": &a.MarginalY,
		"trendline": &a.Trendline, "title": &a.Title, "template": &a.Template,
		"render-mode": &a.RenderMode, "orientation": &a.Orientation,
	} {
		fs.StringVar(dst, name, "", "Chart argument "+strings.ReplaceAll(name, "-", "_"))
	}
	fs.Var(commaFlag{&a.Dimensions}, "dimensions", "Comma-separated dimension columns")
	fs.Var(commaFlag{&a.HoverData}, "hover-data", "Comma-separated hover columns")
	fs.BoolVar(&a.LogX, "log-x", false, "Logarithmic x axis")
	fs.BoolVar(&a.LogY, "log-y", false, "Logarithmic y axis")

	// ── Palettes ──────────────────────────────────────────────────────────
	fs.Var(commaFlag{&a.ColorDiscreteSequence}, "color-sequence", "Discrete palette name (plotly, d3, g10, t10) or comma-separated colors")
	fs.Var(commaFlag{&a.ColorContinuousScale}, "color-scale", "Continuous scale name (viridis, rdbu, plotly_sequential, ...; _r reverses) or comma-separated colors")
	fs.IntVar(&o.colorSteps, "color-steps", 0, "Resample the continuous scale into this many colors")
	fs.IntVar(&a.Width, "width", 0, "Figure width in pixels")
	fs.IntVar(&a.Height, "height", 0, "Figure height in pixels")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Express — declarative charts from CSV

Usage:
  express --file gapminder.csv --kind scatter --x gdp --y life_exp --color continent
  express --file gapminder.csv --kind line --args chart.yaml --format html --out chart.html
  express --file sales.csv --kind bar --suggest --where region=North,South
  express --file gapminder.csv --x gdp --y life_exp --color pop --color-scale viridis
  express --file data.csv --discover --format pretty
  express --kinds

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), `
Environment:
  MAPBOX_TOKEN    Default for --mapbox-token

Formats:
  json      Figure JSON (default)
  pretty    Pretty-printed figure JSON
  html      Standalone page rendering the figure with plotly.js
  csv       One row per trace (frame, name, type, axes, points)
  text      Human-readable summary
`)
	}
	return fs
}

func main() {
	var o options
	fs := newFlagSet(&o)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if o.version {
		fmt.Printf("express %s\n", version)
		os.Exit(0)
	}

	// ── Output writer ─────────────────────────────────────────────────────
	var writer io.Writer = os.Stdout
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	if err := run(o, writer); err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			fs.Usage()
		}
		fatalf("%v", err)
	}
	if o.out != "" {
		log.Printf("📄 Output written to %s", o.out)
	}
}

// usageError is a command-line mistake; main prints usage for it.
type usageError string

func (e usageError) Error() string { return string(e) }

// run executes one invocation against w.
func run(o options, w io.Writer) error {
	if o.listKinds {
		return writeKinds(w)
	}
	if o.file == "" {
		return usageError("--file is required")
	}

	// ── Read data ─────────────────────────────────────────────────────────
	view, sch, err := helpers.LoadCSV(o.file)
	if err != nil {
		return err
	}

	// ── Discover mode ─────────────────────────────────────────────────────
	if o.discover {
		return writeJSON(w, sch, o.format)
	}

	// ── Arguments: YAML file, then flags, then suggestions ───────────────
	args, err := loadArgs(o.argsFile)
	if err != nil {
		return err
	}
	mergeArgs(&args, o.args)

	if o.suggest {
		suggested, err := sch.Suggest(o.kind)
		if err != nil {
			return err
		}
		fillArgs(&args, suggested)
		log.Printf("💡 Suggested: x=%q y=%q color=%q", args.X, args.Y, args.Color)
	}
	if o.niceLabels {
		labels := sch.Labels()
		for k, v := range args.Labels {
			labels[k] = v
		}
		args.Labels = labels
	}

	if err := resolvePalettes(&args, o.colorSteps); err != nil {
		return err
	}

	// ── Filters ───────────────────────────────────────────────────────────
	filters := engine.Filters{}
	for _, expr := range o.where {
		col, vals, ok := engine.ParseFilter(expr)
		if !ok {
			return usageError(fmt.Sprintf("bad --where %q, want column=v1,v2", expr))
		}
		filters[col] = append(filters[col], vals...)
	}
	filtered, err := engine.ApplyFilters(view, filters)
	if err != nil {
		return err
	}
	if !filters.IsEmpty() {
		log.Printf("🔎 Filtered: %d of %d rows", filtered.Len(), view.Len())
	}

	// ── Build ─────────────────────────────────────────────────────────────
	settings := &engine.Settings{}
	settings.SetMapboxAccessToken(o.token)
	fig, err := engine.Build(o.kind, filtered, args, engine.WithSettings(settings))
	if err != nil {
		return err
	}

	// ── Render output ─────────────────────────────────────────────────────
	switch o.format {
	case "json", "pretty":
		return writeJSON(w, fig, o.format)
	case "html":
		title := o.title
		if title == "" {
			title = args.Title
		}
		return helpers.WriteHTML(w, fig, title)
	case "csv":
		return writeCSV(w, engine.BuildTraceTable(fig, o.kind))
	case "text":
		_, err := fmt.Fprintln(w, engine.BuildText(o.kind, fig).Text)
		return err
	}
	return usageError(fmt.Sprintf("unknown format %q", o.format))
}

// ============================================================================
// ARGUMENTS
// ============================================================================

func loadArgs(path string) (engine.Args, error) {
	var args engine.Args
	if path == "" {
		return args, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return args, errors.Wrap(err, "failed to read arguments file")
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return args, errors.Wrapf(err, "failed to parse %s", path)
	}
	if len(doc.Content) == 0 {
		return args, nil
	}
	scalarToList(doc.Content[0], "color_discrete_sequence", "color_continuous_scale")
	if err := doc.Decode(&args); err != nil {
		return args, errors.Wrapf(err, "failed to parse %s", path)
	}
	log.Printf("📋 Loaded arguments from %s", path)
	return args, nil
}

// mergeArgs copies every set command-line argument over dst.
func mergeArgs(dst *engine.Args, src engine.Args) {
	for _, p := range engine.ColumnParams() {
		if v := src.Column(p); v != "" {
			dst.SetColumn(p, v)
		}
	}
	if len(src.Dimensions) > 0 {
		dst.Dimensions = src.Dimensions
	}
	if len(src.HoverData) > 0 {
		dst.HoverData = src.HoverData
	}
	if len(src.ColorDiscreteSequence) > 0 {
		dst.ColorDiscreteSequence = src.ColorDiscreteSequence
	}
	if len(src.ColorContinuousScale) > 0 {
		dst.ColorContinuousScale = src.ColorContinuousScale
	}
	setString(&dst.MarginalX, src.MarginalX)
	setString(&dst.MarginalY, src.MarginalY)
	setString(&dst.Trendline, src.Trendline)
	setString(&dst.Title, src.Title)
	setString(&dst.Template, src.Template)
	setString(&dst.RenderMode, src.RenderMode)
	setString(&dst.Orientation, src.Orientation)
	dst.LogX = dst.LogX || src.LogX
	dst.LogY = dst.LogY || src.LogY
	if src.Width != 0 {
		dst.Width = src.Width
	}
	if src.Height != 0 {
		dst.Height = src.Height
	}
}

// fillArgs copies suggested columns into the arguments left unset.
func fillArgs(dst *engine.Args, suggested engine.Args) {
	for _, p := range engine.ColumnParams() {
		if dst.Column(p) == "" {
			if v := suggested.Column(p); v != "" {
				dst.SetColumn(p, v)
			}
		}
	}
	if len(dst.Dimensions) == 0 {
		dst.Dimensions = suggested.Dimensions
	}
}

// scalarToList rewrites `key: value` entries of a YAML mapping into
// one-element lists, so `color_continuous_scale: viridis` decodes.
func scalarToList(n *yaml.Node, keys ...string) {
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind == yaml.ScalarNode && slices.Contains(keys, k.Value) {
			item := *v
			*v = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{&item}}
		}
	}
}

// resolvePalettes expands palette names in the color arguments and
// resamples the continuous scale when steps > 1.
func resolvePalettes(a *engine.Args, steps int) error {
	var err error
	if a.ColorDiscreteSequence, err = resolvePalette(a.ColorDiscreteSequence); err != nil {
		return err
	}
	if a.ColorContinuousScale, err = resolvePalette(a.ColorContinuousScale); err != nil {
		return err
	}
	if steps > 1 && len(a.ColorContinuousScale) > 0 {
		a.ColorContinuousScale, err = colors.Resample(a.ColorContinuousScale, steps)
	}
	return err
}

// resolvePalette turns a lone palette name into its colors. Anything else
// must be a list of valid CSS colors.
func resolvePalette(seq []string) ([]string, error) {
	if len(seq) == 1 {
		if named, ok := colors.ByName(seq[0]); ok {
			return named, nil
		}
	}
	for _, c := range seq {
		if _, err := colors.Parse(c); err != nil {
			return nil, usageError(fmt.Sprintf("unknown palette or color %q", c))
		}
	}
	return seq, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ============================================================================
// OUTPUT
// ============================================================================

func writeKinds(w io.Writer) error {
	for _, name := range engine.KindNames() {
		k := engine.KindByName(name)
		var cols []string
		for _, p := range k.Params {
			if engine.RoleOf(p) != engine.RoleLayout {
				cols = append(cols, fmt.Sprintf("%s(%s)", p, engine.RoleOf(p)))
			}
		}
		if _, err := fmt.Fprintf(w, "%-22s %-20s %s\n", name, k.Mark, strings.Join(cols, " ")); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, td *engine.TableData) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(td.Columns))
	for i, c := range td.Columns {
		header[i] = c.Label
	}
	cw.Write(header)
	for _, row := range td.Rows {
		cw.Write(row)
	}
	if td.Summary != nil {
		row := make([]string, len(td.Columns))
		row[0] = td.Summary.Label
		for i, c := range td.Columns {
			if v, ok := td.Summary.Values[c.Key]; ok {
				row[i] = v
			}
		}
		cw.Write(row)
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, v any, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
