package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for Build()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Regressor      Regressor // trendline fitting; nil disables trendlines
	Settings       *Settings // process-wide settings (mapbox token)
	MainPane       float64   // main subplot share next to a box/violin/rug marginal
	MainPaneDense  float64   // main subplot share next to a histogram marginal or with color
	MarginalGap    float64   // gap between main subplot and marginal
	FacetGap       float64   // gap between facet cells, as a fraction of a cell
	WebGLThreshold int       // rows above which render_mode=auto switches to WebGL
}

// WithRegressor sets the regression collaborator used for trendlines.
// Passing nil makes any trendline request fail with ErrNoRegressor.
func WithRegressor(r Regressor) Option {
	return func(c *config) {
		c.Regressor = r
	}
}

// WithSettings injects a Settings object instead of DefaultSettings.
func WithSettings(s *Settings) Option {
	return func(c *config) {
		c.Settings = s
	}
}

// WithMarginalSizes sets the share of the plot given to the main subplot
// when marginals are drawn. dense applies with a histogram marginal or a
// color column; plain applies otherwise.
func WithMarginalSizes(dense, plain float64) Option {
	return func(c *config) {
		c.MainPaneDense = dense
		c.MainPane = plain
	}
}

// WithFacetGap sets the gap between facet cells.
func WithFacetGap(gap float64) Option {
	return func(c *config) {
		c.FacetGap = gap
	}
}

// WithWebGLThreshold sets the row count above which render_mode "auto"
// switches scatter traces to their WebGL variants.
func WithWebGLThreshold(rows int) Option {
	return func(c *config) {
		c.WebGLThreshold = rows
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Regressor:      MoremathRegressor{},
		Settings:       DefaultSettings,
		MainPane:       0.84,
		MainPaneDense:  0.74,
		MarginalGap:    0.005,
		FacetGap:       0.1,
		WebGLThreshold: 1000,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Settings == nil {
		cfg.Settings = DefaultSettings
	}
	return cfg
}

// ============================================================================
// SETTINGS — process-wide, read at build time
// ============================================================================

// Settings holds values shared by every build in the process.
// Not safe for concurrent mutation: set it once at startup, or pass a
// private Settings with WithSettings.
type Settings struct {
	mapboxAccessToken string
}

// DefaultSettings is read by builds that do not pass WithSettings.
var DefaultSettings = &Settings{}

// MapboxAccessToken returns the token written into mapbox layouts.
func (s *Settings) MapboxAccessToken() string { return s.mapboxAccessToken }

// SetMapboxAccessToken sets the token written into mapbox layouts.
func (s *Settings) SetMapboxAccessToken(token string) { s.mapboxAccessToken = token }

// SetMapboxAccessToken sets the token on DefaultSettings.
func SetMapboxAccessToken(token string) {
	DefaultSettings.SetMapboxAccessToken(token)
}
