package engine

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/pkg/errors"
)

// ============================================================================
// TRENDLINES — Regression collaborator
// ============================================================================
// The engine does no modelling of its own. It hands (x, y) pairs, sorted
// by x, to a Regressor and splices the fitted y values into a line trace.
// ============================================================================

// Trendline kinds.
const (
	TrendlineOLS    = "ols"
	TrendlineLOWESS = "lowess"
)

// Regression is the result of one fit. Fitted is aligned with the xs passed
// to Fit. Intercept, Slope and RSquared are set for OLS only.
type Regression struct {
	Fitted    []float64
	Intercept float64
	Slope     float64
	RSquared  float64
}

// Regressor fits a trendline through xs, ys. xs is sorted ascending.
type Regressor interface {
	Fit(kind string, xs, ys []float64) (*Regression, error)
}

// MoremathRegressor fits with github.com/aclements/go-moremath/fit.
// Span is the LOWESS smoothing span; zero means 2/3.
type MoremathRegressor struct {
	Span float64
}

// Fit implements Regressor.
func (r MoremathRegressor) Fit(kind string, xs, ys []float64) (*Regression, error) {
	if len(xs) != len(ys) {
		return nil, errors.Errorf("trendline: %d x values but %d y values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, errors.Errorf("trendline: need at least 2 points, got %d", len(xs))
	}
	switch kind {
	case TrendlineOLS:
		res := fit.PolynomialRegression(xs, ys, nil, 1)
		out := &Regression{
			Fitted:    vec.Map(res.F, xs),
			Intercept: res.Coefficients[0],
			Slope:     res.Coefficients[1],
		}
		out.RSquared = rSquared(ys, out.Fitted)
		return out, nil
	case TrendlineLOWESS:
		span := r.Span
		if span <= 0 {
			span = 2.0 / 3.0
		}
		loess := fit.LOESS(xs, ys, 1, span)
		return &Regression{Fitted: vec.Map(loess, xs)}, nil
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "unknown trendline %q", kind)
}

func rSquared(ys, fitted []float64) float64 {
	mean := stats.Mean(ys)
	var ssRes, ssTot float64
	for i, y := range ys {
		ssRes += (y - fitted[i]) * (y - fitted[i])
		ssTot += (y - mean) * (y - mean)
	}
	if ssTot == 0 {
		return math.NaN()
	}
	return 1 - ssRes/ssTot
}
