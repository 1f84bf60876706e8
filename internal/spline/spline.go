// Package spline provides natural cubic spline interpolation over strictly
// increasing knots.
//
// A fitted Spline wraps a gonum natural cubic interpolant that is never
// refitted, so a single Spline may be shared between goroutines.
package spline

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// MinKnots is the fewest knots New accepts.
const MinKnots = 3

// Err* are the errors returned when a spline cannot be fitted.
var (
	ErrLength      = errors.New("knot and value counts differ")
	ErrTooFewKnots = errors.New("too few knots")
	ErrKnotOrder   = errors.New("knots must be strictly increasing")
)

// Spline is a natural cubic spline (zero second derivative at both ends).
// Queries outside the knot range are clamped onto the first or last knot.
type Spline struct {
	fit    *interp.NaturalCubic
	lo, hi float64
}

// New fits a natural cubic spline through (xs[i], ys[i]).
func New(xs, ys []float64) (Spline, error) {
	n := len(xs)
	if n != len(ys) {
		return Spline{}, fmt.Errorf("%d knots, %d values: %w", n, len(ys), ErrLength)
	}
	if n < MinKnots {
		return Spline{}, fmt.Errorf("%d knots, want at least %d: %w", n, MinKnots, ErrTooFewKnots)
	}
	for i := 1; i < n; i++ {
		// The negated comparison also rejects NaN.
		if !(xs[i] > xs[i-1]) {
			return Spline{}, fmt.Errorf("knot %d (%g) after %g: %w", i, xs[i], xs[i-1], ErrKnotOrder)
		}
	}

	var nc interp.NaturalCubic
	if err := nc.Fit(xs, ys); err != nil {
		return Spline{}, fmt.Errorf("fitting natural cubic: %w", err)
	}
	return Spline{fit: &nc, lo: xs[0], hi: xs[n-1]}, nil
}

func (s Spline) clamp(x float64) float64 {
	return math.Max(s.lo, math.Min(x, s.hi))
}

// Eval returns the spline value at x.
func (s Spline) Eval(x float64) float64 { return s.fit.Predict(s.clamp(x)) }

// Deriv returns the first derivative at x.
func (s Spline) Deriv(x float64) float64 { return s.fit.PredictDerivative(s.clamp(x)) }

// Domain returns the first and last knot.
func (s Spline) Domain() (lo, hi float64) { return s.lo, s.hi }
