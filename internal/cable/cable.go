// Package cable maps a pointer hanging from two cables to the lengths and
// rates of those cables.
//
// The anchors sit on the line y = 0: cable 1 at (0, 0) and cable 2 at
// (D, 0), where D is the anchor separation. The pointer hangs below them
// (y > 0). Each cable winds onto a spool of radius r, so a cable length rate
// v corresponds to a spool angular velocity v/r.
package cable

import (
	"errors"
	"fmt"
	"math"

	"zappem.net/pub/math/geom"
)

// Err* are the errors exported by this package.
var (
	ErrBadGeometry        = errors.New("invalid cable geometry")
	ErrDegenerateGeometry = errors.New("pointer coincides with an anchor")
	ErrUnreachable        = errors.New("cable lengths do not meet")
)

// Geometry describes the two-anchor suspension.
type Geometry struct {
	AnchorSeparation float64 `json:"anchor_separation"`
	SpoolRadius      float64 `json:"spool_radius"`
}

// Lengths holds the two cable lengths.
type Lengths struct {
	L1 float64 `json:"l1"`
	L2 float64 `json:"l2"`
}

// Rates holds a pair of per-cable rates: length rates from LengthRates or
// spool angular velocities (rad/s) from AngularVelocities.
type Rates struct {
	W1 float64 `json:"w1"`
	W2 float64 `json:"w2"`
}

// Validate checks that both the anchor separation and the spool radius are
// positive and finite.
func (g Geometry) Validate() error {
	if !(g.AnchorSeparation > 0) || math.IsInf(g.AnchorSeparation, 0) {
		return fmt.Errorf("anchor separation %g: %w", g.AnchorSeparation, ErrBadGeometry)
	}
	if !(g.SpoolRadius > 0) || math.IsInf(g.SpoolRadius, 0) {
		return fmt.Errorf("spool radius %g: %w", g.SpoolRadius, ErrBadGeometry)
	}
	return nil
}

// Lengths returns the cable lengths for a pointer at (x, y).
func (g Geometry) Lengths(x, y float64) Lengths {
	return Lengths{
		L1: math.Hypot(x, y),
		L2: math.Hypot(g.AnchorSeparation-x, y),
	}
}

// Position inverts Lengths, returning the pointer position below the anchor
// line.
func (g Geometry) Position(l Lengths) (x, y float64, err error) {
	d := g.AnchorSeparation
	x = (l.L1*l.L1 - l.L2*l.L2 + d*d) / (2 * d)
	yy := l.L1*l.L1 - x*x
	if yy < 0 {
		if !geom.Zeroish(yy) {
			return 0, 0, fmt.Errorf("l1=%g l2=%g over %g: %w", l.L1, l.L2, d, ErrUnreachable)
		}
		yy = 0
	}
	return x, math.Sqrt(yy), nil
}

// LengthRates returns how fast each cable lengthens when the pointer at
// (x, y) moves with velocity (vx, vy). A pointer on an anchor has no
// defined cable direction and yields ErrDegenerateGeometry.
// Cable 2 is anchored at (D, 0), so its rate is (−(D−x)·vx + y·vy)/L2.
func (g Geometry) LengthRates(x, y, vx, vy float64) (Rates, error) {
	l := g.Lengths(x, y)
	if geom.Zeroish(l.L1) {
		return Rates{}, fmt.Errorf("cable 1 at (%g, %g): %w", x, y, ErrDegenerateGeometry)
	}
	if geom.Zeroish(l.L2) {
		return Rates{}, fmt.Errorf("cable 2 at (%g, %g): %w", x, y, ErrDegenerateGeometry)
	}
	return Rates{
		W1: (x*vx + y*vy) / l.L1,
		W2: (-(g.AnchorSeparation-x)*vx + y*vy) / l.L2,
	}, nil
}

// AngularVelocities returns the spool angular velocities in rad/s for a
// pointer at (x, y) moving with velocity (vx, vy).
func (g Geometry) AngularVelocities(x, y, vx, vy float64) (Rates, error) {
	r, err := g.LengthRates(x, y, vx, vy)
	if err != nil {
		return Rates{}, err
	}
	return Rates{W1: r.W1 / g.SpoolRadius, W2: r.W2 / g.SpoolRadius}, nil
}
