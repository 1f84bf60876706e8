package spline

import "fmt"

// Curve is a planar curve made of two natural cubic splines sharing one
// knot vector.
type Curve struct {
	x, y Spline
}

// NewCurve fits a planar natural cubic spline through (xs[i], ys[i]) at
// parameters ts[i].
func NewCurve(ts, xs, ys []float64) (Curve, error) {
	sx, err := New(ts, xs)
	if err != nil {
		return Curve{}, fmt.Errorf("x component: %w", err)
	}
	sy, err := New(ts, ys)
	if err != nil {
		return Curve{}, fmt.Errorf("y component: %w", err)
	}
	return Curve{x: sx, y: sy}, nil
}

// Eval returns the point at parameter t.
func (c Curve) Eval(t float64) (x, y float64) {
	return c.x.Eval(t), c.y.Eval(t)
}

// Deriv returns the tangent vector at parameter t.
func (c Curve) Deriv(t float64) (dx, dy float64) {
	return c.x.Deriv(t), c.y.Deriv(t)
}

// Domain returns the parameter range covered by the knots.
func (c Curve) Domain() (lo, hi float64) {
	return c.x.Domain()
}
