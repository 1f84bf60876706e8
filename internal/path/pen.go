package path

import (
	"math"

	"github.com/rgyhuang/BoardBot/internal/spline"
	"github.com/rgyhuang/BoardBot/internal/waypoint"
)

// penCurve interpolates pen states (up = 0, down = 1) over arc length.
// The interpolant is smooth, so it can overshoot or ring near a transition;
// rounding absorbs most of that but a transition may land slightly off the
// waypoint that introduced it.
type penCurve struct {
	s spline.Spline
}

// fitPen fits the pen interpolant with the waypoint pen states placed at the
// waypoints' arc lengths.
func fitPen(knots []float64, states []waypoint.PenState) (penCurve, error) {
	vs := make([]float64, len(states))
	for i, p := range states {
		vs[i] = float64(p)
	}
	s, err := spline.New(knots, vs)
	if err != nil {
		return penCurve{}, err
	}
	return penCurve{s: s}, nil
}

// at rounds the interpolated value to the nearest state; overshoot beyond
// either end counts as that end.
func (p penCurve) at(s float64) waypoint.PenState {
	if math.Round(p.s.Eval(s)) >= float64(waypoint.PenDown) {
		return waypoint.PenDown
	}
	return waypoint.PenUp
}
