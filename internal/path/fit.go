package path

import (
	"fmt"

	"github.com/rgyhuang/BoardBot/internal/spline"
	"github.com/rgyhuang/BoardBot/internal/waypoint"
)

// uniformParams returns n values evenly spaced over [0, 1].
func uniformParams(n int) []float64 {
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = float64(i) / float64(n-1)
	}
	ts[n-1] = 1
	return ts
}

// fitCurve fits the index-parameterized curve through the waypoints: the
// i-th waypoint sits at t = i/(n-1) regardless of its distance from its
// neighbours.
func fitCurve(d waypoint.Data) (spline.Curve, error) {
	c, err := spline.NewCurve(uniformParams(d.Len()), d.Xs, d.Ys)
	if err != nil {
		return spline.Curve{}, fmt.Errorf("fitting waypoint curve: %w", err)
	}
	return c, nil
}
