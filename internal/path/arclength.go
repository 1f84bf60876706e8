package path

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/rgyhuang/BoardBot/internal/spline"
)

// quadNodes is the number of Gauss-Legendre nodes per arc-length piece.
const quadNodes = 5

// segmentLength integrates the speed |C'(t)| over [t0, t1].
func segmentLength(c spline.Curve, t0, t1 float64) float64 {
	speed := func(t float64) float64 { return math.Hypot(c.Deriv(t)) }
	return quad.Fixed(speed, t0, t1, quadNodes, quad.Legendre{}, 1)
}

// ArcSample is one row of the arc-length table: curve parameter T and the
// cumulative arc length S up to it.
type ArcSample struct {
	T float64 `json:"t"`
	S float64 `json:"s"`
}

// arcTable is the arc-length map of a fitted curve. ts holds the resampled
// parameters, ss the cumulative lengths; ss is strictly increasing with
// ss[0] = 0 and ss[len-1] the total length.
type arcTable struct {
	ts, ss []float64
}

// measure samples the curve at resolution points per waypoint interval and
// integrates arc length piecewise between consecutive samples. Every piece
// must add positive length; otherwise the inverse map s → t would be
// ill-defined and ErrNonMonotonicArcLength is returned.
func measure(c spline.Curve, waypoints, resolution int) (arcTable, error) {
	ts := uniformParams((waypoints-1)*resolution + 1)
	ss := make([]float64, len(ts))
	for j := 1; j < len(ts); j++ {
		ds := segmentLength(c, ts[j-1], ts[j])
		ss[j] = ss[j-1] + ds
		if !(ss[j] > ss[j-1]) {
			return arcTable{}, fmt.Errorf("arc length %g at t=%g does not exceed %g at t=%g: %w",
				ss[j], ts[j], ss[j-1], ts[j-1], ErrNonMonotonicArcLength)
		}
	}
	return arcTable{ts: ts, ss: ss}, nil
}

// total returns the full arc length.
func (a arcTable) total() float64 { return a.ss[len(a.ss)-1] }

// lengthAt returns the arc length from t = 0 to t, using the table for the
// whole samples and quadrature for the remainder.
func (a arcTable) lengthAt(c spline.Curve, t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return a.total()
	}
	j := sort.Search(len(a.ts), func(i int) bool { return a.ts[i] > t }) - 1
	return a.ss[j] + segmentLength(c, a.ts[j], t)
}

// samples returns a copy of the table rows.
func (a arcTable) samples() []ArcSample {
	out := make([]ArcSample, len(a.ts))
	for i := range out {
		out[i] = ArcSample{T: a.ts[i], S: a.ss[i]}
	}
	return out
}
