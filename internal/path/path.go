// Package path turns an ordered waypoint sequence into a drawable path: a
// smooth curve re-expressed in arc length, a pen state along it and a speed
// profile over its length.
//
// Construction is the expensive part. It fits a natural cubic spline through
// the waypoints at evenly spaced parameters, integrates the curve's speed to
// tabulate arc length, and refits the curve, its parameter and the pen
// states as functions of arc length. A Path is immutable afterwards and may
// be sampled from several goroutines at once.
package path

import (
	"errors"
	"fmt"
	"math"

	"zappem.net/pub/math/geom"

	"github.com/rgyhuang/BoardBot/internal/kinematics"
	"github.com/rgyhuang/BoardBot/internal/spline"
	"github.com/rgyhuang/BoardBot/internal/waypoint"
)

// DefaultResolution is the default number of arc-length samples taken per
// waypoint interval.
const DefaultResolution = 4

// Err* are the errors returned by New.
var (
	// ErrInvalidInput marks waypoint sequences that cannot form a path.
	ErrInvalidInput = waypoint.ErrInvalidInput
	// ErrNonMonotonicArcLength marks a curve whose tabulated arc length
	// fails to increase strictly from one sample to the next.
	ErrNonMonotonicArcLength = errors.New("arc length is not strictly increasing")
)

type config struct {
	resolution int
}

// Option configures New.
type Option func(*config)

// WithResolution sets the number of arc-length samples per waypoint
// interval. Values below 1 are treated as 1.
func WithResolution(n int) Option {
	return func(c *config) { c.resolution = max(1, n) }
}

// MotionSample is the state the path prescribes at one instant.
type MotionSample struct {
	X       float64           `json:"x"`
	Y       float64           `json:"y"`
	Heading geom.Angle        `json:"heading"` // radians, atan2 of the tangent
	Speed   float64           `json:"speed"`
	Pen     waypoint.PenState `json:"pen"`
}

// Velocity returns the velocity vector of the sample.
func (m MotionSample) Velocity() (vx, vy float64) {
	return m.Speed * m.Heading.C(), m.Speed * m.Heading.S()
}

// Path is a waypoint sequence prepared for motion.
type Path struct {
	curve   spline.Curve  // t → (x, y), t uniform per waypoint
	arc     arcTable      // t ↔ s samples
	inverse spline.Spline // s → t
	trace   spline.Curve  // s → (x, y)
	pen     penCurve      // s → pen state
	limits  kinematics.ConstantAcceleration
	profile kinematics.Profile
}

// New builds a Path through the waypoints in d with a speed profile under
// limits. It fails with ErrInvalidInput for malformed waypoints and
// ErrNonMonotonicArcLength when the fitted curve cannot be re-expressed in
// arc length.
func New(d waypoint.Data, limits kinematics.ConstantAcceleration, opts ...Option) (*Path, error) {
	cfg := config{resolution: DefaultResolution}
	for _, o := range opts {
		o(&cfg)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	curve, err := fitCurve(d)
	if err != nil {
		return nil, err
	}
	arc, err := measure(curve, d.Len(), cfg.resolution)
	if err != nil {
		return nil, err
	}

	xs := make([]float64, len(arc.ts))
	ys := make([]float64, len(arc.ts))
	for i, t := range arc.ts {
		xs[i], ys[i] = curve.Eval(t)
	}
	inverse, err := spline.New(arc.ss, arc.ts)
	if err != nil {
		return nil, fmt.Errorf("fitting arc length inverse: %w", err)
	}
	trace, err := spline.NewCurve(arc.ss, xs, ys)
	if err != nil {
		return nil, fmt.Errorf("fitting arc length curve: %w", err)
	}

	knots := make([]float64, d.Len())
	for i := range knots {
		knots[i] = arc.ss[i*cfg.resolution]
	}
	pen, err := fitPen(knots, d.PenStates())
	if err != nil {
		return nil, fmt.Errorf("fitting pen states: %w", err)
	}

	profile, err := limits.Profile(arc.total())
	if err != nil {
		return nil, fmt.Errorf("building speed profile: %w", err)
	}

	return &Path{
		curve:   curve,
		arc:     arc,
		inverse: inverse,
		trace:   trace,
		pen:     pen,
		limits:  limits,
		profile: profile,
	}, nil
}

// TotalLength returns the arc length of the whole path.
func (p *Path) TotalLength() float64 { return p.arc.total() }

// Profile returns the speed profile over the path.
func (p *Path) Profile() kinematics.Profile { return p.profile }

// Limits returns the kinematic limits the profile was built from.
func (p *Path) Limits() kinematics.ConstantAcceleration { return p.limits }

// Table returns a copy of the arc-length table.
func (p *Path) Table() []ArcSample { return p.arc.samples() }

// clamp limits an arc length to the path.
func (p *Path) clamp(s float64) float64 {
	return math.Max(0, math.Min(s, p.arc.total()))
}

// ArcLengthAt returns the arc length from the start to curve parameter t.
func (p *Path) ArcLengthAt(t float64) float64 { return p.arc.lengthAt(p.curve, t) }

// ParamAt returns the curve parameter at arc length s.
func (p *Path) ParamAt(s float64) float64 { return p.inverse.Eval(p.clamp(s)) }

// CurveAt evaluates the index-parameterized curve at t.
func (p *Path) CurveAt(t float64) (x, y float64) { return p.curve.Eval(t) }

// PositionAt returns the point at arc length s.
func (p *Path) PositionAt(s float64) (x, y float64) { return p.trace.Eval(p.clamp(s)) }

// HeadingAt returns the tangent direction at arc length s.
func (p *Path) HeadingAt(s float64) geom.Angle {
	dx, dy := p.trace.Deriv(p.clamp(s))
	return geom.Angle(math.Atan2(dy, dx))
}

// PenAt returns the pen state at arc length s.
func (p *Path) PenAt(s float64) waypoint.PenState { return p.pen.at(p.clamp(s)) }

// Start returns the first point of the path.
func (p *Path) Start() waypoint.Coordinate {
	x, y := p.PositionAt(0)
	return waypoint.Coordinate{X: x, Y: y}
}

// End returns the last point of the path.
func (p *Path) End() waypoint.Coordinate {
	x, y := p.PositionAt(p.arc.total())
	return waypoint.Coordinate{X: x, Y: y}
}

// Sample returns the motion state at arc length s and elapsed time t. It
// returns false once t is past the profile's duration.
//
// Position, heading and pen state follow s; speed follows t. Keeping the two
// consistent is the caller's job.
func (p *Path) Sample(s, t float64) (MotionSample, bool) {
	if t > p.profile.Duration() {
		return MotionSample{}, false
	}
	s = p.clamp(s)
	x, y := p.trace.Eval(s)
	return MotionSample{
		X:       x,
		Y:       y,
		Heading: p.HeadingAt(s),
		Speed:   p.profile.Speed(t),
		Pen:     p.pen.at(s),
	}, true
}
