// Package integrator advances a pointer along a path in fixed time steps.
//
// An Integrator owns the pointer state (x, y, s, t) and nothing else. Each
// Step queries the path for the prescribed speed and heading and integrates
// position and arc length over one tick, either with a single Euler step or
// with classic fourth-order Runge-Kutta.
package integrator

import (
	"errors"
	"fmt"
	"math"

	"zappem.net/pub/math/geom"

	"github.com/rgyhuang/BoardBot/internal/path"
	"github.com/rgyhuang/BoardBot/internal/waypoint"
)

// Method selects the update rule.
type Method string

const (
	MethodEuler Method = "euler"
	MethodRK4   Method = "rk4"
)

// State describes whether the integrator is still moving.
type State string

const (
	StateAdvancing State = "advancing"
	StateComplete  State = "complete"
)

// ErrConfig is returned for an unusable time step or method.
var ErrConfig = errors.New("invalid integrator configuration")

// Sampler is the path query an Integrator drives. *path.Path implements it.
type Sampler interface {
	Sample(s, t float64) (path.MotionSample, bool)
}

// Tick is the result of one step: the motion applied over the tick and the
// pointer state after it.
type Tick struct {
	T       float64           `json:"t"` // time at the start of the tick
	X       float64           `json:"x"`
	Y       float64           `json:"y"`
	S       float64           `json:"s"`
	Vx      float64           `json:"vx"`
	Vy      float64           `json:"vy"`
	Speed   float64           `json:"speed"`
	Heading geom.Angle        `json:"heading"`
	Pen     waypoint.PenState `json:"pen"`
}

// Option configures New.
type Option func(*Integrator)

// WithStart places the pointer at c instead of at the first sample of the
// path.
func WithStart(c waypoint.Coordinate) Option {
	return func(in *Integrator) {
		in.x, in.y = c.X, c.Y
		in.started = true
	}
}

// Integrator is the pointer state machine.
type Integrator struct {
	sampler Sampler
	method  Method
	dt      float64

	x, y, s, t float64
	state      State
	started    bool
	fallbacks  int
}

// New creates an Integrator over p stepping by dt seconds.
func New(p Sampler, dt float64, method Method, opts ...Option) (*Integrator, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("time step %g: %w", dt, ErrConfig)
	}
	switch method {
	case MethodEuler, MethodRK4:
	case "":
		method = MethodRK4
	default:
		return nil, fmt.Errorf("method %q: %w", method, ErrConfig)
	}

	in := &Integrator{sampler: p, method: method, dt: dt, state: StateAdvancing}
	for _, o := range opts {
		o(in)
	}
	if !in.started {
		if m, ok := p.Sample(0, 0); ok {
			in.x, in.y = m.X, m.Y
		} else {
			in.state = StateComplete
		}
	}
	return in, nil
}

// State returns the current state.
func (in *Integrator) State() State { return in.state }

// Fallbacks returns how many RK4 ticks fell back to an Euler update because
// a sub-step ran past the end of the profile.
func (in *Integrator) Fallbacks() int { return in.fallbacks }

// Log returns a point-in-time snapshot of the pointer.
func (in *Integrator) Log() Tick {
	return Tick{T: in.t, X: in.x, Y: in.y, S: in.s}
}

// Step advances the pointer by one tick. It returns false, without moving,
// once the path reports completion; the integrator is then complete.
func (in *Integrator) Step() (Tick, bool) {
	if in.state == StateComplete {
		return Tick{}, false
	}
	m1, ok := in.sampler.Sample(in.s, in.t)
	if !ok {
		in.state = StateComplete
		return Tick{}, false
	}

	vx, vy := m1.Velocity()
	speed := m1.Speed
	if in.method == MethodRK4 {
		if kx, ky, ks, ok := in.rk4(m1); ok {
			vx, vy, speed = kx, ky, ks
		} else {
			in.fallbacks++
		}
	}

	tick := Tick{
		T:       in.t,
		Vx:      vx,
		Vy:      vy,
		Speed:   speed,
		Heading: m1.Heading,
		Pen:     m1.Pen,
	}
	in.x += vx * in.dt
	in.y += vy * in.dt
	in.s += speed * in.dt
	in.t += in.dt

	tick.X, tick.Y, tick.S = in.x, in.y, in.s
	return tick, true
}

// rk4 evaluates the three remaining Runge-Kutta stages from the first one
// and returns the weighted velocity and speed. It reports false if any stage
// falls past the end of the profile.
func (in *Integrator) rk4(m1 path.MotionSample) (vx, vy, speed float64, ok bool) {
	half := in.dt / 2

	m2, ok := in.sampler.Sample(in.s+m1.Speed*half, in.t+half)
	if !ok {
		return 0, 0, 0, false
	}
	m3, ok := in.sampler.Sample(in.s+m2.Speed*half, in.t+half)
	if !ok {
		return 0, 0, 0, false
	}
	m4, ok := in.sampler.Sample(in.s+m3.Speed*in.dt, in.t+in.dt)
	if !ok {
		return 0, 0, 0, false
	}

	x1, y1 := m1.Velocity()
	x2, y2 := m2.Velocity()
	x3, y3 := m3.Velocity()
	x4, y4 := m4.Velocity()
	vx = (x1 + 2*x2 + 2*x3 + x4) / 6
	vy = (y1 + 2*y2 + 2*y3 + y4) / 6
	speed = (m1.Speed + 2*m2.Speed + 2*m3.Speed + m4.Speed) / 6
	return vx, vy, speed, true
}
