// Package waypoint provides the waypoint input types consumed by the path
// planner: ordered plane coordinates with an optional pen state per point.
package waypoint

import (
	"errors"
	"fmt"
	"math"
)

// MinPoints is the fewest waypoints a drawable path may have.
const MinPoints = 3

// ErrInvalidInput is returned for waypoint sequences that cannot form a path.
var ErrInvalidInput = errors.New("invalid waypoint input")

// Coordinate is a point in normalized plane coordinates, conventionally
// [0,1]×[0,1] with y increasing downwards from the anchor line.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PenState says whether the pen is marking at a waypoint.
type PenState int

const (
	PenUp   PenState = 0
	PenDown PenState = 1
)

// Valid reports whether p is PenUp or PenDown.
func (p PenState) Valid() bool { return p == PenUp || p == PenDown }

func (p PenState) String() string {
	switch p {
	case PenUp:
		return "up"
	case PenDown:
		return "down"
	}
	return fmt.Sprintf("PenState(%d)", int(p))
}

// Data is an ordered waypoint sequence. Insertion order is traversal order.
// Pen is optional; when present it has one entry per waypoint.
type Data struct {
	Xs  []float64  `json:"xs"`
	Ys  []float64  `json:"ys"`
	Pen []PenState `json:"pen,omitempty"`
}

// FromPoints builds Data from coordinates with every pen state down.
func FromPoints(pts []Coordinate) Data {
	d := Data{
		Xs:  make([]float64, len(pts)),
		Ys:  make([]float64, len(pts)),
		Pen: make([]PenState, len(pts)),
	}
	for i, p := range pts {
		d.Xs[i], d.Ys[i], d.Pen[i] = p.X, p.Y, PenDown
	}
	return d
}

// Len returns the number of waypoints.
func (d Data) Len() int { return len(d.Xs) }

// Validate returns an error wrapping ErrInvalidInput if the sequences have
// mismatched lengths, are shorter than MinPoints, hold non-finite
// coordinates or hold pen states other than up/down.
func (d Data) Validate() error {
	if len(d.Xs) != len(d.Ys) {
		return fmt.Errorf("%d x values, %d y values: %w", len(d.Xs), len(d.Ys), ErrInvalidInput)
	}
	if len(d.Xs) < MinPoints {
		return fmt.Errorf("%d waypoints, need at least %d: %w", len(d.Xs), MinPoints, ErrInvalidInput)
	}
	if d.Pen != nil && len(d.Pen) != len(d.Xs) {
		return fmt.Errorf("%d pen states for %d waypoints: %w", len(d.Pen), len(d.Xs), ErrInvalidInput)
	}
	for i := range d.Xs {
		if !finite(d.Xs[i]) || !finite(d.Ys[i]) {
			return fmt.Errorf("waypoint %d (%g, %g) is not finite: %w", i, d.Xs[i], d.Ys[i], ErrInvalidInput)
		}
	}
	for i, p := range d.Pen {
		if !p.Valid() {
			return fmt.Errorf("waypoint %d: pen state %d: %w", i, int(p), ErrInvalidInput)
		}
	}
	return nil
}

// PenStates returns the pen states, defaulting to all down when none were given.
func (d Data) PenStates() []PenState {
	if d.Pen != nil {
		return append([]PenState(nil), d.Pen...)
	}
	ps := make([]PenState, len(d.Xs))
	for i := range ps {
		ps[i] = PenDown
	}
	return ps
}

// PolylineLength returns the sum of straight segment lengths between
// consecutive waypoints.
func (d Data) PolylineLength() float64 {
	total := 0.0
	for i := 1; i < len(d.Xs); i++ {
		total += math.Hypot(d.Xs[i]-d.Xs[i-1], d.Ys[i]-d.Ys[i-1])
	}
	return total
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
