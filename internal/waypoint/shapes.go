package waypoint

import (
	"fmt"
	"math"
)

// Shape generates a synthetic waypoint sequence.
type Shape interface {
	Waypoints() (Data, error)
}

// Circle traces a full circle starting at its leftmost point, counter
// clockwise in screen coordinates. The last waypoint repeats the first.
//
// JSON discriminator: "kind": "circle"
type Circle struct {
	Center Coordinate `json:"center"`
	Radius float64    `json:"radius"`
	Count  int        `json:"count"` // number of waypoints, including the closing one
}

func (c Circle) Waypoints() (Data, error) {
	if c.Count < MinPoints {
		return Data{}, fmt.Errorf("circle with %d waypoints: %w", c.Count, ErrInvalidInput)
	}
	if !(c.Radius > 0) {
		return Data{}, fmt.Errorf("circle radius %g: %w", c.Radius, ErrInvalidInput)
	}
	pts := make([]Coordinate, c.Count)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(c.Count-1)
		pts[i] = Coordinate{
			X: c.Center.X - c.Radius*math.Cos(a),
			Y: c.Center.Y - c.Radius*math.Sin(a),
		}
	}
	return FromPoints(pts), nil
}

// Polygon traces a closed regular polygon. Each edge is split into PerEdge
// straight pieces so the fitted curve stays close to the edges.
//
// JSON discriminator: "kind": "polygon"
type Polygon struct {
	Center   Coordinate `json:"center"`
	Radius   float64    `json:"radius"` // circumradius
	Sides    int        `json:"sides"`
	PerEdge  int        `json:"per_edge,omitempty"`
	Rotation float64    `json:"rotation,omitempty"` // radians
}

func (p Polygon) Waypoints() (Data, error) {
	if p.Sides < 3 {
		return Data{}, fmt.Errorf("polygon with %d sides: %w", p.Sides, ErrInvalidInput)
	}
	if !(p.Radius > 0) {
		return Data{}, fmt.Errorf("polygon radius %g: %w", p.Radius, ErrInvalidInput)
	}
	per := max(1, p.PerEdge)

	corner := func(k int) Coordinate {
		a := p.Rotation + 2*math.Pi*float64(k)/float64(p.Sides)
		return Coordinate{X: p.Center.X + p.Radius*math.Cos(a), Y: p.Center.Y + p.Radius*math.Sin(a)}
	}
	pts := make([]Coordinate, 0, p.Sides*per+1)
	for k := 0; k < p.Sides; k++ {
		a, b := corner(k), corner(k+1)
		for j := 0; j < per; j++ {
			f := float64(j) / float64(per)
			pts = append(pts, Coordinate{X: a.X + f*(b.X-a.X), Y: a.Y + f*(b.Y-a.Y)})
		}
	}
	pts = append(pts, pts[0])
	return FromPoints(pts), nil
}

// Normalize scales and translates d into [0.25, 0.75]², keeping the aspect
// ratio. This matches the framing applied to scanned line drawings so that
// the pointer stays well away from both anchors.
func Normalize(d Data) (Data, error) {
	if len(d.Xs) == 0 || len(d.Xs) != len(d.Ys) {
		return Data{}, fmt.Errorf("normalizing %d/%d values: %w", len(d.Xs), len(d.Ys), ErrInvalidInput)
	}
	minX, maxX := d.Xs[0], d.Xs[0]
	minY, maxY := d.Ys[0], d.Ys[0]
	for i := range d.Xs {
		minX, maxX = math.Min(minX, d.Xs[i]), math.Max(maxX, d.Xs[i])
		minY, maxY = math.Min(minY, d.Ys[i]), math.Max(maxY, d.Ys[i])
	}
	scale := math.Max(maxX-minX, maxY-minY)
	if !(scale > 0) {
		return Data{}, fmt.Errorf("normalizing a drawing with no extent: %w", ErrInvalidInput)
	}

	out := Data{
		Xs:  make([]float64, len(d.Xs)),
		Ys:  make([]float64, len(d.Ys)),
		Pen: append([]PenState(nil), d.Pen...),
	}
	if d.Pen == nil {
		out.Pen = nil
	}
	for i := range d.Xs {
		out.Xs[i] = (d.Xs[i]-minX)/scale/2 + 0.25
		out.Ys[i] = (d.Ys[i]-minY)/scale/2 + 0.25
	}
	return out, nil
}

// LeadIn prepends the pointer's current position to d and lifts the pen
// for the travel from there to the first drawing waypoint.
func LeadIn(start Coordinate, d Data) Data {
	pen := d.PenStates()
	out := Data{
		Xs:  append([]float64{start.X}, d.Xs...),
		Ys:  append([]float64{start.Y}, d.Ys...),
		Pen: append([]PenState{PenUp}, pen...),
	}
	if len(out.Pen) > 1 {
		out.Pen[1] = PenUp
	}
	return out
}
