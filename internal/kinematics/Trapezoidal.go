package kinematics

// ramp is the ascent/plateau/descent algebra shared by the trapezoidal and
// triangular profiles.
type ramp struct {
	vInit, vPeak, vFinal float64
	accel                float64
	ph                   Phases
}

func (r ramp) Speed(t float64) float64 {
	asc, plat := r.ph.AscentTime, r.ph.PlateauTime
	switch {
	case t < 0:
		return 0
	case t <= asc:
		return r.vInit + r.accel*t
	case t <= asc+plat:
		return r.vPeak
	case t <= asc+plat+r.ph.DescentTime:
		return r.vPeak - r.accel*(t-asc-plat)
	default:
		return r.vFinal
	}
}

func (r ramp) Travelled(t float64) float64 {
	asc, plat := r.ph.AscentTime, r.ph.PlateauTime
	switch {
	case t <= 0:
		return 0
	case t <= asc:
		return r.vInit*t + 0.5*r.accel*t*t
	case t <= asc+plat:
		return r.ph.AscentDist + r.vPeak*(t-asc)
	case t <= asc+plat+r.ph.DescentTime:
		tau := t - asc - plat
		return r.ph.AscentDist + r.ph.PlateauDist + r.vPeak*tau - 0.5*r.accel*tau*tau
	default:
		return r.ph.Distance()
	}
}

func (r ramp) Duration() float64 { return r.ph.Duration() }
func (r ramp) Distance() float64 { return r.ph.Distance() }
func (r ramp) Peak() float64     { return r.vPeak }
func (r ramp) Phases() Phases    { return r.ph }

// Trapezoidal reaches the speed ceiling and holds it over a plateau of
// positive length.
type Trapezoidal struct{ ramp }

func (Trapezoidal) Shape() Shape { return ShapeTrapezoidal }

// Triangular never reaches the speed ceiling: it turns from ascent straight
// into descent at a peak chosen so the two cover the whole distance.
type Triangular struct{ ramp }

func (Triangular) Shape() Shape { return ShapeTriangular }

// Immediate is the profile of a motion that completes at once.
type Immediate struct {
	vFinal float64
}

func (Immediate) Shape() Shape { return ShapeImmediate }

func (p Immediate) Speed(t float64) float64 {
	if t < 0 {
		return 0
	}
	return p.vFinal
}

func (Immediate) Travelled(float64) float64 { return 0 }
func (Immediate) Duration() float64         { return 0 }
func (Immediate) Distance() float64         { return 0 }
func (Immediate) Peak() float64             { return 0 }
func (Immediate) Phases() Phases            { return Phases{} }
