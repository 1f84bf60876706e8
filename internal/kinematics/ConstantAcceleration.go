package kinematics

import (
	"errors"
	"fmt"
	"math"
)

// ConstantModelName is the JSON discriminator string for the constant model.
const ConstantModelName = "constant"

// Err* are the errors returned when no profile can be built.
var (
	// ErrInvalidLimits marks negative or non-finite kinematic limits.
	ErrInvalidLimits = errors.New("invalid kinematic limits")
	// ErrInfeasibleProfile marks boundary speeds above the ceiling or too far
	// apart to reconcile within the distance at the given acceleration.
	ErrInfeasibleProfile = errors.New("boundary speeds cannot be met")
)

// ConstantAcceleration holds the kinematic limits of a drawing job: boundary
// speeds, a speed ceiling and a single acceleration magnitude used for both
// speeding up and slowing down.
//
// JSON discriminator: "model": "constant"
type ConstantAcceleration struct {
	Model  string  `json:"model,omitempty"`
	VInit  float64 `json:"v_init"`  // speed at the start of the path
	VMax   float64 `json:"v_max"`   // speed ceiling
	VFinal float64 `json:"v_final"` // speed at the end of the path
	AAcc   float64 `json:"a_acc"`   // acceleration magnitude
}

// Validate checks that every limit is finite and non-negative and that the
// model discriminator, when set, names this model.
func (c ConstantAcceleration) Validate() error {
	if c.Model != "" && c.Model != ConstantModelName {
		return fmt.Errorf("unknown kinematics model %q: %w", c.Model, ErrInvalidLimits)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"v_init", c.VInit},
		{"v_max", c.VMax},
		{"v_final", c.VFinal},
		{"a_acc", c.AAcc},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%s = %g: %w", f.name, f.v, ErrInvalidLimits)
		}
	}
	return nil
}

// Profile builds the speed profile covering distance under these limits.
//
// The trapezoid is tried first. If its plateau would be non-positive the
// peak is lowered to sqrt(a·d + (v0² + v1²)/2), the speed at which ascent and
// descent alone cover the distance, and a Triangular profile is returned.
// Zero distance, acceleration or speed ceiling give an Immediate profile.
//
// Boundary speeds above the ceiling, or differing by more than the
// acceleration allows over the distance (|v0² − v1²| > 2·a·d), fail with
// ErrInfeasibleProfile.
func (c ConstantAcceleration) Profile(distance float64) (Profile, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, fmt.Errorf("distance %g: %w", distance, ErrInvalidLimits)
	}
	if distance <= 0 || c.AAcc <= 0 || c.VMax <= 0 {
		return Immediate{vFinal: c.VFinal}, nil
	}
	if err := c.feasible(distance); err != nil {
		return nil, err
	}

	r := c.ramp(c.VMax)
	r.ph.PlateauDist = distance - r.ph.AscentDist - r.ph.DescentDist
	r.ph.PlateauTime = r.ph.PlateauDist / c.VMax
	if r.ph.PlateauTime > 0 {
		return Trapezoidal{r}, nil
	}

	peak := math.Sqrt(c.AAcc*distance + 0.5*(c.VInit*c.VInit+c.VFinal*c.VFinal))
	return Triangular{c.ramp(math.Min(peak, c.VMax))}, nil
}

// feasible checks that the boundary speeds can be joined over distance.
func (c ConstantAcceleration) feasible(distance float64) error {
	if c.VInit > c.VMax {
		return fmt.Errorf("v_init %g above v_max %g: %w", c.VInit, c.VMax, ErrInfeasibleProfile)
	}
	if c.VFinal > c.VMax {
		return fmt.Errorf("v_final %g above v_max %g: %w", c.VFinal, c.VMax, ErrInfeasibleProfile)
	}
	change := math.Abs(c.VInit*c.VInit - c.VFinal*c.VFinal)
	if reach := 2 * c.AAcc * distance; change > reach*(1+1e-12) {
		return fmt.Errorf("speed change %g→%g needs distance %g, have %g: %w",
			c.VInit, c.VFinal, change/(2*c.AAcc), distance, ErrInfeasibleProfile)
	}
	return nil
}

// ramp returns the ascent and descent phases for reaching peak, with no
// plateau.
func (c ConstantAcceleration) ramp(peak float64) ramp {
	r := ramp{vInit: c.VInit, vPeak: peak, vFinal: c.VFinal, accel: c.AAcc}
	r.ph.AscentTime = math.Max(0, (peak-c.VInit)/c.AAcc)
	r.ph.DescentTime = math.Max(0, (peak-c.VFinal)/c.AAcc)
	r.ph.AscentDist = 0.5 * (c.VInit + peak) * r.ph.AscentTime
	r.ph.DescentDist = 0.5 * (peak + c.VFinal) * r.ph.DescentTime
	return r
}
