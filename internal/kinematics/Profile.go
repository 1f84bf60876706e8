// Package kinematics builds the speed-versus-time profile a drawing job
// follows along its path.
//
// Profiles are closed-form and piecewise: a constant-acceleration ascent, a
// constant-speed plateau and a constant-deceleration descent. When the path
// is too short to reach the configured peak the plateau collapses and the
// profile is Triangular. A path that cannot be travelled at all (zero
// length, zero acceleration or zero speed limit) gets an Immediate profile.
package kinematics

// Shape names a profile variant.
type Shape string

const (
	ShapeTrapezoidal Shape = "trapezoidal"
	ShapeTriangular  Shape = "triangular"
	ShapeImmediate   Shape = "immediate"
)

// Phases holds the duration and distance of each profile segment.
// Times are in seconds, distances in plane units.
type Phases struct {
	AscentTime  float64 `json:"ascent_time"`
	PlateauTime float64 `json:"plateau_time"`
	DescentTime float64 `json:"descent_time"`
	AscentDist  float64 `json:"ascent_dist"`
	PlateauDist float64 `json:"plateau_dist"`
	DescentDist float64 `json:"descent_dist"`
}

// Duration is the summed segment time.
func (p Phases) Duration() float64 { return p.AscentTime + p.PlateauTime + p.DescentTime }

// Distance is the summed segment distance.
func (p Phases) Distance() float64 { return p.AscentDist + p.PlateauDist + p.DescentDist }

// Profile is the contract every speed profile satisfies. Profiles are
// immutable values.
type Profile interface {
	// Shape reports which variant this is.
	Shape() Shape

	// Speed returns the commanded speed t seconds after the start. It is 0
	// for t < 0 and the final speed for t beyond Duration.
	Speed(t float64) float64

	// Travelled returns the distance covered after t seconds, i.e. the
	// integral of Speed over [0, t], clamped to [0, Duration].
	Travelled(t float64) float64

	// Duration is the total motion time.
	Duration() float64

	// Distance is the total distance the profile covers.
	Distance() float64

	// Peak is the highest speed the profile reaches.
	Peak() float64

	// Phases returns the per-segment breakdown.
	Phases() Phases
}
