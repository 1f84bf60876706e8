package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// integrate sums Speed over [0, Duration] with the trapezoid rule.
func integrate(p Profile, n int) float64 {
	d := p.Duration()
	h := d / float64(n)
	sum := 0.5 * (p.Speed(0) + p.Speed(d))
	for i := 1; i < n; i++ {
		sum += p.Speed(float64(i) * h)
	}
	return sum * h
}

func TestTrapezoidal(t *testing.T) {
	c := ConstantAcceleration{VInit: 0, VMax: 1, VFinal: 0, AAcc: 2}
	p, err := c.Profile(1)
	require.NoError(t, err)

	assert.Equal(t, ShapeTrapezoidal, p.Shape())
	ph := p.Phases()
	assert.InDelta(t, 0.5, ph.AscentTime, eps)
	assert.InDelta(t, 0.5, ph.PlateauTime, eps)
	assert.InDelta(t, 0.5, ph.DescentTime, eps)
	assert.InDelta(t, 0.25, ph.AscentDist, eps)
	assert.InDelta(t, 0.5, ph.PlateauDist, eps)
	assert.InDelta(t, 0.25, ph.DescentDist, eps)
	assert.InDelta(t, 1.5, p.Duration(), eps)
	assert.InDelta(t, 1, p.Distance(), eps)
	assert.InDelta(t, 1, p.Peak(), eps)

	assert.Equal(t, 0.0, p.Speed(-0.1))
	assert.InDelta(t, 0.5, p.Speed(0.25), eps)
	assert.InDelta(t, 1, p.Speed(0.75), eps)
	assert.InDelta(t, 0.5, p.Speed(1.25), eps)
	assert.InDelta(t, 0, p.Speed(10), eps)
}

func TestTriangularFallback(t *testing.T) {
	// 0.05 is far short of the 0.25 needed to reach v_max = 1 at a = 2.
	c := ConstantAcceleration{VInit: 0, VMax: 1, VFinal: 0, AAcc: 2}
	p, err := c.Profile(0.05)
	require.NoError(t, err)

	assert.Equal(t, ShapeTriangular, p.Shape())
	assert.InDelta(t, math.Sqrt(2*0.05), p.Peak(), eps)
	assert.InDelta(t, 0.316, p.Peak(), 1e-3)
	assert.LessOrEqual(t, p.Peak(), c.VMax)
	assert.Zero(t, p.Phases().PlateauTime)
	assert.InDelta(t, 0.05, p.Distance(), eps)
}

func TestTriangularWithBoundarySpeeds(t *testing.T) {
	c := ConstantAcceleration{VInit: 0.2, VMax: 1, VFinal: 0.1, AAcc: 2}
	p, err := c.Profile(0.1)
	require.NoError(t, err)

	assert.Equal(t, ShapeTriangular, p.Shape())
	assert.InDelta(t, math.Sqrt(0.225), p.Peak(), eps)
	assert.InDelta(t, 0.1, p.Distance(), eps)
	assert.InDelta(t, 0.2, p.Speed(0), eps)
	assert.InDelta(t, 0.1, p.Speed(p.Duration()), eps)
}

func TestProfileLaws(t *testing.T) {
	cases := []struct {
		c    ConstantAcceleration
		dist float64
	}{
		{ConstantAcceleration{VMax: 1, AAcc: 2}, 0.6283},
		{ConstantAcceleration{VMax: 2, AAcc: 2}, 0.6283},
		{ConstantAcceleration{VInit: 0.3, VMax: 1.5, VFinal: 0.2, AAcc: 4}, 3},
		{ConstantAcceleration{VInit: 0.3, VMax: 1.5, VFinal: 0.2, AAcc: 4}, 0.2},
		{ConstantAcceleration{VMax: 0.5, AAcc: 10}, 2},
	}
	for _, tc := range cases {
		p, err := tc.c.Profile(tc.dist)
		require.NoError(t, err)

		assert.InDelta(t, tc.c.VInit, p.Speed(0), eps, "speed(0) for %+v", tc.c)
		assert.InDelta(t, tc.c.VFinal, p.Speed(p.Duration()), eps, "speed(end) for %+v", tc.c)
		assert.InDelta(t, tc.dist, p.Distance(), 1e-9, "phase distances for %+v", tc.c)
		assert.InDelta(t, tc.dist, integrate(p, 200000), 1e-6, "integral for %+v", tc.c)
		assert.InDelta(t, tc.dist, p.Travelled(p.Duration()), 1e-9)
		assert.LessOrEqual(t, p.Peak(), tc.c.VMax+eps)
	}
}

func TestTravelledMatchesIntegral(t *testing.T) {
	c := ConstantAcceleration{VInit: 0.1, VMax: 1, VFinal: 0, AAcc: 2}
	p, err := c.Profile(1)
	require.NoError(t, err)

	const n = 20000
	h := p.Duration() / n
	acc := 0.0
	for i := 0; i < n; i++ {
		t0 := float64(i) * h
		acc += 0.5 * h * (p.Speed(t0) + p.Speed(t0+h))
		if i%1000 == 999 {
			assert.InDelta(t, acc, p.Travelled(t0+h), 1e-6)
		}
	}
	assert.Equal(t, 0.0, p.Travelled(-1))
	assert.InDelta(t, 1, p.Travelled(100), eps)
}

func TestImmediate(t *testing.T) {
	for name, tc := range map[string]struct {
		c    ConstantAcceleration
		dist float64
	}{
		"zero distance":     {ConstantAcceleration{VMax: 1, AAcc: 2}, 0},
		"negative distance": {ConstantAcceleration{VMax: 1, AAcc: 2}, -1},
		"zero acceleration": {ConstantAcceleration{VMax: 1}, 1},
		"zero ceiling":      {ConstantAcceleration{AAcc: 1}, 1},
	} {
		t.Run(name, func(t *testing.T) {
			p, err := tc.c.Profile(tc.dist)
			require.NoError(t, err)
			assert.Equal(t, ShapeImmediate, p.Shape())
			assert.Zero(t, p.Duration())
			assert.Zero(t, p.Distance())
			assert.False(t, math.IsNaN(p.Speed(0)))
		})
	}
}

func TestInvalidLimits(t *testing.T) {
	for _, c := range []ConstantAcceleration{
		{VInit: -1, VMax: 1, AAcc: 1},
		{VMax: math.NaN(), AAcc: 1},
		{VMax: 1, AAcc: math.Inf(1)},
		{Model: "jerk", VMax: 1, AAcc: 1},
	} {
		_, err := c.Profile(1)
		assert.ErrorIs(t, err, ErrInvalidLimits, "%+v", c)
	}

	_, err := ConstantAcceleration{VMax: 1, AAcc: 1}.Profile(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidLimits)

	assert.NoError(t, ConstantAcceleration{Model: ConstantModelName, VMax: 1, AAcc: 1}.Validate())
}

func TestInfeasibleBoundarySpeeds(t *testing.T) {
	tests := []struct {
		name string
		c    ConstantAcceleration
		dist float64
	}{
		{"cannot stop in time", ConstantAcceleration{VInit: 1, VMax: 1, AAcc: 1}, 0.1},
		{"cannot reach final speed", ConstantAcceleration{VMax: 1, VFinal: 1, AAcc: 1}, 0.1},
		{"initial above ceiling", ConstantAcceleration{VInit: 2, VMax: 1, AAcc: 1}, 0.1},
		{"final above ceiling", ConstantAcceleration{VMax: 1, VFinal: 1.5, AAcc: 10}, 5},
		{"initial above ceiling, long path", ConstantAcceleration{VInit: 2, VMax: 1, AAcc: 1}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.c.Profile(tt.dist)
			assert.ErrorIs(t, err, ErrInfeasibleProfile)
		})
	}
}

func TestBoundarySpeedsAtTheLimit(t *testing.T) {
	// Stopping from 1 at a = 1 takes exactly 0.5: a pure descent.
	c := ConstantAcceleration{VInit: 1, VMax: 1, AAcc: 1}
	p, err := c.Profile(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1, p.Speed(0), eps)
	assert.InDelta(t, 0, p.Speed(p.Duration()), eps)
	assert.InDelta(t, 0.5, p.Distance(), eps)
	assert.InDelta(t, 1, p.Duration(), eps)
}

func TestProfilesAreDeterministic(t *testing.T) {
	c := ConstantAcceleration{VInit: 0.1, VMax: 0.8, VFinal: 0.05, AAcc: 1.5}
	a, err := c.Profile(0.7)
	require.NoError(t, err)
	b, err := c.Profile(0.7)
	require.NoError(t, err)
	assert.Equal(t, a.Phases(), b.Phases())
}
