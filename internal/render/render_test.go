package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgyhuang/BoardBot/internal/integrator"
	"github.com/rgyhuang/BoardBot/internal/kinematics"
	"github.com/rgyhuang/BoardBot/internal/waypoint"
)

func trapezoid(t *testing.T) kinematics.Profile {
	t.Helper()
	p, err := kinematics.ConstantAcceleration{VMax: 1, AAcc: 2}.Profile(2)
	require.NoError(t, err)
	return p
}

func TestProfileXYs(t *testing.T) {
	p := trapezoid(t)
	speed, dist := profileXYs(p, 10)
	require.Len(t, speed, 11)
	require.Len(t, dist, 11)
	assert.Equal(t, 0.0, speed[0].X)
	assert.InDelta(t, p.Duration(), speed[10].X, 1e-12)
	assert.InDelta(t, 1.0, speed[5].Y, 1e-12)
	assert.InDelta(t, 2.0, dist[10].Y, 1e-9)
}

func TestProfilePlot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "profile.png")
	require.NoError(t, ProfilePlot(trapezoid(t), 200, file))
	fi, err := os.Stat(file)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())

	p, err := kinematics.ConstantAcceleration{VMax: 1, AAcc: 2}.Profile(0)
	require.NoError(t, err)
	assert.ErrorIs(t, ProfilePlot(p, 10, file), ErrEmpty)
}

func ticks(pens ...waypoint.PenState) []integrator.Tick {
	out := make([]integrator.Tick, len(pens))
	for i, p := range pens {
		out[i] = integrator.Tick{X: 0.1 * float64(i), Y: 0.5, Pen: p}
	}
	return out
}

func TestStrokes(t *testing.T) {
	up, down := waypoint.PenUp, waypoint.PenDown
	s := strokes(ticks(up, up, down, down, down, up))
	require.Len(t, s, 3)
	assert.False(t, s[0].Ink)
	assert.Equal(t, "0.00000,0.50000 0.10000,0.50000", s[0].Points)
	assert.True(t, s[1].Ink)
	assert.Equal(t, "0.10000,0.50000 0.20000,0.50000 0.30000,0.50000 0.40000,0.50000", s[1].Points)
	assert.False(t, s[2].Ink)
	assert.Equal(t, "0.40000,0.50000 0.50000,0.50000", s[2].Points)
}

func TestTraceSVG(t *testing.T) {
	up, down := waypoint.PenUp, waypoint.PenDown
	tr := ticks(up, up, down, down, down)

	var buf bytes.Buffer
	require.NoError(t, TraceSVG(&buf, tr, TraceOptions{Title: "square", AnchorSeparation: 1, Travel: true}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, "<title>square</title>")
	assert.Equal(t, 2, strings.Count(out, `class="anchor"`))
	assert.Equal(t, 1, strings.Count(out, `<polyline class="ink"`))
	assert.Equal(t, 1, strings.Count(out, `<polyline class="travel"`))
	assert.Contains(t, out, `width="800"`)

	buf.Reset()
	require.NoError(t, TraceSVG(&buf, tr, TraceOptions{}))
	out = buf.String()
	assert.Zero(t, strings.Count(out, `class="anchor"`))
	assert.Zero(t, strings.Count(out, `<polyline class="travel"`))
	assert.Equal(t, 1, strings.Count(out, `<polyline class="ink"`))

	assert.ErrorIs(t, TraceSVG(&buf, nil, TraceOptions{}), ErrEmpty)
}
