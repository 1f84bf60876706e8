package waypoint

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		d    Data
		ok   bool
	}{
		{"ok", Data{Xs: []float64{0, 1, 2}, Ys: []float64{0, 1, 2}}, true},
		{"ok with pen", Data{Xs: []float64{0, 1, 2}, Ys: []float64{0, 1, 2}, Pen: []PenState{PenUp, PenDown, PenDown}}, true},
		{"mismatch", Data{Xs: []float64{0, 1, 2}, Ys: []float64{0, 1}}, false},
		{"too short", Data{Xs: []float64{0, 1}, Ys: []float64{0, 1}}, false},
		{"pen length", Data{Xs: []float64{0, 1, 2}, Ys: []float64{0, 1, 2}, Pen: []PenState{PenUp}}, false},
		{"pen value", Data{Xs: []float64{0, 1, 2}, Ys: []float64{0, 1, 2}, Pen: []PenState{PenUp, 2, PenDown}}, false},
		{"nan", Data{Xs: []float64{0, math.NaN(), 2}, Ys: []float64{0, 1, 2}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestPenStatesDefaultDown(t *testing.T) {
	d := Data{Xs: []float64{0, 1, 2}, Ys: []float64{0, 1, 2}}
	assert.Equal(t, []PenState{PenDown, PenDown, PenDown}, d.PenStates())
}

func TestCircle(t *testing.T) {
	d, err := Circle{Center: Coordinate{X: 0.5, Y: 0.5}, Radius: 0.1, Count: 100}.Waypoints()
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	assert.InDelta(t, 0.4, d.Xs[0], 1e-12)
	assert.InDelta(t, 0.5, d.Ys[0], 1e-12)
	assert.InDelta(t, d.Xs[0], d.Xs[99], 1e-12)
	assert.InDelta(t, d.Ys[0], d.Ys[99], 1e-12)
	for i := range d.Xs {
		assert.InDelta(t, 0.1, math.Hypot(d.Xs[i]-0.5, d.Ys[i]-0.5), 1e-12)
	}
	assert.InDelta(t, 2*math.Pi*0.1, d.PolylineLength(), 1e-3)

	_, err = Circle{Radius: 0.1, Count: 2}.Waypoints()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPolygon(t *testing.T) {
	d, err := Polygon{Center: Coordinate{X: 0.5, Y: 0.5}, Radius: 0.2, Sides: 4, PerEdge: 3}.Waypoints()
	require.NoError(t, err)
	assert.Equal(t, 13, d.Len())
	side := 0.2 * math.Sqrt2
	assert.InDelta(t, 4*side, d.PolylineLength(), 1e-12)
}

func TestNormalize(t *testing.T) {
	d := Data{Xs: []float64{10, 30, 20}, Ys: []float64{5, 5, 15}}
	got, err := Normalize(d)
	require.NoError(t, err)

	want := Data{Xs: []float64{0.25, 0.75, 0.5}, Ys: []float64{0.25, 0.25, 0.5}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}

	_, err = Normalize(Data{Xs: []float64{1, 1, 1}, Ys: []float64{2, 2, 2}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLeadIn(t *testing.T) {
	d := Data{Xs: []float64{0.3, 0.4, 0.5}, Ys: []float64{0.3, 0.4, 0.5}}
	got := LeadIn(Coordinate{X: 0.5, Y: 0.5}, d)

	assert.Equal(t, []float64{0.5, 0.3, 0.4, 0.5}, got.Xs)
	assert.Equal(t, []PenState{PenUp, PenUp, PenDown, PenDown}, got.Pen)
	assert.NoError(t, got.Validate())
}

func TestSourceUnmarshal(t *testing.T) {
	var s Source
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"points","xs":[0,1,2],"ys":[0,1,0],"pen":[0,1,1]}`), &s))
	assert.Equal(t, KindPoints, s.Kind)
	assert.Equal(t, []PenState{PenUp, PenDown, PenDown}, s.Data.Pen)

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"circle","center":{"x":0.5,"y":0.5},"radius":0.1,"count":50}`), &s))
	assert.Equal(t, KindCircle, s.Kind)
	assert.Equal(t, 50, s.Data.Len())

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"points","normalize":true,"xs":[0,4,2],"ys":[0,0,2]}`), &s))
	assert.InDelta(t, 0.75, s.Data.Xs[1], 1e-12)

	err := json.Unmarshal([]byte(`{"kind":"spiral"}`), &s)
	assert.ErrorContains(t, err, "spiral")

	err = json.Unmarshal([]byte(`{"kind":"circle","radius":0,"count":10}`), &s)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSourceRoundTrip(t *testing.T) {
	in := Source{Kind: KindCircle, Data: Data{Xs: []float64{0, 1, 2}, Ys: []float64{1, 2, 3}, Pen: []PenState{PenDown, PenUp, PenDown}}}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Source
	require.NoError(t, json.Unmarshal(b, &out))
	if diff := cmp.Diff(in.Data, out.Data); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
