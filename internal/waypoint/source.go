package waypoint

import (
	"encoding/json"
	"fmt"
)

// Source kinds accepted in the "kind" discriminator.
const (
	KindPoints  = "points"
	KindCircle  = "circle"
	KindPolygon = "polygon"
)

// Source is a waypoint sequence read from a job document. Kind records how
// it was produced; Data holds the resolved waypoints.
type Source struct {
	Kind      string
	Normalize bool
	Data      Data
}

// sourceDisc is the minimum JSON structure needed to read the discriminator.
type sourceDisc struct {
	Kind      string `json:"kind"`
	Normalize bool   `json:"normalize,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler for Source.
// The "kind" key selects how the rest of the object is read:
//   - "points": explicit "xs", "ys" and optional "pen" arrays.
//   - "circle": a Circle.
//   - "polygon": a Polygon.
//
// With "normalize": true the result is framed into [0.25, 0.75]².
func (s *Source) UnmarshalJSON(data []byte) error {
	var disc sourceDisc
	if err := json.Unmarshal(data, &disc); err != nil {
		return fmt.Errorf("reading waypoint source kind: %w", err)
	}

	var (
		d   Data
		err error
	)
	switch disc.Kind {
	case KindPoints, "":
		if err := json.Unmarshal(data, &d); err != nil {
			return fmt.Errorf("parsing waypoints: %w", err)
		}
		disc.Kind = KindPoints
	case KindCircle:
		var c Circle
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("parsing circle: %w", err)
		}
		d, err = c.Waypoints()
	case KindPolygon:
		var p Polygon
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("parsing polygon: %w", err)
		}
		d, err = p.Waypoints()
	default:
		return fmt.Errorf("unknown waypoint source kind %q", disc.Kind)
	}
	if err != nil {
		return fmt.Errorf("%s source: %w", disc.Kind, err)
	}

	if disc.Normalize {
		if d, err = Normalize(d); err != nil {
			return fmt.Errorf("%s source: %w", disc.Kind, err)
		}
	}
	*s = Source{Kind: disc.Kind, Normalize: disc.Normalize, Data: d}
	return nil
}

// MarshalJSON writes the resolved waypoints as a "points" source.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Data
	}{Kind: KindPoints, Data: s.Data})
}
