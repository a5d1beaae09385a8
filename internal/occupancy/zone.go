package occupancy

import (
	"fmt"
	"math"
)

// ZonePoints is the number of corners every zone polygon has.
const ZonePoints = 4

// Unit is the coordinate space zone points are expressed in.
type Unit string

const (
	UnitPixel      Unit = "pixel"
	UnitNormalized Unit = "normalized"
)

// ParseUnit validates a unit name.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(s); u {
	case UnitPixel, UnitNormalized:
		return u, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ZoneDefinition is one record of a zone definition file.
type ZoneDefinition struct {
	Points [][]float64 `json:"points"`
	Class  string      `json:"class"`
}

// Zone is a polygon expected to hold one object of ExpectedClass.
type Zone struct {
	Index         int     `json:"index"`
	Points        []Point `json:"points"`
	ExpectedClass string  `json:"class"`
}

func (z Zone) clone() Zone {
	pts := make([]Point, len(z.Points))
	copy(pts, z.Points)
	z.Points = pts
	return z
}

// Registry holds the zones of a session. It is frozen after LoadRegistry.
type Registry struct {
	unit  Unit
	zones []Zone
}

// LoadRegistry validates definitions and freezes them in load order.
func LoadRegistry(unit Unit, defs []ZoneDefinition) (*Registry, error) {
	if _, err := ParseUnit(string(unit)); err != nil {
		return nil, err
	}

	zones := make([]Zone, 0, len(defs))
	for i, def := range defs {
		if def.Class == "" {
			return nil, fmt.Errorf("%w: zone %d has no class label", ErrMalformedZoneData, i)
		}
		if len(def.Points) != ZonePoints {
			return nil, fmt.Errorf("%w: zone %d has %d points, want %d", ErrMalformedZoneData, i, len(def.Points), ZonePoints)
		}

		pts := make([]Point, 0, ZonePoints)
		for j, p := range def.Points {
			if len(p) != 2 {
				return nil, fmt.Errorf("%w: zone %d point %d has %d coordinates", ErrMalformedZoneData, i, j, len(p))
			}
			if !finite(p[0]) || !finite(p[1]) {
				return nil, fmt.Errorf("%w: zone %d point %d is not finite", ErrMalformedZoneData, i, j)
			}
			if unit == UnitNormalized && (p[0] < 0 || p[0] > 1 || p[1] < 0 || p[1] > 1) {
				return nil, fmt.Errorf("%w: zone %d point %d (%g, %g) is outside [0, 1]", ErrMalformedZoneData, i, j, p[0], p[1])
			}
			pts = append(pts, Point{X: p[0], Y: p[1]})
		}

		zones = append(zones, Zone{Index: i, Points: pts, ExpectedClass: def.Class})
	}

	return &Registry{unit: unit, zones: zones}, nil
}

func (r *Registry) Unit() Unit { return r.unit }

func (r *Registry) Len() int { return len(r.zones) }

// Zones returns a copy of the zones in load order.
func (r *Registry) Zones() []Zone {
	out := make([]Zone, len(r.zones))
	for i, z := range r.zones {
		out[i] = z.clone()
	}
	return out
}

// InPixels returns the zones in the pixel space of a width x height frame.
// Pixel registries are returned unchanged.
func (r *Registry) InPixels(width, height int) ([]Zone, error) {
	if r.unit == UnitPixel {
		return r.Zones(), nil
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFrameSize, width, height)
	}

	out := make([]Zone, len(r.zones))
	for i, z := range r.zones {
		scaled := z.clone()
		for j, p := range scaled.Points {
			scaled.Points[j] = Point{X: p.X * float64(width), Y: p.Y * float64(height)}
		}
		out[i] = scaled
	}
	return out, nil
}

// UnknownClasses lists expected classes missing from classes, in zone order without duplicates.
func (r *Registry) UnknownClasses(classes ClassList) []string {
	known := make(map[string]struct{}, len(classes))
	for _, name := range classes {
		known[name] = struct{}{}
	}

	var missing []string
	seen := map[string]struct{}{}
	for _, z := range r.zones {
		if _, ok := known[z.ExpectedClass]; ok {
			continue
		}
		if _, ok := seen[z.ExpectedClass]; ok {
			continue
		}
		seen[z.ExpectedClass] = struct{}{}
		missing = append(missing, z.ExpectedClass)
	}
	return missing
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
