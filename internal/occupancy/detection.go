package occupancy

import (
	"fmt"
	"math"
)

// Box is an axis-aligned bounding box in pixel coordinates.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Normalize orders the corners so that X1 <= X2 and Y1 <= Y2.
func (b Box) Normalize() Box {
	if b.X1 > b.X2 {
		b.X1, b.X2 = b.X2, b.X1
	}
	if b.Y1 > b.Y2 {
		b.Y1, b.Y2 = b.Y2, b.Y1
	}
	return b
}

// Center is the midpoint of the box.
func (b Box) Center() Point {
	return Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

// Detection is one object reported by the detector for the current frame.
type Detection struct {
	Box        Box     `json:"box"`
	ClassID    int     `json:"class_id"`
	Confidence float32 `json:"confidence"`
}

// NewDetection validates raw detector output and normalizes the box corners.
func NewDetection(x1, y1, x2, y2 float64, classID int, confidence float32) (Detection, error) {
	for _, v := range []float64{x1, y1, x2, y2} {
		if !finite(v) {
			return Detection{}, fmt.Errorf("%w: non-finite box coordinate", ErrMalformedDetection)
		}
	}
	if math.IsNaN(float64(confidence)) || confidence < 0 || confidence > 1 {
		return Detection{}, fmt.Errorf("%w: confidence %v outside [0, 1]", ErrMalformedDetection, confidence)
	}
	if classID < 0 {
		return Detection{}, fmt.Errorf("%w: negative class id %d", ErrMalformedDetection, classID)
	}

	box := Box{X1: x1, Y1: y1, X2: x2, Y2: y2}
	return Detection{Box: box.Normalize(), ClassID: classID, Confidence: confidence}, nil
}

// ClassList maps detector class ids to class names by index.
type ClassList []string

// Name returns the class name for id.
func (c ClassList) Name(id int) (string, bool) {
	if id < 0 || id >= len(c) {
		return "", false
	}
	return c[id], true
}

// Label returns the class name for id, or a placeholder for ids outside the list.
func (c ClassList) Label(id int) string {
	if name, ok := c.Name(id); ok {
		return name
	}
	return fmt.Sprintf("class %d", id)
}
