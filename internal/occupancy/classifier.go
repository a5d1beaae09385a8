package occupancy

import (
	"encoding"
	"fmt"
)

// ZoneStatus is the occupancy state of a zone in one frame.
type ZoneStatus uint8

const (
	StatusEmpty ZoneStatus = iota
	StatusCorrect
	StatusIncorrect
)

var (
	_ encoding.TextMarshaler   = ZoneStatus(0)
	_ encoding.TextUnmarshaler = (*ZoneStatus)(nil)
)

func (s ZoneStatus) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusCorrect:
		return "correct"
	case StatusIncorrect:
		return "incorrect"
	default:
		return fmt.Sprintf("ZoneStatus(%d)", uint8(s))
	}
}

func (s ZoneStatus) MarshalText() ([]byte, error) {
	switch s {
	case StatusEmpty, StatusCorrect, StatusIncorrect:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown zone status %d", uint8(s))
	}
}

func (s *ZoneStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "empty":
		*s = StatusEmpty
	case "correct":
		*s = StatusCorrect
	case "incorrect":
		*s = StatusIncorrect
	default:
		return fmt.Errorf("unknown zone status %q", text)
	}
	return nil
}

// ZoneResult is the classification of one zone. DetectionIndex points at the
// deciding detection, or is -1 for an empty zone.
type ZoneResult struct {
	Zone           Zone       `json:"zone"`
	Status         ZoneStatus `json:"status"`
	DetectionIndex int        `json:"detection_index"`
}

// Classifier decides zone statuses from one frame of detections.
type Classifier struct {
	classes ClassList
}

func NewClassifier(classes ClassList) *Classifier {
	return &Classifier{classes: classes}
}

// Classify returns one result per zone, in zone order.
//
// Detections are examined in the order given. The first detection whose
// center falls inside a zone (edges included) decides that zone, and later
// detections are not looked at for it. Reordering detections can therefore
// change the outcome when a zone holds more than one object.
func (c *Classifier) Classify(zones []Zone, detections []Detection) ([]ZoneResult, error) {
	centers := make([]Point, len(detections))
	for i, det := range detections {
		centers[i] = det.Box.Center()
	}

	results := make([]ZoneResult, 0, len(zones))
	for _, z := range zones {
		if len(z.Points) != ZonePoints {
			return nil, fmt.Errorf("%w: zone %d has %d points", ErrInvalidZonePolygon, z.Index, len(z.Points))
		}

		result := ZoneResult{Zone: z, Status: StatusEmpty, DetectionIndex: -1}
		for i, center := range centers {
			if !containsPoint(z.Points, center) {
				continue
			}
			result.DetectionIndex = i
			if name, ok := c.classes.Name(detections[i].ClassID); ok && name == z.ExpectedClass {
				result.Status = StatusCorrect
			} else {
				result.Status = StatusIncorrect
			}
			break
		}
		results = append(results, result)
	}
	return results, nil
}
