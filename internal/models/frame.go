package models

import (
	"fmt"
	"time"

	"slotwatch-worker-go/internal/occupancy"
)

// Detection is one object in a detector message
type Detection struct {
	BBox       []float32 `json:"bbox"`
	ClassID    int       `json:"class_id"`
	Confidence float32   `json:"confidence"`
	TrackID    int32     `json:"track_id,omitempty"`
}

// DetectionFrame is the detector output for one video frame
type DetectionFrame struct {
	CameraID       string      `json:"camera_id"`
	FrameID        int64       `json:"frame_id"`
	Timestamp      time.Time   `json:"timestamp"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	DrawDetections bool        `json:"draw_detections,omitempty"`
	Detections     []Detection `json:"detections"`
}

// OccupancyDetections converts the message detections, keeping their order.
func (f *DetectionFrame) OccupancyDetections() ([]occupancy.Detection, error) {
	out := make([]occupancy.Detection, 0, len(f.Detections))
	for i, d := range f.Detections {
		if len(d.BBox) != 4 {
			return nil, fmt.Errorf("detection %d: %w: bbox has %d values", i, occupancy.ErrMalformedDetection, len(d.BBox))
		}
		det, err := occupancy.NewDetection(
			float64(d.BBox[0]), float64(d.BBox[1]), float64(d.BBox[2]), float64(d.BBox[3]),
			d.ClassID, d.Confidence,
		)
		if err != nil {
			return nil, fmt.Errorf("detection %d: %w", i, err)
		}
		out = append(out, det)
	}
	return out, nil
}

// ZoneReport is the status of one zone in a result
type ZoneReport struct {
	Index          int                  `json:"index"`
	Class          string               `json:"class"`
	Status         occupancy.ZoneStatus `json:"status"`
	DetectionIndex int                  `json:"detection_index"`
	Points         []occupancy.Point    `json:"points"`
}

// OccupancyResult is published for every processed frame
type OccupancyResult struct {
	CameraID       string                  `json:"camera_id"`
	FrameID        int64                   `json:"frame_id"`
	Timestamp      time.Time               `json:"timestamp"`
	Summary        occupancy.FrameSummary  `json:"summary"`
	Zones          []ZoneReport            `json:"zones"`
	ProcessingTime time.Duration           `json:"processing_time_ns"`
	DrawCommands   []occupancy.DrawCommand `json:"draw_commands,omitempty"`
	Warnings       []string                `json:"warnings,omitempty"`
}

// NewOccupancyResult builds the wire result of a processed frame.
func NewOccupancyResult(frame *DetectionFrame, res occupancy.FrameResult) *OccupancyResult {
	zones := make([]ZoneReport, 0, len(res.Zones))
	for _, z := range res.Zones {
		zones = append(zones, ZoneReport{
			Index:          z.Zone.Index,
			Class:          z.Zone.ExpectedClass,
			Status:         z.Status,
			DetectionIndex: z.DetectionIndex,
			Points:         z.Zone.Points,
		})
	}

	return &OccupancyResult{
		CameraID:  frame.CameraID,
		FrameID:   frame.FrameID,
		Timestamp: frame.Timestamp,
		Summary:   res.Summary,
		Zones:     zones,
	}
}

// MessagePublisher interface for publishing results
type MessagePublisher interface {
	Publish(subject string, data interface{}) error
}
