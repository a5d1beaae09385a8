package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"slotwatch-worker-go/internal/occupancy"
)

func TestOccupancyDetections(t *testing.T) {
	frame := &DetectionFrame{Detections: []Detection{
		{BBox: []float32{4, 4, 2, 2}, ClassID: 0, Confidence: 0.9},
		{BBox: []float32{20, 20, 22, 22}, ClassID: 1, Confidence: 0.4},
	}}

	dets, err := frame.OccupancyDetections()
	if err != nil {
		t.Fatalf("OccupancyDetections: %v", err)
	}
	if len(dets) != 2 || dets[1].ClassID != 1 {
		t.Fatalf("unexpected detections %+v", dets)
	}
	if dets[0].Box.X1 != 2 || dets[0].Box.X2 != 4 {
		t.Errorf("expected normalized box, got %+v", dets[0].Box)
	}
}

func TestOccupancyDetections_Rejects(t *testing.T) {
	tests := []struct {
		name string
		det  Detection
	}{
		{"short bbox", Detection{BBox: []float32{1, 2, 3}}},
		{"confidence", Detection{BBox: []float32{1, 2, 3, 4}, Confidence: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := &DetectionFrame{Detections: []Detection{tt.det}}
			if _, err := frame.OccupancyDetections(); !errors.Is(err, occupancy.ErrMalformedDetection) {
				t.Errorf("expected ErrMalformedDetection, got %v", err)
			}
		})
	}
}

func TestOccupancyResultJSON(t *testing.T) {
	frame := &DetectionFrame{CameraID: "cam-1", FrameID: 7}
	res := occupancy.FrameResult{
		Zones: []occupancy.ZoneResult{{
			Zone:           occupancy.Zone{Index: 0, ExpectedClass: "bolt"},
			Status:         occupancy.StatusCorrect,
			DetectionIndex: 0,
		}},
		Summary: occupancy.FrameSummary{Correct: 1},
	}

	data, err := json.Marshal(NewOccupancyResult(frame, res))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"status":"correct"`, `"summary":{"correct":1,"incorrect":0,"empty":0}`, `"camera_id":"cam-1"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %s in %s", want, data)
		}
	}
}
