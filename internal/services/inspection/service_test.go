package inspection

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"slotwatch-worker-go/internal/config"
	"slotwatch-worker-go/internal/metrics"
	"slotwatch-worker-go/internal/models"
	"slotwatch-worker-go/internal/occupancy"
	"slotwatch-worker-go/internal/store"
)

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads []interface{}
}

func (p *recordingPublisher) Publish(subject string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		WorkerID:       "worker-test",
		ResultsSubject: "occupancy.results",
		HistoryLimit:   50,
	}
}

func newTestService(t *testing.T, pub models.MessagePublisher, history HistoryStore) *Service {
	t.Helper()
	reg, err := occupancy.LoadRegistry(occupancy.UnitPixel, []occupancy.ZoneDefinition{
		{Points: [][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, Class: "bolt"},
	})
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	engine, err := occupancy.NewEngine(reg, occupancy.ClassList{"bolt"}, occupancy.EngineOptions{Palette: occupancy.DefaultPalette()})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewService(testConfig(), engine, pub, history, metrics.New())
}

func TestProcessFrame_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		bbox []float32
		want occupancy.FrameSummary
	}{
		{"inside", []float32{2, 2, 4, 4}, occupancy.FrameSummary{Correct: 1}},
		{"outside", []float32{20, 20, 22, 22}, occupancy.FrameSummary{Empty: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &recordingPublisher{}
			svc := newTestService(t, pub, nil)

			frame := &models.DetectionFrame{
				CameraID: "cam-1", FrameID: 1, Width: 640, Height: 480,
				Detections: []models.Detection{{BBox: tt.bbox, ClassID: 0, Confidence: 0.9}},
			}
			res, err := svc.ProcessFrame(context.Background(), frame)
			if err != nil {
				t.Fatalf("ProcessFrame: %v", err)
			}
			if res.Summary != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, res.Summary)
			}
			if len(pub.subjects) != 1 || pub.subjects[0] != "occupancy.results" {
				t.Errorf("expected one publish on occupancy.results, got %v", pub.subjects)
			}
			if latest, ok := svc.Latest("cam-1"); !ok || latest != res {
				t.Error("expected result to be cached as latest")
			}
		})
	}
}

func TestProcessFrame_InvalidInput(t *testing.T) {
	svc := newTestService(t, nil, nil)

	tests := []struct {
		name  string
		frame *models.DetectionFrame
	}{
		{"nil", nil},
		{"no camera", &models.DetectionFrame{}},
		{"bad bbox", &models.DetectionFrame{CameraID: "cam-1", Detections: []models.Detection{{BBox: []float32{1, 2}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ProcessFrame(context.Background(), tt.frame); !errors.Is(err, ErrInvalidFrame) {
				t.Errorf("expected ErrInvalidFrame, got %v", err)
			}
		})
	}
	if len(svc.Cameras()) != 0 {
		t.Errorf("failed frames must not be cached, got %v", svc.Cameras())
	}
}

func TestProcessFrame_DrawCommands(t *testing.T) {
	svc := newTestService(t, nil, nil)

	frame := &models.DetectionFrame{
		CameraID: "cam-1", DrawDetections: true,
		Detections: []models.Detection{{BBox: []float32{2, 2, 4, 4}, ClassID: 0, Confidence: 0.5}},
	}
	res, err := svc.ProcessFrame(context.Background(), frame)
	if err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	if len(res.DrawCommands) != 3 {
		t.Fatalf("expected polygon, box and text commands, got %+v", res.DrawCommands)
	}
	if res.DrawCommands[1].Label != "bolt: 0.50" {
		t.Errorf("unexpected label %q", res.DrawCommands[1].Label)
	}
}

func TestProcessFrame_History(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	defer st.Close()

	svc := newTestService(t, nil, st)
	for i := 0; i < 3; i++ {
		frame := &models.DetectionFrame{CameraID: "cam-9", FrameID: int64(i)}
		if _, err := svc.ProcessFrame(context.Background(), frame); err != nil {
			t.Fatalf("ProcessFrame: %v", err)
		}
	}

	recs, err := svc.History(context.Background(), "cam-9", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].Summary != (occupancy.FrameSummary{Empty: 1}) {
		t.Errorf("unexpected summary %+v", recs[0].Summary)
	}
}

func TestHandleMessage(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(t, pub, nil)

	data, _ := json.Marshal(models.DetectionFrame{
		CameraID:   "cam-2",
		Detections: []models.Detection{{BBox: []float32{2, 2, 4, 4}, ClassID: 0, Confidence: 0.8}},
	})
	svc.HandleMessage(data)
	svc.HandleMessage([]byte("{not json"))

	latest, ok := svc.Latest("cam-2")
	if !ok {
		t.Fatal("expected a cached result for cam-2")
	}
	if latest.Summary.Correct != 1 {
		t.Errorf("expected one correct zone, got %+v", latest.Summary)
	}
	if len(pub.payloads) != 1 {
		t.Errorf("expected one published result, got %d", len(pub.payloads))
	}
}
