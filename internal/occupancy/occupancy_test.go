package occupancy

import (
	"errors"
	"testing"
)

func square(x0, y0, x1, y1 float64) [][]float64 {
	return [][]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func mustRegistry(t *testing.T, unit Unit, defs ...ZoneDefinition) *Registry {
	t.Helper()
	reg, err := LoadRegistry(unit, defs)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	return reg
}

func det(x1, y1, x2, y2 float64, classID int) Detection {
	return Detection{Box: Box{X1: x1, Y1: y1, X2: x2, Y2: y2}, ClassID: classID, Confidence: 0.9}
}

func TestLoadRegistry_Malformed(t *testing.T) {
	tests := []struct {
		name string
		unit Unit
		def  ZoneDefinition
	}{
		{"three points", UnitPixel, ZoneDefinition{Points: [][]float64{{0, 0}, {1, 0}, {1, 1}}, Class: "bolt"}},
		{"five points", UnitPixel, ZoneDefinition{Points: append(square(0, 0, 1, 1), []float64{0, 0}), Class: "bolt"}},
		{"missing class", UnitPixel, ZoneDefinition{Points: square(0, 0, 1, 1)}},
		{"short point", UnitPixel, ZoneDefinition{Points: [][]float64{{0}, {1, 0}, {1, 1}, {0, 1}}, Class: "bolt"}},
		{"normalized out of range", UnitNormalized, ZoneDefinition{Points: square(0, 0, 2, 1), Class: "bolt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRegistry(tt.unit, []ZoneDefinition{tt.def})
			if !errors.Is(err, ErrMalformedZoneData) {
				t.Errorf("expected ErrMalformedZoneData, got %v", err)
			}
		})
	}
}

func TestLoadRegistry_UnknownUnit(t *testing.T) {
	_, err := LoadRegistry(Unit("inches"), nil)
	if !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestRegistry_ZonesAreCopies(t *testing.T) {
	reg := mustRegistry(t, UnitPixel,
		ZoneDefinition{Points: square(0, 0, 10, 10), Class: "bolt"},
		ZoneDefinition{Points: square(20, 0, 30, 10), Class: "nut"},
	)

	zones := reg.Zones()
	if len(zones) != 2 || zones[0].ExpectedClass != "bolt" || zones[1].ExpectedClass != "nut" {
		t.Fatalf("unexpected zones %+v", zones)
	}
	if zones[1].Index != 1 {
		t.Errorf("expected index 1, got %d", zones[1].Index)
	}

	zones[0].Points[0] = Point{X: 99, Y: 99}
	if got := reg.Zones()[0].Points[0]; got != (Point{}) {
		t.Errorf("registry was mutated through Zones(): %+v", got)
	}
}

func TestRegistry_InPixels(t *testing.T) {
	reg := mustRegistry(t, UnitNormalized, ZoneDefinition{Points: square(0, 0, 0.5, 0.5), Class: "bolt"})

	zones, err := reg.InPixels(200, 100)
	if err != nil {
		t.Fatalf("InPixels: %v", err)
	}
	if got := zones[0].Points[2]; got != (Point{X: 100, Y: 50}) {
		t.Errorf("expected (100, 50), got %+v", got)
	}

	if _, err := reg.InPixels(0, 100); !errors.Is(err, ErrFrameSize) {
		t.Errorf("expected ErrFrameSize, got %v", err)
	}
}

func TestRegistry_UnknownClasses(t *testing.T) {
	reg := mustRegistry(t, UnitPixel,
		ZoneDefinition{Points: square(0, 0, 1, 1), Class: "bolt"},
		ZoneDefinition{Points: square(0, 0, 1, 1), Class: "washer"},
		ZoneDefinition{Points: square(0, 0, 1, 1), Class: "washer"},
	)
	missing := reg.UnknownClasses(ClassList{"bolt", "nut"})
	if len(missing) != 1 || missing[0] != "washer" {
		t.Errorf("expected [washer], got %v", missing)
	}
}

func TestContainsPoint(t *testing.T) {
	poly := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{5, 5}, true},
		{"outside", Point{15, 5}, false},
		{"on right edge", Point{10, 3}, true},
		{"on bottom edge", Point{4, 0}, true},
		{"on vertex", Point{10, 10}, true},
		{"beyond edge line", Point{10, 11}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsPoint(poly, tt.p); got != tt.want {
				t.Errorf("containsPoint(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	diamond := []Point{{5, 0}, {10, 5}, {5, 10}, {0, 5}}
	if containsPoint(diamond, Point{1, 1}) {
		t.Error("corner of bounding box should be outside the diamond")
	}
	if !containsPoint(diamond, Point{7.5, 2.5}) {
		t.Error("point on slanted edge should be inside")
	}
}

func TestClassify(t *testing.T) {
	classes := ClassList{"A", "B"}
	zones := mustRegistry(t, UnitPixel, ZoneDefinition{Points: square(0, 0, 10, 10), Class: "A"}).Zones()
	c := NewClassifier(classes)

	tests := []struct {
		name  string
		dets  []Detection
		want  ZoneStatus
		index int
	}{
		{"no detections", nil, StatusEmpty, -1},
		{"matching inside", []Detection{det(2, 2, 4, 4, 0)}, StatusCorrect, 0},
		{"other class inside", []Detection{det(2, 2, 4, 4, 1)}, StatusIncorrect, 0},
		{"unknown class id", []Detection{det(2, 2, 4, 4, 7)}, StatusIncorrect, 0},
		{"only outside", []Detection{det(20, 20, 22, 22, 0), det(-5, -5, -1, -1, 1)}, StatusEmpty, -1},
		{"center on edge", []Detection{det(8, 2, 12, 4, 0)}, StatusCorrect, 0},
		{"first hit wins", []Detection{det(20, 20, 22, 22, 1), det(2, 2, 4, 4, 0), det(5, 5, 7, 7, 1)}, StatusCorrect, 1},
		{"first hit wins reversed", []Detection{det(5, 5, 7, 7, 1), det(2, 2, 4, 4, 0)}, StatusIncorrect, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := c.Classify(zones, tt.dets)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if len(results) != 1 {
				t.Fatalf("expected 1 result, got %d", len(results))
			}
			if results[0].Status != tt.want {
				t.Errorf("expected %s, got %s", tt.want, results[0].Status)
			}
			if results[0].DetectionIndex != tt.index {
				t.Errorf("expected detection index %d, got %d", tt.index, results[0].DetectionIndex)
			}
		})
	}
}

func TestClassify_OrderFlipsResult(t *testing.T) {
	c := NewClassifier(ClassList{"A", "B"})
	zones := mustRegistry(t, UnitPixel, ZoneDefinition{Points: square(0, 0, 10, 10), Class: "A"}).Zones()
	match, other := det(1, 1, 3, 3, 0), det(6, 6, 8, 8, 1)

	forward, _ := c.Classify(zones, []Detection{match, other})
	backward, _ := c.Classify(zones, []Detection{other, match})
	if forward[0].Status != StatusCorrect || backward[0].Status != StatusIncorrect {
		t.Errorf("expected correct then incorrect, got %s then %s", forward[0].Status, backward[0].Status)
	}
}

func TestClassify_InvalidPolygon(t *testing.T) {
	c := NewClassifier(ClassList{"A"})
	zones := []Zone{{Index: 3, Points: []Point{{0, 0}, {1, 0}, {1, 1}}, ExpectedClass: "A"}}
	if _, err := c.Classify(zones, nil); !errors.Is(err, ErrInvalidZonePolygon) {
		t.Errorf("expected ErrInvalidZonePolygon, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	results := []ZoneResult{
		{Status: StatusCorrect}, {Status: StatusEmpty}, {Status: StatusIncorrect},
		{Status: StatusCorrect}, {Status: StatusEmpty},
	}
	got := Summarize(results)
	want := FrameSummary{Correct: 2, Incorrect: 1, Empty: 2}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if got.Total() != len(results) {
		t.Errorf("total %d does not match %d zones", got.Total(), len(results))
	}
}

func TestEngine_Scenarios(t *testing.T) {
	reg := mustRegistry(t, UnitPixel, ZoneDefinition{Points: square(0, 0, 10, 10), Class: "bolt"})
	engine, err := NewEngine(reg, ClassList{"bolt"}, EngineOptions{Palette: DefaultPalette()})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	tests := []struct {
		name string
		dets []Detection
		want FrameSummary
	}{
		{"inside", []Detection{det(2, 2, 4, 4, 0)}, FrameSummary{Correct: 1}},
		{"outside", []Detection{det(20, 20, 22, 22, 0)}, FrameSummary{Empty: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Process(640, 480, tt.dets)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if res.Summary != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, res.Summary)
			}
		})
	}
}

func TestEngine_SummaryMatchesZoneCount(t *testing.T) {
	var defs []ZoneDefinition
	for i := 0; i < 6; i++ {
		x := float64(i * 10)
		defs = append(defs, ZoneDefinition{Points: square(x, 0, x+10, 10), Class: []string{"A", "B"}[i%2]})
	}
	engine, err := NewEngine(mustRegistry(t, UnitPixel, defs...), ClassList{"A", "B"}, EngineOptions{Palette: DefaultPalette()})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	frames := [][]Detection{
		nil,
		{det(1, 1, 3, 3, 0)},
		{det(1, 1, 3, 3, 1), det(12, 1, 14, 3, 1), det(22, 1, 24, 3, 1), det(100, 100, 110, 110, 0)},
		{det(45, 4, 55, 6, 0)},
	}
	for i, dets := range frames {
		res, err := engine.Process(100, 100, dets)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if res.Summary.Total() != len(defs) {
			t.Errorf("frame %d: summary %+v does not cover %d zones", i, res.Summary, len(defs))
		}
	}
}

func TestNewDetection(t *testing.T) {
	d, err := NewDetection(10, 8, 2, 4, 1, 0.5)
	if err != nil {
		t.Fatalf("NewDetection: %v", err)
	}
	if d.Box != (Box{X1: 2, Y1: 4, X2: 10, Y2: 8}) {
		t.Errorf("expected swapped corners, got %+v", d.Box)
	}

	if _, err := NewDetection(0, 0, 1, 1, 0, 1.5); !errors.Is(err, ErrMalformedDetection) {
		t.Errorf("expected ErrMalformedDetection for confidence, got %v", err)
	}
	if _, err := NewDetection(0, 0, 1, 1, -1, 0.5); !errors.Is(err, ErrMalformedDetection) {
		t.Errorf("expected ErrMalformedDetection for class id, got %v", err)
	}
}

func TestZoneStatus_Text(t *testing.T) {
	for _, s := range []ZoneStatus{StatusEmpty, StatusCorrect, StatusIncorrect} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", s, err)
		}
		var back ZoneStatus
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("round trip of %s gave %s (%v)", s, back, err)
		}
	}
	if _, err := ZoneStatus(9).MarshalText(); err == nil {
		t.Error("expected error for unknown status")
	}
}
