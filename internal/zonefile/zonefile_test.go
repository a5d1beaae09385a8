package zonefile

import (
	"errors"
	"path/filepath"
	"testing"

	"slotwatch-worker-go/internal/occupancy"
)

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("testdata", "zones.json"), "")
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if reg.Unit() != occupancy.UnitNormalized {
		t.Errorf("expected normalized unit, got %q", reg.Unit())
	}
	if reg.Len() != 2 || reg.Zones()[1].ExpectedClass != "nut" {
		t.Errorf("unexpected zones %+v", reg.Zones())
	}
}

func TestLoadRegistry_LegacyNeedsUnit(t *testing.T) {
	path := filepath.Join("testdata", "legacy_zones.json")

	if _, err := LoadRegistry(path, ""); !errors.Is(err, ErrUnitRequired) {
		t.Fatalf("expected ErrUnitRequired, got %v", err)
	}

	reg, err := LoadRegistry(path, occupancy.UnitPixel)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if reg.Unit() != occupancy.UnitPixel || reg.Len() != 1 {
		t.Errorf("unexpected registry: unit %q, %d zones", reg.Unit(), reg.Len())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "  ", occupancy.ErrMalformedZoneData},
		{"bad json", `{"unit": `, occupancy.ErrMalformedZoneData},
		{"missing unit", `{"zones": []}`, ErrUnitRequired},
		{"bad unit", `{"unit": "mm", "zones": []}`, occupancy.ErrUnknownUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), ""); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParse_ThreePointZoneRejected(t *testing.T) {
	f, err := Parse([]byte(`{"unit": "pixel", "zones": [{"points": [[0,0],[1,0],[1,1]], "class": "bolt"}]}`), "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := f.Registry(); !errors.Is(err, occupancy.ErrMalformedZoneData) {
		t.Errorf("expected ErrMalformedZoneData, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.json")
	in := &File{Unit: occupancy.UnitPixel, Zones: []occupancy.ZoneDefinition{
		{Points: [][]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, Class: "nut"},
	}}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reg, err := LoadRegistry(path, "")
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if reg.Zones()[0].ExpectedClass != "nut" {
		t.Errorf("unexpected zones %+v", reg.Zones())
	}
}

func TestLoadClasses(t *testing.T) {
	classes, err := LoadClasses(filepath.Join("testdata", "data.yaml"))
	if err != nil {
		t.Fatalf("LoadClasses: %v", err)
	}
	want := []string{"bolt", "nut", "washer"}
	if len(classes) != len(want) {
		t.Fatalf("expected %v, got %v", want, classes)
	}
	for i := range want {
		if classes[i] != want[i] {
			t.Errorf("class %d: expected %q, got %q", i, want[i], classes[i])
		}
	}
}

func TestParseClasses(t *testing.T) {
	classes, err := ParseClasses([]byte("names: [bolt, nut]\n"))
	if err != nil {
		t.Fatalf("ParseClasses: %v", err)
	}
	if name, ok := classes.Name(1); !ok || name != "nut" {
		t.Errorf("expected nut, got %q", name)
	}

	if _, err := ParseClasses([]byte("names:\n  0: bolt\n  2: nut\n")); err == nil {
		t.Error("expected error for gap in class ids")
	}
	if _, err := ParseClasses([]byte("nc: 2\n")); err == nil {
		t.Error("expected error for missing names")
	}
}
