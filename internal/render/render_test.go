package render

import (
	"image/color"
	"testing"

	"gocv.io/x/gocv"

	"slotwatch-worker-go/internal/occupancy"
)

func TestMatRenderer_DrawPolygon(t *testing.T) {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 100, 100, gocv.MatTypeCV8UC3)
	defer mat.Close()

	r := NewMatRenderer(&mat)
	r.DrawPolygon([]occupancy.Point{{X: 10, Y: 10}, {X: 60, Y: 10}, {X: 60, Y: 60}, {X: 10, Y: 60}}, color.RGBA{G: 255, A: 255})

	if got := mat.GetVecbAt(10, 30)[1]; got != 255 {
		t.Errorf("expected green outline on the top edge, got channel value %d", got)
	}
	if got := mat.GetVecbAt(35, 35)[1]; got != 0 {
		t.Errorf("expected untouched interior, got channel value %d", got)
	}
}

func TestMatRenderer_Annotate(t *testing.T) {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 240, 320, gocv.MatTypeCV8UC3)
	defer mat.Close()

	reg, err := occupancy.LoadRegistry(occupancy.UnitNormalized, []occupancy.ZoneDefinition{
		{Points: [][]float64{{0.1, 0.1}, {0.5, 0.1}, {0.5, 0.5}, {0.1, 0.5}}, Class: "bolt"},
	})
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	engine, err := occupancy.NewEngine(reg, occupancy.ClassList{"bolt"}, occupancy.EngineOptions{Palette: occupancy.DefaultPalette()})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	dets := []occupancy.Detection{{Box: occupancy.Box{X1: 50, Y1: 40, X2: 90, Y2: 80}, ClassID: 0, Confidence: 0.7}}
	res, err := engine.Process(mat.Cols(), mat.Rows(), dets)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if err := engine.Annotate(NewMatRenderer(&mat), res, dets, true); err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	gray := mat.Reshape(1, 0)
	defer gray.Close()
	if gocv.CountNonZero(gray) == 0 {
		t.Error("expected annotations to change the frame")
	}
	// Summary panel background is white in the default palette.
	if v := mat.GetVecbAt(12, mat.Cols()-12); v[0] != 255 || v[1] != 255 || v[2] != 255 {
		t.Errorf("expected white summary panel, got %v", v)
	}
}
