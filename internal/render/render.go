// Package render draws occupancy annotations onto gocv frames.
package render

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"slotwatch-worker-go/internal/occupancy"
)

// MatRenderer implements occupancy.Renderer on a BGR gocv.Mat.
type MatRenderer struct {
	mat *gocv.Mat

	Thickness int
	FontScale float64
	Margin    int
}

var _ occupancy.Renderer = (*MatRenderer)(nil)

func NewMatRenderer(mat *gocv.Mat) *MatRenderer {
	return &MatRenderer{mat: mat, Thickness: 2, FontScale: 0.5, Margin: 10}
}

func (r *MatRenderer) DrawPolygon(points []occupancy.Point, c color.RGBA) {
	if r.mat == nil || r.mat.Empty() || len(points) == 0 {
		return
	}

	pts := make([]image.Point, len(points))
	for i, p := range points {
		pts[i] = toImagePoint(p)
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()

	gocv.Polylines(r.mat, pv, true, c, r.Thickness)
}

func (r *MatRenderer) DrawBox(box occupancy.Box, label string, c color.RGBA) {
	if r.mat == nil || r.mat.Empty() {
		return
	}

	rect := r.clampRect(image.Rect(int(box.X1), int(box.Y1), int(box.X2), int(box.Y2)))
	gocv.Rectangle(r.mat, rect, c, r.Thickness)

	if label == "" {
		return
	}
	textY := rect.Min.Y - 10
	if textY < 15 {
		textY = rect.Min.Y + 15
	}
	gocv.PutText(r.mat, label, image.Pt(rect.Min.X, textY), gocv.FontHersheySimplex, r.FontScale, c, r.Thickness)
}

// DrawText draws the lines in a filled panel anchored to the top-right corner.
func (r *MatRenderer) DrawText(lines []string, text, background color.RGBA) {
	if r.mat == nil || r.mat.Empty() || len(lines) == 0 {
		return
	}

	fontFace := gocv.FontHersheySimplex
	fontScale := r.FontScale * 1.4
	thickness := r.Thickness

	maxWidth, lineHeight := 0, 0
	for _, line := range lines {
		size := gocv.GetTextSize(line, fontFace, fontScale, thickness)
		maxWidth = max(maxWidth, size.X)
		lineHeight = max(lineHeight, size.Y)
	}
	spacing := lineHeight + r.Margin

	panelWidth := maxWidth + r.Margin*2
	panelHeight := spacing*len(lines) + r.Margin
	x := r.mat.Cols() - panelWidth - r.Margin
	if x < 0 {
		x = 0
	}
	y := r.Margin

	panel := image.Rect(x, y, x+panelWidth, y+panelHeight)
	gocv.Rectangle(r.mat, panel, background, -1)
	gocv.Rectangle(r.mat, panel, text, 1)

	for i, line := range lines {
		baseline := y + r.Margin + lineHeight + i*spacing
		gocv.PutText(r.mat, line, image.Pt(x+r.Margin, baseline), fontFace, fontScale, text, thickness)
	}
}

func (r *MatRenderer) clampRect(rect image.Rectangle) image.Rectangle {
	width, height := r.mat.Cols(), r.mat.Rows()
	x1 := max(0, min(width-2, rect.Min.X))
	y1 := max(0, min(height-2, rect.Min.Y))
	x2 := max(x1+1, min(width-1, rect.Max.X))
	y2 := max(y1+1, min(height-1, rect.Max.Y))
	return image.Rect(x1, y1, x2, y2)
}

func toImagePoint(p occupancy.Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}
