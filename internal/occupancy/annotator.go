package occupancy

import (
	"errors"
	"fmt"
	"image/color"
)

// Renderer receives draw requests for one frame.
type Renderer interface {
	DrawPolygon(points []Point, c color.RGBA)
	DrawBox(box Box, label string, c color.RGBA)
	DrawText(lines []string, text, background color.RGBA)
}

// Palette holds the fixed colors used for zone outlines and the summary block.
type Palette struct {
	Correct    color.RGBA
	Incorrect  color.RGBA
	Empty      color.RGBA
	Text       color.RGBA
	Background color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Correct:    color.RGBA{R: 0, G: 255, B: 0, A: 255},
		Incorrect:  color.RGBA{R: 0, G: 0, B: 255, A: 255},
		Empty:      color.RGBA{R: 255, G: 0, B: 0, A: 255},
		Text:       color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Reserved lists the palette colors class colors must avoid.
func (p Palette) Reserved() []color.RGBA {
	return []color.RGBA{p.Text, p.Background, p.Correct, p.Incorrect, p.Empty}
}

func (p Palette) StatusColor(s ZoneStatus) color.RGBA {
	switch s {
	case StatusCorrect:
		return p.Correct
	case StatusIncorrect:
		return p.Incorrect
	default:
		return p.Empty
	}
}

// Annotator turns classification results into draw requests. It never
// changes the results it is given.
type Annotator struct {
	palette Palette
	colors  *ColorTable
	classes ClassList
}

func NewAnnotator(palette Palette, colors *ColorTable, classes ClassList) *Annotator {
	return &Annotator{palette: palette, colors: colors, classes: classes}
}

// Annotate draws zone outlines, optionally detection boxes, then the summary.
// Color exhaustion is reported after every request has been issued.
func (a *Annotator) Annotate(r Renderer, results []ZoneResult, detections []Detection, summary FrameSummary, drawDetections bool) error {
	for _, res := range results {
		r.DrawPolygon(res.Zone.Points, a.palette.StatusColor(res.Status))
	}

	var errs []error
	if drawDetections {
		for _, det := range detections {
			c, err := a.colors.ColorFor(det.ClassID)
			if err != nil {
				errs = append(errs, err)
			}
			label := fmt.Sprintf("%s: %.2f", a.classes.Label(det.ClassID), det.Confidence)
			r.DrawBox(det.Box, label, c)
		}
	}

	r.DrawText(summary.Lines(), a.palette.Text, a.palette.Background)
	return errors.Join(errs...)
}
