package occupancy

import "image/color"

type DrawKind string

const (
	DrawPolygon DrawKind = "polygon"
	DrawBox     DrawKind = "box"
	DrawText    DrawKind = "text"
)

// DrawCommand is one recorded draw request.
type DrawCommand struct {
	Kind       DrawKind    `json:"kind"`
	Points     []Point     `json:"points,omitempty"`
	Box        *Box        `json:"box,omitempty"`
	Label      string      `json:"label,omitempty"`
	Lines      []string    `json:"lines,omitempty"`
	Color      color.RGBA  `json:"color"`
	Background *color.RGBA `json:"background,omitempty"`
}

// CommandRecorder is a Renderer that keeps the requests instead of drawing them.
type CommandRecorder struct {
	Commands []DrawCommand
}

func (r *CommandRecorder) DrawPolygon(points []Point, c color.RGBA) {
	pts := make([]Point, len(points))
	copy(pts, points)
	r.Commands = append(r.Commands, DrawCommand{Kind: DrawPolygon, Points: pts, Color: c})
}

func (r *CommandRecorder) DrawBox(box Box, label string, c color.RGBA) {
	r.Commands = append(r.Commands, DrawCommand{Kind: DrawBox, Box: &box, Label: label, Color: c})
}

func (r *CommandRecorder) DrawText(lines []string, text, background color.RGBA) {
	ls := make([]string, len(lines))
	copy(ls, lines)
	r.Commands = append(r.Commands, DrawCommand{Kind: DrawText, Lines: ls, Color: text, Background: &background})
}
