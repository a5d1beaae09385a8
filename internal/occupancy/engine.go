package occupancy

import "fmt"

// FrameResult is everything decided for one frame.
type FrameResult struct {
	Zones   []ZoneResult `json:"zones"`
	Summary FrameSummary `json:"summary"`
}

type EngineOptions struct {
	Palette Palette
	// ColorTable is created from the palette when nil.
	ColorTable *ColorTable
}

// Engine runs the per-frame pipeline for one session. It keeps no state
// between frames apart from the class color table.
type Engine struct {
	registry   *Registry
	classes    ClassList
	classifier *Classifier
	annotator  *Annotator
	colors     *ColorTable
}

func NewEngine(registry *Registry, classes ClassList, opts EngineOptions) (*Engine, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrMalformedZoneData)
	}
	colors := opts.ColorTable
	if colors == nil {
		colors = NewColorTable(ColorTableOptions{Reserved: opts.Palette.Reserved()})
	}

	return &Engine{
		registry:   registry,
		classes:    classes,
		classifier: NewClassifier(classes),
		annotator:  NewAnnotator(opts.Palette, colors, classes),
		colors:     colors,
	}, nil
}

func (e *Engine) Registry() *Registry { return e.registry }

func (e *Engine) Classes() ClassList { return e.classes }

func (e *Engine) Colors() *ColorTable { return e.colors }

// Process classifies one frame of width x height pixels.
func (e *Engine) Process(width, height int, detections []Detection) (FrameResult, error) {
	zones, err := e.registry.InPixels(width, height)
	if err != nil {
		return FrameResult{}, err
	}

	results, err := e.classifier.Classify(zones, detections)
	if err != nil {
		return FrameResult{}, err
	}

	return FrameResult{Zones: results, Summary: Summarize(results)}, nil
}

// Annotate issues the draw requests for a processed frame.
func (e *Engine) Annotate(r Renderer, result FrameResult, detections []Detection, drawDetections bool) error {
	return e.annotator.Annotate(r, result.Zones, detections, result.Summary, drawDetections)
}
