package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"

	"slotwatch-worker-go/internal/models"
	"slotwatch-worker-go/internal/occupancy"
	"slotwatch-worker-go/internal/render"
)

const windowName = "Slotwatch Occupancy"

// readDetections indexes detection frames by frame_id. Later lines win.
func readDetections(r io.Reader) (map[int64]*models.DetectionFrame, error) {
	frames := make(map[int64]*models.DetectionFrame)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var f models.DetectionFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		frames[f.FrameID] = &f
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

func loadDetections(path string) (map[int64]*models.DetectionFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readDetections(f)
}

// run annotates every frame of the input video. Frames without a detection
// record are written unchanged.
func run(ctx context.Context, o *options, engine *occupancy.Engine) error {
	if ctx == nil {
		ctx = context.Background()
	}

	detections, err := loadDetections(o.detections)
	if err != nil {
		return fmt.Errorf("failed to read detections: %w", err)
	}

	capture, err := gocv.VideoCaptureFile(o.video)
	if err != nil {
		return fmt.Errorf("failed to open video %s: %w", o.video, err)
	}
	defer capture.Close()

	width := int(capture.Get(gocv.VideoCaptureFrameWidth))
	height := int(capture.Get(gocv.VideoCaptureFrameHeight))
	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = 30
	}

	writer, err := gocv.VideoWriterFile(o.output, o.fourcc, fps, width, height, true)
	if err != nil {
		return fmt.Errorf("failed to open output %s: %w", o.output, err)
	}
	defer writer.Close()

	var window *gocv.Window
	if o.show {
		window = gocv.NewWindow(windowName)
		defer window.Close()
	}

	log.Info().
		Str("video", o.video).
		Int("width", width).
		Int("height", height).
		Float64("fps", fps).
		Int("zones", engine.Registry().Len()).
		Int("detection_frames", len(detections)).
		Msg("Annotating video")

	frame := gocv.NewMat()
	defer frame.Close()

	var (
		frameID   int64
		annotated int
		totals    occupancy.FrameSummary
	)
	for ; ; frameID++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ok := capture.Read(&frame); !ok || frame.Empty() {
			break
		}

		if df, ok := detections[frameID]; ok {
			summary, err := annotateFrame(&frame, engine, df, o.drawDetections)
			if err != nil {
				return fmt.Errorf("frame %d: %w", frameID, err)
			}
			annotated++
			totals.Correct += summary.Correct
			totals.Incorrect += summary.Incorrect
			totals.Empty += summary.Empty
		}

		if err := writer.Write(frame); err != nil {
			return fmt.Errorf("frame %d: failed to write: %w", frameID, err)
		}

		if window != nil {
			window.IMShow(frame)
			if window.WaitKey(1)&0xFF == 'q' {
				break
			}
		}
	}

	log.Info().
		Int64("frames", frameID).
		Int("annotated", annotated).
		Int("correct", totals.Correct).
		Int("incorrect", totals.Incorrect).
		Int("empty", totals.Empty).
		Str("output", o.output).
		Msg("Annotation finished")
	return nil
}

func annotateFrame(mat *gocv.Mat, engine *occupancy.Engine, df *models.DetectionFrame, drawDetections bool) (occupancy.FrameSummary, error) {
	dets, err := df.OccupancyDetections()
	if err != nil {
		return occupancy.FrameSummary{}, err
	}

	res, err := engine.Process(mat.Cols(), mat.Rows(), dets)
	if err != nil {
		return occupancy.FrameSummary{}, err
	}

	if err := engine.Annotate(render.NewMatRenderer(mat), res, dets, drawDetections || df.DrawDetections); err != nil {
		// Exhausted class colors fall back to a neutral color; keep going.
		log.Warn().Err(err).Int64("frame_id", df.FrameID).Msg("Class color fallback used")
	}
	return res.Summary, nil
}
