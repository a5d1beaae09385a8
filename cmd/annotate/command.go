package main

import (
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"slotwatch-worker-go/internal/config"
	"slotwatch-worker-go/internal/occupancy"
	"slotwatch-worker-go/internal/zonefile"
)

type options struct {
	video          string
	zones          string
	classes        string
	detections     string
	output         string
	unit           string
	drawDetections bool
	show           bool
	fourcc         string
	verbose        bool
}

// NewCommand creates the annotate command with its flags
func NewCommand() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Replay recorded detections over a video and write the annotated result",
		Long: `annotate reads a video and a JSON-lines file of detection frames keyed by
frame_id, classifies every frame against the zone file and writes the frame
with zone outlines, optional detection boxes and the occupancy summary.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(o.verbose)
			if err := o.validate(); err != nil {
				return err
			}
			engine, err := o.engine()
			if err != nil {
				return err
			}
			return run(cmd.Context(), o, engine)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&o.video, "video", "", "input video file")
	fs.StringVar(&o.zones, "zones", "zones.json", "zone definition file")
	fs.StringVar(&o.classes, "classes", "data.yaml", "class list file")
	fs.StringVar(&o.detections, "detections", "", "detection frames, one JSON object per line")
	fs.StringVar(&o.output, "output", "annotated.avi", "output video file")
	fs.StringVar(&o.unit, "unit", "", "zone unit for files without one (pixel or normalized)")
	fs.BoolVar(&o.drawDetections, "draw-detections", true, "draw detection boxes and labels")
	fs.BoolVar(&o.show, "show", false, "display frames while processing, q quits")
	fs.StringVar(&o.fourcc, "fourcc", "mp4v", "output codec")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func (o *options) validate() error {
	if o.video == "" {
		return errors.New("--video is required")
	}
	if o.detections == "" {
		return errors.New("--detections is required")
	}
	if len(o.fourcc) != 4 {
		return errors.New("--fourcc must be four characters")
	}
	return nil
}

func (o *options) engine() (*occupancy.Engine, error) {
	var fallback occupancy.Unit
	if o.unit != "" {
		u, err := occupancy.ParseUnit(o.unit)
		if err != nil {
			return nil, err
		}
		fallback = u
	}

	registry, err := zonefile.LoadRegistry(o.zones, fallback)
	if err != nil {
		return nil, err
	}
	classes, err := zonefile.LoadClasses(o.classes)
	if err != nil {
		return nil, err
	}
	if missing := registry.UnknownClasses(classes); len(missing) > 0 {
		log.Warn().Strs("classes", missing).Msg("Zones expect classes missing from the class list")
	}

	// Overlay colors follow the worker's environment settings.
	cfg := config.Load()
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	return occupancy.NewEngine(registry, classes, occupancy.EngineOptions{
		Palette:    palette,
		ColorTable: occupancy.NewColorTable(cfg.ColorTableOptions(palette)),
	})
}

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
