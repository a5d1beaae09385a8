package inspection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"slotwatch-worker-go/internal/config"
	"slotwatch-worker-go/internal/logging"
	"slotwatch-worker-go/internal/metrics"
	"slotwatch-worker-go/internal/models"
	"slotwatch-worker-go/internal/occupancy"
	"slotwatch-worker-go/internal/store"
)

// ErrInvalidFrame marks input errors in a detection frame.
var ErrInvalidFrame = errors.New("invalid detection frame")

// HistoryStore persists frame summaries
type HistoryStore interface {
	SaveSummary(ctx context.Context, rec *store.SummaryRecord) error
	RecentSummaries(ctx context.Context, cameraID string, limit int) ([]store.SummaryRecord, error)
}

// Service runs detection frames through the occupancy engine and fans the
// results out to NATS, the history store and the latest-result cache.
type Service struct {
	cfg       *config.Config
	engine    *occupancy.Engine
	publisher models.MessagePublisher
	history   HistoryStore
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	mu     sync.RWMutex
	latest map[string]*models.OccupancyResult
}

// NewService wires the engine to its outputs. publisher and history may be nil.
func NewService(cfg *config.Config, engine *occupancy.Engine, publisher models.MessagePublisher, history HistoryStore, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.New()
	}
	s := &Service{
		cfg:       cfg,
		engine:    engine,
		publisher: publisher,
		history:   history,
		metrics:   m,
		logger:    logging.NewServiceLogger(cfg, "occupancy"),
		latest:    make(map[string]*models.OccupancyResult),
	}

	if missing := engine.Registry().UnknownClasses(engine.Classes()); len(missing) > 0 {
		s.logger.Warn().Strs("classes", missing).Msg("Zones expect classes missing from the class list; they can never be correct")
	}
	return s
}

func (s *Service) Engine() *occupancy.Engine { return s.engine }

// SetPublisher attaches the result publisher once messaging is up.
func (s *Service) SetPublisher(p models.MessagePublisher) {
	s.mu.Lock()
	s.publisher = p
	s.mu.Unlock()
}

// ProcessFrame classifies one detection frame. Input errors wrap ErrInvalidFrame.
func (s *Service) ProcessFrame(ctx context.Context, frame *models.DetectionFrame) (*models.OccupancyResult, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidFrame)
	}
	if frame.CameraID == "" {
		s.metrics.ObserveError("missing_camera")
		return nil, fmt.Errorf("%w: camera_id is required", ErrInvalidFrame)
	}
	if frame.Timestamp.IsZero() {
		frame.Timestamp = time.Now()
	}
	logger := logging.WithCamera(s.logger, frame.CameraID)

	start := time.Now()
	dets, err := frame.OccupancyDetections()
	if err != nil {
		s.metrics.ObserveError("malformed_detection")
		return nil, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}

	res, err := s.engine.Process(frame.Width, frame.Height, dets)
	if err != nil {
		s.metrics.ObserveError("classification")
		if errors.Is(err, occupancy.ErrFrameSize) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
		}
		return nil, err
	}

	result := models.NewOccupancyResult(frame, res)

	if frame.DrawDetections || s.cfg.DrawDetections {
		rec := &occupancy.CommandRecorder{}
		if err := s.engine.Annotate(rec, res, dets, true); err != nil {
			s.metrics.ColorFallbacks.Inc()
			result.Warnings = append(result.Warnings, err.Error())
			logger.Warn().Err(err).Msg("Class color fallback used")
		}
		result.DrawCommands = rec.Commands
	}

	result.ProcessingTime = time.Since(start)
	s.metrics.ObserveFrame(frame.CameraID, res.Summary, result.ProcessingTime)

	logger.Debug().
		Int64("frame_id", frame.FrameID).
		Int("detections", len(dets)).
		Int("correct", res.Summary.Correct).
		Int("incorrect", res.Summary.Incorrect).
		Int("empty", res.Summary.Empty).
		Dur("processing_time", result.ProcessingTime).
		Msg("frame_classified")

	s.mu.Lock()
	s.latest[frame.CameraID] = result
	publisher := s.publisher
	s.mu.Unlock()

	if s.history != nil {
		rec := &store.SummaryRecord{
			CameraID:  frame.CameraID,
			FrameID:   frame.FrameID,
			Summary:   res.Summary,
			FrameTime: frame.Timestamp,
		}
		if err := s.history.SaveSummary(ctx, rec); err != nil {
			s.metrics.ObserveError("history")
			logger.Error().Err(err).Int64("frame_id", frame.FrameID).Msg("Failed to store occupancy summary")
		}
	}

	if publisher != nil {
		if err := publisher.Publish(s.cfg.ResultsSubject, result); err != nil {
			s.metrics.ObserveError("publish")
			logger.Error().Err(err).Str("subject", s.cfg.ResultsSubject).Msg("Failed to publish occupancy result")
		}
	}

	return result, nil
}

// HandleMessage is the NATS callback for detection frames.
func (s *Service) HandleMessage(data []byte) {
	var frame models.DetectionFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		s.metrics.ObserveError("decode")
		s.logger.Error().Err(err).Int("bytes", len(data)).Msg("Failed to decode detection frame")
		return
	}

	if _, err := s.ProcessFrame(context.Background(), &frame); err != nil {
		logger := logging.WithCamera(s.logger, frame.CameraID)
		logger.Error().Err(err).Int64("frame_id", frame.FrameID).Msg("Failed to process detection frame")
	}
}

// Latest returns the most recent result of a camera.
func (s *Service) Latest(cameraID string) (*models.OccupancyResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.latest[cameraID]
	return r, ok
}

// Cameras lists cameras that produced at least one result, sorted.
func (s *Service) Cameras() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.latest))
	for id := range s.latest {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// History returns stored summaries, newest first.
func (s *Service) History(ctx context.Context, cameraID string, limit int) ([]store.SummaryRecord, error) {
	if s.history == nil {
		return nil, errors.New("history is disabled")
	}
	if limit <= 0 || limit > s.cfg.HistoryLimit {
		limit = s.cfg.HistoryLimit
	}
	return s.history.RecentSummaries(ctx, cameraID, limit)
}

// HistoryEnabled reports whether summaries are being stored.
func (s *Service) HistoryEnabled() bool { return s.history != nil }
