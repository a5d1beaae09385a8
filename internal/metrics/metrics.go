package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"slotwatch-worker-go/internal/occupancy"
)

// Metrics holds the worker's Prometheus collectors
type Metrics struct {
	FramesProcessed *prometheus.CounterVec
	FrameErrors     *prometheus.CounterVec
	ZoneStatuses    *prometheus.GaugeVec
	ProcessLatency  prometheus.Histogram
	ColorFallbacks  prometheus.Counter

	registry *prometheus.Registry
}

// New creates a Metrics instance with its own registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FramesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slotwatch_frames_processed_total",
			Help: "Frames classified, by camera",
		}, []string{"camera_id"}),
		FrameErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slotwatch_frame_errors_total",
			Help: "Frames rejected or failed, by reason",
		}, []string{"reason"}),
		ZoneStatuses: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slotwatch_zones",
			Help: "Zones per status in the latest frame of each camera",
		}, []string{"camera_id", "status"}),
		ProcessLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "slotwatch_frame_processing_seconds",
			Help:    "Time to classify and annotate one frame",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		ColorFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slotwatch_class_color_fallbacks_total",
			Help: "Class colors that fell back to the default color",
		}),
	}

	m.registry.MustRegister(
		m.FramesProcessed,
		m.FrameErrors,
		m.ZoneStatuses,
		m.ProcessLatency,
		m.ColorFallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFrame records one classified frame
func (m *Metrics) ObserveFrame(cameraID string, summary occupancy.FrameSummary, took time.Duration) {
	m.FramesProcessed.WithLabelValues(cameraID).Inc()
	m.ZoneStatuses.WithLabelValues(cameraID, occupancy.StatusCorrect.String()).Set(float64(summary.Correct))
	m.ZoneStatuses.WithLabelValues(cameraID, occupancy.StatusIncorrect.String()).Set(float64(summary.Incorrect))
	m.ZoneStatuses.WithLabelValues(cameraID, occupancy.StatusEmpty.String()).Set(float64(summary.Empty))
	m.ProcessLatency.Observe(took.Seconds())
}

func (m *Metrics) ObserveError(reason string) {
	m.FrameErrors.WithLabelValues(reason).Inc()
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
