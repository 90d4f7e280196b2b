package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RendersTotal        *prometheus.CounterVec
	RenderStageDuration *prometheus.HistogramVec
	FramesWrittenTotal  prometheus.Counter
	RendersInFlight     prometheus.Gauge

	initOnce sync.Once
)

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		RendersTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renders_total",
				Help: "Total number of video render attempts.",
			},
			[]string{"status", "error_type"}, // status: success, failure
		)

		RenderStageDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "render_stage_duration_seconds",
				Help:    "Duration of each render pipeline stage.",
				Buckets: []float64{0.5, 1, 5, 10, 20, 30, 60, 120, 300},
			},
			[]string{"stage"},
		)

		FramesWrittenTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "frames_written_total",
				Help: "Total number of video frames synthesized.",
			},
		)

		RendersInFlight = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "renders_in_flight",
				Help: "Current number of renders holding a pipeline slot.",
			},
		)
	})
}
