package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder observes one completed Cursor's lifetime: how many candidates it
// considered, how many times it backtracked, how many mappings it emitted,
// and how long that took. The default is a no-op; PrometheusRecorder is the
// concrete implementation callers reach for in production.
type Recorder interface {
	ObserveSearch(candidatesExplored, backtracks, mappingsEmitted int, dur time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSearch(int, int, int, time.Duration) {}

// PrometheusRecorder records search activity as Prometheus counters and a
// duration histogram.
type PrometheusRecorder struct {
	candidatesExplored prometheus.Counter
	backtracks         prometheus.Counter
	mappingsEmitted    prometheus.Counter
	duration           prometheus.Histogram
}

// NewPrometheusRecorder registers the search metrics into reg and returns a
// Recorder backed by them.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	f := promauto.With(reg)
	return &PrometheusRecorder{
		candidatesExplored: f.NewCounter(prometheus.CounterOpts{
			Name: "motifscan_search_candidates_explored_total",
			Help: "Host candidates considered across all search steps.",
		}),
		backtracks: f.NewCounter(prometheus.CounterOpts{
			Name: "motifscan_search_backtracks_total",
			Help: "Backtracking steps taken during search.",
		}),
		mappingsEmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "motifscan_search_mappings_emitted_total",
			Help: "Mappings emitted across all searches.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "motifscan_search_duration_seconds",
			Help:    "Wall-clock duration of one Search call, from start to exhaustion/cancellation.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (r *PrometheusRecorder) ObserveSearch(candidatesExplored, backtracks, mappingsEmitted int, dur time.Duration) {
	r.candidatesExplored.Add(float64(candidatesExplored))
	r.backtracks.Add(float64(backtracks))
	r.mappingsEmitted.Add(float64(mappingsEmitted))
	r.duration.Observe(dur.Seconds())
}
