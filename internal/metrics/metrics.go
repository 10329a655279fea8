package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/mathcoach/internal/questiongen"
)

const namespace = "mathcoach"

// Recorder collects question-generation and grading metrics on its own
// registry. It satisfies questiongen.Observer and session.Observer.
type Recorder struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	verdicts    *prometheus.CounterVec
	sessions    prometheus.Gauge
}

// NewRecorder registers all collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_generations_total",
			Help:      "Question generation attempts by kind and outcome.",
		}, []string{"kind", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "question_generation_seconds",
			Help:      "Wall time of question generation, retries included.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"kind"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_graded_total",
			Help:      "Graded answers by verdict.",
		}, []string{"verdict"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_sessions_active",
			Help:      "Practice sessions held by the HTTP API.",
		}),
	}

	r.registry.MustRegister(
		r.generations,
		r.latency,
		r.verdicts,
		r.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveGeneration records one finished generation. An empty cause means
// success.
func (r *Recorder) ObserveGeneration(cause questiongen.Cause, followUp bool, elapsed time.Duration) {
	kind := "initial"
	if followUp {
		kind = "follow-up"
	}
	outcome := "ok"
	if cause != "" {
		outcome = string(cause)
	}
	r.generations.WithLabelValues(kind, outcome).Inc()
	r.latency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveVerdict records one graded answer.
func (r *Recorder) ObserveVerdict(correct bool) {
	verdict := "incorrect"
	if correct {
		verdict = "correct"
	}
	r.verdicts.WithLabelValues(verdict).Inc()
}

// SetActiveSessions reports how many sessions the HTTP API holds.
func (r *Recorder) SetActiveSessions(n int) {
	r.sessions.Set(float64(n))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
