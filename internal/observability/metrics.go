package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Turn paths.
const (
	PathMemory   = "memory"
	PathNoMemory = "no_memory"
)

// Metrics groups all Prometheus instruments used by the agent.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Turns              *prometheus.CounterVec
	StepFailures       *prometheus.CounterVec
	RetrievalHits      prometheus.Counter
	RetrievalDiscarded prometheus.Counter
	StepDuration       *prometheus.HistogramVec
}

// NewMetrics registers the instruments with reg. A nil reg uses the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Completed conversational turns by path.",
		}, []string{"path"}),
		StepFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_failures_total",
			Help:      "Orchestration step failures by step.",
		}, []string{"step"}),
		RetrievalHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_hits_total",
			Help:      "Memory hits added to a turn.",
		}),
		RetrievalDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_discarded_total",
			Help:      "Memory hits dropped because the turn had already seen them.",
		}),
		StepDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Orchestration step latency.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"step"}),
	}
}

func (m *Metrics) ObserveStep(step string, d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.StepDuration.WithLabelValues(step).Observe(d.Seconds())
	if failed {
		m.StepFailures.WithLabelValues(step).Inc()
	}
}

func (m *Metrics) TurnCompleted(path string) {
	if m == nil {
		return
	}
	m.Turns.WithLabelValues(path).Inc()
}

func (m *Metrics) ObserveRetrieval(kept, discarded int) {
	if m == nil {
		return
	}
	m.RetrievalHits.Add(float64(kept))
	m.RetrievalDiscarded.Add(float64(discarded))
}

// Handler serves g in the Prometheus text format. A nil g serves the default gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
