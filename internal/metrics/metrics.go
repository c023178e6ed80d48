// Package metrics exposes Prometheus instruments for evaluations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
)

// Sources label where an evaluation request came from.
const (
	SourceAPI  = "api"
	SourceNATS = "nats"
)

// Metrics records evaluation outcomes. A nil *Metrics is a no-op.
type Metrics struct {
	evaluations *prometheus.CounterVec
	scores      prometheus.Histogram
	fallbacks   prometheus.Counter
	rejected    *prometheus.CounterVec
	resets      prometheus.Counter
}

// New registers the instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appraise",
			Name:      "evaluations_total",
			Help:      "Evaluations completed, by display band and request source.",
		}, []string{"band", "source"}),
		scores: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "appraise",
			Name:      "evaluation_score",
			Help:      "Distribution of defuzzified composite scores.",
			Buckets:   []float64{25, 35, 45, 55, 62, 70, 78, 85, 92, 100},
		}),
		fallbacks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "appraise",
			Name:      "evaluation_fallback_total",
			Help:      "Evaluations where no rule fired and the fallback score was used.",
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appraise",
			Name:      "evaluation_rejected_total",
			Help:      "Evaluation requests rejected by validation.",
		}, []string{"source"}),
		resets: f.NewCounter(prometheus.CounterOpts{
			Namespace: "appraise",
			Name:      "ranking_resets_total",
			Help:      "Session rankings reset.",
		}),
	}
}

func (m *Metrics) ObserveEvaluation(source string, ev scoring.Evaluation) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(string(ev.Band), source).Inc()
	m.scores.Observe(ev.Score)
	if ev.Fallback {
		m.fallbacks.Inc()
	}
}

func (m *Metrics) ObserveRejected(source string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveReset() {
	if m == nil {
		return
	}
	m.resets.Inc()
}
