package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
)

func TestObserveEvaluation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveEvaluation(SourceAPI, scoring.Evaluation{Score: 92, Band: scoring.BandVeryGood})
	m.ObserveEvaluation(SourceNATS, scoring.Evaluation{Score: 50, Band: scoring.BandPoor, Fallback: true})
	m.ObserveEvaluation(SourceAPI, scoring.Evaluation{Score: 91, Band: scoring.BandVeryGood})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.evaluations.WithLabelValues("Very Good", SourceAPI)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("Poor", SourceNATS)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks))
	assert.Equal(t, 1, testutil.CollectAndCount(m.scores))
}

func TestObserveRejectedAndReset(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRejected(SourceAPI)
	m.ObserveRejected(SourceAPI)
	m.ObserveReset()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rejected.WithLabelValues(SourceAPI)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resets))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEvaluation(SourceAPI, scoring.Evaluation{})
		m.ObserveRejected(SourceAPI)
		m.ObserveReset()
	})
}
