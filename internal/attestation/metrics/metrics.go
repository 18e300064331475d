package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AttestationsCreated prometheus.Counter
	AttestationsRevoked prometheus.Counter
	VerifyResults       *prometheus.CounterVec
	VerifyRejected      prometheus.Counter
	VerifyDuration      prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		AttestationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attestry_attestations_created_total",
			Help: "Total number of attestations created",
		}),
		AttestationsRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attestry_attestations_revoked_total",
			Help: "Total number of attestations revoked",
		}),
		VerifyResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attestry_verify_total",
			Help: "Total number of verify calls, labeled by result",
		}, []string{"result"}),
		VerifyRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attestry_verify_rejected_total",
			Help: "Verify traversals rejected by the depth bound or cycle check",
		}),
		VerifyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "attestry_verify_duration_seconds",
			Help:    "Duration of verify call trees (composite hot path)",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
}

func (m *Metrics) IncrementCreated() {
	m.AttestationsCreated.Inc()
}

func (m *Metrics) IncrementRevoked() {
	m.AttestationsRevoked.Inc()
}

func (m *Metrics) ObserveVerify(start time.Time, valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.VerifyResults.WithLabelValues(result).Inc()
	m.VerifyDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementVerifyRejected() {
	m.VerifyRejected.Inc()
}
