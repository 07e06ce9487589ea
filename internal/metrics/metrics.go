package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Generation outcomes.
const (
	OutcomeGenerated = "generated"
	OutcomeFallback  = "fallback"
	OutcomeExhausted = "exhausted"
)

// Metrics collects counters for the review and payment pipelines.
type Metrics struct {
	generations   *prometheus.CounterVec
	paymentEvents *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revu",
			Name:      "generations_total",
			Help:      "Review generation requests by outcome.",
		}, []string{"outcome"}),
		paymentEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revu",
			Name:      "payment_events_total",
			Help:      "Payment applications by source and result.",
		}, []string{"source", "result"}),
	}
	prometheus.MustRegister(m.generations, m.paymentEvents)
	return m
}

func (m *Metrics) RecordGeneration(outcome string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordPaymentEvent(source string, result string) {
	if m == nil {
		return
	}
	m.paymentEvents.WithLabelValues(source, result).Inc()
}

// Module wires prometheus metrics.
var Module = fx.Module("metrics",
	fx.Provide(New),
)
