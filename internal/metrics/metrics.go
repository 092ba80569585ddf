// Package metrics exposes the Prometheus instruments of the bot. A nil *Metrics
// is valid and records nothing, so tests and tools can skip the registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "makanapa"

// Outcome labels.
const (
	OutcomeWon      = "won"
	OutcomeLost     = "lost"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
	OutcomeDone     = "done"
)

type Metrics struct {
	events          *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	ordersCreated   prometheus.Counter
	claims          *prometheus.CounterVec
	cancellations   *prometheus.CounterVec
	publishFailures prometheus.Counter
	orphanedOrders  prometheus.Gauge
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbound_events_total",
			Help:      "Total number of inbound chat events by kind.",
		}, []string{"kind"}),
		eventDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_handling_duration_seconds",
			Help:      "Time spent handling one inbound event.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Total number of orders stored.",
		}),
		claims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_claims_total",
			Help:      "Claim attempts by outcome.",
		}, []string{"outcome"}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_cancellations_total",
			Help:      "Cancellation attempts by outcome.",
		}, []string{"outcome"}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runner_publish_failures_total",
			Help:      "Orders stored but never posted to the runner channel.",
		}),
		orphanedOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orphaned_orders",
			Help:      "Pending orders without a runner post, as of the last report.",
		}),
	}

	reg.MustRegister(
		m.events,
		m.eventDuration,
		m.ordersCreated,
		m.claims,
		m.cancellations,
		m.publishFailures,
		m.orphanedOrders,
	)
	return m
}

func (m *Metrics) ObserveEvent(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
	m.eventDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *Metrics) Claim(outcome string) {
	if m == nil {
		return
	}
	m.claims.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Cancellation(outcome string) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

func (m *Metrics) SetOrphanedOrders(n int) {
	if m == nil {
		return
	}
	m.orphanedOrders.Set(float64(n))
}
