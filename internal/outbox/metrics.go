package outbox

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rental_outbox"

type Metrics struct {
	published    prometheus.Counter
	failed       prometheus.Counter
	batchSize    prometheus.Histogram
	breakerState prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "published_total",
			Help:      "Outbox messages delivered to Kafka.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Failed attempts to deliver an outbox message.",
		}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Messages claimed per poll.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		breakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_state",
			Help:      "Kafka circuit breaker state: 0 closed, 1 half-open, 2 open.",
		}),
	}

	reg.MustRegister(m.published, m.failed, m.batchSize, m.breakerState)

	return m
}
