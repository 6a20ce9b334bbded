// Package metrics exposes simulation counters and distributions as
// Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/fluidsim/fluidsim/logging"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "fluidsim"

var (
	flowsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "flows_started_total",
			Help:      "Flows admitted to the simulation",
		},
		[]string{"variant"},
	)
	flowsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "flows_completed_total",
			Help:      "Short flows that transferred all their bytes",
		},
		[]string{"variant"},
	)
	outages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "outages_total",
			Help:      "Link outages",
		},
	)
	deliveredBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "delivered_bytes_total",
			Help:      "Bytes drained from the bottleneck queue",
		},
	)
	queueBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "queue_bytes",
			Help:      "Bottleneck queue occupancy",
		},
	)
	utilization = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "link_utilization",
			Help:      "Fraction of the link capacity served in the last tick",
		},
	)
	congestionWindow = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "congestion_window_pkts",
			Help:      "Most recently updated congestion window",
		},
		[]string{"variant"},
	)
	queueDelay = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "queue_delay_ms",
			Help:      "Per-tick queueing delay",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)
	flowCompletionTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "flow_completion_time_ms",
			Help:      "Short flow completion times",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 12),
		},
		[]string{"variant"},
	)
)

type tracer struct{}

var _ logging.Tracer = tracer{}

// NewTracer creates a new tracer using the default Prometheus registerer.
func NewTracer() logging.Tracer {
	return NewTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewTracerWithRegisterer creates a new tracer using a given Prometheus registerer.
func NewTracerWithRegisterer(registerer prometheus.Registerer) logging.Tracer {
	for _, c := range [...]prometheus.Collector{
		flowsStarted,
		flowsCompleted,
		outages,
		deliveredBytes,
		queueBytes,
		utilization,
		congestionWindow,
		queueDelay,
		flowCompletionTime,
	} {
		if err := registerer.Register(c); err != nil {
			if ok := errors.As(err, &prometheus.AlreadyRegisteredError{}); !ok {
				panic(err)
			}
		}
	}
	return tracer{}
}

func (tracer) StartedFlow(_ float64, _ logging.FlowID, variant logging.Variant, _ float64) {
	flowsStarted.WithLabelValues(variant.String()).Inc()
}

func (tracer) CompletedFlow(c logging.FlowCompletion) {
	flowsCompleted.WithLabelValues(c.Variant.String()).Inc()
	flowCompletionTime.WithLabelValues(c.Variant.String()).Observe(c.FCTMs())
}

func (tracer) UpdatedCongestionWindow(_ float64, _ logging.FlowID, variant logging.Variant, cwnd float64) {
	congestionWindow.WithLabelValues(variant.String()).Set(cwnd)
}

func (tracer) UpdatedMetrics(stats logging.TickStats) {
	queueBytes.Set(stats.QueueBytes)
	utilization.Set(stats.Utilization)
	queueDelay.Observe(stats.QueueDelayMs)
	deliveredBytes.Add(stats.DeliveredBytes)
}

func (tracer) OutageStarted(_, _ float64) { outages.Inc() }
func (tracer) OutageEnded(float64)        {}
func (tracer) Close()                     {}
