package metrics

import (
	"math"
	"testing"

	"github.com/fluidsim/fluidsim/internal/protocol"
	"github.com/fluidsim/fluidsim/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTestTracer() logging.Tracer {
	return NewTracerWithRegisterer(prometheus.NewRegistry())
}

func TestRegistersWithMultipleRegisterers(t *testing.T) {
	require.NotPanics(t, func() {
		NewTracerWithRegisterer(prometheus.NewRegistry())
		NewTracerWithRegisterer(prometheus.NewRegistry())
	})
}

func TestFlowCounters(t *testing.T) {
	tracer := newTestTracer()
	started := testutil.ToFloat64(flowsStarted.WithLabelValues("reno"))
	completed := testutil.ToFloat64(flowsCompleted.WithLabelValues("reno"))

	tracer.StartedFlow(0, 1, protocol.Reno, math.Inf(1))
	tracer.StartedFlow(1, 10000, protocol.Reno, 102400)
	tracer.CompletedFlow(logging.FlowCompletion{
		FlowID:       10000,
		Variant:      protocol.Reno,
		Bytes:        102400,
		StartMs:      1,
		CompletionMs: 2,
	})

	require.Equal(t, started+2, testutil.ToFloat64(flowsStarted.WithLabelValues("reno")))
	require.Equal(t, completed+1, testutil.ToFloat64(flowsCompleted.WithLabelValues("reno")))
}

func TestLinkMetrics(t *testing.T) {
	tracer := newTestTracer()
	delivered := testutil.ToFloat64(deliveredBytes)

	tracer.UpdatedMetrics(logging.TickStats{
		QueueBytes:     4500,
		QueueDelayMs:   0.0036,
		Utilization:    0.8,
		DeliveredBytes: 100000,
	})
	tracer.UpdatedMetrics(logging.TickStats{DeliveredBytes: 25000})

	require.Equal(t, 0.0, testutil.ToFloat64(queueBytes))
	require.Equal(t, 0.0, testutil.ToFloat64(utilization))
	require.Equal(t, delivered+125000, testutil.ToFloat64(deliveredBytes))
}

func TestCongestionWindowGauge(t *testing.T) {
	tracer := newTestTracer()
	tracer.UpdatedCongestionWindow(0, 1, protocol.SpaceCC, 42)
	tracer.UpdatedCongestionWindow(1, 1, protocol.SpaceCC, 21)
	require.Equal(t, 21.0, testutil.ToFloat64(congestionWindow.WithLabelValues("spacecc")))
}

func TestOutageCounter(t *testing.T) {
	tracer := newTestTracer()
	before := testutil.ToFloat64(outages)
	tracer.OutageStarted(0, 50)
	tracer.OutageEnded(50)
	require.Equal(t, before+1, testutil.ToFloat64(outages))
}
