// Package logging defines a tracing interface for fluidsim.
// The simulator invokes tracers inline from its single-threaded tick loop;
// implementations don't need to be safe for concurrent use within one run,
// but must not share mutable state across concurrently running simulators.
package logging

import "github.com/fluidsim/fluidsim/internal/protocol"

type (
	// A FlowID identifies a flow within a single simulation run.
	FlowID = protocol.FlowID
	// A Variant is a congestion-control algorithm.
	Variant = protocol.Variant
)

// TickStats is one sample of the per-tick time series.
type TickStats struct {
	TimeMs         float64
	QueueBytes     float64
	QueueDelayMs   float64
	Utilization    float64
	DeliveredBytes float64
}

// FlowCompletion records the lifetime of one finished transfer.
type FlowCompletion struct {
	FlowID       FlowID
	Variant      Variant
	Bytes        float64
	StartMs      float64
	CompletionMs float64
}

// FCTMs returns the flow completion time, in milliseconds.
func (c FlowCompletion) FCTMs() float64 { return c.CompletionMs - c.StartMs }

// A Tracer records events of a simulation run.
type Tracer interface {
	// StartedFlow is called when a flow joins the simulation. The size is
	// +Inf for long-lived flows.
	StartedFlow(timeMs float64, id FlowID, variant Variant, sizeBytes float64)
	// CompletedFlow is called when a short flow has transferred all its bytes.
	CompletedFlow(FlowCompletion)
	// UpdatedCongestionWindow is called after every controller update.
	UpdatedCongestionWindow(timeMs float64, id FlowID, variant Variant, cwnd float64)
	// UpdatedMetrics is called once per tick with the link-level aggregates.
	UpdatedMetrics(TickStats)
	// OutageStarted is called when the link goes dark.
	OutageStarted(timeMs, untilMs float64)
	// OutageEnded is called when acknowledgment delivery resumes.
	OutageEnded(timeMs float64)
	// Close is called when the run has finished.
	Close()
}
