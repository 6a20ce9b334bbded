// Package fluidsim is a fluid, discrete-time simulator of transport-layer
// congestion control. It models competing flows sharing a single bottleneck
// link, drives each flow's congestion window through pluggable control
// algorithms and produces per-tick and per-flow statistics under a
// low-latency data-center regime and a high-latency, outage-prone long-haul
// regime.
package fluidsim

import (
	"github.com/fluidsim/fluidsim/internal/protocol"
	"github.com/fluidsim/fluidsim/logging"
)

type (
	// A Variant is a congestion-control algorithm.
	Variant = protocol.Variant
	// A FlowID identifies a flow within a single simulation run.
	FlowID = protocol.FlowID
	// TickStats is one sample of the per-tick time series.
	TickStats = logging.TickStats
	// FlowCompletion records the lifetime of one finished transfer.
	FlowCompletion = logging.FlowCompletion
)

const (
	// Reno halves its window on any loss or ECN signal.
	Reno = protocol.Reno
	// DCTCP scales its decrease with the smoothed fraction of marked bytes.
	DCTCP = protocol.DCTCP
	// SpaceCC is delay-based and ignores loss and ECN entirely.
	SpaceCC = protocol.SpaceCC
)

// PacketBytes is the packet size used for all window and buffer computations.
const PacketBytes = protocol.PacketBytes

// VariantFromString parses a variant name as it appears in configuration
// files.
func VariantFromString(s string) (Variant, error) {
	return protocol.VariantFromString(s)
}
