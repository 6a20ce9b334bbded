package fluidsim

import (
	"math"

	"github.com/fluidsim/fluidsim/internal/congestion"
	"github.com/fluidsim/fluidsim/internal/protocol"
)

// A flow owns one congestion controller and the per-flow connection state.
// Flows are exclusively owned by their simulator and never shared.
type flow struct {
	id      protocol.FlowID
	variant Variant

	cwnd       float64 // congestion window, in packets
	rttStats   *congestion.RTTStats
	controller congestion.Controller

	sizeBytes      float64 // +Inf for long-lived flows
	remainingBytes float64

	startMs      float64
	completionMs float64
	completed    bool

	// lost is per-tick scratch: bytes were tail-dropped at enqueue during
	// the current tick.
	lost bool
}

func newFlow(id protocol.FlowID, variant Variant, baseRTTMs, sizeBytes float64) *flow {
	rttStats := congestion.NewRTTStats(baseRTTMs)
	return &flow{
		id:             id,
		variant:        variant,
		cwnd:           protocol.InitialCongestionWindow,
		rttStats:       rttStats,
		controller:     congestion.NewController(variant, rttStats),
		sizeBytes:      sizeBytes,
		remainingBytes: sizeBytes,
	}
}

func (f *flow) isLongLived() bool { return math.IsInf(f.sizeBytes, 1) }

// offeredBytes is the rate-based approximation of sending one window's worth
// of data per RTT.
func (f *flow) offeredBytes(dtMs float64) float64 {
	srtt := max(f.rttStats.SmoothedRTT(), protocol.MinRTTForScaling)
	return f.cwnd * protocol.PacketBytes * dtMs / srtt
}
