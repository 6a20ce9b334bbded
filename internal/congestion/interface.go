// Package congestion implements the congestion-control algorithms driving
// the flows' windows: Reno, DCTCP and SpaceCC.
package congestion

import (
	"fmt"

	"github.com/fluidsim/fluidsim/internal/protocol"
)

// Feedback is one acknowledgment observation, delivered to a flow at the end
// of a tick for the bytes the bottleneck drained on its behalf.
type Feedback struct {
	// MeasuredRTTMs is the propagation RTT plus queueing delay (plus jitter
	// in the long-haul scenario), in milliseconds.
	MeasuredRTTMs float64
	// QueueDelayMs is the bottleneck's queueing delay, in milliseconds.
	QueueDelayMs float64
	// ECNFraction is the marked fraction of the delivered bytes, in [0, 1].
	ECNFraction float64
	// Loss reports whether any of the flow's bytes were tail-dropped at
	// enqueue time during this tick.
	Loss bool
	// ElapsedMs is the time since the previous feedback, in milliseconds.
	ElapsedMs float64
}

// A Controller maps the current congestion window and one feedback
// observation to a new window, in packets. Implementations own their
// variant-specific smoothed state and have no side effects beyond it.
// The returned window is never below protocol.MinCongestionWindow.
type Controller interface {
	OnFeedback(cwnd float64, fb Feedback) float64
}

// NewController creates the controller for the given variant. The RTT stats
// are owned by the flow and shared with the controller for RTT-relative
// scaling.
func NewController(v protocol.Variant, rttStats *RTTStats) Controller {
	switch v {
	case protocol.Reno:
		return &renoController{rttStats: rttStats}
	case protocol.DCTCP:
		return &dctcpController{rttStats: rttStats}
	case protocol.SpaceCC:
		return &spaceController{rttStats: rttStats, rttRatio: 1}
	default:
		panic(fmt.Sprintf("unknown congestion control variant: %d", v))
	}
}

func clampWindow(cwnd float64) float64 {
	return max(cwnd, protocol.MinCongestionWindow)
}

// additiveIncrease grows the window by growthPerRTT of itself, scaled to the
// fraction of a smoothed RTT covered by the elapsed time. Over a full RTT's
// worth of ticks the cumulative increase approximates growthPerRTT.
func additiveIncrease(cwnd, growthPerRTT, elapsedMs, srttMs float64) float64 {
	return cwnd + growthPerRTT*cwnd*elapsedMs/max(srttMs, protocol.MinRTTForScaling)
}
