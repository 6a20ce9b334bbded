package congestion

import "github.com/fluidsim/fluidsim/internal/protocol"

const (
	// spaceRatioGain is the EWMA weight of a new RTT-ratio sample.
	spaceRatioGain = 0.1
	// spaceRatioThreshold is the smoothed RTT inflation above which the
	// window is halved.
	spaceRatioThreshold = 1.25
	// spaceGrowthPerRTT targets roughly doubling the window per RTT absent
	// a congestion signal.
	spaceGrowthPerRTT = 0.5
)

// spaceController is delay-based: it watches the smoothed ratio of measured
// RTT to propagation RTT and backs off once the ratio signals queueing.
// Loss and ECN are ignored on purpose, neither signal survives a long,
// jittery, outage-prone link reliably.
//
// The policy is deliberately simple and meant to be replaced by a better
// delay- or hybrid-based scheme behind the same Controller contract.
type spaceController struct {
	rttStats *RTTStats
	rttRatio float64 // EWMA of measuredRTT / baseRTT, starts at 1
}

func (c *spaceController) OnFeedback(cwnd float64, fb Feedback) float64 {
	base := max(c.rttStats.BaseRTT(), protocol.MinRTTForScaling)
	c.rttRatio = (1-spaceRatioGain)*c.rttRatio + spaceRatioGain*fb.MeasuredRTTMs/base
	if c.rttRatio > spaceRatioThreshold {
		return clampWindow(cwnd * 0.5)
	}
	return clampWindow(additiveIncrease(cwnd, spaceGrowthPerRTT, fb.ElapsedMs, c.rttStats.SmoothedRTT()))
}
