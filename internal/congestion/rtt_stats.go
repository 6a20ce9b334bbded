package congestion

// rttAlpha is the EWMA weight of a new RTT sample, following RFC 6298.
const rttAlpha = 0.125

// RTTStats provides round-trip statistics for a single flow.
// All values are in milliseconds.
type RTTStats struct {
	baseRTT     float64
	latestRTT   float64
	smoothedRTT float64
}

// NewRTTStats creates the RTT statistics for a flow with the given
// propagation RTT. The smoothed RTT starts at the propagation RTT.
func NewRTTStats(baseRTTMs float64) *RTTStats {
	return &RTTStats{
		baseRTT:     baseRTTMs,
		smoothedRTT: baseRTTMs,
	}
}

// BaseRTT returns the fixed propagation RTT.
func (r *RTTStats) BaseRTT() float64 { return r.baseRTT }

// LatestRTT returns the most recent RTT measurement.
func (r *RTTStats) LatestRTT() float64 { return r.latestRTT }

// SmoothedRTT returns the EWMA-smoothed RTT.
func (r *RTTStats) SmoothedRTT() float64 { return r.smoothedRTT }

// Update feeds a new RTT measurement into the smoothed estimate.
func (r *RTTStats) Update(sampleMs float64) {
	if sampleMs < 0 {
		sampleMs = 0
	}
	r.latestRTT = sampleMs
	r.smoothedRTT = (1-rttAlpha)*r.smoothedRTT + rttAlpha*sampleMs
}
