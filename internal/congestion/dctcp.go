package congestion

// dctcpGain is the EWMA weight of a new marking sample, g in the DCTCP paper.
const dctcpGain = 1.0 / 16

// dctcpController scales its multiplicative decrease with the smoothed
// fraction of marked bytes. A single marked sample produces a much gentler
// cut than Reno's flat halving, since (2-alpha)/2 >= 0.5 for alpha <= 1.
type dctcpController struct {
	rttStats *RTTStats
	alpha    float64 // smoothed fraction of marked bytes, in [0, 1]
}

func (c *dctcpController) OnFeedback(cwnd float64, fb Feedback) float64 {
	c.alpha = (1-dctcpGain)*c.alpha + dctcpGain*fb.ECNFraction
	if fb.ECNFraction > 0 {
		return clampWindow(cwnd * (2 - c.alpha) / 2)
	}
	return clampWindow(additiveIncrease(cwnd, renoGrowthPerRTT, fb.ElapsedMs, c.rttStats.SmoothedRTT()))
}
