package congestion

// renoGrowthPerRTT is the additive increase of Reno and DCTCP, as a fraction
// of the window per RTT.
const renoGrowthPerRTT = 0.1

// renoController halves the window on any loss or ECN signal and otherwise
// grows it by about 10% per RTT.
type renoController struct {
	rttStats *RTTStats
}

func (c *renoController) OnFeedback(cwnd float64, fb Feedback) float64 {
	if fb.Loss || fb.ECNFraction > 0 {
		return clampWindow(cwnd / 2)
	}
	return clampWindow(additiveIncrease(cwnd, renoGrowthPerRTT, fb.ElapsedMs, c.rttStats.SmoothedRTT()))
}
