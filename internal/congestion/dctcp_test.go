package congestion

import (
	"testing"

	"github.com/fluidsim/fluidsim/internal/protocol"

	"github.com/stretchr/testify/require"
)

func TestDCTCPAlphaSmoothing(t *testing.T) {
	c := NewController(protocol.DCTCP, NewRTTStats(0.1)).(*dctcpController)
	c.OnFeedback(10, Feedback{ECNFraction: 1, ElapsedMs: 0.1})
	require.InDelta(t, 1.0/16, c.alpha, 1e-9)
	c.OnFeedback(10, Feedback{ECNFraction: 0, ElapsedMs: 0.1})
	require.InDelta(t, (1.0/16)*(15.0/16), c.alpha, 1e-9)
}

func TestDCTCPReactsOnlyToFreshMarks(t *testing.T) {
	c := NewController(protocol.DCTCP, NewRTTStats(1.0))
	// Unmarked feedback grows the window even though alpha is non-zero.
	c.OnFeedback(100, Feedback{ECNFraction: 0.5, ElapsedMs: 0.1})
	cwnd := c.OnFeedback(100, Feedback{ECNFraction: 0, ElapsedMs: 0.1})
	require.Greater(t, cwnd, 100.0)
}

func TestDCTCPGentlerThanReno(t *testing.T) {
	rttStats := NewRTTStats(0.1)
	dctcp := NewController(protocol.DCTCP, rttStats)
	reno := NewController(protocol.Reno, rttStats)

	dctcpCwnd, renoCwnd := 1000.0, 1000.0
	for i := 0; i < 20; i++ {
		fb := Feedback{MeasuredRTTMs: 0.2, ECNFraction: 1, ElapsedMs: 0.1}
		dctcpCwnd = dctcp.OnFeedback(dctcpCwnd, fb)
		renoCwnd = reno.OnFeedback(renoCwnd, fb)
		require.GreaterOrEqual(t, dctcpCwnd, renoCwnd)
	}
}

func TestDCTCPFullyMarkedConvergesToHalving(t *testing.T) {
	c := NewController(protocol.DCTCP, NewRTTStats(0.1)).(*dctcpController)
	// With every sample marked, alpha approaches 1 and the cut approaches
	// Reno's halving, but never exceeds it.
	for i := 0; i < 500; i++ {
		c.OnFeedback(1000, Feedback{ECNFraction: 1, ElapsedMs: 0.1})
	}
	require.InDelta(t, 1.0, c.alpha, 1e-3)
	require.InDelta(t, 500.0, c.OnFeedback(1000, Feedback{ECNFraction: 1, ElapsedMs: 0.1}), 1.0)
}
