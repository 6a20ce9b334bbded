package congestion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRTTStatsDefaults(t *testing.T) {
	rttStats := NewRTTStats(100)
	require.Equal(t, 100.0, rttStats.BaseRTT())
	require.Equal(t, 100.0, rttStats.SmoothedRTT())
	require.Zero(t, rttStats.LatestRTT())
}

func TestRTTStatsSmoothing(t *testing.T) {
	rttStats := NewRTTStats(100)
	rttStats.Update(300)
	require.Equal(t, 300.0, rttStats.LatestRTT())
	// 7/8 * 100 + 1/8 * 300
	require.InDelta(t, 125.0, rttStats.SmoothedRTT(), 1e-9)
	rttStats.Update(125)
	require.InDelta(t, 125.0, rttStats.SmoothedRTT(), 1e-9)
}

func TestRTTStatsNegativeSamplesClipped(t *testing.T) {
	rttStats := NewRTTStats(8)
	rttStats.Update(-1)
	require.Zero(t, rttStats.LatestRTT())
	require.InDelta(t, 7.0, rttStats.SmoothedRTT(), 1e-9)
}
