package experiment

import (
	"bytes"
	"encoding/csv"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	require.True(t, math.IsNaN(percentile(nil, 99)))
	require.Equal(t, 7.0, percentile([]float64{7}, 99))
	require.Equal(t, 1.0, percentile([]float64{4, 2, 1, 3}, 0))
	require.Equal(t, 4.0, percentile([]float64{4, 2, 1, 3}, 100))
	require.InDelta(t, 2.5, percentile([]float64{4, 2, 1, 3}, 50), 1e-9)
	require.InDelta(t, 3.97, percentile([]float64{4, 2, 1, 3}, 99), 1e-9)
}

func TestMean(t *testing.T) {
	require.True(t, math.IsNaN(mean(nil)))
	require.Equal(t, 2.0, mean([]float64{1, 2, 3}))
}

func TestWriteCSV(t *testing.T) {
	rows := []SummaryRow{
		{
			Variant:          "reno",
			Seed:             3,
			MeanQueueDelayMs: 0.25,
			P99QueueDelayMs:  1.5,
			MeanUtilization:  0.9,
			FCTP99Ms:         12,
			ShortFlows:       42,
		},
		{
			Variant:  "spacecc",
			Seed:     4,
			FCTP99Ms: math.NaN(), // no short flows completed
		},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, rows))

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, csvHeader, records[0])
	require.Equal(t, []string{"reno", "3", "0.25", "1.5", "0.9", "12", "42"}, records[1])
	require.Equal(t, "", records[2][5])
}
