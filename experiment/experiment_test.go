package experiment

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// A fast scenario for tests.
func testScenario() *Config {
	c := DataCenter()
	c.DurationMs = 50
	c.LongFlowsPerVariant = 1
	return c
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dt_ms: 0.5
duration_ms: 2000
rtt_base_ms: 10
buffer_pkts: 100
ecn_thresh_pkts: 20
link_rate_bps: 1e9
variants: [reno, spacecc]
long_flows_per_variant: 3
short_lambda: 25
short_size_bytes: 51200
rtt_jitter_std_ms: 5
outage_prob_per_sec: 0.1
outage_duration_ms: 500
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.5, c.DTms)
	require.Equal(t, 2000.0, c.DurationMs)
	require.Equal(t, []string{"reno", "spacecc"}, c.Variants)
	require.Equal(t, 3, c.LongFlowsPerVariant)
	require.Equal(t, 0.1, c.OutageProbPerSec)
}

func TestLoadConfigRejectsUnknownVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variants: [cubic]"), 0o644))
	_, err := Load(path)
	require.ErrorContains(t, err, "cubic")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestRunMatrix(t *testing.T) {
	rows, err := RunMatrix(testScenario(), 2, nil)
	require.NoError(t, err)
	require.Len(t, rows, 4) // 2 variants x 2 seeds

	require.Equal(t, "reno", rows[0].Variant)
	require.Equal(t, uint64(0), rows[0].Seed)
	require.Equal(t, "reno", rows[1].Variant)
	require.Equal(t, uint64(1), rows[1].Seed)
	require.Equal(t, "dctcp", rows[2].Variant)

	for _, row := range rows {
		require.False(t, math.IsNaN(row.MeanQueueDelayMs))
		require.GreaterOrEqual(t, row.MeanUtilization, 0.0)
		require.LessOrEqual(t, row.MeanUtilization, 1.0)
	}
}

func TestRunMatrixIsReproducible(t *testing.T) {
	rows1, err := RunMatrix(testScenario(), 2, nil)
	require.NoError(t, err)
	rows2, err := RunMatrix(testScenario(), 2, nil)
	require.NoError(t, err)
	require.Equal(t, rows1, rows2)
}

func TestRunShared(t *testing.T) {
	rows, err := RunShared(testScenario(), 2, nil)
	require.NoError(t, err)
	require.Len(t, rows, 4) // 2 seeds x 2 variants

	// Within one run, the link-level columns are shared across variants.
	require.Equal(t, "reno", rows[0].Variant)
	require.Equal(t, "dctcp", rows[1].Variant)
	require.Equal(t, rows[0].Seed, rows[1].Seed)
	require.Equal(t, rows[0].MeanQueueDelayMs, rows[1].MeanQueueDelayMs)
	require.Equal(t, rows[0].P99QueueDelayMs, rows[1].P99QueueDelayMs)
	require.Equal(t, rows[0].MeanUtilization, rows[1].MeanUtilization)
}

func TestRunSharedRejectsInvalidVariants(t *testing.T) {
	c := testScenario()
	c.Variants = nil
	_, err := RunShared(c, 1, nil)
	require.Error(t, err)
	_, err = RunMatrix(c, 1, nil)
	require.Error(t, err)
}
