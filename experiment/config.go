// Package experiment runs seed sweeps of simulation scenarios and aggregates
// the per-run outputs into summary rows for CSV export.
package experiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fluidsim/fluidsim"
)

// Config describes one scenario. It deliberately mirrors the keys of the
// scenario YAML files.
type Config struct {
	DTms                float64  `yaml:"dt_ms"`
	DurationMs          float64  `yaml:"duration_ms"`
	RTTBaseMs           float64  `yaml:"rtt_base_ms"`
	BufferPkts          int      `yaml:"buffer_pkts"`
	ECNThreshPkts       int      `yaml:"ecn_thresh_pkts"`
	LinkRateBps         float64  `yaml:"link_rate_bps"`
	Variants            []string `yaml:"variants"`
	LongFlowsPerVariant int      `yaml:"long_flows_per_variant"`
	ShortLambdaPerSec   float64  `yaml:"short_lambda"`
	ShortSizeBytes      float64  `yaml:"short_size_bytes"`
	RTTJitterStdMs      float64  `yaml:"rtt_jitter_std_ms"`
	OutageProbPerSec    float64  `yaml:"outage_prob_per_sec"`
	OutageDurationMs    float64  `yaml:"outage_duration_ms"`
}

// DataCenter is the low-latency scenario: a 10 Gbit/s link, a shallow marking
// threshold and Reno competing with DCTCP.
func DataCenter() *Config {
	return &Config{
		DTms:                0.1,
		DurationMs:          1000,
		RTTBaseMs:           0.1,
		BufferPkts:          300,
		ECNThreshPkts:       30,
		LinkRateBps:         10e9,
		Variants:            []string{"reno", "dctcp"},
		LongFlowsPerVariant: 2,
		ShortLambdaPerSec:   100,
		ShortSizeBytes:      102400,
	}
}

// Space is the long-haul scenario: a high-latency, outage-prone link with
// heavy RTT jitter, comparing all three variants in isolation.
func Space() *Config {
	return &Config{
		DTms:                1,
		DurationMs:          10000,
		RTTBaseMs:           100,
		BufferPkts:          1000,
		ECNThreshPkts:       100,
		LinkRateBps:         1e9,
		Variants:            []string{"reno", "dctcp", "spacecc"},
		LongFlowsPerVariant: 4,
		ShortLambdaPerSec:   5,
		ShortSizeBytes:      102400,
		RTTJitterStdMs:      50,
		OutageProbPerSec:    0.1,
		OutageDurationMs:    1000,
	}
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, err := c.variants(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) variants() ([]fluidsim.Variant, error) {
	if len(c.Variants) == 0 {
		return nil, fmt.Errorf("no congestion control variants configured")
	}
	variants := make([]fluidsim.Variant, 0, len(c.Variants))
	for _, s := range c.Variants {
		v, err := fluidsim.VariantFromString(s)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}

// simulationConfig translates the scenario into a simulation configuration
// with long flows for the given variants.
func (c *Config) simulationConfig(variants []fluidsim.Variant) *fluidsim.Config {
	longFlows := make([]fluidsim.FlowSpec, 0, len(variants))
	for _, v := range variants {
		longFlows = append(longFlows, fluidsim.FlowSpec{Variant: v, Count: c.LongFlowsPerVariant})
	}
	return &fluidsim.Config{
		DTms:              c.DTms,
		DurationMs:        c.DurationMs,
		RTTBaseMs:         c.RTTBaseMs,
		BufferPkts:        c.BufferPkts,
		ECNThreshPkts:     c.ECNThreshPkts,
		LinkRateBps:       c.LinkRateBps,
		LongFlows:         longFlows,
		ShortLambdaPerSec: c.ShortLambdaPerSec,
		ShortSizeBytes:    c.ShortSizeBytes,
		ShortVariants:     variants,
		RTTJitterStdMs:    c.RTTJitterStdMs,
		OutageProbPerSec:  c.OutageProbPerSec,
		OutageDurationMs:  c.OutageDurationMs,
	}
}
