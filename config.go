package fluidsim

import (
	"fmt"

	"github.com/fluidsim/fluidsim/internal/protocol"
	"github.com/fluidsim/fluidsim/logging"
)

// FlowSpec requests a number of long-lived flows of one variant.
type FlowSpec struct {
	Variant Variant
	Count   int
}

// Config contains all configuration for a simulation run.
// Zero values fall back to the data-center defaults.
type Config struct {
	// DTms is the simulation time step, in milliseconds.
	DTms float64
	// DurationMs is the simulated duration, in milliseconds.
	DurationMs float64
	// RTTBaseMs is the propagation RTT of all flows, in milliseconds.
	RTTBaseMs float64
	// BufferPkts is the bottleneck buffer capacity, in packets.
	BufferPkts int
	// ECNThreshPkts is the marking threshold, in packets. It must be
	// smaller than BufferPkts.
	ECNThreshPkts int
	// LinkRateBps is the bottleneck service rate, in bits per second.
	LinkRateBps float64

	// LongFlows are the long-lived flows created at simulation start.
	LongFlows []FlowSpec

	// ShortLambdaPerSec is the Poisson arrival rate of short flows, per
	// second and per variant in ShortVariants. Zero disables short flows.
	ShortLambdaPerSec float64
	// ShortSizeBytes is the transfer size of short flows.
	ShortSizeBytes float64
	// ShortVariants are the variants short flows are created with. It
	// defaults to the distinct variants of LongFlows.
	ShortVariants []Variant

	// RTTJitterStdMs is the standard deviation of the Gaussian RTT jitter
	// of the long-haul scenario, in milliseconds. Zero disables jitter.
	RTTJitterStdMs float64
	// OutageProbPerSec is the memoryless per-second probability of a link
	// outage beginning. Zero disables outages.
	OutageProbPerSec float64
	// OutageDurationMs is the duration of an outage, in milliseconds.
	OutageDurationMs float64

	// Tracer receives streaming events during the run. Optional.
	Tracer logging.Tracer
}

// Clone clones a Config.
func (c *Config) Clone() *Config {
	copied := *c
	copied.LongFlows = append([]FlowSpec(nil), c.LongFlows...)
	copied.ShortVariants = append([]Variant(nil), c.ShortVariants...)
	return &copied
}

// populateConfig fills unset fields with their data-center defaults.
// It may be called with nil.
func populateConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	config = config.Clone()
	if config.DTms == 0 {
		config.DTms = protocol.DefaultDTms
	}
	if config.DurationMs == 0 {
		config.DurationMs = protocol.DefaultDurationMs
	}
	if config.RTTBaseMs == 0 {
		config.RTTBaseMs = protocol.DefaultRTTBaseMs
	}
	if config.BufferPkts == 0 {
		config.BufferPkts = protocol.DefaultBufferPkts
	}
	if config.ECNThreshPkts == 0 {
		config.ECNThreshPkts = protocol.DefaultECNThreshPkts
	}
	if config.LinkRateBps == 0 {
		config.LinkRateBps = protocol.DefaultLinkRateBps
	}
	if config.ShortSizeBytes == 0 {
		config.ShortSizeBytes = protocol.DefaultShortSizeBytes
	}
	if len(config.ShortVariants) == 0 {
		seen := make(map[Variant]bool)
		for _, spec := range config.LongFlows {
			if !seen[spec.Variant] {
				seen[spec.Variant] = true
				config.ShortVariants = append(config.ShortVariants, spec.Variant)
			}
		}
	}
	if config.Tracer == nil {
		config.Tracer = logging.NullTracer
	}
	return config
}

// validateConfig rejects configurations the simulation cannot run with.
// Invalid values are never silently clamped.
func validateConfig(config *Config) error {
	if config.DTms <= 0 {
		return fmt.Errorf("invalid value for Config.DTms: %g", config.DTms)
	}
	if config.DurationMs <= 0 {
		return fmt.Errorf("invalid value for Config.DurationMs: %g", config.DurationMs)
	}
	if config.RTTBaseMs <= 0 {
		return fmt.Errorf("invalid value for Config.RTTBaseMs: %g", config.RTTBaseMs)
	}
	if config.BufferPkts <= 0 {
		return fmt.Errorf("invalid value for Config.BufferPkts: %d", config.BufferPkts)
	}
	if config.ECNThreshPkts <= 0 {
		return fmt.Errorf("invalid value for Config.ECNThreshPkts: %d", config.ECNThreshPkts)
	}
	if config.ECNThreshPkts >= config.BufferPkts {
		return fmt.Errorf("Config.ECNThreshPkts (%d) must be smaller than Config.BufferPkts (%d)",
			config.ECNThreshPkts, config.BufferPkts)
	}
	if config.LinkRateBps <= 0 {
		return fmt.Errorf("invalid value for Config.LinkRateBps: %g", config.LinkRateBps)
	}
	if config.ShortLambdaPerSec < 0 {
		return fmt.Errorf("invalid value for Config.ShortLambdaPerSec: %g", config.ShortLambdaPerSec)
	}
	if config.ShortSizeBytes <= 0 {
		return fmt.Errorf("invalid value for Config.ShortSizeBytes: %g", config.ShortSizeBytes)
	}
	if config.RTTJitterStdMs < 0 {
		return fmt.Errorf("invalid value for Config.RTTJitterStdMs: %g", config.RTTJitterStdMs)
	}
	if config.OutageProbPerSec < 0 {
		return fmt.Errorf("invalid value for Config.OutageProbPerSec: %g", config.OutageProbPerSec)
	}
	if config.OutageProbPerSec > 0 && config.OutageDurationMs <= 0 {
		return fmt.Errorf("invalid value for Config.OutageDurationMs: %g", config.OutageDurationMs)
	}
	for _, spec := range config.LongFlows {
		if spec.Count < 0 {
			return fmt.Errorf("invalid flow count for variant %s: %d", spec.Variant, spec.Count)
		}
		if !validVariant(spec.Variant) {
			return fmt.Errorf("unknown congestion control variant: %d", spec.Variant)
		}
	}
	for _, v := range config.ShortVariants {
		if !validVariant(v) {
			return fmt.Errorf("unknown congestion control variant: %d", v)
		}
	}
	return nil
}

func validVariant(v Variant) bool {
	switch v {
	case protocol.Reno, protocol.DCTCP, protocol.SpaceCC:
		return true
	default:
		return false
	}
}
