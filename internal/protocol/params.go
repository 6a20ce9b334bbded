package protocol

// Default simulation parameters. They describe the low-latency data-center
// scenario; the long-haul scenario overrides them explicitly.
const (
	// DefaultDTms is the default simulation time step, in milliseconds.
	DefaultDTms = 0.1

	// DefaultDurationMs is the default simulated duration, in milliseconds.
	DefaultDurationMs = 1000.0

	// DefaultRTTBaseMs is the default propagation RTT, in milliseconds.
	DefaultRTTBaseMs = 0.1

	// DefaultBufferPkts is the default bottleneck buffer size, in packets.
	DefaultBufferPkts = 300

	// DefaultECNThreshPkts is the default ECN marking threshold, in packets.
	DefaultECNThreshPkts = 30

	// DefaultLinkRateBps is the default bottleneck service rate, in bits
	// per second.
	DefaultLinkRateBps = 10e9

	// DefaultShortSizeBytes is the default transfer size of short flows.
	DefaultShortSizeBytes = 102400.0
)
