// Package protocol holds the constants and small value types shared by the
// simulation core.
package protocol

// FlowID identifies a flow within a single simulation run.
type FlowID int64

const (
	// PacketBytes is the packet size used for all window and buffer
	// computations, in bytes.
	PacketBytes = 1500

	// MinCongestionWindow is the floor enforced on every congestion window
	// after every controller update, in packets.
	MinCongestionWindow = 2.0

	// InitialCongestionWindow is the congestion window at flow creation,
	// in packets.
	InitialCongestionWindow = 10.0

	// MinRTTForScaling is the smallest RTT used as a divisor when scaling
	// per-tick quantities to RTT-relative ones, in milliseconds.
	MinRTTForScaling = 0.01
)
