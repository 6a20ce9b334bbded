// Package queue models the shared bottleneck link: a FIFO byte queue with an
// ECN marking threshold, tail-drop at capacity and a fixed service rate.
package queue

import (
	"fmt"

	"github.com/fluidsim/fluidsim/internal/protocol"
)

// chunk is one flow's enqueue during a single tick. The fluid model allows
// chunks to drain partially.
type chunk struct {
	flowID protocol.FlowID
	bytes  float64
	marked bool
}

// Delivery reports the bytes drained for one flow during a single tick.
type Delivery struct {
	FlowID      protocol.FlowID
	Bytes       float64
	MarkedBytes float64
}

// Bottleneck is owned by a single simulator and mutated only inside one
// tick's enqueue/drain step. It requires no locking.
type Bottleneck struct {
	capacityBytes  float64
	ecnThreshBytes float64
	linkRateBps    float64

	occupancy float64
	chunks    []chunk
}

// NewBottleneck creates a bottleneck queue with the given buffer size and
// marking threshold (both in packets) and service rate (in bits per second).
func NewBottleneck(bufferPkts, ecnThreshPkts int, linkRateBps float64) *Bottleneck {
	return &Bottleneck{
		capacityBytes:  float64(bufferPkts) * protocol.PacketBytes,
		ecnThreshBytes: float64(ecnThreshPkts) * protocol.PacketBytes,
		linkRateBps:    linkRateBps,
	}
}

// Enqueue submits one flow's offered bytes for this tick. It returns the
// bytes actually accepted and whether the accepted chunk was ECN-marked.
// Marking is decided on the occupancy before the chunk is added. Anything
// above capacity is tail-dropped; a fully dropped chunk is not marked.
func (b *Bottleneck) Enqueue(id protocol.FlowID, bytes float64) (accepted float64, marked bool) {
	if bytes < 0 {
		panic(fmt.Sprintf("queue: negative enqueue of %f bytes", bytes))
	}
	if bytes == 0 {
		return 0, false
	}
	accepted = min(bytes, b.capacityBytes-b.occupancy)
	if accepted <= 0 {
		return 0, false
	}
	marked = b.occupancy > b.ecnThreshBytes
	b.chunks = append(b.chunks, chunk{flowID: id, bytes: accepted, marked: marked})
	b.occupancy += accepted
	return accepted, marked
}

// Drain removes up to one tick's worth of service capacity from the head of
// the queue, strictly in arrival order across flows. It reports the per-flow
// deliveries in the order each flow was first reached.
func (b *Bottleneck) Drain(dtMs float64) []Delivery {
	budget := b.linkRateBps * dtMs / 8 / 1000
	var deliveries []Delivery
	index := make(map[protocol.FlowID]int)

	var drained int
	for i := range b.chunks {
		if budget <= 0 {
			break
		}
		c := &b.chunks[i]
		take := min(c.bytes, budget)
		j, ok := index[c.flowID]
		if !ok {
			j = len(deliveries)
			index[c.flowID] = j
			deliveries = append(deliveries, Delivery{FlowID: c.flowID})
		}
		deliveries[j].Bytes += take
		if c.marked {
			deliveries[j].MarkedBytes += take
		}
		c.bytes -= take
		b.occupancy -= take
		budget -= take
		if c.bytes <= 0 {
			drained++
		}
	}
	b.chunks = b.chunks[:copy(b.chunks, b.chunks[drained:])]

	if b.occupancy < 0 {
		if b.occupancy < -1e-6 {
			panic(fmt.Sprintf("queue: negative occupancy of %f bytes", b.occupancy))
		}
		b.occupancy = 0
	}
	return deliveries
}

// Occupancy returns the current queue contents, in bytes.
func (b *Bottleneck) Occupancy() float64 { return b.occupancy }

// CapacityBytes returns the fixed buffer capacity, in bytes.
func (b *Bottleneck) CapacityBytes() float64 { return b.capacityBytes }

// QueueDelayMs returns the time the current queue contents take to drain,
// in milliseconds.
func (b *Bottleneck) QueueDelayMs() float64 {
	return b.occupancy * 8 / b.linkRateBps * 1000
}
