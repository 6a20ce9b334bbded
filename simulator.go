package fluidsim

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/fluidsim/fluidsim/internal/congestion"
	"github.com/fluidsim/fluidsim/internal/protocol"
	"github.com/fluidsim/fluidsim/internal/queue"
	"github.com/fluidsim/fluidsim/internal/utils"
	"github.com/fluidsim/fluidsim/logging"
)

// shortFlowIDBase keeps short-flow IDs disjoint from the long flows created
// at simulation start.
const shortFlowIDBase protocol.FlowID = 10000

// A Simulator advances a set of flows and one bottleneck link in fixed time
// steps, feeding acknowledgment signals back into the flows' congestion
// controllers. It is single-threaded; concurrent runs must each own their
// own Simulator and random source.
type Simulator struct {
	config *Config
	rng    *rand.Rand
	link   *queue.Bottleneck
	tracer logging.Tracer

	flows     []*flow
	flowsByID map[protocol.FlowID]*flow
	pending   []*flow // scheduled short flows, sorted by start time

	timeMs       float64
	outageActive bool
	outageEndMs  float64

	ticks       []TickStats
	completions []FlowCompletion
}

// NewSimulator creates a simulation run from the given configuration and a
// per-run random source. The random source must not be shared with any other
// concurrently running simulator.
func NewSimulator(config *Config, rng *rand.Rand) (*Simulator, error) {
	config = populateConfig(config)
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("fluidsim: a per-run random source is required")
	}
	s := &Simulator{
		config:    config,
		rng:       rng,
		link:      queue.NewBottleneck(config.BufferPkts, config.ECNThreshPkts, config.LinkRateBps),
		tracer:    config.Tracer,
		flowsByID: make(map[protocol.FlowID]*flow),
	}
	var id protocol.FlowID
	for _, spec := range config.LongFlows {
		for i := 0; i < spec.Count; i++ {
			s.addFlow(newFlow(id, spec.Variant, config.RTTBaseMs, math.Inf(1)))
			id++
		}
	}
	s.scheduleShortFlows()
	return s, nil
}

// scheduleShortFlows pre-generates the Poisson arrivals for the whole run,
// one independent arrival process per short-flow variant.
func (s *Simulator) scheduleShortFlows() {
	if s.config.ShortLambdaPerSec <= 0 {
		return
	}
	id := shortFlowIDBase
	for _, v := range s.config.ShortVariants {
		meanGapMs := 1000.0 / s.config.ShortLambdaPerSec
		for t := s.rng.ExpFloat64() * meanGapMs; t < s.config.DurationMs; t += s.rng.ExpFloat64() * meanGapMs {
			f := newFlow(id, v, s.config.RTTBaseMs, s.config.ShortSizeBytes)
			f.startMs = t
			s.pending = append(s.pending, f)
			id++
		}
	}
	sort.SliceStable(s.pending, func(i, j int) bool { return s.pending[i].startMs < s.pending[j].startMs })
}

// Run advances the simulation to its configured duration and returns the
// per-tick time series and the flow completion records.
func (s *Simulator) Run() ([]TickStats, []FlowCompletion) {
	steps := int(s.config.DurationMs / s.config.DTms)
	utils.Infof("starting run: %d steps of %gms, %d long flows, %d scheduled short flows",
		steps, s.config.DTms, len(s.flows), len(s.pending))
	s.ticks = make([]TickStats, 0, steps)
	for i := 0; i < steps; i++ {
		s.step()
	}
	s.tracer.Close()
	return s.ticks, s.completions
}

func (s *Simulator) step() {
	t := s.timeMs
	dt := s.config.DTms

	s.admitArrivals(t)
	s.checkOutage(t)

	// Flows enqueue in creation order. The order is significant: the queue
	// is FIFO and capacity-limited.
	for _, f := range s.flows {
		f.lost = false
		offered := f.offeredBytes(dt)
		accepted, _ := s.link.Enqueue(f.id, offered)
		if accepted < offered {
			f.lost = true
		}
	}

	deliveries := s.link.Drain(dt)
	var servedBytes float64
	for _, d := range deliveries {
		servedBytes += d.Bytes
	}

	if !s.outageActive {
		s.deliverFeedback(t, dt, deliveries)
	}

	capacityBytes := s.config.LinkRateBps * dt / 8 / 1000
	tick := TickStats{
		TimeMs:         t,
		QueueBytes:     s.link.Occupancy(),
		QueueDelayMs:   s.link.QueueDelayMs(),
		Utilization:    servedBytes / capacityBytes,
		DeliveredBytes: servedBytes,
	}
	if tick.QueueBytes > s.link.CapacityBytes() {
		panic(fmt.Sprintf("fluidsim: queue occupancy %f exceeds capacity %f", tick.QueueBytes, s.link.CapacityBytes()))
	}
	s.ticks = append(s.ticks, tick)
	s.tracer.UpdatedMetrics(tick)

	s.removeCompleted()
	s.timeMs += dt
}

func (s *Simulator) admitArrivals(t float64) {
	for len(s.pending) > 0 && s.pending[0].startMs <= t {
		f := s.pending[0]
		s.pending = s.pending[1:]
		f.startMs = t
		s.addFlow(f)
	}
}

func (s *Simulator) addFlow(f *flow) {
	f.startMs = s.timeMs
	s.flows = append(s.flows, f)
	s.flowsByID[f.id] = f
	s.tracer.StartedFlow(s.timeMs, f.id, f.variant, f.sizeBytes)
}

// checkOutage samples the memoryless outage process of the long-haul
// scenario. While an outage is active all acknowledgment delivery is
// suppressed: flows keep sending, but no feedback reaches them.
func (s *Simulator) checkOutage(t float64) {
	if s.config.OutageProbPerSec <= 0 {
		return
	}
	if s.outageActive {
		if t < s.outageEndMs {
			return
		}
		s.outageActive = false
		s.tracer.OutageEnded(t)
		utils.Debugf("outage ended at %gms", t)
	}
	p := s.config.OutageProbPerSec * s.config.DTms / 1000
	if s.rng.Float64() < p {
		s.outageActive = true
		s.outageEndMs = t + s.config.OutageDurationMs
		s.tracer.OutageStarted(t, s.outageEndMs)
		utils.Debugf("outage started at %gms, until %gms", t, s.outageEndMs)
	}
}

func (s *Simulator) deliverFeedback(t, dt float64, deliveries []queue.Delivery) {
	queueDelayMs := s.link.QueueDelayMs()
	fed := make(map[protocol.FlowID]bool, len(deliveries))
	for _, d := range deliveries {
		f := s.flowsByID[d.FlowID]
		if f == nil {
			// Residue of a flow that completed on an earlier tick.
			continue
		}
		fed[f.id] = true
		f.remainingBytes -= d.Bytes
		if f.remainingBytes <= 0 {
			s.completeFlow(f, t)
			continue
		}
		var ecnFraction float64
		if d.Bytes > 0 {
			ecnFraction = d.MarkedBytes / d.Bytes
		}
		s.updateWindow(f, t, dt, queueDelayMs, ecnFraction)
	}
	// A tail drop is a congestion signal even when none of the flow's bytes
	// were drained this tick.
	for _, f := range s.flows {
		if f.lost && !f.completed && !fed[f.id] {
			s.updateWindow(f, t, dt, queueDelayMs, 0)
		}
	}
}

func (s *Simulator) updateWindow(f *flow, t, dt, queueDelayMs, ecnFraction float64) {
	measuredRTTMs := f.rttStats.BaseRTT() + queueDelayMs
	if s.config.RTTJitterStdMs > 0 {
		measuredRTTMs += s.rng.NormFloat64() * s.config.RTTJitterStdMs
	}
	measuredRTTMs = max(measuredRTTMs, 0)
	f.rttStats.Update(measuredRTTMs)
	f.cwnd = f.controller.OnFeedback(f.cwnd, congestion.Feedback{
		MeasuredRTTMs: measuredRTTMs,
		QueueDelayMs:  queueDelayMs,
		ECNFraction:   ecnFraction,
		Loss:          f.lost,
		ElapsedMs:     dt,
	})
	if f.cwnd < protocol.MinCongestionWindow {
		panic(fmt.Sprintf("fluidsim: congestion window of flow %d below floor: %f", f.id, f.cwnd))
	}
	s.tracer.UpdatedCongestionWindow(t, f.id, f.variant, f.cwnd)
}

func (s *Simulator) completeFlow(f *flow, t float64) {
	f.completed = true
	f.completionMs = t
	c := FlowCompletion{
		FlowID:       f.id,
		Variant:      f.variant,
		Bytes:        f.sizeBytes,
		StartMs:      f.startMs,
		CompletionMs: t,
	}
	s.completions = append(s.completions, c)
	s.tracer.CompletedFlow(c)
	utils.Debugf("flow %d (%s) completed after %gms", f.id, f.variant, c.FCTMs())
}

func (s *Simulator) removeCompleted() {
	live := s.flows[:0]
	for _, f := range s.flows {
		if f.completed {
			delete(s.flowsByID, f.id)
			continue
		}
		live = append(live, f)
	}
	s.flows = live
}
