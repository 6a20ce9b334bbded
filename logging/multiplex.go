package logging

type tracerMultiplexer struct {
	tracers []Tracer
}

var _ Tracer = &tracerMultiplexer{}

// NewMultiplexedTracer creates a new tracer that multiplexes events to
// all given tracers.
func NewMultiplexedTracer(tracers ...Tracer) Tracer {
	if len(tracers) == 0 {
		return NullTracer
	}
	if len(tracers) == 1 {
		return tracers[0]
	}
	return &tracerMultiplexer{tracers: tracers}
}

func (m *tracerMultiplexer) StartedFlow(timeMs float64, id FlowID, variant Variant, sizeBytes float64) {
	for _, t := range m.tracers {
		t.StartedFlow(timeMs, id, variant, sizeBytes)
	}
}

func (m *tracerMultiplexer) CompletedFlow(c FlowCompletion) {
	for _, t := range m.tracers {
		t.CompletedFlow(c)
	}
}

func (m *tracerMultiplexer) UpdatedCongestionWindow(timeMs float64, id FlowID, variant Variant, cwnd float64) {
	for _, t := range m.tracers {
		t.UpdatedCongestionWindow(timeMs, id, variant, cwnd)
	}
}

func (m *tracerMultiplexer) UpdatedMetrics(stats TickStats) {
	for _, t := range m.tracers {
		t.UpdatedMetrics(stats)
	}
}

func (m *tracerMultiplexer) OutageStarted(timeMs, untilMs float64) {
	for _, t := range m.tracers {
		t.OutageStarted(timeMs, untilMs)
	}
}

func (m *tracerMultiplexer) OutageEnded(timeMs float64) {
	for _, t := range m.tracers {
		t.OutageEnded(timeMs)
	}
}

func (m *tracerMultiplexer) Close() {
	for _, t := range m.tracers {
		t.Close()
	}
}
