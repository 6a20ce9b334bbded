package logging

// The NullTracer is a Tracer that does nothing.
// It is useful for embedding. Don't modify this variable!
var NullTracer Tracer = &nullTracer{}

type nullTracer struct{}

func (n nullTracer) StartedFlow(float64, FlowID, Variant, float64)             {}
func (n nullTracer) CompletedFlow(FlowCompletion)                              {}
func (n nullTracer) UpdatedCongestionWindow(float64, FlowID, Variant, float64) {}
func (n nullTracer) UpdatedMetrics(TickStats)                                  {}
func (n nullTracer) OutageStarted(float64, float64)                            {}
func (n nullTracer) OutageEnded(float64)                                       {}
func (n nullTracer) Close()                                                    {}
