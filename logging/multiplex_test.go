package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingTracer struct {
	Tracer
	completions []FlowCompletion
	closed      bool
}

func (r *recordingTracer) CompletedFlow(c FlowCompletion) { r.completions = append(r.completions, c) }
func (r *recordingTracer) Close()                         { r.closed = true }

func TestMultiplexing(t *testing.T) {
	tr1 := &recordingTracer{Tracer: NullTracer}
	tr2 := &recordingTracer{Tracer: NullTracer}
	m := NewMultiplexedTracer(tr1, tr2)

	c := FlowCompletion{FlowID: 7, StartMs: 1, CompletionMs: 3}
	m.CompletedFlow(c)
	m.Close()

	require.Equal(t, []FlowCompletion{c}, tr1.completions)
	require.Equal(t, []FlowCompletion{c}, tr2.completions)
	require.True(t, tr1.closed)
	require.True(t, tr2.closed)
	require.Equal(t, 2.0, c.FCTMs())
}

func TestMultiplexingSingleTracer(t *testing.T) {
	tr := &recordingTracer{Tracer: NullTracer}
	require.Equal(t, Tracer(tr), NewMultiplexedTracer(tr))
	require.Equal(t, NullTracer, NewMultiplexedTracer())
}
