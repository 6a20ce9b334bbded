// Package qlog writes simulation runs as qlog-style JSON Text Sequences.
// Every record is prefixed with an ASCII record separator (0x1e) and
// terminated with a newline. The first record describes the trace, every
// following record is a single event.
package qlog

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/fluidsim/fluidsim/logging"

	"github.com/francoispqt/gojay"
)

const eventChanSize = 50

const recordSeparator = 0x1e

func writeRecordSeparator(w io.Writer) error {
	_, err := w.Write([]byte{recordSeparator})
	return err
}

type tracer struct {
	w io.WriteCloser

	events     chan event
	encodeErr  error
	runStopped chan struct{}
}

var _ logging.Tracer = &tracer{}

// NewTracer creates a tracer that streams the run to w.
// It takes ownership of w and closes it when the run finishes.
func NewTracer(w io.WriteCloser) logging.Tracer {
	t := &tracer{
		w:          w,
		events:     make(chan event, eventChanSize),
		runStopped: make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *tracer) run() {
	defer close(t.runStopped)
	buf := &bytes.Buffer{}
	if err := writeRecordSeparator(buf); err != nil {
		panic(fmt.Sprintf("qlog encoding into a bytes.Buffer failed: %s", err))
	}
	if err := gojay.NewEncoder(buf).Encode(&topLevel{
		trace: trace{VantagePoint: vantagePoint{Type: "simulator"}},
	}); err != nil {
		panic(fmt.Sprintf("qlog encoding into a bytes.Buffer failed: %s", err))
	}
	buf.WriteByte('\n')
	if _, err := t.w.Write(buf.Bytes()); err != nil {
		t.encodeErr = err
	}
	enc := gojay.NewEncoder(t.w)
	for ev := range t.events {
		if t.encodeErr != nil { // if encoding failed, just continue draining the event channel
			continue
		}
		if err := writeRecordSeparator(t.w); err != nil {
			t.encodeErr = err
			continue
		}
		if err := enc.Encode(ev); err != nil {
			t.encodeErr = err
			continue
		}
		if _, err := t.w.Write([]byte{'\n'}); err != nil {
			t.encodeErr = err
		}
	}
}

func (t *tracer) recordEvent(timeMs float64, details eventDetails) {
	t.events <- event{TimeMs: timeMs, eventDetails: details}
}

func (t *tracer) StartedFlow(timeMs float64, id logging.FlowID, variant logging.Variant, sizeBytes float64) {
	t.recordEvent(timeMs, eventFlowStarted{FlowID: id, Variant: variant, SizeBytes: sizeBytes})
}

func (t *tracer) CompletedFlow(c logging.FlowCompletion) {
	t.recordEvent(c.CompletionMs, eventFlowCompleted{FlowCompletion: c})
}

func (t *tracer) UpdatedCongestionWindow(timeMs float64, id logging.FlowID, variant logging.Variant, cwnd float64) {
	t.recordEvent(timeMs, eventCongestionWindowUpdated{FlowID: id, Variant: variant, Cwnd: cwnd})
}

func (t *tracer) UpdatedMetrics(stats logging.TickStats) {
	t.recordEvent(stats.TimeMs, eventMetricsUpdated{TickStats: stats})
}

func (t *tracer) OutageStarted(timeMs, untilMs float64) {
	t.recordEvent(timeMs, eventOutageStarted{UntilMs: untilMs})
}

func (t *tracer) OutageEnded(timeMs float64) {
	t.recordEvent(timeMs, eventOutageEnded{})
}

func (t *tracer) Close() {
	if err := t.export(); err != nil {
		log.Printf("exporting qlog failed: %s\n", err)
	}
}

// export drains the event channel and closes the writer.
func (t *tracer) export() error {
	close(t.events)
	<-t.runStopped
	if t.encodeErr != nil {
		return t.encodeErr
	}
	return t.w.Close()
}
