package qlog

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/fluidsim/fluidsim/internal/protocol"
	"github.com/fluidsim/fluidsim/logging"

	"github.com/stretchr/testify/require"
)

type recordingWriteCloser struct {
	*bytes.Buffer
	closed bool
}

func (w *recordingWriteCloser) Close() error {
	w.closed = true
	return nil
}

// exportAndParse closes the tracer and splits the output into JSON records.
func exportAndParse(t *testing.T, buf *bytes.Buffer) []interface{} {
	t.Helper()
	var records []interface{}
	for _, r := range bytes.Split(buf.Bytes(), []byte{recordSeparator}) {
		if len(r) == 0 {
			continue
		}
		var v interface{}
		require.NoError(t, json.Unmarshal(r, &v))
		records = append(records, v)
	}
	return records
}

func TestTraceHeader(t *testing.T) {
	w := &recordingWriteCloser{Buffer: &bytes.Buffer{}}
	tracer := NewTracer(w)
	tracer.Close()
	require.True(t, w.closed)

	records := exportAndParse(t, w.Buffer)
	require.Len(t, records, 1)
	header := records[0].(map[string]interface{})
	require.Equal(t, "JSON-SEQ", header["qlog_format"])
	require.Equal(t, "0.3", header["qlog_version"])
	tr := header["trace"].(map[string]interface{})
	require.Equal(t,
		[]interface{}{"time", "category", "event", "data"},
		tr["event_fields"])
	vp := tr["vantage_point"].(map[string]interface{})
	require.Equal(t, "simulator", vp["type"])
}

func TestEventEnvelope(t *testing.T) {
	w := &recordingWriteCloser{Buffer: &bytes.Buffer{}}
	tracer := NewTracer(w)
	tracer.UpdatedCongestionWindow(12.5, 3, protocol.Reno, 42)
	tracer.Close()

	records := exportAndParse(t, w.Buffer)
	require.Len(t, records, 2)
	ev := records[1].([]interface{})
	require.Len(t, ev, 4)
	require.Equal(t, 12.5, ev[0])
	require.Equal(t, "recovery", ev[1])
	require.Equal(t, "congestion_window_updated", ev[2])
	data := ev[3].(map[string]interface{})
	require.Equal(t, float64(3), data["flow_id"])
	require.Equal(t, "reno", data["variant"])
	require.Equal(t, 42.0, data["cwnd_pkts"])
}

func TestFlowEvents(t *testing.T) {
	w := &recordingWriteCloser{Buffer: &bytes.Buffer{}}
	tracer := NewTracer(w)
	tracer.StartedFlow(0, 1, protocol.SpaceCC, math.Inf(1))
	tracer.StartedFlow(5, 10001, protocol.DCTCP, 102400)
	tracer.CompletedFlow(logging.FlowCompletion{
		FlowID:       10001,
		Variant:      protocol.DCTCP,
		Bytes:        102400,
		StartMs:      5,
		CompletionMs: 7.5,
	})
	tracer.Close()

	records := exportAndParse(t, w.Buffer)
	require.Len(t, records, 4)

	started := records[1].([]interface{})
	require.Equal(t, "connectivity", started[1])
	require.Equal(t, "flow_started", started[2])
	// An infinite flow size cannot appear in JSON output.
	require.NotContains(t, started[3].(map[string]interface{}), "size_bytes")

	short := records[2].([]interface{})
	require.Equal(t, 102400.0, short[3].(map[string]interface{})["size_bytes"])

	completed := records[3].([]interface{})
	require.Equal(t, 7.5, completed[0])
	require.Equal(t, "flow_completed", completed[2])
	require.Equal(t, 2.5, completed[3].(map[string]interface{})["fct_ms"])
}

func TestLinkEvents(t *testing.T) {
	w := &recordingWriteCloser{Buffer: &bytes.Buffer{}}
	tracer := NewTracer(w)
	tracer.UpdatedMetrics(logging.TickStats{
		TimeMs:         1,
		QueueBytes:     4500,
		QueueDelayMs:   0.0036,
		Utilization:    0.8,
		DeliveredBytes: 100000,
	})
	tracer.OutageStarted(2, 52)
	tracer.OutageEnded(52)
	tracer.Close()

	records := exportAndParse(t, w.Buffer)
	require.Len(t, records, 4)

	metrics := records[1].([]interface{})
	require.Equal(t, "link", metrics[1])
	require.Equal(t, "metrics_updated", metrics[2])
	require.Equal(t, 4500.0, metrics[3].(map[string]interface{})["queue_bytes"])

	outage := records[2].([]interface{})
	require.Equal(t, "outage_started", outage[2])
	require.Equal(t, 52.0, outage[3].(map[string]interface{})["until_ms"])
	require.Equal(t, "outage_ended", records[3].([]interface{})[2])
}
