package qlog

import (
	"math"

	"github.com/fluidsim/fluidsim/logging"

	"github.com/francoispqt/gojay"
)

var eventFields = [4]string{"time", "category", "event", "data"}

type eventDetails interface {
	Category() category
	Name() string
	gojay.MarshalerJSONObject
}

// An event is encoded as an array, in the order declared by eventFields.
type event struct {
	TimeMs float64
	eventDetails
}

var _ gojay.MarshalerJSONArray = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONArray(enc *gojay.Encoder) {
	enc.Float64(e.TimeMs)
	enc.String(e.Category().String())
	enc.String(e.Name())
	enc.Object(e.eventDetails)
}

type eventFlowStarted struct {
	FlowID    logging.FlowID
	Variant   logging.Variant
	SizeBytes float64
}

var _ eventDetails = eventFlowStarted{}

func (e eventFlowStarted) Category() category { return categoryConnectivity }
func (e eventFlowStarted) Name() string       { return "flow_started" }
func (e eventFlowStarted) IsNil() bool        { return false }

func (e eventFlowStarted) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("flow_id", int64(e.FlowID))
	enc.StringKey("variant", e.Variant.String())
	// Long-lived flows have an infinite size, which JSON cannot represent.
	if !math.IsInf(e.SizeBytes, 1) {
		enc.Float64Key("size_bytes", e.SizeBytes)
	}
}

type eventFlowCompleted struct {
	logging.FlowCompletion
}

var _ eventDetails = eventFlowCompleted{}

func (e eventFlowCompleted) Category() category { return categoryConnectivity }
func (e eventFlowCompleted) Name() string       { return "flow_completed" }
func (e eventFlowCompleted) IsNil() bool        { return false }

func (e eventFlowCompleted) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("flow_id", int64(e.FlowID))
	enc.StringKey("variant", e.Variant.String())
	enc.Float64Key("size_bytes", e.Bytes)
	enc.Float64Key("start_ms", e.StartMs)
	enc.Float64Key("fct_ms", e.FCTMs())
}

type eventCongestionWindowUpdated struct {
	FlowID  logging.FlowID
	Variant logging.Variant
	Cwnd    float64
}

var _ eventDetails = eventCongestionWindowUpdated{}

func (e eventCongestionWindowUpdated) Category() category { return categoryRecovery }
func (e eventCongestionWindowUpdated) Name() string       { return "congestion_window_updated" }
func (e eventCongestionWindowUpdated) IsNil() bool        { return false }

func (e eventCongestionWindowUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("flow_id", int64(e.FlowID))
	enc.StringKey("variant", e.Variant.String())
	enc.Float64Key("cwnd_pkts", e.Cwnd)
}

type eventMetricsUpdated struct {
	logging.TickStats
}

var _ eventDetails = eventMetricsUpdated{}

func (e eventMetricsUpdated) Category() category { return categoryLink }
func (e eventMetricsUpdated) Name() string       { return "metrics_updated" }
func (e eventMetricsUpdated) IsNil() bool        { return false }

func (e eventMetricsUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("queue_bytes", e.QueueBytes)
	enc.Float64Key("queue_delay_ms", e.QueueDelayMs)
	enc.Float64Key("utilization", e.Utilization)
	enc.Float64Key("delivered_bytes", e.DeliveredBytes)
}

type eventOutageStarted struct {
	UntilMs float64
}

var _ eventDetails = eventOutageStarted{}

func (e eventOutageStarted) Category() category { return categoryLink }
func (e eventOutageStarted) Name() string       { return "outage_started" }
func (e eventOutageStarted) IsNil() bool        { return false }

func (e eventOutageStarted) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("until_ms", e.UntilMs)
}

type eventOutageEnded struct{}

var _ eventDetails = eventOutageEnded{}

func (e eventOutageEnded) Category() category { return categoryLink }
func (e eventOutageEnded) Name() string       { return "outage_ended" }
func (e eventOutageEnded) IsNil() bool        { return false }

func (e eventOutageEnded) MarshalJSONObject(*gojay.Encoder) {}
