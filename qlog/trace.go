package qlog

import "github.com/francoispqt/gojay"

type topLevel struct {
	trace trace
}

var _ gojay.MarshalerJSONObject = &topLevel{}

func (l *topLevel) IsNil() bool { return l == nil }
func (l *topLevel) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("qlog_format", "JSON-SEQ")
	enc.StringKey("qlog_version", "0.3")
	enc.StringKey("title", "fluidsim qlog")
	enc.ObjectKey("trace", l.trace)
}

type vantagePoint struct {
	Type string
}

var _ gojay.MarshalerJSONObject = vantagePoint{}

func (p vantagePoint) IsNil() bool { return false }
func (p vantagePoint) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("type", p.Type)
}

// commonFields pins the time format: all event timestamps are simulation
// time, in milliseconds since the start of the run.
type commonFields struct{}

var _ gojay.MarshalerJSONObject = commonFields{}

func (f commonFields) IsNil() bool { return false }
func (f commonFields) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("reference_time", 0)
	enc.StringKey("time_format", "relative")
}

type stringArray []string

var _ gojay.MarshalerJSONArray = stringArray{}

func (a stringArray) IsNil() bool { return a == nil }
func (a stringArray) MarshalJSONArray(enc *gojay.Encoder) {
	for _, s := range a {
		enc.String(s)
	}
}

type trace struct {
	VantagePoint vantagePoint
	CommonFields commonFields
}

var _ gojay.MarshalerJSONObject = trace{}

func (t trace) IsNil() bool { return false }
func (t trace) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("vantage_point", t.VantagePoint)
	enc.ObjectKey("common_fields", t.CommonFields)
	enc.ArrayKey("event_fields", stringArray(eventFields[:]))
}
