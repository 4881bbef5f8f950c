package trace

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Kind says what happened to a span.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindHeartbeat:
		return "heartbeat"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Attr is one key/value pair attached to an event. Attrs keep the order in
// which they were set.
type Attr struct {
	Key   string `json:"k"`
	Value string `json:"v"`
}

// String builds a string Attr.
func String(key, value string) Attr { return Attr{Key: key, Value: value} }

// Int builds an integer Attr.
func Int(key string, value int) Attr { return Attr{Key: key, Value: strconv.Itoa(value)} }

// Event is one record written by a Tracer.
type Event struct {
	Seq     uint64        `json:"seq"`
	At      time.Time     `json:"at"`
	Kind    Kind          `json:"-"`
	Scope   Scope         `json:"-"`
	Span    uint64        `json:"span,omitempty"`
	Parent  uint64        `json:"parent,omitempty"`
	Depth   int           `json:"depth"`
	Name    string        `json:"name"`
	Status  string        `json:"status,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns,omitempty"`
	Attrs   []Attr        `json:"attrs,omitempty"`
}

// Format selects the encoding of events.
type Format uint8

const (
	FormatText Format = iota + 1
	FormatJSON
)

// formatForPath picks JSON lines for .json/.ndjson outputs and text otherwise.
func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".ndjson", ".jsonl":
		return FormatJSON
	}
	return FormatText
}

// Encode renders ev as one line in format f.
func Encode(ev Event, f Format) []byte {
	if f == FormatJSON {
		return encodeJSON(ev)
	}
	return encodeText(ev)
}

func encodeJSON(ev Event) []byte {
	type wire struct {
		Event
		Kind  string `json:"kind"`
		Scope string `json:"scope"`
	}
	data, err := json.Marshal(wire{Event: ev, Kind: ev.Kind.String(), Scope: ev.Scope.String()})
	if err != nil {
		data = fmt.Appendf(nil, `{"seq":%d,"error":%q}`, ev.Seq, err.Error())
	}
	return append(data, '\n')
}

// encodeText пишет строку вида
//
//	#12    file  > compile_file path=main.spl
//	#15    file  < compile_file [ok] 1.204ms path=main.spl
func encodeText(ev Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%-5d %-7s ", ev.Seq, ev.Scope)
	sb.WriteString(strings.Repeat("  ", ev.Depth))
	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("> ")
	case KindSpanEnd:
		sb.WriteString("< ")
	case KindHeartbeat:
		sb.WriteString("~ ")
	}
	sb.WriteString(ev.Name)
	if ev.Status != "" {
		sb.WriteString(" [" + ev.Status + "]")
	}
	if ev.Kind == KindSpanEnd {
		sb.WriteString(" " + ev.Elapsed.Round(time.Microsecond).String())
	}
	for _, a := range ev.Attrs {
		sb.WriteString(" " + a.Key + "=" + a.Value)
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
