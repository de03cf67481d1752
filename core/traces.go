package core

// TracesInitialCap is the initial capacity for Traces buffers.
var TracesInitialCap = 16

// Traces holds trace messages.
//
// A nil *Traces is valid and discards everything.
type Traces struct {
	Messages []interface{} `json:"messages,omitempty" yaml:",omitempty"`
}

// NewTraces creates an initialized Traces.
func NewTraces() *Traces {
	return &Traces{
		Messages: make([]interface{}, 0, TracesInitialCap),
	}
}

func (ts *Traces) Add(xs ...interface{}) {
	if ts == nil {
		return
	}
	ts.Messages = append(ts.Messages, xs...)
}

// Reset drops all messages.
func (ts *Traces) Reset() {
	if ts == nil {
		return
	}
	ts.Messages = ts.Messages[:0]
}
