package sink

import "fmt"

// EventKind distinguishes recorded event types.
type EventKind int

const (
	EventAxis EventKind = iota
	EventButton
	EventSync
)

// Event is one recorded sink operation.
type Event struct {
	Kind    EventKind
	Axis    Axis
	Button  Button
	Value   int32
	Pressed bool
}

// Recording is a Sink that records every operation, for tests. FailAfter
// can simulate the device disappearing mid-run.
type Recording struct {
	Events []Event

	// FailAfter makes every write past the first n fail. Zero means
	// never fail.
	FailAfter int

	closed bool
	writes int
}

var _ Sink = (*Recording)(nil)

// NewRecording creates an empty recording sink.
func NewRecording() *Recording {
	return &Recording{}
}

func (r *Recording) record(ev Event) error {
	if r.closed {
		return fmt.Errorf("sink is closed")
	}
	r.writes++
	if r.FailAfter > 0 && r.writes > r.FailAfter {
		return fmt.Errorf("simulated device failure")
	}
	r.Events = append(r.Events, ev)
	return nil
}

// SetAxis records an absolute position update.
func (r *Recording) SetAxis(axis Axis, value int32) error {
	return r.record(Event{Kind: EventAxis, Axis: axis, Value: value})
}

// SetButton records a button state change.
func (r *Recording) SetButton(button Button, pressed bool) error {
	return r.record(Event{Kind: EventButton, Button: button, Pressed: pressed})
}

// Sync records a synchronization barrier.
func (r *Recording) Sync() error {
	return r.record(Event{Kind: EventSync})
}

// Close marks the sink closed.
func (r *Recording) Close() error {
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *Recording) Closed() bool {
	return r.closed
}

// Count returns how many events of the given kind were recorded.
func (r *Recording) Count(kind EventKind) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
