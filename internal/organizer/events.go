package organizer

import (
	"encoding/json"
	"sync"
)

// EventType names one message of the presentation contract.
type EventType string

const (
	EventSetStartEnabled EventType = "set-start-enabled"
	EventClearLog        EventType = "clear-log"
	EventUpdateStatus    EventType = "update-status"
	EventUpdateProgress  EventType = "update-progress"
	EventAppendLog       EventType = "append-log"
)

// Event is a single message from a run to its observer. Only the field that
// matches Type is meaningful.
type Event struct {
	Type    EventType
	Enabled bool
	Text    string
	Percent int
}

// Payload returns the value carried by the event, or nil for clear-log.
func (e Event) Payload() any {
	switch e.Type {
	case EventSetStartEnabled:
		return e.Enabled
	case EventUpdateStatus, EventAppendLog:
		return e.Text
	case EventUpdateProgress:
		return e.Percent
	default:
		return nil
	}
}

// MarshalJSON encodes the event as {"event": <type>, "payload": <value>}.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Event   EventType `json:"event"`
		Payload any       `json:"payload,omitempty"`
	}{Event: e.Type, Payload: e.Payload()})
}

// Sink receives run events in causal order.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Queue is a channel-backed Sink for consumers on another goroutine. Emit
// blocks while the buffer is full, so no event is ever dropped or reordered.
type Queue struct {
	ch        chan Event
	closeOnce sync.Once
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(buffer int) *Queue {
	if buffer < 0 {
		buffer = 0
	}
	return &Queue{ch: make(chan Event, buffer)}
}

func (q *Queue) Emit(e Event) { q.ch <- e }

// Events returns the receive side of the queue. It is closed by Close.
func (q *Queue) Events() <-chan Event { return q.ch }

// Close ends the stream. Call it only after the run feeding the queue has
// finished.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.ch) })
}

type emitter struct {
	sink Sink
}

func (e emitter) emit(evt Event) {
	if e.sink != nil {
		e.sink.Emit(evt)
	}
}

func (e emitter) startEnabled(enabled bool) {
	e.emit(Event{Type: EventSetStartEnabled, Enabled: enabled})
}

func (e emitter) clearLog() { e.emit(Event{Type: EventClearLog}) }

func (e emitter) status(text string) { e.emit(Event{Type: EventUpdateStatus, Text: text}) }

func (e emitter) progress(percent int) { e.emit(Event{Type: EventUpdateProgress, Percent: percent}) }

func (e emitter) log(line string) { e.emit(Event{Type: EventAppendLog, Text: line}) }
