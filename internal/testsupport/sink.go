package testsupport

import (
	"sync"

	"dronesort/internal/organizer"
)

// RecordingSink captures every event emitted by a run.
type RecordingSink struct {
	mu     sync.Mutex
	events []organizer.Event
	// OnEvent, when set, runs synchronously for each event after it is stored.
	OnEvent func(organizer.Event)
}

func (s *RecordingSink) Emit(evt organizer.Event) {
	s.mu.Lock()
	s.events = append(s.events, evt)
	s.mu.Unlock()
	if s.OnEvent != nil {
		s.OnEvent(evt)
	}
}

// Events returns a copy of the captured events.
func (s *RecordingSink) Events() []organizer.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]organizer.Event(nil), s.events...)
}

// Logs returns the append-log lines in order.
func (s *RecordingSink) Logs() []string {
	return s.texts(organizer.EventAppendLog)
}

// Statuses returns the update-status lines in order.
func (s *RecordingSink) Statuses() []string {
	return s.texts(organizer.EventUpdateStatus)
}

// Progress returns every update-progress percentage in order.
func (s *RecordingSink) Progress() []int {
	var out []int
	for _, evt := range s.Events() {
		if evt.Type == organizer.EventUpdateProgress {
			out = append(out, evt.Percent)
		}
	}
	return out
}

func (s *RecordingSink) texts(kind organizer.EventType) []string {
	var out []string
	for _, evt := range s.Events() {
		if evt.Type == kind {
			out = append(out, evt.Text)
		}
	}
	return out
}
