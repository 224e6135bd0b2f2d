// Package journal is the durable audit log of the ledger components. Every
// externally observable effect — a join, a payout, an accrual snapshot — is
// emitted as an Event; the journal is the only record of them, there is no
// separate log file.
package journal

import (
	"encoding/gob"
	"sync"
)

// Event is a single audit record emitted by a component.
type Event interface {
	// Kind names the event type, e.g. "match.completed".
	Kind() string
}

// Recorder accepts events. Components hold a Recorder and emit through
// Record; see that function for nil handling.
type Recorder interface {
	Record(e Event) error
}

// Record emits e to r, discarding it when r is nil. Emission is
// best-effort: components call Record only after their state change has
// committed, and a failing recorder must not make a committed operation
// report failure, so the recorder's error is dropped here. Embedders that
// need delivery guarantees check the Recorder directly.
func Record(r Recorder, e Event) {
	if r == nil {
		return
	}
	_ = r.Record(e)
}

// RegisterEvent registers a concrete event type for gob encoding. Each
// component registers its event types in an init function; required before
// a BoltJournal can store them.
func RegisterEvent(e Event) {
	gob.Register(e)
}

// Memory is an in-memory journal, primarily for tests and short-lived
// embedders.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory returns an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends e.
func (m *Memory) Record(e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

// Events returns a copy of all recorded events in order.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// OfKind returns all recorded events with the given kind, in order.
func (m *Memory) OfKind(kind string) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, e := range m.events {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}
