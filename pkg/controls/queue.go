package controls

import (
	"fmt"
	"sync"
)

// EventKind distinguishes transform edits from toggle presses.
type EventKind int

const (
	FieldChanged EventKind = iota
	FlagToggled
)

// Event is a discrete change reported by the control surface.
type Event struct {
	Kind  EventKind
	Body  Body
	Field Field
	Value int  // FieldChanged: new raw position
	Flag  Flag // FlagToggled
}

func (e Event) String() string {
	if e.Kind == FlagToggled {
		return fmt.Sprintf("toggle %s", e.Flag)
	}
	return fmt.Sprintf("%s.%s=%d", e.Body, e.Field, e.Value)
}

// EventQueue is a FIFO of control events.
// Push may be called from any goroutine; Consume is called by the render loop
// once per frame.
type EventQueue struct {
	mu      sync.Mutex
	pending []Event
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event.
func (q *EventQueue) Push(ev Event) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()
}

// Consume returns all pending events in arrival order and empties the queue.
func (q *EventQueue) Consume() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Apply routes one event to the store or the toggle set.
func Apply(ev Event, store *Store, overlays *OverlayToggleSet) error {
	switch ev.Kind {
	case FieldChanged:
		return store.set(ev.Body, ev.Field, ev.Value)
	case FlagToggled:
		return overlays.Flip(ev.Flag)
	}
	return fmt.Errorf("unknown event kind %d", int(ev.Kind))
}

// Drain consumes the queue and applies every event in order. Events that
// fail to apply are skipped; the first error is returned after the rest have
// been applied.
func Drain(q *EventQueue, store *Store, overlays *OverlayToggleSet) (int, error) {
	var firstErr error
	applied := 0
	for _, ev := range q.Consume() {
		if err := Apply(ev, store, overlays); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("apply %s: %w", ev, err)
			}
			continue
		}
		applied++
	}
	return applied, firstErr
}
