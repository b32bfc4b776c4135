package ecs

// CollisionEvent reports one overlapping pair from the tick just resolved.
// The pair is unordered and emitted exactly once per tick.
type CollisionEvent struct {
	A, B Entity
}

// EventQueue is a tick-scoped FIFO of collision events. The pipeline
// pushes during resolution; the host drains after the tick. Undrained
// events are discarded when the next tick starts.
type EventQueue struct {
	items []CollisionEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt CollisionEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all pending events and clears the queue.
func (q *EventQueue) Drain() []CollisionEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
