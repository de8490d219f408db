// Package outbox buffers roster events and delivers them to Kafka.
package outbox

import (
	"context"
	"errors"

	"example.com/extracurricular/internal/events"
)

// ErrQueueFull is returned when an event cannot be buffered.
var ErrQueueFull = errors.New("outbox queue full")

// Queue is a bounded in-memory outbox. Publish never blocks the caller.
type Queue struct {
	ch chan events.RosterChanged
}

// NewQueue creates a Queue holding at most capacity events.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{ch: make(chan events.RosterChanged, capacity)}
}

// Publish implements domain.EventPublisher.
func (q *Queue) Publish(ctx context.Context, event events.RosterChanged) error {
	select {
	case q.ch <- event:
		queueDepth.Set(float64(len(q.ch)))
		return nil
	default:
		droppedCounter.Inc()
		return ErrQueueFull
	}
}

// Len reports the number of buffered events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// drain removes up to n buffered events without waiting.
func (q *Queue) drain(n int) []events.RosterChanged {
	out := make([]events.RosterChanged, 0, n)
	for len(out) < n {
		select {
		case event := <-q.ch:
			out = append(out, event)
		default:
			queueDepth.Set(float64(len(q.ch)))
			return out
		}
	}
	queueDepth.Set(float64(len(q.ch)))
	return out
}
