package input

import "time"

// QueueSize is the number of intents buffered between a backend and the
// event loop. Further intents are dropped until the loop catches up.
const QueueSize = 8

// Queue is the bounded hand-off between an input producer and the single
// consumer that owns the viewer state.
type Queue struct {
	ch chan Intent
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{ch: make(chan Intent, QueueSize)}
}

// Push offers an intent without blocking. It reports false when the queue was
// full and the intent was dropped.
func (q *Queue) Push(intent Intent) bool {
	select {
	case q.ch <- intent:
		return true
	default:
		return false
	}
}

// Poll waits up to timeout for the next intent
func (q *Queue) Poll(timeout time.Duration) (Intent, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case intent := <-q.ch:
		return intent, true
	case <-timer.C:
		return Intent{Action: ActionNone}, false
	}
}

// Len returns the number of queued intents
func (q *Queue) Len() int {
	return len(q.ch)
}
