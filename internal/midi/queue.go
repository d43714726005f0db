package midi

import (
	"sync/atomic"

	"gitlab.com/gomidi/midi/v2"
)

// DefaultQueueSize bounds the inbound buffer between two engine ticks.
const DefaultQueueSize = 1024

// Queue carries inbound messages from the driver callback to the engine.
// Push never blocks; a full queue drops the message and counts it.
type Queue struct {
	ch      chan midi.Message
	dropped atomic.Uint64
	onDrop  func()
}

// NewQueue returns a queue holding up to size messages.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan midi.Message, size)}
}

// OnDrop registers a hook invoked for every dropped message.
func (q *Queue) OnDrop(fn func()) {
	q.onDrop = fn
}

// Push enqueues a copy of msg and reports whether it fit.
func (q *Queue) Push(msg midi.Message) bool {
	cp := make(midi.Message, len(msg))
	copy(cp, msg)
	select {
	case q.ch <- cp:
		return true
	default:
		q.dropped.Add(1)
		if q.onDrop != nil {
			q.onDrop()
		}
		return false
	}
}

// Drain hands every message queued so far to fn in arrival order and
// returns how many were delivered.
func (q *Queue) Drain(fn func(midi.Message)) int {
	n := 0
	for {
		select {
		case msg := <-q.ch:
			fn(msg)
			n++
		default:
			return n
		}
	}
}

// Len is the number of messages waiting.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Dropped is the number of messages lost to a full queue.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
