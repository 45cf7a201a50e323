// Package queue implements the multi-producer, single-consumer FIFO that
// carries *record.Record handles from producer threads to the worker
// (spec.md §4.3). It is a pre-sized buffered channel: every slot is
// allocated once, at New, so Push never allocates on the producer hot
// path — grounded on the teacher's own async handler queues
// (handler/consolehandler/console_async.go, handler/filehandler/
// file_async.go), which hand entries to their background writer through
// exactly this kind of pre-allocated buffered channel rather than a
// per-send node.
package queue

import (
	"github.com/kdevops/pulselog/record"
)

// Queue is a multi-producer, single-consumer FIFO of *record.Record,
// backed by a fixed-capacity channel whose buffer is allocated once, at
// construction.
type Queue struct {
	ch chan *record.Record
}

// New returns an empty queue with room for capacity records. capacity
// should be at least the buffer pool's size, so that every record a
// producer could ever hold title to has a guaranteed slot (spec.md §4.3:
// "capacity >= pool size, so enqueue never fails"), plus a little slack
// for DropAndNotify's shared notice record landing in the queue alongside
// a full complement of real ones.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{ch: make(chan *record.Record, capacity)}
}

// Push enqueues r. Safe to call from any number of goroutines
// concurrently; preserves per-caller FIFO order (spec.md §5: "within one
// thread: FIFO"). Never allocates — the channel's buffer, sized once at
// New, is the only storage this ever touches. If the queue is already at
// capacity, Push blocks until the worker drains a slot rather than
// allocating room for it.
func (q *Queue) Push(r *record.Record) {
	q.ch <- r
}

// Pop dequeues the oldest record, or returns ok=false if the queue is
// currently empty. Safe to call only from the single consumer goroutine
// (the worker).
func (q *Queue) Pop() (*record.Record, bool) {
	select {
	case r := <-q.ch:
		return r, true
	default:
		return nil, false
	}
}

// Len returns an approximate current length, useful for observability
// only — a concurrent Push can race a Len call.
func (q *Queue) Len() int64 { return int64(len(q.ch)) }
