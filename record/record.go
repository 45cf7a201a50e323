// Package record implements the pooled message buffer spec.md §3/§4.1
// describes: a fixed-capacity byte region for the encoded argument
// stream, a bounded reference table, and the header fields (level,
// timestamp, logger, thread) a producer stamps before enqueuing. A
// Record is owned by exactly one of {free list, producer, queue, worker}
// at any instant. Record.Release puts it back on the free list; the
// worker calls it after processing, and logger.RecordBuilder.Discard
// calls it for a record that is never enqueued.
package record

import (
	"time"

	"github.com/kdevops/pulselog/core"
	"github.com/kdevops/pulselog/wire"
)

// ExhaustionStrategy names the behavior a producer follows when
// Pool.Acquire finds no free buffer, per spec.md §4.2.
type ExhaustionStrategy uint8

const (
	// DropAndNotify drops the record and arranges for the worker to
	// surface a "queue was full" notice via a pre-allocated constant
	// message buffer. This is the default.
	DropAndNotify ExhaustionStrategy = iota
	// Drop silently discards the record.
	Drop
	// WaitUntilAvailable blocks the caller until a buffer frees up or the
	// worker shuts down (Pool.AcquireWait). It never allocates.
	WaitUntilAvailable
)

// Record is one pooled log record: a fixed byte region plus reference
// table for the encoded argument stream (via Enc), and the header a
// producer stamps once it decides to log.
type Record struct {
	Level      core.Level
	Timestamp  time.Time
	LoggerName string
	ThreadID   int64
	ThreadName string
	Caller     core.CallerInfo

	// Constant holds a pre-formatted message for the two non-pooled
	// sentinel instances (Empty and notification records); Enc is unused
	// for those.
	Constant string

	Enc *wire.Encoder

	pooled bool
	pool   *Pool
}

// Truncated reports whether the encoded argument stream overflowed its
// buffer or reference table while this record was being built.
func (r *Record) Truncated() bool {
	return r.Enc != nil && r.Enc.Truncated
}

// reset clears header fields and rewinds the encoder for reuse. Called by
// Pool.Acquire before handing the record to a new producer.
func (r *Record) reset() {
	r.Level = core.InfoLevel
	r.Timestamp = time.Time{}
	r.LoggerName = ""
	r.ThreadID = 0
	r.ThreadName = ""
	r.Caller = core.CallerInfo{}
	r.Constant = ""
	if r.Enc != nil {
		r.Enc.Reset()
	}
}

// Release returns the record to its owning pool. It is a no-op on the
// non-pooled sentinels (Empty, constant-message notices). It is the only
// way a pooled Record goes back on the free list (via the unexported
// Pool.release).
func (r *Record) Release() {
	if r == nil || !r.pooled || r.pool == nil {
		return
	}
	r.pool.release(r)
}
