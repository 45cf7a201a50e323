package record

import (
	"github.com/kdevops/pulselog/wire"
)

// Config sizes a Pool. Zero fields fall back to the spec.md §6 defaults.
type Config struct {
	// PoolSize is the number of buffers held by the pool (LogMessagePoolSize).
	PoolSize int
	// BufferSize is the argument-byte capacity per buffer (LogMessageBufferSize).
	BufferSize int
	// StringCapacity is the reference-table slot count per buffer (LogMessageStringCapacity).
	StringCapacity int
}

const (
	DefaultPoolSize       = 1024
	DefaultBufferSize     = 128
	DefaultStringCapacity = 32
)

func (c Config) withDefaults() Config {
	if c.PoolSize <= 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.StringCapacity <= 0 {
		c.StringCapacity = DefaultStringCapacity
	}
	return c
}

// Pool is a fixed-count, bounded-wait MPMC free list of *Record. Every
// Record it will ever hand out is allocated once, at NewPool time; after
// that Acquire/Release never allocate, satisfying the "no allocation after
// init" invariant of spec.md §3.
type Pool struct {
	free   chan *Record
	notify *Record
	cfg    Config
}

// NewPool pre-allocates cfg.PoolSize records, each with a byte region of
// cfg.BufferSize and a reference table of cfg.StringCapacity slots, and
// one extra constant-message record reserved for pool-exhaustion notices
// (see NotifyRecord).
func NewPool(cfg Config) *Pool {
	cfg = cfg.withDefaults()
	p := &Pool{free: make(chan *Record, cfg.PoolSize), cfg: cfg}
	for i := 0; i < cfg.PoolSize; i++ {
		p.free <- p.newRecord()
	}
	p.notify = &Record{Constant: "log message queue was full; one or more records were dropped"}
	return p
}

func (p *Pool) newRecord() *Record {
	buf := make([]byte, 0, p.cfg.BufferSize)
	refs := make([]any, 0, p.cfg.StringCapacity)
	return &Record{
		pooled: true,
		pool:   p,
		Enc:    wire.NewEncoder(buf, refs),
	}
}

// Acquire returns a free record, or ok=false if the pool is currently
// exhausted. It never blocks and never allocates.
func (p *Pool) Acquire() (*Record, bool) {
	select {
	case r := <-p.free:
		r.reset()
		return r, true
	default:
		return nil, false
	}
}

// AcquireWait implements the WaitUntilAvailable exhaustion strategy: it
// blocks until a record frees up, or until done is closed. done is
// closed by worker.Shutdown, which resolves the open question in spec.md
// §9 about WaitUntilAvailable racing shutdown — the call returns ok=false
// rather than deadlock.
func (p *Pool) AcquireWait(done <-chan struct{}) (*Record, bool) {
	select {
	case r := <-p.free:
		r.reset()
		return r, true
	case <-done:
		return nil, false
	}
}

// release returns r to the free list. Called only by Record.Release,
// which only pooled records honor.
func (p *Pool) release(r *Record) {
	select {
	case p.free <- r:
	default:
		// The free list is sized to exactly PoolSize records and every
		// record is released at most once, so this branch is
		// unreachable in correct use; it exists only to avoid a panic
		// if a caller double-releases.
	}
}

// Size returns the pool's total capacity.
func (p *Pool) Size() int { return p.cfg.PoolSize }

// CountFree returns the number of currently free buffers.
func (p *Pool) CountFree() int { return len(p.free) }

// NotifyRecord returns the pool's single pre-allocated constant-message
// record used to tell operators that DropAndNotify dropped something.
// The producer side (logger's Manager) enqueues this same instance on
// every failed DropAndNotify acquire; it carries no
// argument stream and is never released back to the free list.
func (p *Pool) NotifyRecord() *Record { return p.notify }

// Empty returns the stateless, non-pooled sentinel Record used when a
// producer's log call becomes a no-op (disabled level, Drop policy on
// exhaustion, or logging after shutdown).
func Empty() *Record { return emptySentinel }

var emptySentinel = &Record{Constant: ""}

// Constant returns a fresh non-pooled Record carrying only a
// pre-formatted message, for internal library notices that must never
// allocate from the shared pool.
func Constant(msg string) *Record { return &Record{Constant: msg} }
