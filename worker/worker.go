// Package worker implements the single dedicated consumer thread of
// spec.md §4.4: it drains the queue, resolves each record's appender
// set, formats into a scratch buffer per appender, writes through the
// guarded wrapper, and releases the record back to its pool. It is the
// only goroutine that ever calls Formatter.Format or Appender.Write,
// matching the single-writer invariant of spec.md §3/§5.
package worker

import (
	"math/rand"
	"time"

	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/formatter"
	"github.com/kdevops/pulselog/queue"
	"github.com/kdevops/pulselog/record"
	"github.com/kdevops/pulselog/resolver"
)

const (
	minBackoff = 1 * time.Millisecond
	maxBackoff = 15 * time.Millisecond
)

// Config sizes the worker loop per spec.md §6.
type Config struct {
	// Default renders records for appenders that don't name their own
	// Formatter (resolver.AppenderDef.Formatter). Nil defaults to a
	// TextFormatter with "%date %time %level %logger".
	Default formatter.Formatter
	Format  formatter.Config

	// FlushInterval is the idle duration after which every reachable
	// appender is flushed even with nothing new to write (default 1s).
	FlushInterval time.Duration
	// FlushEvery flushes every appender after this many records written,
	// independent of FlushInterval (zero means the default, 1024).
	FlushEvery int
}

func (c Config) withDefaults() Config {
	if c.Default == nil {
		c.Default = formatter.NewTextFormatter("")
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 1 * time.Second
	}
	if c.FlushEvery == 0 {
		c.FlushEvery = 1024
	}
	return c
}

// Worker is the background consumer. Create one with New, start it with
// Run (in its own goroutine), and stop it with Shutdown.
type Worker struct {
	q    *queue.Queue
	tree *resolver.Tree
	cfg  Config

	state stateBox
	done  chan struct{} // closed by Shutdown; also handed to record.Pool.AcquireWait
	wg    chan struct{} // closed when Run returns

	sinceFlush int
}

// New returns a Worker that drains q, resolving appender sets against
// tree. Call Run in its own goroutine to start processing.
func New(q *queue.Queue, tree *resolver.Tree, cfg Config) *Worker {
	w := &Worker{
		q:    q,
		tree: tree,
		cfg:  cfg.withDefaults(),
		done: make(chan struct{}),
		wg:   make(chan struct{}),
	}
	w.state.store(Starting)
	return w
}

// Done returns the channel that closes once Shutdown has been called,
// matching the done parameter record.Pool.AcquireWait expects so a
// producer blocked under WaitUntilAvailable wakes rather than deadlocking
// (spec.md §9 OQ2).
func (w *Worker) Done() <-chan struct{} { return w.done }

// State reports the worker's current pseudostate.
func (w *Worker) State() State { return w.state.load() }

// Run drives the dequeue loop until Shutdown is called and the queue has
// drained. It is meant to run in its own goroutine; Run returns once
// every reachable appender has been flushed and closed.
func (w *Worker) Run() {
	// A Shutdown that ran before Run started has already stored Draining;
	// keep it so the loop drains and exits instead of running on.
	w.state.v.CompareAndSwap(int32(Starting), int32(Running))
	defer close(w.wg)

	backoff := minBackoff
	lastFlush := time.Now()

	for {
		rec, ok := w.q.Pop()
		if !ok {
			if w.state.load() == Draining {
				w.flushAll()
				w.closeAll()
				w.state.store(Stopped)
				return
			}
			if time.Since(lastFlush) >= w.cfg.FlushInterval {
				w.flushAll()
				lastFlush = time.Now()
			}
			time.Sleep(jitter(backoff))
			if backoff < maxBackoff {
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}
			continue
		}
		backoff = minBackoff

		w.process(rec)
		w.sinceFlush++
		if w.sinceFlush >= w.cfg.FlushEvery {
			w.flushAll()
			w.sinceFlush = 0
			lastFlush = time.Now()
		}
	}
}

// jitter spreads concurrent workers' backoff sleeps (irrelevant with a
// single worker today, but costs nothing and matches the bounded-backoff
// wording of spec.md §4.4 without a thundering herd if that ever
// changes).
func jitter(d time.Duration) time.Duration {
	return d/2 + time.Duration(rand.Int63n(int64(d/2)+1))
}

// process resolves rec's appender set, formats once per distinct
// formatter instance (appenders sharing a Formatter share its output),
// writes to each guarded appender, and releases rec.
func (w *Worker) process(rec *record.Record) {
	defer rec.Release()

	resolved := w.tree.Resolve(rec.LoggerName)
	if len(resolved.Appenders) == 0 {
		return
	}

	cache := make(map[formatter.Formatter]appender.LoggedMessage, len(resolved.Appenders))
	for i, a := range resolved.Appenders {
		if i < len(resolved.MinLevels) && rec.Level < resolved.MinLevels[i] {
			continue
		}
		f := w.cfg.Default
		if i < len(resolved.Formatters) && resolved.Formatters[i] != nil {
			f = resolved.Formatters[i]
		}
		msg, ok := cache[f]
		if !ok {
			rendered, err := f.Format(rec, w.cfg.Format)
			if err != nil {
				rendered = formatter.FormatFallback(rec, w.cfg.Format, err)
			}
			msg = rendered
			cache[f] = msg
		}
		_ = a.Write(msg)
	}
}

// flushAll and closeAll walk every appender the current tree knows
// about, not just the ones reachable from the root's own Resolve("") —
// a sub-logger's appender set can differ from the root's (spec.md §4.6).
func (w *Worker) flushAll() {
	for _, a := range w.tree.AllAppenders() {
		_ = a.Flush()
	}
}

func (w *Worker) closeAll() {
	for _, a := range w.tree.AllAppenders() {
		_ = a.Close()
	}
}

// Shutdown flips the worker to Draining and blocks until Run has
// processed the remaining queue, flushed, and closed every appender.
// Idempotent: a second call observes Run already returned and returns
// immediately.
func (w *Worker) Shutdown() {
	select {
	case <-w.done:
	default:
		close(w.done)
		w.state.store(Draining)
	}
	<-w.wg
}
