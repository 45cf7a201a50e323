package appender

import (
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/kdevops/pulselog/core"
)

// DefaultQuarantineDelay is AppenderQuarantineDelay's default (spec.md
// §4.5/§6).
const DefaultQuarantineDelay = 15 * time.Second

// Guarded wraps a concrete Appender and isolates its failures: once the
// inner appender returns an error, Guarded skips it silently until
// Delay has elapsed, then gives it one more chance. A single Guarded
// instance is shared across every logger configuration that references
// the same underlying appender (resolver.Tree.Reconfigure's job), so
// quarantine state is shared too — spec.md §9's first open question,
// resolved as "intentional, documented".
type Guarded struct {
	inner Appender
	Delay time.Duration
	Stats Stats

	// nextActivation holds *time.Time; nil means "not quarantined". Read
	// and written only by the worker goroutine in normal operation, but
	// stored atomically so Stats can be read from anywhere (metrics,
	// tests) without a data race.
	nextActivation unsafe.Pointer
}

// NewGuarded wraps inner with the default quarantine delay. Use the
// Delay field to override it before first use.
func NewGuarded(inner Appender) *Guarded {
	return &Guarded{inner: inner, Delay: DefaultQuarantineDelay}
}

// Quarantined reports whether the wrapped appender is currently skipped.
func (g *Guarded) Quarantined() bool {
	p := (*time.Time)(atomic.LoadPointer(&g.nextActivation))
	if p == nil {
		return false
	}
	return core.CoarseNow().Before(*p)
}

func (g *Guarded) activation() *time.Time {
	return (*time.Time)(atomic.LoadPointer(&g.nextActivation))
}

func (g *Guarded) quarantine() {
	delay := g.Delay
	if delay <= 0 {
		delay = DefaultQuarantineDelay
	}
	t := core.CoarseNow().Add(delay)
	atomic.StorePointer(&g.nextActivation, unsafe.Pointer(&t))
}

func (g *Guarded) clear() {
	atomic.StorePointer(&g.nextActivation, nil)
}

// guard runs fn against the inner appender unless currently quarantined,
// clearing quarantine on success and (re)starting it on failure. Shared
// by Write/Flush/Close/SetEncoding so every operation honors the same
// policy, per spec.md §4.5.
func (g *Guarded) guard(fn func() error) error {
	if p := g.activation(); p != nil && core.CoarseNow().Before(*p) {
		g.Stats.IncrementQuarantined()
		return nil
	}
	err := fn()
	if err != nil {
		g.quarantine()
		g.Stats.IncrementFailed()
		return err
	}
	g.clear()
	g.Stats.IncrementWritten()
	return nil
}

func (g *Guarded) Write(msg LoggedMessage) error { return g.guard(func() error { return g.inner.Write(msg) }) }
func (g *Guarded) Flush() error                  { return g.guard(g.inner.Flush) }
func (g *Guarded) Close() error                  { return g.guard(g.inner.Close) }
func (g *Guarded) SetEncoding(enc string) error {
	return g.guard(func() error { return g.inner.SetEncoding(enc) })
}

// Inner returns the wrapped appender, for tests and diagnostics that
// need to reach past the guard.
func (g *Guarded) Inner() Appender { return g.inner }
