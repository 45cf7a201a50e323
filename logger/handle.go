package logger

import (
	"sync/atomic"

	"github.com/kdevops/pulselog/core"
	"github.com/kdevops/pulselog/record"
)

// Handle is the façade's LoggerHandle (spec.md §6): a cheap, cached view
// of one logger name's effective configuration. Handles subscribe to the
// resolver's "updated" event so IsEnabled never takes the resolver's
// lock on the hot path — it reads an atomic cached level instead.
type Handle struct {
	name     string
	mgr      *Manager
	level    atomic.Int32
	strategy atomic.Int32
	unsub    func()
}

func newHandle(mgr *Manager, name string) *Handle {
	h := &Handle{name: name, mgr: mgr}
	h.refresh()
	h.unsub = mgr.tree.Subscribe(h.refresh)
	return h
}

func (h *Handle) refresh() {
	resolved := h.mgr.tree.Resolve(h.name)
	h.level.Store(int32(resolved.Level))
	h.strategy.Store(int32(resolved.Strategy))
}

// Name returns the logger name this handle was obtained for.
func (h *Handle) Name() string { return h.name }

// IsEnabled reports whether level is at or above this logger's current
// effective level. Safe to call from any goroutine; never blocks.
func (h *Handle) IsEnabled(level core.Level) bool {
	return level >= core.Level(h.level.Load())
}

// BeginRecord acquires a buffer and stamps its header for level, or
// returns nil when the level is disabled or the pool is exhausted under
// a drop policy (spec.md §6 "None when disabled or pool empty under drop
// policies"). The caller must eventually call Submit or Discard on the
// result if it is non-nil, or the buffer never returns to the pool
// (pooled records have no finalizer).
func (h *Handle) BeginRecord(level core.Level) *RecordBuilder {
	if !h.IsEnabled(level) {
		return nil
	}

	strategy := record.ExhaustionStrategy(h.strategy.Load())
	rec, ok := h.mgr.acquire(strategy)
	if !ok {
		return nil
	}

	rec.Level = level
	rec.Timestamp = core.CoarseNow()
	rec.LoggerName = h.name
	if h.mgr.cfg.IncludeCaller {
		rec.Caller = core.GetCaller(h.mgr.cfg.CallerSkip + 1)
	}
	return &RecordBuilder{rec: rec, mgr: h.mgr}
}

// close unsubscribes from resolver updates. Called by Manager.Shutdown
// for every handle it has ever issued.
func (h *Handle) close() {
	if h.unsub != nil {
		h.unsub()
	}
}
