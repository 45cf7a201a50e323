package logger

import (
	"reflect"
	"sync"
	"time"

	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/core"
	"github.com/kdevops/pulselog/formatter"
	"github.com/kdevops/pulselog/queue"
	"github.com/kdevops/pulselog/record"
	"github.com/kdevops/pulselog/resolver"
	"github.com/kdevops/pulselog/typehandle"
	"github.com/kdevops/pulselog/wire"
	"github.com/kdevops/pulselog/worker"
)

// Config is the top-level configuration spec.md §6 enumerates, minus the
// per-logger/per-appender pieces which live in resolver.Config.
type Config struct {
	LogMessagePoolSize       int
	LogMessageBufferSize     int
	LogMessageStringCapacity int

	NullDisplayString       string
	TruncatedMessageSuffix  string
	AppenderQuarantineDelay time.Duration

	AutoRegisterEnums bool
	IncludeCaller     bool
	CallerSkip        int

	Resolver resolver.Config
	Worker   worker.Config
}

// Manager owns the pool, queue, resolver, worker, and type-handle
// registry for one logging pipeline. Most programs need exactly one,
// constructed via Initialize and reached through the package-level
// default (see default.go); tests and multi-tenant hosts can construct
// additional ones directly with New.
type Manager struct {
	pool  *record.Pool
	queue *queue.Queue
	tree  *resolver.Tree
	types *typehandle.Registry
	w     *worker.Worker
	cfg   Config

	mu      sync.Mutex
	handles map[string]*Handle
}

// New builds a Manager from cfg and starts its worker goroutine. It
// returns a *resolver.ConfigurationError (wrapped) if cfg.Resolver names
// an unknown appender.
func New(cfg Config) (*Manager, error) {
	core.StartCoarseClock()

	pool := record.NewPool(record.Config{
		PoolSize:       cfg.LogMessagePoolSize,
		BufferSize:     cfg.LogMessageBufferSize,
		StringCapacity: cfg.LogMessageStringCapacity,
	})
	// +1: a DropAndNotify notice can land in the queue alongside a full
	// complement of checked-out records, since it doesn't itself consume
	// a pool slot.
	q := queue.New(pool.Size() + 1)
	tree := resolver.New()
	m := &Manager{
		pool:    pool,
		queue:   q,
		tree:    tree,
		types:   typehandle.New(cfg.AutoRegisterEnums),
		cfg:     cfg,
		handles: make(map[string]*Handle),
	}
	if err := m.Reconfigure(cfg.Resolver); err != nil {
		return nil, err
	}

	wcfg := cfg.Worker
	wcfg.Format.NullDisplayString = cfg.NullDisplayString
	wcfg.Format.TruncatedMessageSuffix = cfg.TruncatedMessageSuffix
	wcfg.Format.Types = m.types
	wcfg.Format.IncludeCaller = cfg.IncludeCaller
	if wcfg.Default == nil {
		wcfg.Default = formatter.NewTextFormatter("")
	}

	m.w = worker.New(q, tree, wcfg)
	go m.w.Run()

	return m, nil
}

// Reconfigure swaps in a new resolver configuration; every Handle issued
// by this Manager observes the new effective level on its next refresh
// callback (spec.md §4.6 "Publish the updated event"). Every guarded
// appender in the new tree gets this Manager's AppenderQuarantineDelay.
func (m *Manager) Reconfigure(cfg resolver.Config) error {
	if err := m.tree.Reconfigure(cfg); err != nil {
		return err
	}
	if m.cfg.AppenderQuarantineDelay > 0 {
		for _, a := range m.tree.AllAppenders() {
			if g, ok := a.(*appender.Guarded); ok {
				g.Delay = m.cfg.AppenderQuarantineDelay
			}
		}
	}
	return nil
}

// RegisterEnum assigns t a stable type handle up front, avoiding the
// one-time allocation AutoRegisterEnums would otherwise incur on first
// use (spec.md §6 register_enum).
func (m *Manager) RegisterEnum(t reflect.Type) wire.TypeHandle {
	return m.types.Register(t)
}

// GetLogger returns the Handle for name, creating and caching it on
// first use. Handles are cheap to keep around — callers are expected to
// fetch one per package or per component and reuse it rather than
// calling GetLogger per log statement.
func (m *Manager) GetLogger(name string) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.handles[name]; ok {
		return h
	}
	h := newHandle(m, name)
	m.handles[name] = h
	return h
}

// acquire obtains a record per strategy, handling the DropAndNotify and
// WaitUntilAvailable policies spec.md §4.2 describes.
func (m *Manager) acquire(strategy record.ExhaustionStrategy) (*record.Record, bool) {
	if rec, ok := m.pool.Acquire(); ok {
		return rec, true
	}
	switch strategy {
	case record.WaitUntilAvailable:
		return m.pool.AcquireWait(m.w.Done())
	case record.DropAndNotify:
		m.queue.Push(m.pool.NotifyRecord())
		return nil, false
	default: // record.Drop
		return nil, false
	}
}

// Shutdown drains the queue, flushes and closes every appender, and
// unsubscribes every handle this Manager ever issued. Idempotent.
func (m *Manager) Shutdown() {
	m.w.Shutdown()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.handles {
		h.close()
	}
}

// AllAppenders exposes the resolver's live appender set, for metrics
// collectors that need to read appender.Stats snapshots.
func (m *Manager) AllAppenders() []appender.Appender { return m.tree.AllAppenders() }

// AllAppenderNames returns the configured name of each appender returned
// by AllAppenders, in the same order.
func (m *Manager) AllAppenderNames() []string { return m.tree.AllAppenderNames() }

// PoolSize and PoolFree expose the buffer pool's configured capacity and
// current availability, for metrics.Collector.
func (m *Manager) PoolSize() int { return m.pool.Size() }
func (m *Manager) PoolFree() int { return m.pool.CountFree() }

// QueueLen exposes the number of records enqueued and not yet drained by
// the worker, for metrics.Collector.
func (m *Manager) QueueLen() int64 { return m.queue.Len() }
