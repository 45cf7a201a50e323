package logger

import (
	"sync"
	"sync/atomic"
)

var (
	defaultMgr atomic.Pointer[Manager]
	initOnce   sync.Mutex
)

// Initialize builds the package-level default Manager from cfg (spec.md
// §6 initialize(config)). Calling it again after a prior Initialize
// replaces the default and shuts down the old one, so tests can
// reinitialize between cases; production code is expected to call it
// exactly once at startup.
func Initialize(cfg Config) error {
	initOnce.Lock()
	defer initOnce.Unlock()

	m, err := New(cfg)
	if err != nil {
		return err
	}
	if old := defaultMgr.Swap(m); old != nil {
		old.Shutdown()
	}
	return nil
}

// Shutdown tears down the package-level default Manager, if one was
// initialized. Safe to call even if Initialize was never called.
func Shutdown() {
	initOnce.Lock()
	defer initOnce.Unlock()
	if m := defaultMgr.Swap(nil); m != nil {
		m.Shutdown()
	}
}

// GetLogger returns a Handle from the package-level default Manager
// (spec.md §6 get_logger). Panics if Initialize has not been called —
// unlike a nil-safe façade, there is no sensible default appender set to
// fall back to silently.
func GetLogger(name string) *Handle {
	m := defaultMgr.Load()
	if m == nil {
		panic("logger: GetLogger called before Initialize")
	}
	return m.GetLogger(name)
}

// Default returns the package-level Manager, or nil if Initialize has
// not been called.
func Default() *Manager { return defaultMgr.Load() }
