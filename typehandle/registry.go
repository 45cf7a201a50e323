// Package typehandle maps Go types to the compact numeric handles the
// wire stream carries for Enum and Unmanaged arguments. Keeping the
// mapping out of the stream itself is what lets the worker recover a
// type's name at format time without runtime reflection on the hot path:
// reflection happens once, at registration.
package typehandle

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/kdevops/pulselog/wire"
)

// Registry assigns and resolves wire.TypeHandle values. The zero value is
// not usable; construct one with New.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]wire.TypeHandle
	names  []string // indexed by handle
	auto   atomic.Bool
}

// New creates an empty registry. autoRegister mirrors the
// AutoRegisterEnums configuration option: when true, Handle registers an
// unknown type on first use instead of returning the zero handle.
func New(autoRegister bool) *Registry {
	r := &Registry{byType: make(map[reflect.Type]wire.TypeHandle)}
	r.auto.Store(autoRegister)
	return r
}

// SetAutoRegister toggles the AutoRegisterEnums behavior at runtime.
func (r *Registry) SetAutoRegister(v bool) { r.auto.Store(v) }

// Register assigns t a handle if it does not already have one, and
// returns it. This is the explicit register_enum(type) call from
// spec.md §6; registering allocates (the name slice grows), here or in
// Handle's auto-registration.
func (r *Registry) Register(t reflect.Type) wire.TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(t)
}

func (r *Registry) registerLocked(t reflect.Type) wire.TypeHandle {
	if h, ok := r.byType[t]; ok {
		return h
	}
	h := wire.TypeHandle(len(r.names))
	r.names = append(r.names, t.String())
	r.byType[t] = h
	return h
}

// Handle returns t's handle. If t is unregistered and AutoRegisterEnums is
// on, it registers t on the spot (the one allocation the hot path can
// incur, and only for the first log of a previously unseen enum type). If
// AutoRegisterEnums is off, an unregistered type yields the zero handle
// and ok=false.
func (r *Registry) Handle(t reflect.Type) (wire.TypeHandle, bool) {
	r.mu.RLock()
	h, ok := r.byType[t]
	r.mu.RUnlock()
	if ok {
		return h, true
	}
	if !r.auto.Load() {
		return 0, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(t), true
}

// Name resolves a handle back to the type name it was registered under,
// for use by the formatter when rendering Enum/Unmanaged arguments.
func (r *Registry) Name(h wire.TypeHandle) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(h) >= len(r.names) {
		return "", false
	}
	return r.names[h], true
}
