// Package resolver implements the hierarchical configuration trie of
// spec.md §4.6: a rooted tree keyed by dot-separated logger name
// segments, each node carrying an inherited effective (level,
// appender-set, pool-exhaustion-strategy). Reconfiguration builds a new
// tree and swaps it in atomically (read-copy-update), so lookups never
// observe a partially-built tree and never block a concurrent rebuild.
package resolver

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kdevops/pulselog/appender"
)

// Tree resolves logger names to effective configuration and notifies
// subscribers after each reconfiguration.
type Tree struct {
	root atomic.Pointer[node]

	mu                sync.Mutex
	subscribers       []func()
	liveAppenders     []appender.Appender
	liveAppenderNames []string // index-aligned with liveAppenders
}

// New returns a Tree with only the language-level defaults: InfoLevel,
// no appenders, DropAndNotify. Call Reconfigure to load real config.
func New() *Tree {
	t := &Tree{}
	t.root.Store(newRootNode())
	return t
}

// Resolve splits name on '.' and descends while children match; the
// last node visited supplies the effective configuration, exactly as
// spec.md §4.6 specifies. An empty name resolves to the root.
func (t *Tree) Resolve(name string) Resolved {
	n := t.root.Load()
	if name != "" {
		for _, seg := range strings.Split(name, ".") {
			c, ok := n.child(seg)
			if !ok {
				break
			}
			n = c
		}
	}
	return Resolved{
		Level:      n.level,
		Appenders:  n.appenders,
		Formatters: n.formatters,
		MinLevels:  n.minLevels,
		Strategy:   n.strategy,
	}
}

// AllAppenders returns every guarded appender wrapped by the current
// tree's build, for callers (the worker's flush/close path) that need to
// reach every sink regardless of which logger names it.
func (t *Tree) AllAppenders() []appender.Appender {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]appender.Appender, len(t.liveAppenders))
	copy(out, t.liveAppenders)
	return out
}

// AllAppenderNames returns the configured name of each appender returned
// by AllAppenders, in the same order — for metrics collectors that want
// to label a snapshot by its config name rather than its position.
func (t *Tree) AllAppenderNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.liveAppenderNames))
	copy(out, t.liveAppenderNames)
	return out
}

// Subscribe registers fn to be called after every successful
// Reconfigure. It returns an unsubscribe function. Used by logger
// handles to refresh their cached effective level on the "updated"
// event (spec.md §5).
func (t *Tree) Subscribe(fn func()) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := len(t.subscribers)
	t.subscribers = append(t.subscribers, fn)
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if idx < len(t.subscribers) {
			t.subscribers[idx] = nil
		}
	}
}

func (t *Tree) notify() {
	t.mu.Lock()
	subs := append([]func(){}, t.subscribers...)
	t.mu.Unlock()
	for _, fn := range subs {
		if fn != nil {
			fn()
		}
	}
}
