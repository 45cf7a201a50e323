package resolver

import (
	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/core"
	"github.com/kdevops/pulselog/formatter"
	"github.com/kdevops/pulselog/record"
)

// node is one trie vertex keyed by a single dotted segment. Every node,
// including ones created only as an intermediate on the way to a
// configured descendant, carries a complete effective configuration —
// inherited from its parent at creation time per spec.md §4.6.
type node struct {
	children   map[string]*node
	level      core.Level
	appenders  []appender.Appender
	formatters []formatter.Formatter // index-aligned with appenders
	minLevels  []core.Level          // index-aligned with appenders
	strategy   record.ExhaustionStrategy
}

func newRootNode() *node {
	return &node{
		children: make(map[string]*node),
		level:    core.InfoLevel,
		strategy: record.DropAndNotify,
	}
}

func (n *node) child(seg string) (*node, bool) {
	c, ok := n.children[seg]
	return c, ok
}

// inheritedChild returns the existing child for seg, creating one that
// inherits this node's configuration if absent.
func (n *node) inheritedChild(seg string) *node {
	if c, ok := n.children[seg]; ok {
		return c
	}
	c := &node{
		children:   make(map[string]*node),
		level:      n.level,
		appenders:  n.appenders,
		formatters: n.formatters,
		minLevels:  n.minLevels,
		strategy:   n.strategy,
	}
	n.children[seg] = c
	return c
}
