package worker

import "sync/atomic"

// State names the worker's pseudostates, per spec.md §4.4.
type State int32

const (
	Starting State = iota
	Running
	Draining
	Stopped
)

func (s State) String() string {
	switch s {
	case Starting:
		return "Starting"
	case Running:
		return "Running"
	case Draining:
		return "Draining"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

type stateBox struct {
	v atomic.Int32
}

func (b *stateBox) load() State   { return State(b.v.Load()) }
func (b *stateBox) store(s State) { b.v.Store(int32(s)) }
