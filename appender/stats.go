package appender

import "sync/atomic"

// Stats tracks per-appender write outcomes, adapted from the teacher's
// handler.Stats (which counted per-level drops on an async queue); here
// there is no per-appender queue to overflow — the worker is already the
// single writer — so the counters track guard outcomes instead.
type Stats struct {
	Written     uint64
	Failed      uint64
	Quarantined uint64
}

func (s *Stats) IncrementWritten()     { atomic.AddUint64(&s.Written, 1) }
func (s *Stats) IncrementFailed()      { atomic.AddUint64(&s.Failed, 1) }
func (s *Stats) IncrementQuarantined() { atomic.AddUint64(&s.Quarantined, 1) }

// Snapshot is a point-in-time copy of Stats, safe to pass by value.
type Snapshot struct {
	Written     uint64
	Failed      uint64
	Quarantined uint64
}

func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Written:     atomic.LoadUint64(&s.Written),
		Failed:      atomic.LoadUint64(&s.Failed),
		Quarantined: atomic.LoadUint64(&s.Quarantined),
	}
}
