// Package logger is the façade over the core pipeline (pool, queue,
// resolver, worker): the only layer application code is meant to import
// directly.
//
// Initialize builds a Manager and starts its worker goroutine; GetLogger
// returns a Handle, a cheap, cached view of one logger name's effective
// level that's safe to keep as a package-level variable:
//
//	logger.Initialize(logger.Config{ /* ... */ })
//	var log = logger.GetLogger("app.module")
//
//	if b := log.BeginRecord(logger.InfoLevel); b != nil {
//	    b.AppendKeyValue("request_id", id).AppendString("request handled")
//	    b.Submit()
//	}
//
// BeginRecord returns nil when the level is disabled or the pool is
// exhausted under a drop policy — callers that skip the nil check simply
// skip logging, never panic. Submit is the only call that enqueues; a
// RecordBuilder that falls out of scope without Submit or Discard leaks
// its buffer until later acquisition fails loudly enough to notice.
package logger
