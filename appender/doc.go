// Package appender defines the sink contract the worker writes
// formatted messages to, the Guarded wrapper that isolates a failing
// sink from the rest of the configured appender set (spec.md §4.5), and
// the concrete sinks: Console, File, UDP, and a bridge into
// go.uber.org/zap. Multi fans a write out to several children and
// aggregates their errors.
package appender
