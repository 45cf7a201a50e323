// Package core defines the foundational types shared across pulselog:
// the ordered Level enum, CallerInfo, and a coarse monotonic clock.
//
// Level filtering is a single integer comparison, which is what makes the
// hot-path "is this enabled" check free of any indirection. CallerInfo is
// captured only on loggers that opt into it, via go-stack/stack, since
// stack unwinding is the one part of the producer path that genuinely
// costs something.
//
// StartCoarseClock/CoarseNow amortize the cost of timestamping: a single
// background goroutine samples time.Now() every 500 microseconds into an
// atomic pointer, and every record on the producer and worker paths reads
// that cached value instead of calling into the runtime clock directly.
package core
