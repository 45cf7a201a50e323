// Package appender defines the sink contract records are delivered to
// (spec.md §3 "Appender": write/flush/close/set_encoding), plus Guarded,
// the wrapper that isolates a misbehaving sink from every other
// configured appender (spec.md §4.5).
package appender

import (
	"io"
	"time"
)

// LoggedMessage is the already-formatted text the worker hands to an
// appender, plus the header fields a structured sink (UDP's XML dialect,
// a metrics label) may want without re-parsing Text. It is a view, not
// an owned copy: appenders that need to retain the bytes past the Write
// call must copy them.
type LoggedMessage struct {
	Text       []byte
	Level      int8
	LoggerName string
	Time       time.Time
}

// Appender is the sink contract every concrete output (console, file,
// UDP, a bridge to another logging framework) implements.
type Appender interface {
	// Write delivers one already-formatted message. Called only by the
	// worker goroutine — appenders never need to synchronize writers
	// against each other, only against their own background I/O if any.
	Write(msg LoggedMessage) error
	// Flush forces any buffered output out.
	Flush() error
	// Close releases resources. Called during resolver reconfiguration
	// (on the appenders reachable from the tree being replaced) and
	// during worker shutdown (on every appender still live).
	Close() error
	// SetEncoding reconfigures the appender's output character encoding.
	// Always called from a non-producer context: initialization or a
	// resolver update.
	SetEncoding(enc string) error
}

// WriterAppender adapts an io.Writer into an Appender with no flush/close
// behavior of its own, useful for tests and simple sinks.
type WriterAppender struct {
	W io.Writer
}

func (a WriterAppender) Write(msg LoggedMessage) error { _, err := a.W.Write(msg.Text); return err }
func (a WriterAppender) Flush() error                  { return nil }
func (a WriterAppender) Close() error                  { return nil }
func (a WriterAppender) SetEncoding(string) error      { return nil }
