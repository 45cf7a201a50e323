// Package formatter renders a record.Record into the text handed to
// appenders. It has two moving parts, as spec.md §4.7 describes: the
// prefix writer, which expands a pattern like "%date %time %level
// %logger" once at configuration time and evaluates it per message, and
// the argument decoder, which walks a record's wire.Encoder stream
// producing Formatted, Unformatted, or KeyValue output.
package formatter

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/record"
	"github.com/kdevops/pulselog/typehandle"
)

// Formatter renders one record into the message an appender writes.
type Formatter interface {
	Format(rec *record.Record, cfg Config) (appender.LoggedMessage, error)
}

// Config holds the options spec.md §6 lists as formatter-relevant.
type Config struct {
	// Pattern is the prefix-writer pattern; see pattern.go. Empty means
	// "%date %time %level %logger".
	Pattern string
	// NullDisplayString substitutes for Null arguments (default "null").
	NullDisplayString string
	// TruncatedMessageSuffix is appended when a record was truncated, or
	// when rendering overflows the destination buffer (default
	// " [TRUNCATED]").
	TruncatedMessageSuffix string
	// Types resolves Enum/Unmanaged type handles back to names. Nil is
	// safe: handles render as a numeric fallback.
	Types *typehandle.Registry
	// IncludeCaller adds the caller's file and line to JSONFormatter output.
	IncludeCaller bool
}

func (c Config) withDefaults() Config {
	if c.Pattern == "" {
		c.Pattern = "%date %time %level %logger"
	}
	if c.NullDisplayString == "" {
		c.NullDisplayString = "null"
	}
	if c.TruncatedMessageSuffix == "" {
		c.TruncatedMessageSuffix = " [TRUNCATED]"
	}
	return c
}

// bufferPool amortizes the scratch bytes.Buffer each Format call needs,
// grounded on the teacher's formatter.getBuffer/putBuffer pool — only
// the worker goroutine calls Format, so contention is a non-issue, but
// reuse still matters on a hot path.
var bufferPool = sync.Pool{
	New: func() any {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	b := bufferPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func putBuffer(b *bytes.Buffer) {
	if b.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(b)
}

// FormatFallback is the secondary code path spec.md §7 requires when a
// Formatter.Format call itself fails: it renders the same best-effort
// diagnostic dump FormatUnformatted produces for decode.go's own
// Unformatted mode, since that dump has no failure mode of its own, and
// wraps it in the mandated "An error occurred during formatting: ..."
// text so the message still reaches the appender instead of vanishing.
func FormatFallback(rec *record.Record, cfg Config, cause error) appender.LoggedMessage {
	cfg = cfg.withDefaults()
	buf := getBuffer()
	defer putBuffer(buf)
	FormatUnformatted(buf, rec.Enc.Bytes(), rec.Enc.Refs(), cfg.NullDisplayString, cfg.Types)
	text := fmt.Sprintf("An error occurred during formatting: %v - Unformatted message: %s", cause, buf.String())
	return appender.LoggedMessage{
		Text:       []byte(text),
		Level:      int8(rec.Level),
		LoggerName: rec.LoggerName,
		Time:       rec.Timestamp,
	}
}
