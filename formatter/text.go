package formatter

import (
	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/record"
)

// TextFormatter renders the prefix pattern followed by the Formatted
// decode of the argument stream, adapted from the teacher's
// TextFormatter (pooled buffer, Append-style time formatting) but
// driven by the prefix-pattern/argument-decoder split of spec.md §4.7
// instead of a fixed "timestamp level message fields" layout.
type TextFormatter struct {
	pattern *Pattern
	raw     string
}

// NewTextFormatter compiles pattern once; Format evaluates the compiled
// form per record. An empty pattern adopts Config.Pattern (or its
// default) on the first Format call.
func NewTextFormatter(pattern string) *TextFormatter {
	return &TextFormatter{pattern: ParsePattern(pattern), raw: pattern}
}

func (f *TextFormatter) Format(rec *record.Record, cfg Config) (appender.LoggedMessage, error) {
	cfg = cfg.withDefaults()
	if f.raw == "" {
		f.pattern = nil
		f.raw = cfg.Pattern
	}
	if f.pattern == nil {
		f.pattern = ParsePattern(f.raw)
	}

	buf := getBuffer()
	defer putBuffer(buf)

	if rec.Constant != "" {
		buf.WriteString(rec.Constant)
	} else {
		f.pattern.Write(buf, rec)
		buf.WriteByte(' ')
		FormatBody(buf, rec.Enc.Bytes(), rec.Enc.Refs(), cfg.NullDisplayString, cfg.Types)
		if rec.Truncated() {
			buf.WriteString(cfg.TruncatedMessageSuffix)
		}
	}
	buf.WriteByte('\n')

	text := make([]byte, buf.Len())
	copy(text, buf.Bytes())
	return appender.LoggedMessage{
		Text:       text,
		Level:      int8(rec.Level),
		LoggerName: rec.LoggerName,
		Time:       rec.Timestamp,
	}, nil
}
