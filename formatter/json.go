package formatter

import (
	"bytes"
	"strconv"

	"github.com/kdevops/pulselog/appender"
	"github.com/kdevops/pulselog/record"
)

// JSONFormatter renders a record as one line of JSON: header fields
// plus the body/pairs split the KeyValue decode mode produces, adapted
// from the teacher's JSONFormatter (same hand-rolled escaping, same
// "don't pull in a JSON library for one escaping loop" reasoning — see
// DESIGN.md).
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

func (f *JSONFormatter) Format(rec *record.Record, cfg Config) (appender.LoggedMessage, error) {
	cfg = cfg.withDefaults()
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteByte('{')
	buf.WriteString(`"time":"`)
	buf.Write(rec.Timestamp.AppendFormat(buf.AvailableBuffer(), "2006-01-02T15:04:05.000000000Z07:00"))
	buf.WriteByte('"')

	buf.WriteString(`,"level":"`)
	buf.WriteString(rec.Level.String())
	buf.WriteByte('"')

	buf.WriteString(`,"logger":"`)
	appendJSONString(buf, rec.LoggerName)
	buf.WriteByte('"')

	if cfg.IncludeCaller && rec.Caller.Defined {
		buf.WriteString(`,"caller":{"file":"`)
		appendJSONString(buf, rec.Caller.ShortFile)
		buf.WriteString(`","line":`)
		buf.WriteString(strconv.Itoa(rec.Caller.Line))
		buf.WriteByte('}')
	}

	if rec.Constant != "" {
		buf.WriteString(`,"message":"`)
		appendJSONString(buf, rec.Constant)
		buf.WriteByte('"')
	} else {
		body, pairs := FormatKeyValue(rec.Enc.Bytes(), rec.Enc.Refs(), cfg.NullDisplayString, cfg.Types)
		if rec.Truncated() {
			body += cfg.TruncatedMessageSuffix
		}
		buf.WriteString(`,"message":"`)
		appendJSONString(buf, body)
		buf.WriteByte('"')
		for _, kv := range pairs {
			buf.WriteString(`,"`)
			appendJSONString(buf, kv.Key)
			buf.WriteString(`":"`)
			appendJSONString(buf, kv.Value)
			buf.WriteByte('"')
		}
	}
	buf.WriteString("}\n")

	text := make([]byte, buf.Len())
	copy(text, buf.Bytes())
	return appender.LoggedMessage{
		Text:       text,
		Level:      int8(rec.Level),
		LoggerName: rec.LoggerName,
		Time:       rec.Timestamp,
	}, nil
}

// appendJSONString writes a JSON-escaped string (without surrounding
// quotes), scanning for the bytes that need escaping and flushing the
// unescaped run before each one rather than escaping byte-by-byte.
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
