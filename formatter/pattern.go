package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/kdevops/pulselog/record"
)

type tokenKind int

const (
	tokenDate tokenKind = iota
	tokenTime
	tokenLevel
	tokenLogger
	tokenThread
)

var tokenNames = map[string]tokenKind{
	"date":   tokenDate,
	"time":   tokenTime,
	"level":  tokenLevel,
	"logger": tokenLogger,
	"thread": tokenThread,
}

// segment is either a literal run of text or a recognized token.
type segment struct {
	literal string
	isToken bool
	token   tokenKind
}

// Pattern is a prefix pattern parsed once (spec.md §4.7 "parses a
// pattern once into a sequence of literal chunks and tokens") and
// evaluated per message thereafter.
type Pattern struct {
	segments []segment
}

// ParsePattern compiles a prefix pattern string. Recognized tokens are
// %date, %time, %level, %logger, %thread, case-insensitive, with an
// optional %{name} bracket form. Anything else beginning with '%' is
// emitted verbatim, including the '%' itself.
func ParsePattern(pattern string) *Pattern {
	p := &Pattern{}
	var lit strings.Builder
	flushLiteral := func() {
		if lit.Len() > 0 {
			p.segments = append(p.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(pattern) {
		if pattern[i] != '%' {
			lit.WriteByte(pattern[i])
			i++
			continue
		}
		name, consumed, bracketed := readTokenName(pattern[i+1:])
		kind, ok := tokenNames[strings.ToLower(name)]
		if !ok || consumed == 0 {
			lit.WriteByte('%')
			i++
			continue
		}
		flushLiteral()
		p.segments = append(p.segments, segment{isToken: true, token: kind})
		i += 1 + consumed
		if bracketed {
			i++ // closing '}'
		}
	}
	flushLiteral()
	return p
}

// readTokenName reads a bare or %{bracketed} token name starting at s
// (which no longer includes the leading '%'). It returns the name, how
// many bytes of s precede the end of the name (for the bracket form this
// counts the opening brace but not the closing one), and whether the
// bracket form was used.
func readTokenName(s string) (name string, consumed int, bracketed bool) {
	if len(s) > 0 && s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0, false
		}
		return s[1:end], end, true
	}
	j := 0
	for j < len(s) && isIdentByte(s[j]) {
		j++
	}
	return s[:j], j, false
}

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// Write evaluates the compiled pattern for rec into buf.
func (p *Pattern) Write(buf *bytes.Buffer, rec *record.Record) {
	for _, seg := range p.segments {
		if !seg.isToken {
			buf.WriteString(seg.literal)
			continue
		}
		switch seg.token {
		case tokenDate:
			buf.WriteString(rec.Timestamp.Format("2006-01-02"))
		case tokenTime:
			buf.WriteString(rec.Timestamp.Format("15:04:05"))
			buf.WriteByte('.')
			ticks := rec.Timestamp.Nanosecond() / 100
			buf.WriteString(fmt.Sprintf("%07d", ticks))
		case tokenLevel:
			buf.WriteString(rec.Level.String())
		case tokenLogger:
			buf.WriteString(rec.LoggerName)
		case tokenThread:
			if rec.ThreadName != "" {
				buf.WriteString(rec.ThreadName)
			} else {
				buf.WriteString(strconv.FormatInt(rec.ThreadID, 10))
			}
		}
	}
}
