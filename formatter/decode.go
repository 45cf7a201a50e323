package formatter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/kdevops/pulselog/wire"
)

// KV is one structured key/value pair extracted in KeyValue mode.
type KV struct {
	Key   string
	Value string
}

// renderArg renders a's value as text, using a.Format as a fmt verb
// when present (e.g. "%.2f" for a float), or a sensible default
// representation per type otherwise. Strings from cfg.NullDisplayString
// substitute for explicit nulls.
func renderArg(a wire.Arg, nullDisplay string, types typeNamer) string {
	if a.Null {
		return nullDisplay
	}
	if a.Truncated {
		return ""
	}
	switch a.Tag {
	case wire.TagBool:
		return strconv.FormatBool(a.Bool)
	case wire.TagU8, wire.TagU16, wire.TagU32, wire.TagU64, wire.TagUintPtr:
		if a.Format != "" {
			return fmt.Sprintf(a.Format, a.U64)
		}
		return strconv.FormatUint(a.U64, 10)
	case wire.TagI8, wire.TagI16, wire.TagI32, wire.TagI64, wire.TagIntPtr, wire.TagChar:
		if a.Format != "" {
			return fmt.Sprintf(a.Format, a.I64)
		}
		return strconv.FormatInt(a.I64, 10)
	case wire.TagF32, wire.TagF64:
		if a.Format != "" {
			return fmt.Sprintf(a.Format, a.F64)
		}
		return strconv.FormatFloat(a.F64, 'g', -1, 64)
	case wire.TagDecimal:
		return a.Decimal.String()
	case wire.TagDateTime:
		if a.Format != "" {
			return a.Time.Format(a.Format)
		}
		return a.Time.Format("2006-01-02T15:04:05.0000000")
	case wire.TagDateOnly:
		return a.Time.Format("2006-01-02")
	case wire.TagTimeSpan, wire.TagTimeOnly:
		return a.Duration.String()
	case wire.TagGUID:
		return a.GUID.String()
	case wire.TagString, wire.TagStringSpan, wire.TagUtf8StringSpan:
		return a.Str
	case wire.TagEnum:
		if types != nil {
			if name, ok := types.Name(a.TypeHandle); ok {
				return fmt.Sprintf("%s(%d)", name, a.U64)
			}
		}
		return strconv.FormatUint(a.U64, 10)
	case wire.TagUnmanaged:
		if types != nil {
			if name, ok := types.Name(a.TypeHandle); ok {
				return fmt.Sprintf("%s(%d bytes)", name, len(a.Bytes))
			}
		}
		return fmt.Sprintf("unmanaged(%d bytes)", len(a.Bytes))
	default:
		return ""
	}
}

// typeNamer is the subset of typehandle.Registry the formatter needs;
// kept as an interface so formatter doesn't force a concrete registry on
// callers that have none.
type typeNamer interface {
	Name(h wire.TypeHandle) (string, bool)
}

// FormatBody renders every argument in the stream as normal text
// (spec.md §4.7 "Formatted — normal output, applying per-argument format
// specifiers"): key-tagged arguments render as "key=value", the rest
// bare, all space-separated.
func FormatBody(buf *bytes.Buffer, enc []byte, refs []any, nullDisplay string, types typeNamer) {
	first := true
	wire.Walk(enc, refs, func(a wire.Arg) {
		if !first {
			buf.WriteByte(' ')
		}
		first = false
		if a.Key != "" {
			buf.WriteString(a.Key)
			buf.WriteByte('=')
		}
		buf.WriteString(renderArg(a, nullDisplay, types))
	})
}

// FormatUnformatted renders a diagnostic dump: strings quoted,
// comma-space separated (spec.md §4.7).
func FormatUnformatted(buf *bytes.Buffer, enc []byte, refs []any, nullDisplay string, types typeNamer) {
	first := true
	wire.Walk(enc, refs, func(a wire.Arg) {
		if !first {
			buf.WriteString(", ")
		}
		first = false
		isString := a.Tag == wire.TagString || a.Tag == wire.TagStringSpan || a.Tag == wire.TagUtf8StringSpan
		if isString {
			buf.WriteByte('"')
			buf.WriteString(a.Str)
			buf.WriteByte('"')
			return
		}
		buf.WriteString(renderArg(a, nullDisplay, types))
	})
}

// FormatKeyValue walks the stream once, returning the body text built
// from un-tagged arguments and the list of (key, value) pairs
// contributed by KeyString-tagged ones (spec.md §4.7 "KeyValue — only
// consume arguments that were preceded by a KeyString tag").
func FormatKeyValue(enc []byte, refs []any, nullDisplay string, types typeNamer) (body string, pairs []KV) {
	var bodyBuf bytes.Buffer
	firstBody := true
	wire.Walk(enc, refs, func(a wire.Arg) {
		rendered := renderArg(a, nullDisplay, types)
		if a.Key != "" {
			pairs = append(pairs, KV{Key: a.Key, Value: rendered})
			return
		}
		if !firstBody {
			bodyBuf.WriteByte(' ')
		}
		firstBody = false
		bodyBuf.WriteString(rendered)
	})
	return bodyBuf.String(), pairs
}
