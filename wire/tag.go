// Package wire implements the binary argument stream that carries a log
// record's typed arguments from the producer thread to the worker without
// boxing them into interface{} values. A stream is a flat sequence of
// tagged elements; decoding it is a single left-to-right pass with no
// look-ahead beyond the element currently being read, so the worker can
// walk an arbitrary record without knowing its shape in advance.
package wire

// Tag identifies the type of one encoded argument. The low seven bits name
// the type; the high bit (FormatFlag) is OR'd in when the element carries
// a format specifier, in which case one extra byte — a string-table index
// into the owning record's reference table — precedes the value and gives
// the format string to apply when rendering it.
type Tag uint8

const (
	TagBool Tag = iota
	TagU8
	TagI8
	TagChar
	TagI16
	TagU16
	TagI32
	TagU32
	TagI64
	TagU64
	TagF32
	TagF64
	TagDecimal
	TagIntPtr
	TagUintPtr
	TagDateTime
	TagTimeSpan
	TagDateOnly
	TagTimeOnly
	TagGUID
	TagString
	TagStringSpan
	TagUtf8StringSpan
	TagEnum
	TagUnmanaged
	TagKeyString
	TagNull
	TagEndOfTruncatedMessage
)

// FormatFlag is OR'd into the tag byte's high bit to indicate that a
// string-table index giving a format specifier follows immediately.
const FormatFlag Tag = 0x80

// typeBits masks off FormatFlag to recover the element's type.
const typeBits = 0x7f

func (t Tag) kind() Tag { return t & typeBits }

func (t Tag) hasFormat() bool { return t&FormatFlag != 0 }

// TypeHandle is a compact numeric identifier for an Enum's or Unmanaged
// value's Go type, assigned by package typehandle. It exists so the
// worker can recover a type name without runtime reflection while
// decoding: the stream carries only the handle, never the type itself.
type TypeHandle uint32
