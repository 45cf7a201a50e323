package wire

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoder writes a tagged argument stream into a caller-supplied,
// fixed-capacity byte slice plus a bounded reference table. It never
// grows either slice: once either is full, further appends are silent
// no-ops and Truncated becomes true. This is the append_tag/append_value
// machinery spec.md §4.2 describes.
type Encoder struct {
	buf       []byte // len==0 at Reset, cap==LogMessageBufferSize
	refs      []any  // len==0 at Reset, cap==LogMessageStringCapacity
	Truncated bool
	pendingFS byte // string-table index of a pending format spec, or noFormat
}

const noFormat = 0xff

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// NewEncoder wraps buf and refs, which must be zero-length slices with the
// desired capacity (record.Pool hands these out pre-sized).
func NewEncoder(buf []byte, refs []any) *Encoder {
	return &Encoder{buf: buf[:0], refs: refs[:0], pendingFS: noFormat}
}

// Reset clears the encoder for reuse against the same backing arrays.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.refs = e.refs[:0]
	e.Truncated = false
	e.pendingFS = noFormat
}

// Bytes returns the encoded stream written so far.
func (e *Encoder) Bytes() []byte { return e.buf }

// Refs returns the interned reference table written so far.
func (e *Encoder) Refs() []any { return e.refs }

// WithFormat attaches a format specifier to the very next appended
// argument. It interns spec into the reference table like any string; if
// the table is full the format is silently dropped (the argument still
// encodes, just without FormatFlag).
func (e *Encoder) WithFormat(spec string) *Encoder {
	if idx, ok := e.intern(spec); ok {
		e.pendingFS = idx
	}
	return e
}

// intern appends s to the reference table and returns its index, or
// ok=false if the table is already at LogMessageStringCapacity.
func (e *Encoder) intern(s string) (byte, bool) {
	if e.Truncated || len(e.refs) >= cap(e.refs) {
		e.Truncated = true
		return 0, false
	}
	idx := byte(len(e.refs))
	e.refs = append(e.refs, s)
	return idx, true
}

// ensure reserves n bytes in buf. When they don't fit it marks the
// encoder truncated and writes the EndOfTruncatedMessage sentinel if at
// least one byte remains. Once truncated, it refuses every later
// reservation. Returns false when the caller must abandon the append.
func (e *Encoder) ensure(n int) bool {
	if e.Truncated {
		return false
	}
	if len(e.buf)+n <= cap(e.buf) {
		return true
	}
	e.Truncated = true
	if len(e.buf) < cap(e.buf) {
		e.buf = append(e.buf, byte(TagEndOfTruncatedMessage))
	}
	return false
}

// writeTag writes the tag byte, consuming any pending format spec set via
// WithFormat. Callers reserve the tag's own byte as part of their value
// size budget via ensure before calling this.
func (e *Encoder) writeTag(tag Tag) {
	if e.pendingFS != noFormat {
		e.buf = append(e.buf, byte(tag|FormatFlag), e.pendingFS)
		e.pendingFS = noFormat
		return
	}
	e.buf = append(e.buf, byte(tag))
}

func (e *Encoder) formatOverhead() int {
	if e.pendingFS != noFormat {
		return 1
	}
	return 0
}

// AppendBool appends a boolean argument.
func (e *Encoder) AppendBool(v bool) bool {
	if !e.ensure(1 + e.formatOverhead() + 1) {
		return false
	}
	e.writeTag(TagBool)
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
	return true
}

func (e *Encoder) appendFixed(tag Tag, size int, write func([]byte)) bool {
	if !e.ensure(1 + e.formatOverhead() + size) {
		return false
	}
	e.writeTag(tag)
	start := len(e.buf)
	e.buf = e.buf[:start+size]
	write(e.buf[start : start+size])
	return true
}

func (e *Encoder) AppendU8(v uint8) bool { return e.appendFixed(TagU8, 1, func(b []byte) { b[0] = v }) }
func (e *Encoder) AppendI8(v int8) bool {
	return e.appendFixed(TagI8, 1, func(b []byte) { b[0] = byte(v) })
}
func (e *Encoder) AppendChar(v rune) bool {
	return e.appendFixed(TagChar, 4, func(b []byte) { binary.LittleEndian.PutUint32(b, uint32(v)) })
}
func (e *Encoder) AppendI16(v int16) bool {
	return e.appendFixed(TagI16, 2, func(b []byte) { binary.LittleEndian.PutUint16(b, uint16(v)) })
}
func (e *Encoder) AppendU16(v uint16) bool {
	return e.appendFixed(TagU16, 2, func(b []byte) { binary.LittleEndian.PutUint16(b, v) })
}
func (e *Encoder) AppendI32(v int32) bool {
	return e.appendFixed(TagI32, 4, func(b []byte) { binary.LittleEndian.PutUint32(b, uint32(v)) })
}
func (e *Encoder) AppendU32(v uint32) bool {
	return e.appendFixed(TagU32, 4, func(b []byte) { binary.LittleEndian.PutUint32(b, v) })
}
func (e *Encoder) AppendI64(v int64) bool {
	return e.appendFixed(TagI64, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, uint64(v)) })
}
func (e *Encoder) AppendU64(v uint64) bool {
	return e.appendFixed(TagU64, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, v) })
}
func (e *Encoder) AppendF32(v float32) bool {
	return e.appendFixed(TagF32, 4, func(b []byte) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) })
}
func (e *Encoder) AppendF64(v float64) bool {
	return e.appendFixed(TagF64, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) })
}
func (e *Encoder) AppendIntPtr(v int64) bool {
	return e.appendFixed(TagIntPtr, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, uint64(v)) })
}
func (e *Encoder) AppendUintPtr(v uint64) bool {
	return e.appendFixed(TagUintPtr, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, v) })
}

// AppendDecimal appends a fixed-point Decimal argument.
func (e *Encoder) AppendDecimal(v Decimal) bool {
	return e.appendFixed(TagDecimal, 9, func(b []byte) {
		binary.LittleEndian.PutUint64(b[:8], uint64(v.Unscaled))
		b[8] = v.Scale
	})
}

// AppendDateTime appends a full date-time argument (UnixNano).
func (e *Encoder) AppendDateTime(v time.Time) bool {
	return e.appendFixed(TagDateTime, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, uint64(v.UnixNano())) })
}

// AppendTimeSpan appends a duration argument.
func (e *Encoder) AppendTimeSpan(v time.Duration) bool {
	return e.appendFixed(TagTimeSpan, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, uint64(int64(v))) })
}

// AppendDateOnly appends just the date portion of v (time-of-day dropped).
func (e *Encoder) AppendDateOnly(v time.Time) bool {
	d := time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	return e.appendFixed(TagDateOnly, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, uint64(d.Unix())) })
}

// AppendTimeOnly appends just the time-of-day portion of v (date dropped).
func (e *Encoder) AppendTimeOnly(v time.Time) bool {
	ns := time.Duration(v.Hour())*time.Hour + time.Duration(v.Minute())*time.Minute +
		time.Duration(v.Second())*time.Second + time.Duration(v.Nanosecond())
	return e.appendFixed(TagTimeOnly, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, uint64(ns)) })
}

// AppendGUID appends a 128-bit GUID argument.
func (e *Encoder) AppendGUID(v uuid.UUID) bool {
	return e.appendFixed(TagGUID, 16, func(b []byte) { copy(b, v[:]) })
}

// AppendString interns s into the reference table and writes a one-byte
// index into the stream. If the table is full the argument is dropped
// (Truncated is set) rather than growing.
func (e *Encoder) AppendString(s string) bool {
	idx, ok := e.intern(s)
	if !ok {
		return false
	}
	if !e.ensure(1 + e.formatOverhead() + 1) {
		return false
	}
	e.writeTag(TagString)
	e.buf = append(e.buf, idx)
	return true
}

// AppendStringSpan writes s inline as UTF-16 code units, as the
// source spec's StringSpan element does, rather than through the
// reference table.
func (e *Encoder) AppendStringSpan(s string) bool {
	encoded, _, err := transform.String(utf16LE.NewEncoder(), s)
	if err != nil {
		return false
	}
	units := int32(len(encoded) / 2)
	if !e.ensure(1+e.formatOverhead()+4+len(encoded)) {
		return false
	}
	e.writeTag(TagStringSpan)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(units))
	e.buf = append(e.buf, lenBuf[:]...)
	e.buf = append(e.buf, encoded...)
	return true
}

// AppendUtf8StringSpan writes b inline as raw UTF-8 bytes.
func (e *Encoder) AppendUtf8StringSpan(b []byte) bool {
	if !e.ensure(1 + e.formatOverhead() + 4 + len(b)) {
		return false
	}
	e.writeTag(TagUtf8StringSpan)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
	e.buf = append(e.buf, lenBuf[:]...)
	e.buf = append(e.buf, b...)
	return true
}

// AppendEnum appends an enum argument: a compact type handle plus its
// unsigned numeric value. The handle is resolved back to a type name by
// package typehandle at format time, never by reflection in the stream.
func (e *Encoder) AppendEnum(handle TypeHandle, value uint64) bool {
	return e.appendFixed(TagEnum, 12, func(b []byte) {
		binary.LittleEndian.PutUint32(b[:4], uint32(handle))
		binary.LittleEndian.PutUint64(b[4:], value)
	})
}

// AppendUnmanaged appends an inline value blob of known size tagged with
// a type handle, for value types the encoder has no dedicated tag for.
func (e *Encoder) AppendUnmanaged(handle TypeHandle, blob []byte) bool {
	if !e.ensure(1 + e.formatOverhead() + 4 + 4 + len(blob)) {
		return false
	}
	e.writeTag(TagUnmanaged)
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[:4], uint32(handle))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(blob)))
	e.buf = append(e.buf, hdr[:]...)
	e.buf = append(e.buf, blob...)
	return true
}

// AppendKeyString marks the next appended argument as the value of a
// structured key/value pair named key. It interns key exactly like a
// String argument.
func (e *Encoder) AppendKeyString(key string) bool {
	idx, ok := e.intern(key)
	if !ok {
		return false
	}
	if !e.ensure(2) {
		return false
	}
	e.buf = append(e.buf, byte(TagKeyString), idx)
	return true
}

// AppendNull appends an explicit null argument.
func (e *Encoder) AppendNull() bool {
	if !e.ensure(1 + e.formatOverhead()) {
		return false
	}
	e.writeTag(TagNull)
	return true
}
