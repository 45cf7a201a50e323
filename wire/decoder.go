package wire

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf16LEDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Arg is one decoded argument, handed to the Walk callback in stream
// order. Only the field matching Tag.kind() is meaningful; the rest are
// zero. Key is non-empty when the argument was preceded by a KeyString
// element, letting a KeyValue-mode formatter pick out exactly the
// structured pairs without tracking its own state machine.
type Arg struct {
	Tag        Tag
	Format     string
	Key        string
	Bool       bool
	I64        int64
	U64        uint64
	F64        float64
	Str        string
	Bytes      []byte
	Time       time.Time
	Duration   time.Duration
	Decimal    Decimal
	GUID       uuid.UUID
	TypeHandle TypeHandle
	Null       bool
	Truncated  bool
}

// Walk decodes buf left-to-right, calling visit once per argument in
// encounter order. refs is the owning record's reference table, used to
// resolve String and KeyString indices and FormatFlag format specifiers.
// Walk never looks ahead past the header of the element it is currently
// decoding, matching the self-describing-stream invariant in spec.md §3.
func Walk(buf []byte, refs []any, visit func(Arg)) {
	pos := 0
	pendingKey := ""
	for pos < len(buf) {
		rawTag := Tag(buf[pos])
		pos++
		tag := rawTag.kind()
		format := ""
		if rawTag.hasFormat() {
			if pos >= len(buf) {
				return
			}
			if idx := int(buf[pos]); idx < len(refs) {
				if s, ok := refs[idx].(string); ok {
					format = s
				}
			}
			pos++
		}

		a := Arg{Tag: tag, Format: format, Key: pendingKey}
		pendingKey = ""

		switch tag {
		case TagBool:
			if pos >= len(buf) {
				return
			}
			a.Bool = buf[pos] != 0
			pos++
		case TagU8:
			if pos >= len(buf) {
				return
			}
			a.U64 = uint64(buf[pos])
			pos++
		case TagI8:
			if pos >= len(buf) {
				return
			}
			a.I64 = int64(int8(buf[pos]))
			pos++
		case TagChar:
			if pos+4 > len(buf) {
				return
			}
			a.I64 = int64(binary.LittleEndian.Uint32(buf[pos : pos+4]))
			pos += 4
		case TagI16:
			if pos+2 > len(buf) {
				return
			}
			a.I64 = int64(int16(binary.LittleEndian.Uint16(buf[pos : pos+2])))
			pos += 2
		case TagU16:
			if pos+2 > len(buf) {
				return
			}
			a.U64 = uint64(binary.LittleEndian.Uint16(buf[pos : pos+2]))
			pos += 2
		case TagI32:
			if pos+4 > len(buf) {
				return
			}
			a.I64 = int64(int32(binary.LittleEndian.Uint32(buf[pos : pos+4])))
			pos += 4
		case TagU32:
			if pos+4 > len(buf) {
				return
			}
			a.U64 = uint64(binary.LittleEndian.Uint32(buf[pos : pos+4]))
			pos += 4
		case TagI64, TagIntPtr:
			if pos+8 > len(buf) {
				return
			}
			a.I64 = int64(binary.LittleEndian.Uint64(buf[pos : pos+8]))
			pos += 8
		case TagU64, TagUintPtr:
			if pos+8 > len(buf) {
				return
			}
			a.U64 = binary.LittleEndian.Uint64(buf[pos : pos+8])
			pos += 8
		case TagF32:
			if pos+4 > len(buf) {
				return
			}
			a.F64 = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[pos : pos+4])))
			pos += 4
		case TagF64:
			if pos+8 > len(buf) {
				return
			}
			a.F64 = math.Float64frombits(binary.LittleEndian.Uint64(buf[pos : pos+8]))
			pos += 8
		case TagDecimal:
			if pos+9 > len(buf) {
				return
			}
			a.Decimal = Decimal{
				Unscaled: int64(binary.LittleEndian.Uint64(buf[pos : pos+8])),
				Scale:    buf[pos+8],
			}
			pos += 9
		case TagDateTime, TagDateOnly:
			if pos+8 > len(buf) {
				return
			}
			ns := int64(binary.LittleEndian.Uint64(buf[pos : pos+8]))
			if tag == TagDateOnly {
				a.Time = time.Unix(ns, 0).UTC()
			} else {
				a.Time = time.Unix(0, ns)
			}
			pos += 8
		case TagTimeSpan:
			if pos+8 > len(buf) {
				return
			}
			a.Duration = time.Duration(int64(binary.LittleEndian.Uint64(buf[pos : pos+8])))
			pos += 8
		case TagTimeOnly:
			if pos+8 > len(buf) {
				return
			}
			a.Duration = time.Duration(int64(binary.LittleEndian.Uint64(buf[pos : pos+8])))
			pos += 8
		case TagGUID:
			if pos+16 > len(buf) {
				return
			}
			copy(a.GUID[:], buf[pos:pos+16])
			pos += 16
		case TagString:
			if pos >= len(buf) {
				return
			}
			idx := int(buf[pos])
			pos++
			if idx < len(refs) {
				if s, ok := refs[idx].(string); ok {
					a.Str = s
				}
			}
		case TagStringSpan:
			if pos+4 > len(buf) {
				return
			}
			units := int(binary.LittleEndian.Uint32(buf[pos : pos+4]))
			pos += 4
			byteLen := units * 2
			if pos+byteLen > len(buf) {
				return
			}
			decoded, _, err := transform.Bytes(utf16LEDecoder.NewDecoder(), buf[pos:pos+byteLen])
			if err == nil {
				a.Str = string(decoded)
			}
			pos += byteLen
		case TagUtf8StringSpan:
			if pos+4 > len(buf) {
				return
			}
			n := int(binary.LittleEndian.Uint32(buf[pos : pos+4]))
			pos += 4
			if pos+n > len(buf) {
				return
			}
			a.Str = string(buf[pos : pos+n])
			pos += n
		case TagEnum:
			if pos+12 > len(buf) {
				return
			}
			a.TypeHandle = TypeHandle(binary.LittleEndian.Uint32(buf[pos : pos+4]))
			a.U64 = binary.LittleEndian.Uint64(buf[pos+4 : pos+12])
			pos += 12
		case TagUnmanaged:
			if pos+8 > len(buf) {
				return
			}
			a.TypeHandle = TypeHandle(binary.LittleEndian.Uint32(buf[pos : pos+4]))
			n := int(binary.LittleEndian.Uint32(buf[pos+4 : pos+8]))
			pos += 8
			if pos+n > len(buf) {
				return
			}
			a.Bytes = buf[pos : pos+n]
			pos += n
		case TagKeyString:
			if pos >= len(buf) {
				return
			}
			idx := int(buf[pos])
			pos++
			if idx < len(refs) {
				if s, ok := refs[idx].(string); ok {
					pendingKey = s
				}
			}
			continue // KeyString itself is not a visited argument
		case TagNull:
			a.Null = true
		case TagEndOfTruncatedMessage:
			a.Truncated = true
			visit(a)
			return
		default:
			return
		}

		visit(a)
	}
}
