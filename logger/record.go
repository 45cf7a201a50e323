package logger

import (
	"reflect"
	"time"

	"github.com/kdevops/pulselog/record"
)

// RecordBuilder is the façade's producer-side handle on one in-flight
// buffer (spec.md §6 RecordBuilder). Every Append* call forwards to the
// underlying wire.Encoder; once the argument buffer or reference table
// fills up, further appends become silent no-ops and the record's
// Truncated flag is set — there is nothing for a caller to check or
// handle, by design (spec.md §7 EncodingOverflow).
//
// A RecordBuilder must not be used from more than one goroutine, and
// must not be retained past Submit or Discard.
type RecordBuilder struct {
	rec *record.Record
	mgr *Manager
}

// WithFormat attaches a format specifier to the next appended argument,
// mirroring wire.Encoder.WithFormat.
func (b *RecordBuilder) WithFormat(spec string) *RecordBuilder {
	b.rec.Enc.WithFormat(spec)
	return b
}

func (b *RecordBuilder) AppendBool(v bool) *RecordBuilder       { b.rec.Enc.AppendBool(v); return b }
func (b *RecordBuilder) AppendString(v string) *RecordBuilder   { b.rec.Enc.AppendString(v); return b }
func (b *RecordBuilder) AppendI64(v int64) *RecordBuilder       { b.rec.Enc.AppendI64(v); return b }
func (b *RecordBuilder) AppendU64(v uint64) *RecordBuilder      { b.rec.Enc.AppendU64(v); return b }
func (b *RecordBuilder) AppendI32(v int32) *RecordBuilder       { b.rec.Enc.AppendI32(v); return b }
func (b *RecordBuilder) AppendU32(v uint32) *RecordBuilder      { b.rec.Enc.AppendU32(v); return b }
func (b *RecordBuilder) AppendF64(v float64) *RecordBuilder     { b.rec.Enc.AppendF64(v); return b }
func (b *RecordBuilder) AppendF32(v float32) *RecordBuilder     { b.rec.Enc.AppendF32(v); return b }
func (b *RecordBuilder) AppendDateTime(v time.Time) *RecordBuilder {
	b.rec.Enc.AppendDateTime(v)
	return b
}
func (b *RecordBuilder) AppendTimeSpan(v time.Duration) *RecordBuilder {
	b.rec.Enc.AppendTimeSpan(v)
	return b
}
func (b *RecordBuilder) AppendNull() *RecordBuilder { b.rec.Enc.AppendNull(); return b }

// AppendUtf8Span writes data inline as raw UTF-8 bytes rather than through
// the reference table (spec.md §6 append_utf8_span).
func (b *RecordBuilder) AppendUtf8Span(data []byte) *RecordBuilder {
	b.rec.Enc.AppendUtf8StringSpan(data)
	return b
}

// AppendUtf16Span writes s inline as UTF-16 code units (spec.md §6
// append_utf16_span — Go strings are UTF-8, so the conversion happens
// inside the encoder).
func (b *RecordBuilder) AppendUtf16Span(s string) *RecordBuilder {
	b.rec.Enc.AppendStringSpan(s)
	return b
}

// AppendEnum looks up v's type in the manager's type-handle registry
// (registering it on the spot if AutoRegisterEnums is on) and appends it
// as an Enum argument. v must be of a signed or unsigned integer kind; anything
// else appends Null instead of panicking, matching the "never let a log
// call panic" posture of the rest of this API.
func (b *RecordBuilder) AppendEnum(v any) *RecordBuilder {
	rv := reflect.ValueOf(v)
	var numeric uint64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		numeric = uint64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		numeric = rv.Uint()
	default:
		b.rec.Enc.AppendNull()
		return b
	}
	handle, ok := b.mgr.types.Handle(rv.Type())
	if !ok {
		b.rec.Enc.AppendNull()
		return b
	}
	b.rec.Enc.AppendEnum(handle, numeric)
	return b
}

// AppendKeyValue marks the next argument as belonging to key, then
// appends value using the same dispatch AppendEnum/AppendString/etc use
// (spec.md §6 append_key_value). Unsupported value kinds append Null.
func (b *RecordBuilder) AppendKeyValue(key string, value any) *RecordBuilder {
	b.rec.Enc.AppendKeyString(key)
	switch v := value.(type) {
	case bool:
		return b.AppendBool(v)
	case string:
		return b.AppendString(v)
	case int:
		return b.AppendI64(int64(v))
	case int32:
		return b.AppendI32(v)
	case int64:
		return b.AppendI64(v)
	case uint32:
		return b.AppendU32(v)
	case uint64:
		return b.AppendU64(v)
	case float32:
		return b.AppendF32(v)
	case float64:
		return b.AppendF64(v)
	case time.Time:
		return b.AppendDateTime(v)
	case time.Duration:
		return b.AppendTimeSpan(v)
	case nil:
		return b.AppendNull()
	default:
		return b.AppendEnum(v)
	}
}

// Truncated reports whether the wire stream has been marked truncated by
// an overflow, i.e. whether the formatter will append the
// TruncatedMessageSuffix to this record.
func (b *RecordBuilder) Truncated() bool { return b.rec.Truncated() }

// Submit enqueues the record for the worker and returns control of the
// buffer to the library; the caller must not use b again afterward.
func (b *RecordBuilder) Submit() {
	b.mgr.queue.Push(b.rec)
}

// Discard releases the buffer back to the pool without ever queuing it,
// for call sites that acquire a record speculatively (e.g. to probe
// Truncated()) and decide not to log after all.
func (b *RecordBuilder) Discard() {
	b.rec.Release()
}
