package wire

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRoundTripPrimitives(t *testing.T) {
	buf := make([]byte, 0, 128)
	refs := make([]any, 0, 32)
	enc := NewEncoder(buf, refs)

	enc.AppendBool(true)
	enc.AppendI32(-42)
	enc.AppendU64(123456789)
	enc.AppendF64(3.5)
	enc.AppendString("hello")
	g := uuid.New()
	enc.AppendGUID(g)

	if enc.Truncated {
		t.Fatalf("unexpected truncation")
	}

	var got []Arg
	Walk(enc.Bytes(), enc.Refs(), func(a Arg) { got = append(got, a) })

	if len(got) != 6 {
		t.Fatalf("expected 6 args, got %d", len(got))
	}
	if !got[0].Bool {
		t.Errorf("bool mismatch")
	}
	if got[1].I64 != -42 {
		t.Errorf("i32 mismatch: %d", got[1].I64)
	}
	if got[2].U64 != 123456789 {
		t.Errorf("u64 mismatch: %d", got[2].U64)
	}
	if got[3].F64 != 3.5 {
		t.Errorf("f64 mismatch: %v", got[3].F64)
	}
	if got[4].Str != "hello" {
		t.Errorf("string mismatch: %q", got[4].Str)
	}
	if got[5].GUID != g {
		t.Errorf("guid mismatch")
	}
}

func TestRoundTripStringSpanUTF16(t *testing.T) {
	enc := NewEncoder(make([]byte, 0, 128), make([]any, 0, 8))
	enc.AppendStringSpan("héllo wörld")

	var got Arg
	Walk(enc.Bytes(), enc.Refs(), func(a Arg) { got = a })
	if got.Str != "héllo wörld" {
		t.Errorf("utf16 span roundtrip mismatch: %q", got.Str)
	}
}

func TestKeyStringTagsNextArgument(t *testing.T) {
	enc := NewEncoder(make([]byte, 0, 64), make([]any, 0, 8))
	enc.AppendKeyString("NumSeconds")
	enc.AppendI64(86400)

	var got []Arg
	Walk(enc.Bytes(), enc.Refs(), func(a Arg) { got = append(got, a) })
	if len(got) != 1 {
		t.Fatalf("expected KeyString to not surface as its own argument, got %d args", len(got))
	}
	if got[0].Key != "NumSeconds" || got[0].I64 != 86400 {
		t.Errorf("key/value mismatch: %+v", got[0])
	}
}

func TestFormatFlagCarriesSpec(t *testing.T) {
	enc := NewEncoder(make([]byte, 0, 64), make([]any, 0, 8))
	enc.WithFormat("x2").AppendI32(255)

	var got Arg
	Walk(enc.Bytes(), enc.Refs(), func(a Arg) { got = a })
	if got.Format != "x2" {
		t.Errorf("expected format spec x2, got %q", got.Format)
	}
	if got.I64 != 255 {
		t.Errorf("expected value 255, got %d", got.I64)
	}
}

func TestOverflowSetsTruncatedAndSentinel(t *testing.T) {
	enc := NewEncoder(make([]byte, 0, 4), make([]any, 0, 4))
	for i := 0; i < 10; i++ {
		enc.AppendI64(int64(i))
	}
	if !enc.Truncated {
		t.Fatalf("expected Truncated after overflow")
	}
	b := enc.Bytes()
	if len(b) == 0 || Tag(b[len(b)-1]) != TagEndOfTruncatedMessage {
		t.Errorf("expected the stream to end with the EndOfTruncatedMessage sentinel, got %v", b)
	}
}

func TestReferenceTableOverflowDropsStrings(t *testing.T) {
	enc := NewEncoder(make([]byte, 0, 4096), make([]any, 0, 2))
	enc.AppendString("a")
	enc.AppendString("b")
	ok := enc.AppendString("c")
	if ok {
		t.Fatalf("expected third string to be dropped once reference table is full")
	}
	if !enc.Truncated {
		t.Errorf("expected Truncated to be set on reference table overflow")
	}
}

func TestDecimalString(t *testing.T) {
	d := Decimal{Unscaled: 12345, Scale: 2}
	if got := d.String(); got != "123.45" {
		t.Errorf("expected 123.45, got %q", got)
	}
}

func TestTimeSpanRoundTrip(t *testing.T) {
	enc := NewEncoder(make([]byte, 0, 32), make([]any, 0, 4))
	enc.AppendTimeSpan(90 * time.Second)
	var got Arg
	Walk(enc.Bytes(), enc.Refs(), func(a Arg) { got = a })
	if got.Duration != 90*time.Second {
		t.Errorf("duration mismatch: %v", got.Duration)
	}
}
