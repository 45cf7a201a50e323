package appender

import (
	"bytes"
	"errors"
	"testing"
)

type erroringAppender struct{ err error }

func (e erroringAppender) Write(LoggedMessage) error { return e.err }
func (e erroringAppender) Flush() error              { return e.err }
func (e erroringAppender) Close() error              { return e.err }
func (e erroringAppender) SetEncoding(string) error  { return e.err }

func TestMultiWritesEveryChildAndAggregatesErrors(t *testing.T) {
	var buf bytes.Buffer
	ok := WriterAppender{W: &buf}
	bad := erroringAppender{err: errors.New("sink down")}

	m := NewMulti(ok, bad, ok)
	err := m.Write(LoggedMessage{Text: []byte("hello")})
	if err == nil {
		t.Fatalf("expected aggregated error from the failing child")
	}
	if buf.String() != "hellohello" {
		t.Errorf("expected both healthy children to receive the write, got %q", buf.String())
	}
}

func TestMultiChildrenReturnsOriginalSlice(t *testing.T) {
	a, b := WriterAppender{}, WriterAppender{}
	m := NewMulti(a, b)
	if len(m.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(m.Children()))
	}
}
