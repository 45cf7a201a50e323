package typehandle

import (
	"reflect"
	"testing"
)

type sampleEnum int

func TestRegisterAndName(t *testing.T) {
	r := New(false)
	h := r.Register(reflect.TypeOf(sampleEnum(0)))
	name, ok := r.Name(h)
	if !ok || name != "typehandle.sampleEnum" {
		t.Fatalf("unexpected name %q ok=%v", name, ok)
	}
}

func TestHandleWithoutAutoRegisterFails(t *testing.T) {
	r := New(false)
	_, ok := r.Handle(reflect.TypeOf(sampleEnum(0)))
	if ok {
		t.Fatalf("expected unregistered type to fail without AutoRegisterEnums")
	}
}

func TestHandleWithAutoRegister(t *testing.T) {
	r := New(true)
	h1, ok := r.Handle(reflect.TypeOf(sampleEnum(0)))
	if !ok {
		t.Fatalf("expected auto-register to succeed")
	}
	h2, _ := r.Handle(reflect.TypeOf(sampleEnum(0)))
	if h1 != h2 {
		t.Errorf("expected stable handle across calls, got %d and %d", h1, h2)
	}
}
