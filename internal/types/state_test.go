package types

import (
	"errors"
	"testing"
)

func TestState(t *testing.T) {
	s := NewState()
	s.Write8(0x42)
	s.Write16(0xBEEF)
	s.WriteBool(true)
	s.Write64(0x0123456789ABCDEF)
	s.WriteData([]byte{1, 2, 3})

	r := StateFromBytes(s.Bytes())
	if v := r.Read8(); v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02X", v)
	}
	if v := r.Read16(); v != 0xBEEF {
		t.Errorf("expected 0xBEEF, got 0x%04X", v)
	}
	if !r.ReadBool() {
		t.Errorf("expected true, got false")
	}
	if v := r.Read64(); v != 0x0123456789ABCDEF {
		t.Errorf("expected 0x0123456789ABCDEF, got 0x%016X", v)
	}
	p := make([]byte, 3)
	r.ReadData(p)
	if p[0] != 1 || p[2] != 3 {
		t.Errorf("unexpected data %v", p)
	}
	if r.Err() != nil {
		t.Errorf("expected no error, got %v", r.Err())
	}

	// reading past the end must not panic
	r.Read32()
	if !errors.Is(r.Err(), ErrShortState) {
		t.Errorf("expected ErrShortState, got %v", r.Err())
	}
}
