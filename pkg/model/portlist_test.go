package model

import (
	"bytes"
	"testing"
)

func TestPortList_BitOrder(t *testing.T) {
	// 0xA0 0x00 = bits 1 and 3 set (MSB first, 1-based)
	p := PortListFromBytes([]byte{0xA0, 0x00})

	want := []int{1, 3}
	got := p.Ports()
	if len(got) != len(want) {
		t.Fatalf("Ports() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ports()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if !p.IsSet(1) || !p.IsSet(3) {
		t.Error("ports 1 and 3 should be set")
	}
	if p.IsSet(2) || p.IsSet(8) || p.IsSet(9) || p.IsSet(16) {
		t.Error("unexpected ports set")
	}
}

func TestPortList_RoundTrip(t *testing.T) {
	// encode(parse(B)) == B, trailing zero bytes preserved
	raw := []byte{0x80, 0x00, 0x01, 0x00}
	p := PortListFromBytes(raw)
	if !bytes.Equal(p.Bytes(), raw) {
		t.Errorf("Bytes() = %x, want %x", p.Bytes(), raw)
	}

	// parse(encode(S)) == S
	q := NewPortList(0)
	for _, n := range []int{1, 3, 24, 25} {
		q.Set(n)
	}
	got := q.Ports()
	want := []int{1, 3, 24, 25}
	if len(got) != len(want) {
		t.Fatalf("Ports() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ports()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPortList_Grow(t *testing.T) {
	p := NewPortList(0)
	if p.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", p.Len())
	}
	if got := p.Ports(); got != nil {
		t.Errorf("empty list Ports() = %v, want nil", got)
	}

	p.Set(9) // needs ceil(9/8) = 2 bytes
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
	if !bytes.Equal(p.Bytes(), []byte{0x00, 0x80}) {
		t.Errorf("Bytes() = %x, want 0080", p.Bytes())
	}
}

func TestPortList_ClearIdempotent(t *testing.T) {
	p := PortListFromBytes([]byte{0x80, 0x00})

	p.Clear(1)
	if !bytes.Equal(p.Bytes(), []byte{0x00, 0x00}) {
		t.Errorf("Bytes() = %x, want 0000", p.Bytes())
	}

	// clearing an already-clear bit changes nothing, width kept
	p.Clear(1)
	p.Clear(99)
	if !bytes.Equal(p.Bytes(), []byte{0x00, 0x00}) {
		t.Errorf("Bytes() = %x, want 0000", p.Bytes())
	}
}

func TestPortList_SetClearBounds(t *testing.T) {
	p := NewPortList(1)
	p.Set(0)
	p.Set(-3)
	if len(p.Ports()) != 0 {
		t.Error("out of range Set should be ignored")
	}
	if p.IsSet(0) || p.IsSet(-1) {
		t.Error("out of range IsSet should be false")
	}
}
