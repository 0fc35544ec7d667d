package internal

import (
	"math/rand"
	"testing"
)

func TestShiftRegWindow(t *testing.T) {
	var r ShiftReg[uint32]
	for i := 0; i < 40; i++ {
		r.ShiftIn(true)
	}
	if r.Value() != 0xffffffff || r.Len() != 32 {
		t.Fatalf("got %#x/%d; want 0xffffffff/32", r.Value(), r.Len())
	}
	r.ShiftIn(false)
	if r.Value() != 0xfffffffe {
		t.Errorf("got %#x; want 0xfffffffe", r.Value())
	}
}

func TestShiftRegPop(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 64; i++ {
		n := 1 + rng.Intn(16)
		v := uint16(rng.Uint32())
		var r ShiftReg[uint16]
		r.Load(v, n)
		var lsb, msb uint16
		for k := 0; k < n; k++ {
			bit, ok := r.PopLow()
			if !ok {
				t.Fatalf("register empty after %d pops; want %d", k, n)
			}
			lsb |= uint16(b2u8(bit)) << k
		}
		if _, ok := r.PopLow(); ok {
			t.Fatal("pop from empty register succeeded")
		}
		r.Load(v, n)
		for k := 0; k < n; k++ {
			bit, _ := r.PopHigh()
			msb = msb<<1 | uint16(b2u8(bit))
		}
		want := v & lowMask[uint16](n)
		if lsb != want || msb != want {
			t.Errorf("n=%d: got lsb=%#x msb=%#x; want %#x", n, lsb, msb, want)
		}
	}
}

func TestWidth(t *testing.T) {
	if Width[uint8]() != 8 || Width[uint16]() != 16 || Width[uint32]() != 32 || Width[uint64]() != 64 {
		t.Error("bad width")
	}
}
