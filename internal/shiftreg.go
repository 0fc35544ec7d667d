package internal

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// ShiftReg is a fixed-width shift register backed by an unsigned integer.
// Shifting in past the top of T discards the oldest bits: the register then
// holds a sliding window of the most recent bits, which is relied upon by
// preamble detection.
type ShiftReg[T constraints.Unsigned] struct {
	val T
	n   uint8
}

// Width returns the number of bits a ShiftReg[T] can hold.
func Width[T constraints.Unsigned]() int {
	return bits.Len64(uint64(^T(0)))
}

// Reset empties the register.
func (r *ShiftReg[T]) Reset() { *r = ShiftReg[T]{} }

// Load replaces the register contents with the n low bits of v.
func (r *ShiftReg[T]) Load(v T, n int) {
	if n < 0 || n > Width[T]() {
		panic("shift register load length out of range")
	}
	r.val = v & lowMask[T](n)
	r.n = uint8(n)
}

// Value returns the register contents.
func (r *ShiftReg[T]) Value() T { return r.val }

// Len returns how many valid bits the register holds.
func (r *ShiftReg[T]) Len() int { return int(r.n) }

// ShiftIn shifts bit into the least significant position.
func (r *ShiftReg[T]) ShiftIn(bit bool) {
	r.val = r.val<<1 | T(b2u8(bit))
	if int(r.n) < Width[T]() {
		r.n++
	}
}

// PopLow removes and returns the least significant bit. ok is false when the register is empty.
func (r *ShiftReg[T]) PopLow() (bit, ok bool) {
	if r.n == 0 {
		return false, false
	}
	bit = r.val&1 != 0
	r.val >>= 1
	r.n--
	return bit, true
}

// PopHigh removes and returns the most significant valid bit, that is bit
// Len()-1. ok is false when the register is empty.
func (r *ShiftReg[T]) PopHigh() (bit, ok bool) {
	if r.n == 0 {
		return false, false
	}
	r.n--
	bit = (r.val>>r.n)&1 != 0
	r.val &= lowMask[T](int(r.n))
	return bit, true
}

func lowMask[T constraints.Unsigned](n int) T {
	if n >= Width[T]() {
		return ^T(0)
	}
	return T(1)<<n - 1
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
