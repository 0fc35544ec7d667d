// Package mdio implements both ends of a bit-banged IEEE 802.3 Clause 22
// management interface. [Decoder] is the PHY side: it rebuilds management
// frames from a control register that packs clock, output enable and data
// out, and answers reads on a data-in status bit. [Station] is the host side
// that generates the same frames.
//
// A frame is 32 preamble ones, a 16-bit header and 16 data bits:
//
//	PRE(32) ST(2)=01 OP(2) PHYAD(5) REGAD(5) TA(2) DATA(16)
package mdio

import (
	"errors"

	"github.com/soypat/bitbang"
)

//go:generate stringer -type=State,Op -linecomment -output stringers.go .

// Control is the word written to the management control register.
type Control uint8

const (
	ControlClock        Control = 1 << iota // MDC
	ControlOutputEnable                     // MDIO output enable
	ControlDataOut                          // MDIO output level
)

// Status is the word read back from the management status register.
type Status uint8

// StatusDataIn is the MDIO level driven by the PHY.
const StatusDataIn Status = 1 << 0

// State is the decode state of the frame in flight.
type State uint8

const (
	StateIdle    State = iota // idle
	StateReading              // reading
	StateWriting              // writing
)

// Op is the Clause 22 operation code of a frame header.
type Op uint8

const (
	opAddress Op = iota // address
	OpWrite             // write
	OpRead              // read
	opReadInc           // read-inc
)

const (
	frameStart = 0b01
	taWrite    = 0b10
	// preamble is the accumulator value after 32 consecutive ones.
	preamble = 0xffff_ffff

	bitsPreamble = 32
	bitsHeader   = 16
)

var (
	errBadStart      = errors.New("mdio: bad start of frame")
	errBadOp         = errors.New("mdio: unsupported opcode")
	errBadTurnaround = errors.New("mdio: bad turnaround")
)

// Header is the 16-bit header of a Clause 22 frame, start bits first.
type Header uint16

// NewHeader returns the header of a frame with the given operation. The
// turnaround field is set to what a station drives: 10 for writes and a
// released line, read as 00, for reads.
func NewHeader(op Op, phyAddr, regAddr uint8) Header {
	h := Header(frameStart)<<14 | Header(op&3)<<12 | Header(phyAddr&0x1f)<<7 | Header(regAddr&0x1f)<<2
	if op == OpWrite {
		h |= taWrite
	}
	return h
}

// Start returns the start of frame field, 01 for Clause 22.
func (h Header) Start() uint8 { return uint8(h>>14) & 3 }

// Op returns the operation code.
func (h Header) Op() Op { return Op(h>>12) & 3 }

// PHYAddr returns the 5-bit PHY address.
func (h Header) PHYAddr() uint8 { return uint8(h>>7) & 0x1f }

// RegAddr returns the 5-bit register address.
func (h Header) RegAddr() uint8 { return uint8(h>>2) & 0x1f }

// Turnaround returns the two turnaround bits as seen on the wire.
func (h Header) Turnaround() uint8 { return uint8(h) & 3 }

// Validate adds an error to v for every field preventing h from starting a
// read or write frame. A read turnaround only needs its second bit low
// since the first is undriven.
func (h Header) Validate(v *bitbang.Validator) {
	if h.Start() != frameStart {
		v.AddBitPosErr(14, 2, errBadStart)
	}
	switch h.Op() {
	case OpWrite:
		if h.Turnaround() != taWrite {
			v.AddBitPosErr(0, 2, errBadTurnaround)
		}
	case OpRead:
		if h.Turnaround()&1 != 0 {
			v.AddBitPosErr(0, 1, errBadTurnaround)
		}
	default:
		v.AddBitPosErr(12, 2, errBadOp)
	}
}
