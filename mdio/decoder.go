package mdio

import (
	"log/slog"

	"github.com/soypat/bitbang"
	"github.com/soypat/bitbang/internal"
	"github.com/soypat/bitbang/phy"
)

// Counter value of a decoder that lost frame sync and waits for a preamble.
const awaitingPreamble = -1

// Config configures a [Decoder].
type Config struct {
	// Device is the management device frames are addressed to. When nil the
	// decoder answers from its built-in [RegisterFile].
	Device phy.MDIOBus
	// Default is the value read when Device rejects a read, for instance
	// because no PHY sits at the addressed PHY address.
	Default uint16
	Logger  *slog.Logger
}

// Decoder is the PHY side of a bit-banged MDIO interface. Each call to
// [Decoder.Update] is one write of the management control register; only
// rising clock edges advance the frame.
//
// The decoder accumulates the last 32 bits seen in a wrapping shift
// register. 32 consecutive ones re-arm the bit counter so the decoder can
// sync to a host that starts mid-stream. The counter then counts the 16
// header bits down to 16, where the header decides whether the frame is a
// read, a write or ignored, and the 16 data bits down to 0.
type Decoder struct {
	dev  phy.MDIOBus
	dflt uint16
	regs RegisterFile

	acc     internal.ShiftReg[uint32]
	dataOut internal.ShiftReg[uint16]
	counter int8
	state   State
	lastClk bool
	phyAddr uint8
	regAddr uint8

	vld bitbang.Validator
	logger
}

// NewDecoder returns a decoder waiting for a preamble.
func NewDecoder(cfg Config) *Decoder {
	var d Decoder
	d.Configure(cfg)
	return &d
}

// Configure attaches the decoder to a device and resets it.
func (d *Decoder) Configure(cfg Config) {
	d.dev = cfg.Device
	d.dflt = cfg.Default
	d.logger.log = cfg.Logger
	d.Reset()
}

// Reset drops any frame in flight and restores the built-in register file.
func (d *Decoder) Reset() {
	d.acc.Reset()
	d.dataOut.Reset()
	d.counter = awaitingPreamble
	d.state = StateIdle
	d.lastClk = false
	d.phyAddr = 0
	d.regAddr = 0
	d.regs.Reset()
}

// Update processes one write of the control register. st is the current
// status register value; the returned status differs from st at most in
// [StatusDataIn].
func (d *Decoder) Update(ctl Control, st Status) Status {
	clk := ctl&ControlClock != 0
	if bitbang.EdgeOf(d.lastClk, clk) == bitbang.EdgeRising {
		st = d.risingEdge(ctl, st)
	}
	d.lastClk = clk
	return st
}

func (d *Decoder) risingEdge(ctl Control, st Status) Status {
	bit := ctl&ControlDataOut != 0 && ctl&ControlOutputEnable != 0
	d.acc.ShiftIn(bit)
	if d.acc.Value() == preamble {
		if d.counter != bitsPreamble-1 {
			d.trace("mdio:sync", slog.Int("counter", int(d.counter)))
		}
		d.counter = bitsPreamble
		d.state = StateIdle
	}

	if d.counter == bitsHeader {
		d.decodeHeader(Header(d.acc.Value()))
	}

	if d.counter >= 0 && d.counter < bitsHeader && d.state == StateReading {
		out, _ := d.dataOut.PopHigh()
		st &^= StatusDataIn
		if out {
			st |= StatusDataIn
		}
	}

	if d.counter == 0 {
		if d.state == StateWriting {
			d.commit(uint16(d.acc.Value()))
		}
		d.state = StateIdle
	}
	if d.counter > awaitingPreamble {
		d.counter--
	}
	if d.logenabled(internal.LevelTrace) {
		d.trace("mdio:edge",
			slog.Bool("in", bit),
			slog.Bool("out", st&StatusDataIn != 0),
			slog.Int("counter", int(d.counter)),
			slog.String("state", d.state.String()),
		)
	}
	return st
}

func (d *Decoder) decodeHeader(h Header) {
	d.vld.ResetErr()
	h.Validate(&d.vld)
	if err := d.vld.Err(); err != nil {
		d.state = StateIdle
		d.debug("mdio:ignore-frame", slog.Uint64("hdr", uint64(h)), slog.String("err", err.Error()))
		return
	}
	d.phyAddr = h.PHYAddr()
	d.regAddr = h.RegAddr()
	if h.Op() == OpWrite {
		d.state = StateWriting
		return
	}
	d.state = StateReading
	d.dataOut.Load(d.read(), 16)
}

func (d *Decoder) device() phy.MDIOBus {
	if d.dev == nil {
		return &d.regs
	}
	return d.dev
}

func (d *Decoder) read() uint16 {
	v, err := d.device().Read(d.phyAddr, 0, uint16(d.regAddr))
	if err != nil {
		d.debug("mdio:read-default", slog.Uint64("phy", uint64(d.phyAddr)), slog.Uint64("reg", uint64(d.regAddr)), slog.String("err", err.Error()))
		v = d.dflt
	} else {
		d.debug("mdio:read", slog.Uint64("phy", uint64(d.phyAddr)), slog.Uint64("reg", uint64(d.regAddr)), slog.Uint64("val", uint64(v)))
	}
	return v
}

func (d *Decoder) commit(v uint16) {
	err := d.device().Write(d.phyAddr, 0, uint16(d.regAddr), v)
	if err != nil {
		d.debug("mdio:write-dropped", slog.Uint64("phy", uint64(d.phyAddr)), slog.Uint64("reg", uint64(d.regAddr)), slog.String("err", err.Error()))
		return
	}
	d.debug("mdio:write", slog.Uint64("phy", uint64(d.phyAddr)), slog.Uint64("reg", uint64(d.regAddr)), slog.Uint64("val", uint64(v)))
}

// State returns the decode state of the current frame.
func (d *Decoder) State() State { return d.state }

// Counter returns the bit counter: 31 right after a preamble, 16 when the
// header is decoded and 0 on the last data bit. It is -1 while the decoder
// waits for a preamble.
func (d *Decoder) Counter() int { return int(d.counter) }

// Addressed returns the PHY and register address of the last valid header.
func (d *Decoder) Addressed() (phyAddr, regAddr uint8) { return d.phyAddr, d.regAddr }

// RegisterFile returns the built-in registers served when no device is configured.
func (d *Decoder) RegisterFile() *RegisterFile { return &d.regs }
