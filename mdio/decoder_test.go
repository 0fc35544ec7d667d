package mdio_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/soypat/bitbang"
	"github.com/soypat/bitbang/internal/ltesto"
	"github.com/soypat/bitbang/mdio"
	"github.com/soypat/bitbang/phy"
)

// wire drives a decoder one clock cycle at a time.
type wire struct {
	dec *mdio.Decoder
	st  mdio.Status
}

func (w *wire) cycle(bit, drive bool) (in bool) {
	var ctl mdio.Control
	if drive {
		ctl |= mdio.ControlOutputEnable
	}
	if bit {
		ctl |= mdio.ControlDataOut
	}
	w.st = w.dec.Update(ctl, w.st)
	w.st = w.dec.Update(ctl|mdio.ControlClock, w.st)
	return w.st&mdio.StatusDataIn != 0
}

func (w *wire) preamble() {
	for i := 0; i < 32; i++ {
		w.cycle(true, true)
	}
}

// header sends h. Read headers leave the turnaround undriven.
func (w *wire) header(h mdio.Header) {
	for i := 15; i >= 0; i-- {
		drive := i >= 2 || h.Op() != mdio.OpRead
		w.cycle(h>>i&1 != 0, drive)
	}
}

func (w *wire) data(v uint16, drive bool) (rx uint16) {
	for i := 15; i >= 0; i-- {
		rx <<= 1
		if w.cycle(v>>i&1 != 0, drive) {
			rx |= 1
		}
	}
	return rx
}

func TestDecoderReadFrame(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 32; i++ {
		dev := ltesto.MDIORecorder{ReadValue: uint16(rng.Uint32())}
		w := wire{dec: mdio.NewDecoder(mdio.Config{Device: &dev})}
		phyAddr, regAddr := uint8(rng.Intn(32)), uint8(rng.Intn(32))
		w.preamble()
		w.header(mdio.NewHeader(mdio.OpRead, phyAddr, regAddr))
		if w.dec.State() != mdio.StateReading {
			t.Fatalf("got state %s after read header; want reading", w.dec.State())
		}
		got := w.data(0xffff, false)
		if len(dev.Accesses) != 1 {
			t.Fatalf("got %d device accesses; want 1", len(dev.Accesses))
		}
		acc := dev.Accesses[0]
		if acc.Write || acc.PHYAddr != phyAddr || acc.Reg != uint16(regAddr) || acc.DevAddr != 0 {
			t.Errorf("got access %+v; want read of %d/%d", acc, phyAddr, regAddr)
		}
		if got != dev.ReadValue {
			t.Errorf("got %#04x on data-in; want %#04x", got, dev.ReadValue)
		}
		if w.dec.State() != mdio.StateIdle || w.dec.Counter() != -1 {
			t.Errorf("got %s/%d after frame; want idle/-1", w.dec.State(), w.dec.Counter())
		}
	}
}

func TestDecoderWriteFrame(t *testing.T) {
	var dev ltesto.MDIORecorder
	w := wire{dec: mdio.NewDecoder(mdio.Config{Device: &dev})}
	w.preamble()
	w.header(mdio.NewHeader(mdio.OpWrite, 7, 4))
	if w.dec.State() != mdio.StateWriting {
		t.Fatalf("got state %s after write header; want writing", w.dec.State())
	}
	w.data(0xa55a, true)
	if len(dev.Accesses) != 1 {
		t.Fatalf("got %d device accesses; want 1", len(dev.Accesses))
	}
	want := ltesto.MDIOAccess{Write: true, PHYAddr: 7, Reg: 4, Value: 0xa55a}
	if dev.Accesses[0] != want {
		t.Errorf("got %+v; want %+v", dev.Accesses[0], want)
	}
	if phyAddr, regAddr := w.dec.Addressed(); phyAddr != 7 || regAddr != 4 {
		t.Errorf("got addressed %d/%d; want 7/4", phyAddr, regAddr)
	}
}

func TestDecoderBadStart(t *testing.T) {
	for _, start := range []uint16{0b00, 0b10, 0b11} {
		var dev ltesto.MDIORecorder
		w := wire{dec: mdio.NewDecoder(mdio.Config{Device: &dev})}
		h := mdio.NewHeader(mdio.OpRead, 1, 1)&0x3fff | mdio.Header(start<<14)
		w.preamble()
		w.header(h)
		if w.dec.State() != mdio.StateIdle {
			t.Errorf("start=%02b: got state %s; want idle", start, w.dec.State())
		}
		w.data(0, false)
		if len(dev.Accesses) != 0 {
			t.Errorf("start=%02b: got %d device accesses; want 0", start, len(dev.Accesses))
		}
	}
}

func TestDecoderBadTurnaround(t *testing.T) {
	var dev ltesto.MDIORecorder
	w := wire{dec: mdio.NewDecoder(mdio.Config{Device: &dev})}
	w.preamble()
	w.header(mdio.NewHeader(mdio.OpWrite, 1, 1) &^ 0b11) // Write with turnaround 00.
	w.data(0x1234, true)
	if len(dev.Accesses) != 0 {
		t.Errorf("got %d device accesses; want 0", len(dev.Accesses))
	}
}

func TestDecoderSyncMidStream(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var dev ltesto.MDIORecorder
	w := wire{dec: mdio.NewDecoder(mdio.Config{Device: &dev})}
	for i := 0; i < 100; i++ {
		w.cycle(rng.Intn(2) == 0, true)
	}
	w.cycle(false, true)
	// A long preamble keeps re-arming the counter.
	for i := 0; i < 45; i++ {
		w.cycle(true, true)
	}
	if w.dec.Counter() != 31 {
		t.Fatalf("got counter %d after preamble; want 31", w.dec.Counter())
	}
	dev.Accesses = dev.Accesses[:0]
	w.header(mdio.NewHeader(mdio.OpWrite, 2, 3))
	w.data(0xffff, true)
	want := ltesto.MDIOAccess{Write: true, PHYAddr: 2, Reg: 3, Value: 0xffff}
	if len(dev.Accesses) != 1 || dev.Accesses[0] != want {
		t.Errorf("got accesses %+v; want [%+v]", dev.Accesses, want)
	}
}

func TestDecoderNoResyncWithoutPreamble(t *testing.T) {
	var dev ltesto.MDIORecorder
	w := wire{dec: mdio.NewDecoder(mdio.Config{Device: &dev})}
	w.preamble()
	w.header(mdio.NewHeader(mdio.OpWrite, 1, 1))
	w.data(1, true)
	// Frames without their own preamble are never decoded, however many
	// cycles pass.
	for i := 0; i < 300; i++ {
		w.header(mdio.NewHeader(mdio.OpWrite, 1, 1))
		w.data(2, true)
		if w.dec.Counter() != -1 {
			t.Fatalf("got counter %d; want -1", w.dec.Counter())
		}
	}
	if len(dev.Accesses) != 1 {
		t.Errorf("got %d device accesses; want 1", len(dev.Accesses))
	}
}

func TestDecoderStatusBitsPreserved(t *testing.T) {
	dev := ltesto.MDIORecorder{ReadValue: 0}
	dec := mdio.NewDecoder(mdio.Config{Device: &dev})
	const others = mdio.Status(0xf0)
	st := others | mdio.StatusDataIn
	w := wire{dec: dec, st: st}
	w.preamble()
	w.header(mdio.NewHeader(mdio.OpRead, 0, 0))
	w.data(0, false)
	if w.st != others {
		t.Errorf("got status %#x; want %#x", w.st, others)
	}
}

func TestDecoderBuiltinRegisters(t *testing.T) {
	w := wire{dec: mdio.NewDecoder(mdio.Config{})}
	read := func(reg uint8) uint16 {
		w.preamble()
		w.header(mdio.NewHeader(mdio.OpRead, 9, reg))
		return w.data(0, false)
	}
	for reg := uint8(0); reg < 32; reg++ {
		want := uint16(1) << (reg % 16)
		switch reg {
		case phy.AddrPHYID1:
			want = 0x0022
		case phy.AddrPHYID2:
			want = 0x161a
		}
		if got := read(reg); got != want {
			t.Errorf("reg %d: got %#04x; want %#04x", reg, got, want)
		}
	}
	w.preamble()
	w.header(mdio.NewHeader(mdio.OpWrite, 9, 0))
	w.data(0xdead, true)
	if got := read(0); got != 1 {
		t.Errorf("write was not discarded: got %#04x; want 1", got)
	}
}

func TestDecoderDefaultOnError(t *testing.T) {
	dev := ltesto.MDIORecorder{ReadValue: 0x1111, ReadErr: bitbang.ErrNoDevice}
	w := wire{dec: mdio.NewDecoder(mdio.Config{Device: &dev, Default: 0xffff})}
	w.preamble()
	w.header(mdio.NewHeader(mdio.OpRead, 4, 1))
	if got := w.data(0, false); got != 0xffff {
		t.Errorf("got %#04x; want default 0xffff", got)
	}
}

func TestHeaderValidate(t *testing.T) {
	tests := []struct {
		h        mdio.Header
		wantErr  bool
		bitStart int
	}{
		{h: mdio.NewHeader(mdio.OpRead, 31, 31)},
		{h: mdio.NewHeader(mdio.OpRead, 0, 0) | 0b10},
		{h: mdio.NewHeader(mdio.OpWrite, 3, 17)},
		{h: mdio.NewHeader(mdio.OpRead, 0, 0) | 0b01, wantErr: true, bitStart: 0},
		{h: mdio.NewHeader(mdio.OpWrite, 0, 0) ^ 0b11, wantErr: true, bitStart: 0},
		{h: mdio.NewHeader(mdio.OpRead, 0, 0) ^ 0b10<<12, wantErr: true, bitStart: 12},
		{h: mdio.NewHeader(mdio.OpRead, 0, 0) &^ (0b11 << 14), wantErr: true, bitStart: 14},
	}
	var v bitbang.Validator
	for _, test := range tests {
		v.ResetErr()
		test.h.Validate(&v)
		err := v.Err()
		if (err != nil) != test.wantErr {
			t.Errorf("header %016b: got err %v; want error %v", uint16(test.h), err, test.wantErr)
			continue
		}
		if err == nil {
			continue
		}
		var bpe *bitbang.BitPosErr
		if !errors.As(err, &bpe) {
			t.Errorf("header %016b: got %T; want *bitbang.BitPosErr", uint16(test.h), err)
		} else if bpe.BitStart != test.bitStart {
			t.Errorf("header %016b: got error at bit %d; want %d", uint16(test.h), bpe.BitStart, test.bitStart)
		}
	}
}

func TestNewHeaderFields(t *testing.T) {
	h := mdio.NewHeader(mdio.OpWrite, 0x15, 0x0a)
	if h.Start() != 1 || h.Op() != mdio.OpWrite || h.PHYAddr() != 0x15 || h.RegAddr() != 0x0a || h.Turnaround() != 2 {
		t.Errorf("bad header fields %016b", uint16(h))
	}
}
