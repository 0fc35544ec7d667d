package spiflash_test

import (
	"bytes"
	"testing"

	"github.com/soypat/bitbang/internal/ltesto"
	"github.com/soypat/bitbang/spiflash"
	"github.com/soypat/bitbang/ssi"
)

type host struct {
	flash  *spiflash.Flash
	master ltesto.SPIMaster
}

func newHost(t *testing.T, cfg spiflash.Config) *host {
	t.Helper()
	f, err := spiflash.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e := ssi.NewEngine(f, ssi.ModeConfig(0, 8))
	return &host{flash: f, master: ltesto.SPIMaster{Pins: e, Mode: 0}}
}

// frame runs one chip-select frame. The response to each byte is shifted out
// during the byte that follows it, so rx[i] answers tx[i-1].
func (h *host) frame(tx ...byte) (rx []byte) {
	h.flash.Select(false)
	for _, b := range tx {
		rx = append(rx, byte(h.master.Exchange(uint32(b), 8)))
	}
	h.flash.Select(true)
	return rx
}

func TestFlashReadID(t *testing.T) {
	h := newHost(t, spiflash.Config{})
	rx := h.frame(spiflash.CmdReadID, 0, 0, 0, 0)
	want := []byte{0x20, 0x20, 0x14, 0}
	if !bytes.Equal(rx[1:], want) {
		t.Errorf("got id % x; want % x", rx[1:], want)
	}
	if h.flash.State() != spiflash.StateDeselected {
		t.Errorf("got state %s; want deselected", h.flash.State())
	}
}

func TestFlashRead(t *testing.T) {
	data := []byte("hello flash")
	h := newHost(t, spiflash.Config{Size: spiflash.SectorSize, Data: data})
	tx := append([]byte{spiflash.CmdRead, 0, 0, 6}, make([]byte, 5)...)
	rx := h.frame(tx...)
	if got := rx[4:]; !bytes.Equal(got, data[6:]) {
		t.Errorf("got %q; want %q", got, data[6:])
	}
	// Reads wrap around the end of the device.
	rx = h.frame(spiflash.CmdRead, 0, 0x0f, 0xff, 0, 0)
	if rx[4] != 0xff || rx[5] != 'h' {
		t.Errorf("got % x across wrap; want ff 68", rx[4:])
	}
}

func TestFlashProgramErase(t *testing.T) {
	h := newHost(t, spiflash.Config{Size: 2 * spiflash.SectorSize})
	const addr = 0x10fe
	// Program without write enable is ignored.
	h.frame(spiflash.CmdPageProgram, 0, 0x10, 0xfe, 0x12)
	if h.flash.Data()[addr] != 0xff {
		t.Fatalf("program without WEL changed memory: %#x", h.flash.Data()[addr])
	}

	h.frame(spiflash.CmdWriteEnable)
	if rx := h.frame(spiflash.CmdReadStatus, 0, 0); rx[1]&spiflash.StatusWriteEnabled == 0 {
		t.Fatalf("got status %#x; want WEL set", rx[1])
	}
	h.frame(spiflash.CmdPageProgram, 0, 0x10, 0xfe, 0xa1, 0xa2, 0xa3)
	mem := h.flash.Data()
	if mem[addr] != 0xa1 || mem[addr+1] != 0xa2 {
		t.Errorf("got % x; want a1 a2", mem[addr:addr+2])
	}
	// Programming wraps inside the page.
	if mem[0x1000] != 0xa3 {
		t.Errorf("got %#x at page start; want 0xa3", mem[0x1000])
	}
	if h.flash.Status()&spiflash.StatusWriteEnabled != 0 {
		t.Error("WEL still set after page program")
	}
	// Programming can only clear bits.
	h.frame(spiflash.CmdWriteEnable)
	h.frame(spiflash.CmdPageProgram, 0, 0x10, 0xfe, 0xff)
	if mem[addr] != 0xa1 {
		t.Errorf("got %#x; program set bits", mem[addr])
	}

	h.frame(spiflash.CmdWriteEnable)
	h.frame(spiflash.CmdSectorErase, 0, 0x10, 0x00)
	for i, b := range mem[spiflash.SectorSize:] {
		if b != 0xff {
			t.Fatalf("byte %#x not erased: %#x", spiflash.SectorSize+i, b)
		}
	}
}

func TestFlashConfig(t *testing.T) {
	for _, cfg := range []spiflash.Config{
		{Size: 1000},
		{Size: -spiflash.SectorSize},
		{Size: 1 << 25},
		{Size: spiflash.SectorSize, Data: make([]byte, spiflash.SectorSize+1)},
	} {
		if _, err := spiflash.New(cfg); err == nil {
			t.Errorf("size=%d data=%d: got nil error", cfg.Size, len(cfg.Data))
		}
	}
	f, err := spiflash.New(spiflash.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Data()) != spiflash.DefaultSize {
		t.Errorf("got size %d; want %d", len(f.Data()), spiflash.DefaultSize)
	}
}
