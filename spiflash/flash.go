package spiflash

import (
	"log/slog"

	"github.com/soypat/bitbang"
)

// Flash is a byte-wide SPI NOR flash. Each [Flash.Transfer] consumes one
// command, address or data byte and returns the byte to shift out during the
// following transfer.
type Flash struct {
	mem      []byte
	id       [3]byte
	state    State
	cmd      uint8
	addr     uint32
	naddr    uint8
	idx      uint8
	wel      bool
	erase    bool
	programs int
	logger
}

// New returns a deselected flash.
func New(cfg Config) (*Flash, error) {
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	if cfg.ID == ([3]byte{}) {
		cfg.ID = DefaultID
	}
	if cfg.Size < 0 || cfg.Size%SectorSize != 0 || cfg.Size > 1<<24 || len(cfg.Data) > cfg.Size {
		return nil, bitbang.ErrInvalidConfig
	}
	f := &Flash{
		mem:    make([]byte, cfg.Size),
		id:     cfg.ID,
		logger: logger{log: cfg.Logger},
	}
	n := copy(f.mem, cfg.Data)
	for i := n; i < len(f.mem); i++ {
		f.mem[i] = 0xff
	}
	return f, nil
}

// Data returns the flash storage. Writes to it are seen by later reads.
func (f *Flash) Data() []byte { return f.mem }

// State returns the command decoding state.
func (f *Flash) State() State { return f.state }

// Status returns the status register.
func (f *Flash) Status() uint8 {
	return bitbang.B2U8(f.wel) << 1
}

// Select implements [ssi.Selector]. Deselecting ends the current command
// and applies a pending sector erase.
func (f *Flash) Select(csn bool) {
	if !csn {
		if f.state == StateDeselected {
			f.state = StateCommand
		}
		return
	}
	if f.state == StateDeselected {
		return
	}
	switch {
	case f.erase:
		base := f.addr &^ (SectorSize - 1)
		sector := f.mem[base : base+SectorSize]
		for i := range sector {
			sector[i] = 0xff
		}
		f.wel = false
		f.debug("spiflash:erase", slog.Uint64("addr", uint64(base)))
	case f.cmd == CmdPageProgram && f.state == StateData:
		f.wel = false
		f.debug("spiflash:program", slog.Uint64("addr", uint64(f.addr)), slog.Int("bytes", f.programs))
	}
	f.state = StateDeselected
	f.erase = false
	f.programs = 0
}

// Transfer implements [ssi.Bus]. Only the low 8 bits of word are used.
func (f *Flash) Transfer(word uint32, bits uint8) uint32 {
	b := uint8(word)
	if bits != 8 {
		f.debug("spiflash:bad-width", slog.Uint64("bits", uint64(bits)))
	}
	switch f.state {
	case StateCommand:
		return uint32(f.command(b))
	case StateAddress:
		f.addr = f.addr<<8 | uint32(b)
		f.naddr++
		if f.naddr < addrBytes {
			return 0
		}
		f.addr %= uint32(len(f.mem))
		f.state = StateData
		switch f.cmd {
		case CmdRead:
			return uint32(f.readNext())
		case CmdSectorErase:
			f.erase = f.wel
			f.state = StateIgnore
		case CmdPageProgram:
			if !f.wel {
				f.state = StateIgnore
			}
		}
	case StateData:
		switch f.cmd {
		case CmdRead:
			return uint32(f.readNext())
		case CmdPageProgram:
			f.mem[f.addr] &= b
			f.addr = f.addr&^(PageSize-1) | (f.addr+1)&(PageSize-1)
			f.programs++
		case CmdReadID:
			return uint32(f.nextID())
		case CmdReadStatus:
			return uint32(f.Status())
		}
	case StateDeselected:
		f.trace("spiflash:deselected", slog.Uint64("in", uint64(b)))
	}
	return 0
}

func (f *Flash) command(b uint8) uint8 {
	f.cmd = b
	f.state = StateIgnore
	f.debug("spiflash:cmd", slog.Uint64("cmd", uint64(b)))
	switch b {
	case CmdWriteEnable:
		f.wel = true
	case CmdWriteDisable:
		f.wel = false
	case CmdReadStatus:
		f.state = StateData
		return f.Status()
	case CmdReadID:
		f.state = StateData
		f.idx = 0
		return f.nextID()
	case CmdRead, CmdPageProgram, CmdSectorErase:
		f.state = StateAddress
		f.addr = 0
		f.naddr = 0
	default:
		f.debug("spiflash:unknown-cmd", slog.Uint64("cmd", uint64(b)))
	}
	return 0
}

func (f *Flash) readNext() uint8 {
	b := f.mem[f.addr]
	f.addr = (f.addr + 1) % uint32(len(f.mem))
	return b
}

func (f *Flash) nextID() uint8 {
	if int(f.idx) >= len(f.id) {
		return 0
	}
	b := f.id[f.idx]
	f.idx++
	return b
}
