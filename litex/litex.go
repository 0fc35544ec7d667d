// Package litex implements the CSR register blocks LiteX SoCs use to bit-bang
// serial buses from software: the SPI flash bit-bang block, the I2C master
// and the Ethernet PHY management block. Each block is addressed by byte
// offset with one 8-bit register every 4 bytes and forwards writes to the
// pin-level engines of this module.
package litex

import (
	"log/slog"

	"github.com/soypat/bitbang/internal"
)

// Device is a CSR block. Addresses are byte offsets from the block base.
type Device interface {
	Read(addr uint32) uint32
	Write(addr uint32, value uint32)
	// Size returns the size of the block in bytes.
	Size() uint32
}

// csr is a bank of 8-bit registers spaced 4 bytes apart.
type csr struct {
	name string
	regs []uint8
	logger
}

func (c *csr) reset() {
	clear(c.regs)
}

func (c *csr) size() uint32 { return uint32(len(c.regs)) * 4 }

// index returns the register index for addr. Out of range accesses are logged.
func (c *csr) index(addr uint32) (int, bool) {
	idx := addr >> 2
	if idx >= uint32(len(c.regs)) {
		c.warn("litex:invalid-addr", slog.String("dev", c.name), slog.Uint64("addr", uint64(addr)))
		return 0, false
	}
	return int(idx), true
}

func (c *csr) read(addr uint32) uint32 {
	idx, ok := c.index(addr)
	if !ok {
		return 0
	}
	return uint32(c.regs[idx])
}

// write stores the low byte of value and returns the register index written.
func (c *csr) write(addr, value uint32) (int, bool) {
	idx, ok := c.index(addr)
	if !ok {
		return 0, false
	}
	c.regs[idx] = uint8(value)
	if c.logenabled(internal.LevelTrace) {
		c.trace("litex:write", slog.String("dev", c.name), slog.Int("reg", idx), slog.Uint64("val", uint64(uint8(value))))
	}
	return idx, true
}
