package litex

import (
	"github.com/soypat/bitbang/i2c"
	"github.com/soypat/bitbang/mdio"
)

// SPIHost drives an SSI block the way boot firmware does: one register
// write per clock phase, SPI mode 0, most significant bit first.
type SPIHost struct {
	dev Device
	csn bool
}

// NewSPIHost enables bit-banging on dev and deselects the device.
func NewSPIHost(dev Device) *SPIHost {
	h := &SPIHost{dev: dev}
	dev.Write(RegAddr(RegSSIBitbangEnable), 1)
	h.Select(false)
	return h
}

// Select drives chip select. The clock is left low.
func (h *SPIHost) Select(sel bool) {
	h.csn = !sel
	h.dev.Write(RegAddr(RegSSIBitbang), h.ctl(false, false))
}

// Exchange clocks out b and returns the byte sampled on MISO. Responses
// lag one byte behind the byte that caused them and arrive least
// significant bit first.
func (h *SPIHost) Exchange(b byte) (rx byte) {
	for i := 0; i < 8; i++ {
		mosi := b>>(7-i)&1 != 0
		h.dev.Write(RegAddr(RegSSIBitbang), h.ctl(mosi, false))
		rx |= uint8(h.dev.Read(RegAddr(RegSSIMISO))&SSIMISO) << i
		h.dev.Write(RegAddr(RegSSIBitbang), h.ctl(mosi, true))
	}
	return rx
}

// Tx runs one chip select frame: it sends w and then clocks len(r) zero
// bytes, storing what arrives during them in r.
func (h *SPIHost) Tx(w, r []byte) {
	h.Select(true)
	for _, b := range w {
		h.Exchange(b)
	}
	for i := range r {
		r[i] = h.Exchange(0)
	}
	h.Select(false)
}

func (h *SPIHost) ctl(mosi, sclk bool) uint32 {
	var v uint32
	if mosi {
		v |= SSIMOSI
	}
	if sclk {
		v |= SSISCLK
	}
	if h.csn {
		v |= SSICSN
	}
	return v
}

// NewI2CHost returns a bit-bang I2C master driving an I2C block.
func NewI2CHost(dev Device) *i2c.Master {
	return &i2c.Master{Drive: func(scl, sda bool) bool {
		var ctl i2c.Control
		if scl {
			ctl |= i2c.ControlClock
		}
		if !sda {
			ctl |= i2c.ControlOutputEnable
		}
		dev.Write(RegAddr(RegI2CWrite), uint32(ctl))
		return i2c.Status(dev.Read(RegAddr(RegI2CRead)))&i2c.StatusDataIn != 0
	}}
}

// NewMDIOHost returns a management station driving a PHY block.
func NewMDIOHost(dev Device) *mdio.Station {
	var sta mdio.Station
	sta.Configure(func(ctl mdio.Control) mdio.Status {
		dev.Write(RegAddr(RegPHYMDIOWrite), uint32(ctl))
		return mdio.Status(dev.Read(RegAddr(RegPHYMDIORead)))
	})
	return &sta
}

// RegAddr returns the byte offset of register index reg.
func RegAddr(reg int) uint32 { return uint32(reg) * 4 }
