// Package ltesto contains bus masters and recording collaborators shared by
// the package tests.
package ltesto

import (
	"github.com/soypat/bitbang"
)

// Pins is implemented by the pin-level engines.
type Pins interface {
	SetLine(line bitbang.Line, level bool) bool
}

// SPIMaster clocks an SSI engine the way a bit-bang SPI host does.
type SPIMaster struct {
	Pins Pins
	// Mode is the SPI mode, CPOL<<1 | CPHA.
	Mode uint8
}

// Cycle runs one full clock cycle sending out. It returns the data-in level
// the host samples during the cycle.
func (m *SPIMaster) Cycle(out bool) (in bool) {
	idle := m.Mode&2 != 0
	if m.Mode&1 == 0 {
		m.Pins.SetLine(bitbang.LineDataOut, out)
		in = m.Pins.SetLine(bitbang.LineDataIn, false)
		m.Pins.SetLine(bitbang.LineClock, !idle)
		m.Pins.SetLine(bitbang.LineClock, idle)
		return in
	}
	in = m.Pins.SetLine(bitbang.LineClock, !idle)
	m.Pins.SetLine(bitbang.LineDataOut, out)
	m.Pins.SetLine(bitbang.LineClock, idle)
	return in
}

// Exchange sends the low bits of word most significant bit first. Sampled
// bits are assembled least significant bit first, which is the order in
// which SSI engines shift responses out.
func (m *SPIMaster) Exchange(word uint32, bits int) (rx uint32) {
	for i := 0; i < bits; i++ {
		in := m.Cycle(word>>(bits-1-i)&1 != 0)
		rx |= uint32(bitbang.B2U8(in)) << i
	}
	return rx
}

// Transfer is one recorded SSI bus transfer.
type Transfer struct {
	Word uint32
	Bits uint8
}

// BusRecorder is an SSI bus recording every transfer. It echoes the
// received word unless Reply is set.
type BusRecorder struct {
	Transfers []Transfer
	Reply     func(word uint32, bits uint8) uint32
}

func (b *BusRecorder) Transfer(word uint32, bits uint8) uint32 {
	b.Transfers = append(b.Transfers, Transfer{Word: word, Bits: bits})
	if b.Reply != nil {
		return b.Reply(word, bits)
	}
	return word
}

// MDIOAccess is one recorded management register access.
type MDIOAccess struct {
	Write   bool
	PHYAddr uint8
	DevAddr uint8
	Reg     uint16
	Value   uint16
}

// MDIORecorder records register accesses. Reads return ReadValue and ReadErr.
type MDIORecorder struct {
	Accesses  []MDIOAccess
	ReadValue uint16
	ReadErr   error
}

func (r *MDIORecorder) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	r.Accesses = append(r.Accesses, MDIOAccess{PHYAddr: phyAddr, DevAddr: devAddr, Reg: regAddr, Value: r.ReadValue})
	return r.ReadValue, r.ReadErr
}

func (r *MDIORecorder) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	r.Accesses = append(r.Accesses, MDIOAccess{Write: true, PHYAddr: phyAddr, DevAddr: devAddr, Reg: regAddr, Value: value})
	return nil
}
