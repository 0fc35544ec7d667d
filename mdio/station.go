package mdio

import (
	"github.com/soypat/bitbang"
	"github.com/soypat/bitbang/phy"
)

var _ phy.MDIOBus = (*Station)(nil) // compile time guarantee of interface implementation.

// Station is a bit-banged MDIO management station (STA): the host side
// that talks to PHYs over MDC/MDIO through the same control and status
// words a [Decoder] consumes. Only Clause 22 framing is supported.
//
// Below is how a Station drives a Decoder directly, which is also how a
// register-level host reaches a PHY through a control/status register pair:
//
//	var st mdio.Status
//	dec := mdio.NewDecoder(mdio.Config{Device: phys})
//	var sta mdio.Station
//	sta.Configure(func(ctl mdio.Control) mdio.Status {
//		st = dec.Update(ctl, st)
//		return st
//	})
type Station struct {
	pins func(ctl Control) Status
}

// Configure sets the pin callback. pins applies a control word and returns
// the status word sampled right after it.
func (m *Station) Configure(pins func(ctl Control) Status) {
	if pins == nil {
		panic("nil callback")
	}
	m.pins = pins
	m.release()
}

// Read reads a PHY register. devAddr must be 0.
func (m *Station) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	if err := checkAddr(phyAddr, devAddr, regAddr); err != nil {
		return 0, err
	}
	m.cmd(OpRead, phyAddr, uint8(regAddr))
	// Turnaround: release the line for two cycles while the PHY takes it.
	m.getBit()
	m.getBit()
	ret := m.getNum(16)
	m.release()
	return ret, nil
}

// Write writes a value to a PHY register. devAddr must be 0.
func (m *Station) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	if err := checkAddr(phyAddr, devAddr, regAddr); err != nil {
		return err
	}
	m.cmd(OpWrite, phyAddr, uint8(regAddr))
	// send turnaround (10)
	m.sendBit(true)
	m.sendBit(false)
	m.sendNum(value, 16)
	m.release()
	return nil
}

func checkAddr(phyAddr, devAddr uint8, regAddr uint16) error {
	if devAddr != 0 {
		return bitbang.ErrUnsupported
	} else if !phy.ValidClause22(phyAddr, regAddr) {
		return bitbang.ErrInvalidAddr
	}
	return nil
}

func (m *Station) cmd(op Op, phyAddr, regAddr uint8) {
	for i := 0; i < bitsPreamble; i++ {
		m.sendBit(true)
	}
	m.sendNum(frameStart, 2)
	m.sendNum(uint16(op), 2)
	m.sendNum(uint16(phyAddr), 5)
	m.sendNum(uint16(regAddr), 5)
}

func (m *Station) sendNum(val uint16, bits int) {
	for i := bits - 1; i >= 0; i-- {
		m.sendBit((val>>i)&1 != 0)
	}
}

func (m *Station) getNum(bits int) (ret uint16) {
	for i := bits - 1; i >= 0; i-- {
		ret <<= 1
		ret |= uint16(bitbang.B2U8(m.getBit()))
	}
	return ret
}

// sendBit sets the data line with the clock low and then raises the clock.
func (m *Station) sendBit(b bool) {
	ctl := ControlOutputEnable
	if b {
		ctl |= ControlDataOut
	}
	m.pins(ctl)
	m.pins(ctl | ControlClock)
}

// getBit raises the clock with the line released and samples the PHY.
func (m *Station) getBit() bool {
	m.pins(0)
	return m.pins(ControlClock)&StatusDataIn != 0
}

// release leaves the clock low and the data line undriven.
func (m *Station) release() {
	m.pins(0)
}
