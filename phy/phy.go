// Package phy provides Ethernet PHY management over MDIO: Clause 22 register
// definitions, a host side PHY driver and a simulated PHY that can sit on
// the far side of a bit-banged management interface.
package phy

//go:generate stringer -type=LinkMode -linecomment -output=stringers.go

import (
	"errors"
	"time"

	"github.com/soypat/bitbang"
)

var (
	errNoPHY        = errors.New("phy: no PHY found")
	errResetTimeout = errors.New("phy: reset timeout")
	errANNotDone    = errors.New("phy: auto-negotiation not complete")
	errIsolated     = errors.New("phy: isolated from MII")
	errPoweredDown  = errors.New("phy: powered down")
)

// FindClause22PHYs finds all Clause 22 PHYs on the MDIO bus and writes their addresses to dst.
// It returns an error only if no PHY answered.
func FindClause22PHYs(mdio MDIOBus, dst []uint8) (n int, err error) {
	if len(dst) < maxPHYAddr+1 {
		return -1, bitbang.ErrShortBuffer
	}
	for addr := uint8(0); addr <= maxPHYAddr; addr++ {
		val, err := mdio.Read(addr, 0, AddrBMSR)
		if err != nil {
			continue
		}
		// An undriven bus reads as all zeros or all ones, neither of which is a valid BMSR.
		if val != 0xffff && val != 0x0000 {
			dst[n] = addr
			n++
		}
	}
	if n <= 0 {
		err = errNoPHY
	}
	return n, err
}

// Device is a host side driver of a Clause 22 PHY.
type Device struct {
	mdio    MDIOBus
	phyaddr uint8
}

// ConfigureAs22 resets all state of device to be used as a Clause 22 device. Does not do a software reset.
func (phy *Device) ConfigureAs22(mdio MDIOBus, phyAddr uint8) error {
	if phyAddr > maxPHYAddr {
		return bitbang.ErrInvalidAddr
	} else if mdio == nil {
		return bitbang.ErrInvalidConfig
	}
	phy.mdio = mdio
	phy.phyaddr = phyAddr
	return nil
}

// PHYAddr returns the PHY address on the MDIO bus (0-31).
func (phy *Device) PHYAddr() uint8 {
	return phy.phyaddr
}

// BasicControl reads the Basic Mode Control Register (BMCR, register 0).
func (phy *Device) BasicControl() (BMCR, error) {
	ctl, err := phy.rread(AddrBMCR)
	return BMCR(ctl), err
}

// BasicStatus reads the Basic Mode Status Register (BMSR, register 1).
func (phy *Device) BasicStatus() (BMSR, error) {
	stat, err := phy.rread(AddrBMSR)
	return BMSR(stat), err
}

// ID reads both PHY identifier registers.
func (phy *Device) ID() (id1, id2 uint16, err error) {
	id1, err = phy.rread(AddrPHYID1)
	if err != nil {
		return 0, 0, err
	}
	id2, err = phy.rread(AddrPHYID2)
	return id1, id2, err
}

// EnableAutoNegotiation enables or disables PHY auto-negotiation and verifies the change took effect.
func (phy *Device) EnableAutoNegotiation(b bool) error {
	ctl, err := phy.BasicControl()
	if err != nil {
		return err
	}
	if b {
		ctl |= BMCRANEnable
	} else {
		ctl &^= BMCRANEnable
	}
	err = phy.rwrite(AddrBMCR, uint16(ctl))
	if err != nil {
		return err
	}
	ctl, err = phy.BasicControl()
	if err != nil {
		return err
	} else if (ctl&BMCRANEnable != 0) != b {
		return errors.New("phy: unable to set auto-negotiation enable bit")
	}
	return nil
}

// ResetPHY performs a software reset and waits up to 500ms, as IEEE 802.3
// allows, for the self-clearing reset bit to drop.
func (phy *Device) ResetPHY() (err error) {
	err = phy.rwrite(AddrBMCR, uint16(BMCRReset))
	if err != nil {
		return err
	}
	const maxPolls = 50
	const resetTimeout = 500 * time.Millisecond
	var ctl BMCR
	for i := 0; i < maxPolls; i++ {
		ctl, err = phy.BasicControl()
		if err == nil && ctl&BMCRReset == 0 {
			return nil
		}
		time.Sleep(resetTimeout / maxPolls)
	}
	if err != nil {
		return err
	}
	return errResetTimeout
}

// SetupForced disables auto-negotiation and forces a specific link mode.
func (phy *Device) SetupForced(mode LinkMode) error {
	var ctl BMCR
	switch mode.SpeedMbps() {
	case 1000:
		ctl |= BMCRSpeed1000
	case 100:
		ctl |= BMCRSpeed100
	case 10:
		// No speed bits = 10Mbps
	default:
		return bitbang.ErrUnsupported
	}
	if mode.IsFullDuplex() {
		ctl |= BMCRFullDuplex
	}
	return phy.rwrite(AddrBMCR, uint16(ctl))
}

// Advertisement reads the current Auto-Negotiation Advertisement Register.
func (phy *Device) Advertisement() (ANAR, error) {
	val, err := phy.rread(AddrANAR)
	return ANAR(val), err
}

// SetAdvertisement writes to the Auto-Negotiation Advertisement Register.
// Does NOT restart auto-negotiation; call RestartAutoNeg after if needed.
func (phy *Device) SetAdvertisement(ad ANAR) error {
	return phy.rwrite(AddrANAR, uint16(ad))
}

// LinkPartnerAdvertisement reads what the link partner is advertising (ANLPAR).
func (phy *Device) LinkPartnerAdvertisement() (ANAR, error) {
	val, err := phy.rread(AddrANLPAR)
	return ANAR(val), err
}

// RestartAutoNeg enables auto-negotiation and restarts it.
func (phy *Device) RestartAutoNeg() error {
	ctl, err := phy.BasicControl()
	if err != nil {
		return err
	}
	ctl |= BMCRANEnable | BMCRANRestart
	return phy.rwrite(AddrBMCR, uint16(ctl))
}

// IsLinkUp returns true if link is established.
func (phy *Device) IsLinkUp() (bool, error) {
	status, err := phy.BasicStatus()
	if err != nil {
		return false, err
	}
	return status.LinkUp(), nil
}

// WaitForLinkWithDeadline polls the link until it is up or deadline passes.
// With auto-negotiation enabled the link is only considered once
// negotiation completes. An isolated or powered down PHY fails early.
func (phy *Device) WaitForLinkWithDeadline(deadline time.Time) (bool, error) {
	const pollInterval = 50 * time.Millisecond
	ctl, err := phy.BasicControl()
	if err != nil {
		return false, err
	} else if ctl&BMCRIsolate != 0 {
		return false, errIsolated
	} else if ctl&BMCRPowerDown != 0 {
		return false, errPoweredDown
	}
	anEnabled := ctl&BMCRANEnable != 0
	for {
		status, err := phy.BasicStatus()
		if err != nil {
			return false, err
		}
		if (!anEnabled || status.AutoNegotiationComplete()) && status.LinkUp() {
			return true, nil
		}
		if !time.Now().Before(deadline) {
			return false, nil
		}
		time.Sleep(pollInterval)
	}
}

// NegotiatedLink returns the auto-negotiated link mode: the highest priority
// mode common to ANAR and ANLPAR, per IEEE 802.3 Annex 28B.3.
func (phy *Device) NegotiatedLink() (LinkMode, error) {
	status, err := phy.BasicStatus()
	if err != nil {
		return LinkDown, err
	}
	if !status.AutoNegotiationComplete() {
		return LinkDown, errANNotDone
	}
	anar, err := phy.Advertisement()
	if err != nil {
		return LinkDown, err
	}
	anlpar, err := phy.LinkPartnerAdvertisement()
	if err != nil {
		return LinkDown, err
	}
	return (anar & anlpar).LinkMode(), nil
}

// SetLoopback enables or disables PHY near-end loopback mode (BMCR bit 14).
func (phy *Device) SetLoopback(enable bool) error {
	ctl, err := phy.BasicControl()
	if err != nil {
		return err
	}
	if enable {
		ctl |= BMCRLoopback
	} else {
		ctl &^= BMCRLoopback
	}
	return phy.rwrite(AddrBMCR, uint16(ctl))
}

func (phy *Device) rread(regaddr uint16) (uint16, error) {
	return phy.mdio.Read(phy.phyaddr, 0, regaddr)
}

func (phy *Device) rwrite(regaddr, value uint16) error {
	return phy.mdio.Write(phy.phyaddr, 0, regaddr, value)
}
