package phy

import "github.com/soypat/bitbang"

// Identifier of the Micrel KSZ8001L, the PHY a simulated PHY reports by default.
const (
	SimDefaultID1 = 0x0022
	SimDefaultID2 = 0x161a
)

var _ MDIOBus = (*SimBus)(nil) // compile time guarantee of interface implementation.

// SimConfig configures a simulated PHY. Zero fields take defaults.
type SimConfig struct {
	ID1, ID2 uint16
	// Link is the initial cable state.
	Link bool
	// Partner is the link partner ability reported in ANLPAR once
	// auto-negotiation completes. Defaults to 10 and 100Mbps in both duplexes.
	Partner ANAR
}

// Sim is a simulated Clause 22 PHY register set. Auto-negotiation completes
// instantly whenever it is enabled and the link is up. Software reset
// restores power-on values and self-clears.
type Sim struct {
	regs [maxRegAddr + 1]uint16
	cfg  SimConfig
	link bool
}

// NewSim returns a simulated PHY in its power-on state.
func NewSim(cfg SimConfig) *Sim {
	if cfg.ID1 == 0 && cfg.ID2 == 0 {
		cfg.ID1, cfg.ID2 = SimDefaultID1, SimDefaultID2
	}
	if cfg.Partner == 0 {
		cfg.Partner = NewANAR().With10M().With100M()
	}
	s := &Sim{cfg: cfg, link: cfg.Link}
	s.Reset()
	return s
}

// Reset restores power-on register values. Link state is kept.
func (s *Sim) Reset() {
	s.regs = [maxRegAddr + 1]uint16{}
	s.regs[AddrBMCR] = uint16(BMCRANEnable | BMCRSpeed100 | BMCRFullDuplex)
	s.regs[AddrANAR] = uint16(NewANAR().With10M().With100M())
}

// SetLink plugs or unplugs the simulated cable.
func (s *Sim) SetLink(up bool) { s.link = up }

// ReadReg returns the value of register reg, 0..31.
func (s *Sim) ReadReg(reg uint8) uint16 {
	reg &= maxRegAddr
	switch reg {
	case AddrBMSR:
		return uint16(s.status())
	case AddrPHYID1:
		return s.cfg.ID1
	case AddrPHYID2:
		return s.cfg.ID2
	case AddrANLPAR:
		if s.status().AutoNegotiationComplete() {
			return uint16(s.cfg.Partner)
		}
		return 0
	}
	return s.regs[reg]
}

// WriteReg writes register reg, 0..31. Read-only registers ignore writes.
func (s *Sim) WriteReg(reg uint8, v uint16) {
	reg &= maxRegAddr
	switch reg {
	case AddrBMSR, AddrPHYID1, AddrPHYID2, AddrANLPAR:
		return
	case AddrBMCR:
		if BMCR(v)&BMCRReset != 0 {
			s.Reset()
			return
		}
		v &^= uint16(BMCRANRestart)
	}
	s.regs[reg] = v
}

func (s *Sim) status() BMSR {
	st := BMSRExtCap | BMSRANCap | BMSRNoPreamble | BMSR10100Abilities
	ctl := BMCR(s.regs[AddrBMCR])
	up := ctl&BMCRLoopback != 0 || (s.link && ctl&(BMCRPowerDown|BMCRIsolate) == 0)
	if up {
		st |= BMSRLinkStatus
		if ctl&BMCRANEnable != 0 {
			st |= BMSRANComplete
		}
	}
	return st
}

// SimBus is an MDIO bus of simulated PHYs. It only speaks Clause 22.
type SimBus struct {
	phys [maxPHYAddr + 1]*Sim
}

// Attach places s at address addr.
func (b *SimBus) Attach(addr uint8, s *Sim) error {
	if s == nil {
		return bitbang.ErrInvalidConfig
	} else if addr > maxPHYAddr || b.phys[addr] != nil {
		return bitbang.ErrInvalidAddr
	}
	b.phys[addr] = s
	return nil
}

// PHY returns the simulated PHY at addr or nil.
func (b *SimBus) PHY(addr uint8) *Sim {
	if addr > maxPHYAddr {
		return nil
	}
	return b.phys[addr]
}

func (b *SimBus) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	s, err := b.lookup(phyAddr, devAddr, regAddr)
	if err != nil {
		return 0, err
	}
	return s.ReadReg(uint8(regAddr)), nil
}

func (b *SimBus) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	s, err := b.lookup(phyAddr, devAddr, regAddr)
	if err != nil {
		return err
	}
	s.WriteReg(uint8(regAddr), value)
	return nil
}

func (b *SimBus) lookup(phyAddr, devAddr uint8, regAddr uint16) (*Sim, error) {
	if devAddr != 0 {
		return nil, bitbang.ErrUnsupported
	} else if !ValidClause22(phyAddr, regAddr) {
		return nil, bitbang.ErrInvalidAddr
	}
	s := b.phys[phyAddr]
	if s == nil {
		return nil, bitbang.ErrNoDevice
	}
	return s, nil
}
