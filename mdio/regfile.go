package mdio

import (
	"github.com/soypat/bitbang"
	"github.com/soypat/bitbang/phy"
)

var _ phy.MDIOBus = (*RegisterFile)(nil) // compile time guarantee of interface implementation.

// RegisterFile is a read-only set of 32 PHY registers answering at every
// PHY address. Writes are accepted and discarded.
type RegisterFile [32]uint16

// Reset loads the power-on values: a walking one per register and the
// identifier of a Micrel KSZ8001L.
func (rf *RegisterFile) Reset() {
	for i := range rf {
		rf[i] = 1 << (i % 16)
	}
	rf[phy.AddrPHYID1] = phy.SimDefaultID1
	rf[phy.AddrPHYID2] = phy.SimDefaultID2
}

func (rf *RegisterFile) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	if devAddr != 0 {
		return 0, bitbang.ErrUnsupported
	} else if !phy.ValidClause22(phyAddr, regAddr) {
		return 0, bitbang.ErrInvalidAddr
	}
	return rf[regAddr], nil
}

func (rf *RegisterFile) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	if devAddr != 0 {
		return bitbang.ErrUnsupported
	} else if !phy.ValidClause22(phyAddr, regAddr) {
		return bitbang.ErrInvalidAddr
	}
	return nil
}
