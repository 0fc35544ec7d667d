package phy

// MDIOBus is a HAL for MDIO management register access.
// devAddr selects the framing: 0 is Clause 22, where phyAddr and regAddr are
// both 0..31. Non-zero devAddr values are Clause 45 device addresses
// (PMA/PMD=1, WIS=2, PCS=3, PHY XS=4, DTE XS=5, AN=7); implementations
// without Clause 45 support return [bitbang.ErrUnsupported] for them.
//
// A read from an address with no PHY attached returns an error. Frame level
// implementations such as an MDIO decoder substitute their own default value
// in that case.
type MDIOBus interface {
	// Read reads a 16-bit register from the PHY.
	Read(phyAddr, devAddr uint8, regAddr uint16) (value uint16, err error)
	// Write writes a 16-bit value to a PHY register.
	Write(phyAddr, devAddr uint8, regAddr, value uint16) error
}

const (
	maxPHYAddr = 31
	maxRegAddr = 31
)

// ValidClause22 reports whether phyAddr and regAddr fit a Clause 22 frame.
func ValidClause22(phyAddr uint8, regAddr uint16) bool {
	return phyAddr <= maxPHYAddr && regAddr <= maxRegAddr
}
