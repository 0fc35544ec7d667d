package litex

import (
	"log/slog"

	"github.com/soypat/bitbang/mdio"
	"github.com/soypat/bitbang/phy"
)

// Ethernet PHY block register indices.
const (
	RegPHYCRGReset = iota
	RegPHYMDIOWrite
	RegPHYMDIORead
	numPHYRegs
)

var _ Device = (*EthPHY)(nil)

// EthPHY is the LiteEth PHY management block. Writes of [RegPHYMDIOWrite]
// are [mdio.Control] words fed to an [mdio.Decoder]; [RegPHYMDIORead]
// holds the resulting [mdio.Status].
type EthPHY struct {
	csr
	bank [numPHYRegs]uint8
	dec  *mdio.Decoder
}

// NewEthPHY returns a PHY block whose management frames address dev. With a
// nil dev the decoder answers from its built-in register file.
func NewEthPHY(dev phy.MDIOBus, log *slog.Logger) *EthPHY {
	p := &EthPHY{dec: mdio.NewDecoder(mdio.Config{Device: dev, Default: 0xffff, Logger: log})}
	p.csr = csr{name: "ethphy", regs: p.bank[:], logger: logger{log: log}}
	return p
}

// Reset clears the registers and drops any frame in flight.
func (p *EthPHY) Reset() {
	p.reset()
	p.dec.Reset()
}

// Decoder returns the management frame decoder behind the block.
func (p *EthPHY) Decoder() *mdio.Decoder { return p.dec }

func (p *EthPHY) Size() uint32 { return p.size() }

func (p *EthPHY) Read(addr uint32) uint32 { return p.read(addr) }

func (p *EthPHY) Write(addr, value uint32) {
	idx, ok := p.write(addr, value)
	if !ok || idx != RegPHYMDIOWrite {
		return
	}
	st := p.dec.Update(mdio.Control(p.bank[RegPHYMDIOWrite]), mdio.Status(p.bank[RegPHYMDIORead]))
	p.bank[RegPHYMDIORead] = uint8(st)
}
