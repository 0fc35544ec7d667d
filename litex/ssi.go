package litex

import (
	"log/slog"

	"github.com/soypat/bitbang"
	"github.com/soypat/bitbang/ssi"
)

// SPI flash bit-bang register indices.
const (
	RegSSIBitbang = iota
	RegSSIMISO
	RegSSIBitbangEnable
	numSSIRegs
)

// Bits of [RegSSIBitbang] and [RegSSIMISO].
const (
	SSIMOSI = 1 << 0
	SSISCLK = 1 << 1
	SSICSN  = 1 << 2

	SSIMISO = 1 << 0
)

var _ Device = (*SSI)(nil)

// SSI is the SPI flash bit-bang block. A write of [RegSSIBitbang] drives
// chip select, then MOSI, then SCLK of a mode 0, 8-bit [ssi.Engine] and
// latches the MISO level it returns in [RegSSIMISO]. Writes are ignored
// while [RegSSIBitbangEnable] is zero.
type SSI struct {
	csr
	bank [numSSIRegs]uint8
	eng  *ssi.Engine
	sel  ssi.Selector
	csn  bool
}

// NewSSI returns the block driving bus. sel receives chip select changes and
// may be nil.
func NewSSI(bus ssi.Bus, sel ssi.Selector, log *slog.Logger) *SSI {
	cfg := ssi.ModeConfig(0, 8)
	cfg.Logger = log
	s := &SSI{eng: ssi.NewEngine(bus, cfg), sel: sel}
	s.csr = csr{name: "ssi", regs: s.bank[:], logger: logger{log: log}}
	s.Reset()
	return s
}

// Reset clears the registers and the engine. Chip select is left deasserted.
func (s *SSI) Reset() {
	s.reset()
	s.eng.Reset()
	s.csn = true
	if s.sel != nil {
		s.sel.Select(true)
	}
}

// Engine returns the engine behind the block.
func (s *SSI) Engine() *ssi.Engine { return s.eng }

func (s *SSI) Size() uint32 { return s.size() }

func (s *SSI) Read(addr uint32) uint32 { return s.read(addr) }

func (s *SSI) Write(addr, value uint32) {
	idx, ok := s.write(addr, value)
	if !ok || idx != RegSSIBitbang {
		return
	}
	if s.bank[RegSSIBitbangEnable] == 0 {
		s.warn("litex:bitbang-disabled", slog.String("dev", s.name))
		return
	}
	csn := value&SSICSN != 0
	if csn != s.csn {
		s.csn = csn
		if s.sel != nil {
			s.sel.Select(csn)
		}
	}
	s.eng.SetLine(bitbang.LineDataOut, value&SSIMOSI != 0)
	miso := s.eng.SetLine(bitbang.LineClock, value&SSISCLK != 0)
	s.bank[RegSSIMISO] = bitbang.B2U8(miso)
}
