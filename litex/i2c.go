package litex

import (
	"log/slog"

	"github.com/soypat/bitbang/i2c"
)

// I2C master register indices.
const (
	RegI2CWrite = iota
	RegI2CRead
	numI2CRegs
)

var _ Device = (*I2C)(nil)

// I2C is the bit-bang I2C master block. [RegI2CWrite] holds an
// [i2c.Control] word; [RegI2CRead] holds the [i2c.Status] word sampled
// while SDA is released.
type I2C struct {
	csr
	bank [numI2CRegs]uint8
	eng  *i2c.Engine
	od   *i2c.OpenDrain
}

// NewI2C returns a master whose bus is served by target, usually an [i2c.Bus].
func NewI2C(target i2c.Target, log *slog.Logger) *I2C {
	eng := i2c.NewEngine(target, i2c.Config{Logger: log})
	m := &I2C{eng: eng, od: i2c.NewOpenDrain(eng)}
	m.csr = csr{name: "i2c", regs: m.bank[:], logger: logger{log: log}}
	return m
}

// Reset clears the registers and the captured SDA status and returns the
// bus to the stopped state.
func (m *I2C) Reset() {
	m.reset()
	m.eng.Reset()
	m.od.Reset()
}

// Engine returns the target engine behind the block.
func (m *I2C) Engine() *i2c.Engine { return m.eng }

func (m *I2C) Size() uint32 { return m.size() }

func (m *I2C) Read(addr uint32) uint32 { return m.read(addr) }

func (m *I2C) Write(addr, value uint32) {
	idx, ok := m.write(addr, value)
	if !ok || idx != RegI2CWrite {
		return
	}
	m.od.Write(i2c.Control(m.bank[RegI2CWrite]))
	m.bank[RegI2CRead] = uint8(m.od.Status())
}
