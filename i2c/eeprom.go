package i2c

var _ Device = (*EEPROM)(nil) // compile time guarantee of interface implementation.

// EEPROMSize is the capacity of an [EEPROM] in bytes.
const EEPROMSize = 256

// EEPROM is a 256 byte SMBus serial EEPROM. The first byte written after a
// write START sets the offset; following writes store data and reads
// return data, both advancing the offset and wrapping at the end.
type EEPROM struct {
	mem     [EEPROMSize]byte
	off     uint8
	haveOff bool
}

// NewEEPROM returns an EEPROM holding a copy of init.
func NewEEPROM(init []byte) *EEPROM {
	e := &EEPROM{}
	copy(e.mem[:], init)
	return e
}

// Bytes returns the EEPROM contents. It aliases the device memory.
func (e *EEPROM) Bytes() []byte { return e.mem[:] }

func (e *EEPROM) Start(addr uint8, read bool) bool {
	if !read {
		e.haveOff = false
	}
	return true
}

func (e *EEPROM) Send(b byte) bool {
	if !e.haveOff {
		e.off = b
		e.haveOff = true
		return true
	}
	e.mem[e.off] = b
	e.off++
	return true
}

func (e *EEPROM) Recv() byte {
	b := e.mem[e.off]
	e.off++
	return b
}

func (e *EEPROM) Stop() {}
