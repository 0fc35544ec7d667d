package i2c

import (
	"github.com/sigurn/crc8"
)

var _ Device = (*SMBusDevice)(nil) // compile time guarantee of interface implementation.

// pecTable is the SMBus 2.0 packet error code CRC-8: polynomial x^8+x^2+x+1,
// zero initial value, no reflection.
var pecTable = crc8.MakeTable(crc8.CRC8)

// PEC returns the SMBus packet error code of the bytes of a transaction,
// address bytes included.
func PEC(b []byte) uint8 {
	return crc8.Checksum(b, pecTable)
}

// SMBusConfig configures an [SMBusDevice].
type SMBusConfig struct {
	// PEC enables packet error checking on word reads and writes.
	PEC bool
	// Regs holds the initial register values.
	Regs [256]uint16
}

// SMBusDevice is an SMBus device with 256 word registers selected by a
// command byte. It supports:
//
//   - send byte: command and the PEC byte when enabled, selects the
//     register for later reads.
//   - write word: command, low byte, high byte and the PEC byte when enabled.
//   - read word: write of the command, repeated START, then low byte, high
//     byte and the PEC byte when enabled. A read without the write phase
//     uses the last command.
//
// With PEC enabled every send byte and write word must end in a PEC byte;
// one that is missing or wrong discards the write and counts in
// [SMBusDevice.PECErrors]. The command phase of a read word carries no PEC.
type SMBusDevice struct {
	regs [256]uint16
	pec  bool
	cmd  byte

	// frame holds every byte of the transaction for PEC calculation.
	frame   [8]byte
	nframe  int
	nwrite  int
	writing bool
	out     [3]byte
	nout    int
	iout    int

	pecErrors int
}

// NewSMBusDevice returns a device configured by cfg.
func NewSMBusDevice(cfg SMBusConfig) *SMBusDevice {
	return &SMBusDevice{regs: cfg.Regs, pec: cfg.PEC}
}

// Reg returns the value of register cmd.
func (d *SMBusDevice) Reg(cmd byte) uint16 { return d.regs[cmd] }

// SetReg sets the value of register cmd.
func (d *SMBusDevice) SetReg(cmd byte, v uint16) { d.regs[cmd] = v }

// PECErrors returns how many writes were discarded for a bad packet error code.
func (d *SMBusDevice) PECErrors() int { return d.pecErrors }

func (d *SMBusDevice) Start(addr uint8, read bool) bool {
	if !read {
		d.nframe = 0
		d.nwrite = 0
		d.writing = true
		d.push(addr << 1)
		return true
	}
	if d.writing && d.nwrite > 0 {
		d.cmd = d.frame[1]
	} else {
		d.nframe = 0
	}
	d.writing = false
	d.push(addr<<1 | 1)
	v := d.regs[d.cmd]
	d.out[0], d.out[1] = byte(v), byte(v>>8)
	d.push(d.out[0])
	d.push(d.out[1])
	d.nout, d.iout = 2, 0
	if d.pec {
		d.out[2] = PEC(d.frame[:d.nframe])
		d.nout = 3
	}
	return true
}

func (d *SMBusDevice) Send(b byte) bool {
	if !d.writing || d.nframe == len(d.frame) || d.nwrite == 4 {
		return false
	}
	d.push(b)
	d.nwrite++
	return true
}

func (d *SMBusDevice) Recv() byte {
	if d.iout >= d.nout {
		return 0xff
	}
	b := d.out[d.iout]
	d.iout++
	return b
}

func (d *SMBusDevice) Stop() {
	if !d.writing {
		return
	}
	d.writing = false
	data := d.frame[1:d.nframe]
	if d.pec && len(data) > 0 {
		n := len(data)
		if n%2 == 1 || PEC(d.frame[:d.nframe-1]) != data[n-1] {
			d.pecErrors++
			return
		}
		data = data[:n-1]
	}
	switch len(data) {
	case 1:
		d.cmd = data[0]
	case 3:
		d.regs[data[0]] = uint16(data[1]) | uint16(data[2])<<8
		d.cmd = data[0]
	}
}

func (d *SMBusDevice) push(b byte) {
	if d.nframe < len(d.frame) {
		d.frame[d.nframe] = b
		d.nframe++
	}
}
