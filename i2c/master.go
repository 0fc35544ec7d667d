package i2c

import (
	"errors"

	"github.com/soypat/bitbang"
)

var errDataNack = errors.New("i2c: data byte not acknowledged")

// Master is a bit-bang I2C host. Drive applies a clock level and a data
// level, where sda=true releases the line, and returns the sampled data
// line level.
//
// Below is a Master driving an [OpenDrain] translator:
//
//	od := i2c.NewOpenDrain(engine)
//	m := i2c.Master{Drive: func(scl, sda bool) bool {
//		var ctl i2c.Control
//		if scl {
//			ctl |= i2c.ControlClock
//		}
//		if !sda {
//			ctl |= i2c.ControlOutputEnable
//		}
//		od.Write(ctl)
//		return od.Status()&i2c.StatusDataIn != 0
//	}}
type Master struct {
	Drive func(scl, sda bool) (sampled bool)
	scl   bool
	sda   bool
	init  bool
}

func (m *Master) set(scl, sda bool) bool {
	m.scl, m.sda, m.init = scl, sda, true
	return m.Drive(scl, sda)
}

// Start sends a START condition, or a repeated START when the bus is owned.
func (m *Master) Start() {
	if !m.init {
		m.set(true, true)
	}
	if !m.scl || !m.sda {
		m.set(false, true)
		m.set(true, true)
	}
	m.set(true, false)
	m.set(false, false)
}

// Stop sends a STOP condition and leaves the bus idle.
func (m *Master) Stop() {
	m.set(false, false)
	m.set(true, false)
	m.set(true, true)
}

// WriteByteAck sends b and reports whether the target acknowledged it.
func (m *Master) WriteByteAck(b byte) (ack bool) {
	for i := 7; i >= 0; i-- {
		m.writeBit(b>>i&1 != 0)
	}
	return !m.readBit()
}

// ReadByteAck receives a byte and acknowledges it when ack is true.
func (m *Master) ReadByteAck(ack bool) (b byte) {
	for i := 0; i < 8; i++ {
		b <<= 1
		if m.readBit() {
			b |= 1
		}
	}
	m.writeBit(!ack)
	return b
}

// Address sends a START followed by the 7-bit address and direction bit.
func (m *Master) Address(addr uint8, read bool) (ack bool) {
	m.Start()
	b := addr << 1
	if read {
		b |= 1
	}
	return m.WriteByteAck(b)
}

// Tx writes w to the target at addr and then, after a repeated START, reads
// len(r) bytes into r. Either buffer may be empty. The transaction always
// ends with a STOP.
func (m *Master) Tx(addr uint8, w, r []byte) (err error) {
	if addr > maxAddr {
		return bitbang.ErrInvalidAddr
	}
	defer m.Stop()
	if len(w) > 0 || len(r) == 0 {
		if !m.Address(addr, false) {
			return bitbang.ErrNoDevice
		}
		for _, b := range w {
			if !m.WriteByteAck(b) {
				return errDataNack
			}
		}
	}
	if len(r) == 0 {
		return nil
	}
	if !m.Address(addr, true) {
		return bitbang.ErrNoDevice
	}
	for i := range r {
		r[i] = m.ReadByteAck(i < len(r)-1)
	}
	return nil
}

func (m *Master) writeBit(bit bool) {
	m.set(false, bit)
	m.set(true, bit)
	m.set(false, bit)
}

func (m *Master) readBit() bool {
	m.set(false, true)
	bit := m.set(true, true)
	m.set(false, true)
	return bit
}
