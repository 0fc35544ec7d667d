package i2c

import (
	"log/slog"

	"github.com/soypat/bitbang"
)

var _ Target = (*Bus)(nil) // compile time guarantee of interface implementation.

// Bus is a logical I2C bus routing the transactions of an [Engine] to
// devices by 7-bit address. Unknown addresses are not acknowledged.
type Bus struct {
	devs [maxAddr + 1]Device
	cur  Device
	logger
}

// SetLogger sets the logger used to report bus transactions.
func (b *Bus) SetLogger(log *slog.Logger) { b.logger.log = log }

// Attach places dev at the 7-bit address addr.
func (b *Bus) Attach(addr uint8, dev Device) error {
	if dev == nil {
		return bitbang.ErrInvalidConfig
	} else if addr > maxAddr || b.devs[addr] != nil {
		return bitbang.ErrInvalidAddr
	}
	b.devs[addr] = dev
	return nil
}

// Device returns the device at addr or nil.
func (b *Bus) Device(addr uint8) Device {
	if addr > maxAddr {
		return nil
	}
	return b.devs[addr]
}

func (b *Bus) StartTransfer(addr uint8, read bool) (ack bool) {
	dev := b.Device(addr)
	if b.cur != nil && b.cur != dev {
		b.cur.Stop()
	}
	b.cur = dev
	if dev == nil {
		b.debug("i2c:no-device", slog.Uint64("addr", uint64(addr)))
		return false
	}
	return dev.Start(addr, read)
}

func (b *Bus) Send(c byte) (ack bool) {
	if b.cur == nil {
		return false
	}
	return b.cur.Send(c)
}

func (b *Bus) Recv() byte {
	if b.cur == nil {
		return 0xff
	}
	return b.cur.Recv()
}

func (b *Bus) Nack() {
	b.trace("i2c:master-nack")
}

func (b *Bus) EndTransfer() {
	if b.cur != nil {
		b.cur.Stop()
		b.cur = nil
	}
}
