// Package i2c implements the target side of a bit-banged I2C bus: a pin
// level engine that decodes START, STOP, address and data bits into calls
// on a logical bus, the open-drain translation from a control register
// write to pin levels, and simple SMBus devices to attach to the bus.
package i2c

//go:generate stringer -type=State -linecomment -output stringers.go .

// Control is the word written to a bit-bang I2C master register.
type Control uint8

const (
	ControlClock        Control = 1 << iota // SCL
	ControlOutputEnable                     // SDA output enable
	ControlDataOut                          // SDA output level
)

// Status is the word read back from a bit-bang I2C master register.
type Status uint8

// StatusDataIn is the sampled SDA level.
const StatusDataIn Status = 1 << 0

// State is the bus state seen by an [Engine].
type State uint8

const (
	StateStopped   State = iota // stopped
	StateSending                // sending
	StateWaitAck                // wait-ack
	StateReceiving              // receiving
	StateSendAck                // send-ack
	StateSentNack               // sent-nack
)

// Target receives the logical transactions decoded by an [Engine].
// Methods returning ack answer the acknowledge bit slot: false is a NACK.
type Target interface {
	// StartTransfer is called after a START or repeated START with the 7-bit address.
	StartTransfer(addr uint8, read bool) (ack bool)
	// Send is called for every byte written by the master.
	Send(b byte) (ack bool)
	// Recv returns the next byte for the master to read.
	Recv() byte
	// Nack signals the master did not acknowledge the last byte read.
	Nack()
	// EndTransfer is called on STOP and after a NACK from the target.
	EndTransfer()
}

// Device is a target attached to a [Bus] at a fixed address.
type Device interface {
	// Start is called when the device is addressed, after every START and
	// repeated START. addr is the address the device answered at.
	Start(addr uint8, read bool) (ack bool)
	Send(b byte) (ack bool)
	Recv() byte
	// Stop ends the transaction.
	Stop()
}

const maxAddr = 0x7f
