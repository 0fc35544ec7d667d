package i2c

import (
	"log/slog"

	"github.com/soypat/bitbang"
	"github.com/soypat/bitbang/internal"
)

// Engine observes SCL and SDA levels and plays the target role of every
// transaction on the bus through a [Target]. Levels returned by
// [Engine.SetLine] are the wired AND of the master's SDA level and the
// level driven by the target, so a released line reads back whatever the
// target drives.
//
// Target driven bits change on SCL rising edges and the target releases SDA
// on every SCL falling edge.
type Engine struct {
	target    Target
	state     State
	shift     internal.ShiftReg[uint8]
	addressed bool
	read      bool
	lastClock bool
	lastData  bool
	deviceOut bool
	logger
}

// Config configures an [Engine].
type Config struct {
	Logger *slog.Logger
}

// NewEngine returns an engine with an idle bus, both lines high.
func NewEngine(target Target, cfg Config) *Engine {
	if target == nil {
		panic("i2c: nil target")
	}
	e := &Engine{target: target, logger: logger{log: cfg.Logger}}
	e.Reset()
	return e
}

// Reset returns the engine to an idle bus without calling the target.
func (e *Engine) Reset() {
	e.state = StateStopped
	e.shift.Reset()
	e.addressed = false
	e.read = false
	e.lastClock = true
	e.lastData = true
	e.deviceOut = true
}

// State returns the current bus state.
func (e *Engine) State() State { return e.state }

// SetLine sets the master level of [bitbang.LineClock] (SCL) or
// [bitbang.LineData] (SDA) and returns the resulting SDA level.
// It panics on any other line.
func (e *Engine) SetLine(line bitbang.Line, level bool) bool {
	switch line {
	case bitbang.LineData:
		return e.setData(level)
	case bitbang.LineClock:
		return e.setClock(level)
	}
	panic("i2c: invalid line " + line.String())
}

func (e *Engine) setData(level bool) bool {
	if level == e.lastData {
		return e.nop()
	}
	e.lastData = level
	if !e.lastClock {
		return e.nop()
	}
	if !level {
		e.trace("i2c:start", slog.Bool("repeated", e.addressed))
		e.state = StateSending
		e.shift.Reset()
		e.addressed = false
	} else {
		e.trace("i2c:stop")
		e.enterStop()
	}
	return e.ret(true)
}

func (e *Engine) setClock(level bool) bool {
	if level == e.lastClock {
		return e.nop()
	}
	e.lastClock = level
	if !level {
		// Bits are set or read on the rising edge; release SDA on the falling edge.
		return e.ret(true)
	}
	switch e.state {
	case StateStopped, StateSentNack:
		return e.ret(true)

	case StateSending:
		e.shift.ShiftIn(e.lastData)
		if e.shift.Len() == 8 {
			e.state = StateWaitAck
		}
		return e.ret(true)

	case StateWaitAck:
		return e.ret(!e.ackByte(e.shift.Value()))

	case StateReceiving:
		if e.shift.Len() == 0 {
			b := e.target.Recv()
			e.debug("i2c:recv", slog.Uint64("b", uint64(b)))
			e.shift.Load(b, 8)
		}
		bit, _ := e.shift.PopHigh()
		if e.shift.Len() == 0 {
			e.state = StateSendAck
		}
		return e.ret(bit)

	case StateSendAck:
		if e.lastData {
			e.debug("i2c:nacked")
			e.state = StateSentNack
			e.target.Nack()
		} else {
			e.state = StateReceiving
		}
		return e.ret(true)
	}
	panic("i2c: invalid state " + e.state.String())
}

// ackByte hands a complete byte to the target and returns its acknowledge.
func (e *Engine) ackByte(b byte) (ack bool) {
	e.shift.Reset()
	if !e.addressed {
		e.addressed = true
		e.read = b&1 != 0
		ack = e.target.StartTransfer(b>>1, e.read)
		e.debug("i2c:address", slog.Uint64("addr", uint64(b>>1)), slog.Bool("read", e.read), slog.Bool("ack", ack))
	} else {
		ack = e.target.Send(b)
		e.debug("i2c:send", slog.Uint64("b", uint64(b)), slog.Bool("ack", ack))
	}
	switch {
	case !ack:
		e.enterStop()
	case e.read:
		e.state = StateReceiving
	default:
		e.state = StateSending
	}
	return ack
}

func (e *Engine) enterStop() {
	if e.addressed {
		e.target.EndTransfer()
	}
	e.addressed = false
	e.state = StateStopped
}

func (e *Engine) ret(level bool) bool {
	e.deviceOut = level
	return level && e.lastData
}

func (e *Engine) nop() bool {
	return e.deviceOut && e.lastData
}
