package ssi

import (
	"log/slog"

	"github.com/soypat/bitbang"
	"github.com/soypat/bitbang/internal"
)

// Engine is the shift-register state machine of a bit-bang SSI device. It
// is driven through [Engine.SetLine] one line event at a time and is not
// safe for concurrent use.
//
// Input bits are accumulated in arrival order so the first bit sent ends up
// as the most significant bit of the word given to [Bus.Transfer]. The word
// returned by the bus is shifted out least significant bit first during the
// following transfer.
type Engine struct {
	bus      Bus
	size     uint8
	polarity Polarity
	phase    Phase
	state    State

	lastClock bool
	lastOut   bool
	lastIn    bool

	in  internal.ShiftReg[uint32]
	out internal.ShiftReg[uint32]
	logger
}

// NewEngine returns an idle engine attached to bus. The engine never owns bus.
// It panics if bus is nil or cfg is invalid.
func NewEngine(bus Bus, cfg Config) *Engine {
	if bus == nil {
		panic("ssi: nil bus")
	}
	cfg.check()
	e := &Engine{
		bus:      bus,
		size:     cfg.TransferSize,
		polarity: cfg.Polarity,
		phase:    cfg.Phase,
		logger:   logger{log: cfg.Logger},
	}
	e.Reset()
	return e
}

// Reset returns the engine to its construction state: clock at the idle
// level, data lines low and both shift registers empty.
func (e *Engine) Reset() {
	e.state = StateIdle
	e.lastClock = e.polarity == IdleHigh
	e.lastOut = false
	e.lastIn = false
	e.in.Reset()
	e.out.Reset()
}

// SetLine sets line to level and returns the data-in level presented by the
// device afterwards. Only a clock level change shifts data. Setting
// [bitbang.LineDataIn] is a query. SetLine panics on any other line.
func (e *Engine) SetLine(line bitbang.Line, level bool) bool {
	switch line {
	case bitbang.LineDataIn:
		return e.lastIn
	case bitbang.LineDataOut:
		e.lastOut = level
		return e.lastIn
	case bitbang.LineClock:
		if level == e.lastClock {
			return e.lastIn
		}
		return e.clockEdge(level)
	}
	panic("ssi: invalid line " + line.String())
}

func (e *Engine) clockEdge(level bool) bool {
	toActive := level != (e.polarity == IdleHigh)
	e.lastClock = level
	if e.state == StateIdle {
		e.state = StateActive
		e.in.Reset()
		if e.phase == SampleSecondEdge {
			e.trace("ssi:arm", slog.Bool("clk", level))
			return e.lastIn
		}
	}
	if toActive == (e.phase == SampleFirstEdge) {
		e.in.ShiftIn(e.lastOut)
	} else if bit, ok := e.out.PopLow(); ok {
		e.lastIn = bit
	}
	if e.logenabled(internal.LevelTrace) {
		e.trace("ssi:edge",
			slog.Bool("clk", level),
			slog.Bool("mosi", e.lastOut),
			slog.Bool("miso", e.lastIn),
			slog.Int("pending", e.in.Len()),
		)
	}
	if e.in.Len() == int(e.size) {
		e.transfer()
	}
	return e.lastIn
}

func (e *Engine) transfer() {
	tx := e.in.Value()
	rx := e.bus.Transfer(tx, e.size)
	e.out.Load(rx, int(e.size))
	e.in.Reset()
	e.state = StateIdle
	e.debug("ssi:transfer",
		slog.Uint64("tx", uint64(tx)),
		slog.Uint64("rx", uint64(rx)),
		slog.Uint64("bits", uint64(e.size)),
	)
}

// State returns the activity state.
func (e *Engine) State() State { return e.state }

// Pending returns the number of bits received for the current word.
func (e *Engine) Pending() int { return e.in.Len() }

// Queued returns the number of response bits yet to be shifted out.
func (e *Engine) Queued() int { return e.out.Len() }

// Config returns the configuration the engine was built with, without the logger.
func (e *Engine) Config() Config {
	return Config{Polarity: e.polarity, Phase: e.phase, TransferSize: e.size}
}
