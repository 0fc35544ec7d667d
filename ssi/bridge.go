package ssi

import "github.com/soypat/bitbang"

// Bridge connects an [Engine] to GPIO-style lines: clock and data-out are
// inputs and data-in is an output that is only signalled on change.
type Bridge struct {
	e      *Engine
	output func(level bool)
	level  bool
}

// NewBridge returns a bridge feeding e. output is called with the new
// data-in level every time it changes.
func NewBridge(e *Engine, output func(level bool)) *Bridge {
	if e == nil || output == nil {
		panic("nil callback")
	}
	return &Bridge{e: e, output: output, level: e.SetLine(bitbang.LineDataIn, false)}
}

// SetClock forwards a clock line level.
func (b *Bridge) SetClock(level bool) { b.update(b.e.SetLine(bitbang.LineClock, level)) }

// SetDataOut forwards a data-out line level.
func (b *Bridge) SetDataOut(level bool) { b.update(b.e.SetLine(bitbang.LineDataOut, level)) }

// DataIn returns the last data-in level signalled.
func (b *Bridge) DataIn() bool { return b.level }

func (b *Bridge) update(level bool) {
	if level != b.level {
		b.level = level
		b.output(level)
	}
}
