package i2c

import "github.com/soypat/bitbang"

// Lines is the pin interface of an I2C engine.
type Lines interface {
	SetLine(line bitbang.Line, level bool) bool
}

// OpenDrain translates writes of a bit-bang master control register into
// open-drain SCL and SDA levels. SDA is only pulled low while output
// enable is set; otherwise the line is released and the level the bus
// settles at is captured in [OpenDrain.Status].
type OpenDrain struct {
	lines  Lines
	status Status
}

// NewOpenDrain returns a translator driving lines.
func NewOpenDrain(lines Lines) *OpenDrain {
	if lines == nil {
		panic("nil lines")
	}
	return &OpenDrain{lines: lines}
}

// Write applies one control word, clock first, and returns the SDA level
// reported by the engine.
func (od *OpenDrain) Write(ctl Control) (sampled bool) {
	od.lines.SetLine(bitbang.LineClock, ctl&ControlClock != 0)
	oe := ctl&ControlOutputEnable != 0
	sampled = od.lines.SetLine(bitbang.LineData, !oe || ctl&ControlDataOut != 0)
	if !oe {
		od.status &^= StatusDataIn
		if sampled {
			od.status |= StatusDataIn
		}
	}
	return sampled
}

// Reset clears the captured status.
func (od *OpenDrain) Reset() { od.status = 0 }

// Status returns the status word holding the last SDA level sampled with
// the line released.
func (od *OpenDrain) Status() Status { return od.status }
