// Package bitbang holds the definitions shared by the pin-level serial
// protocol engines in its subpackages: line identifiers, edge
// classification, generic error values and a bit-position aware validator
// used to report malformed frames.
package bitbang

//go:generate stringer -type=errGeneric,Edge,Line -linecomment -output stringers.go .

// Line identifies one digital line of a serial bus as seen by a protocol
// engine. Not every engine accepts every line.
type Line uint8

const (
	LineClock   Line = iota // clock
	LineDataOut             // data-out
	LineDataIn              // data-in
	// LineData is the single bidirectional data line of open-drain buses.
	LineData // data
)

// Edge is a transition of a single digital line between two consecutive
// observations of its level.
type Edge uint8

const (
	EdgeNone    Edge = iota // none
	EdgeRising              // rising
	EdgeFalling             // falling
)

// EdgeOf returns the transition observed when a line goes from level prev to level next.
func EdgeOf(prev, next bool) Edge {
	switch {
	case prev == next:
		return EdgeNone
	case next:
		return EdgeRising
	default:
		return EdgeFalling
	}
}

// B2U8 converts a line level to its bit value.
func B2U8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
