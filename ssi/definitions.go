// Package ssi implements a bit-bang synchronous serial interface engine. The
// engine reconstructs SPI-like word transfers from individual clock and data
// line events and hands each completed word to a logical [Bus].
package ssi

import "log/slog"

//go:generate stringer -type=Polarity,Phase,State -linecomment -output stringers.go .

// MaxTransferSize is the largest word, in bits, an [Engine] can shift.
const MaxTransferSize = 31

// Polarity is the clock line level while the bus is idle (CPOL).
type Polarity uint8

const (
	IdleLow  Polarity = iota // CPOL=0
	IdleHigh                 // CPOL=1
)

// Phase selects on which clock edge of a cycle data is sampled (CPHA).
type Phase uint8

const (
	// SampleFirstEdge samples data on the idle to active clock edge and
	// drives the next bit on the active to idle edge.
	SampleFirstEdge Phase = iota // CPHA=0
	// SampleSecondEdge drives data on the idle to active clock edge and
	// samples it on the active to idle edge.
	SampleSecondEdge // CPHA=1
)

// State is the activity state of an [Engine].
type State uint8

const (
	StateIdle   State = iota // idle
	StateActive              // active
)

// Bus is the logical peripheral on the far side of the engine. Transfer
// completes one full-duplex exchange of the bits low bits of word and returns
// the response word. It is called exactly once per completed word.
type Bus interface {
	Transfer(word uint32, bits uint8) uint32
}

// Selector receives chip-select changes. csn is the active-low select level:
// false selects the device.
type Selector interface {
	Select(csn bool)
}

// Config describes the serial mode and word size of an [Engine].
type Config struct {
	Polarity Polarity
	Phase    Phase
	// TransferSize is the word size in bits, 1..[MaxTransferSize].
	TransferSize uint8
	Logger       *slog.Logger
}

// ModeConfig returns the configuration for SPI mode 0..3, where
// mode = CPOL<<1 | CPHA, with the given word size.
func ModeConfig(mode uint8, transferSize uint8) Config {
	if mode > 3 {
		panic("ssi: SPI mode out of range")
	}
	return Config{
		Polarity:     Polarity(mode >> 1),
		Phase:        Phase(mode & 1),
		TransferSize: transferSize,
	}
}

// Mode returns the SPI mode number of the configuration.
func (cfg Config) Mode() uint8 {
	return uint8(cfg.Polarity)<<1 | uint8(cfg.Phase)
}

func (cfg Config) check() {
	switch {
	case cfg.TransferSize < 1 || cfg.TransferSize > MaxTransferSize:
		panic("ssi: transfer size out of range")
	case cfg.Polarity > IdleHigh:
		panic("ssi: invalid clock polarity")
	case cfg.Phase > SampleSecondEdge:
		panic("ssi: invalid clock phase")
	}
}
