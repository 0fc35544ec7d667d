// Package spiflash implements a logical SPI NOR flash that sits on the far
// side of an [ssi.Engine]. It understands the common single-lane subset of
// the M25P command set: identification, status, read, page program and
// sector erase.
package spiflash

import (
	"log/slog"

	"github.com/soypat/bitbang/ssi"
)

//go:generate stringer -type=State -linecomment -output stringers.go .

// Command opcodes understood by [Flash].
const (
	CmdPageProgram  = 0x02
	CmdRead         = 0x03
	CmdWriteDisable = 0x04
	CmdReadStatus   = 0x05
	CmdWriteEnable  = 0x06
	CmdSectorErase  = 0x20
	CmdReadID       = 0x9f
)

// Status register bits.
const (
	StatusBusy         = 1 << 0 // never set, operations complete instantly.
	StatusWriteEnabled = 1 << 1
)

const (
	PageSize   = 256
	SectorSize = 4096
	// DefaultSize is the capacity of an M25P80 (8 Mbit).
	DefaultSize = 1 << 20
	addrBytes   = 3
)

// DefaultID is the JEDEC identification of an M25P80.
var DefaultID = [3]byte{0x20, 0x20, 0x14}

// State is the command decoding state of a selected [Flash].
type State uint8

const (
	StateDeselected State = iota // deselected
	StateCommand                 // command
	StateAddress                 // address
	StateData                    // data
	StateIgnore                  // ignore
)

// Config configures a [Flash]. Zero fields take the M25P80 defaults.
type Config struct {
	// Size is the capacity in bytes. It must be a multiple of [SectorSize].
	Size int
	ID   [3]byte
	// Data is the initial content. It is copied; missing bytes read as erased (0xff).
	Data   []byte
	Logger *slog.Logger
}

var (
	_ ssi.Bus      = (*Flash)(nil) // compile time guarantee of interface implementation.
	_ ssi.Selector = (*Flash)(nil)
)
