// Package script runs pin-event scripts against LiteX register blocks. A
// script is a sequence of lines, each one command with its arguments split
// by POSIX shell rules. Text after # is a comment.
//
//	write ssi 2 1                 # enable bit-banging
//	spi ssi 0x9f read 3           # JEDEC ID
//	expect 0x20 0x20 0x14
//	i2c i2c 0x50 0x00 read 4      # EEPROM offset 0
//	mdio ethphy read 1 2 0x0022   # PHY ID1 with expected value
//
// Commands:
//
//	write DEV REG VALUE
//	read DEV REG [WANT]
//	spi DEV BYTE... [read N]
//	i2c DEV ADDR BYTE... [read N]
//	mdio DEV read PHY REG [WANT]
//	mdio DEV write PHY REG VALUE
//	expect BYTE...
//	echo TEXT...
//
// REG is a register index. Numbers accept Go literal prefixes (0x, 0b, 0o).
package script

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/buildkite/shellwords"
	"github.com/pkg/errors"

	"github.com/soypat/bitbang"
	"github.com/soypat/bitbang/i2c"
	"github.com/soypat/bitbang/litex"
	"github.com/soypat/bitbang/mdio"
)

// Runner executes script commands. It is not safe for concurrent use.
type Runner struct {
	out  io.Writer
	devs map[string]litex.Device
	spi  map[string]*litex.SPIHost
	i2c  map[string]*i2c.Master
	mdio map[string]*mdio.Station
	// last holds the bytes returned by the last spi, i2c, read or mdio command.
	last []byte
	logger
}

// NewRunner returns a runner printing command results to out. out may be nil.
func NewRunner(out io.Writer, log *slog.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		out:    out,
		devs:   make(map[string]litex.Device),
		spi:    make(map[string]*litex.SPIHost),
		i2c:    make(map[string]*i2c.Master),
		mdio:   make(map[string]*mdio.Station),
		logger: logger{log: log},
	}
}

// Attach names a register block for use in scripts.
func (r *Runner) Attach(name string, dev litex.Device) error {
	if name == "" || dev == nil {
		return bitbang.ErrInvalidConfig
	} else if _, ok := r.devs[name]; ok {
		return errors.Errorf("device %q already attached", name)
	}
	r.devs[name] = dev
	return nil
}

// Last returns the bytes produced by the last data returning command. Each
// command allocates its own result so earlier slices stay valid.
func (r *Runner) Last() []byte { return r.last }

// Run executes every line read from rd and stops at the first failing line.
func (r *Runner) Run(rd io.Reader) error {
	scan := bufio.NewScanner(rd)
	lineno := 0
	for scan.Scan() {
		lineno++
		line := scan.Text()
		if err := r.Exec(line); err != nil {
			return errors.Wrapf(err, "line %d %q", lineno, strings.TrimSpace(line))
		}
	}
	return errors.Wrap(scan.Err(), "reading script")
}

// Exec executes a single script line. Blank and comment lines are no-ops.
func (r *Runner) Exec(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	args, err := shellwords.SplitPosix(line)
	if err != nil {
		return errors.Wrap(err, "split")
	} else if len(args) == 0 {
		return nil
	}
	r.debug("script:exec", slog.String("cmd", args[0]), slog.Int("nargs", len(args)-1))
	cmd, args := args[0], args[1:]
	switch cmd {
	case "write":
		return r.write(args)
	case "read":
		return r.read(args)
	case "spi":
		return r.spiTx(args)
	case "i2c":
		return r.i2cTx(args)
	case "mdio":
		return r.mdioAccess(args)
	case "expect":
		return r.expect(args)
	case "echo":
		_, err := fmt.Fprintln(r.out, strings.Join(args, " "))
		return err
	}
	return errors.Errorf("unknown command %q", cmd)
}

func (r *Runner) write(args []string) error {
	if len(args) != 3 {
		return errUsage("write DEV REG VALUE")
	}
	dev, err := r.device(args[0])
	if err != nil {
		return err
	}
	reg, err := parseUint(args[1], 8)
	if err != nil {
		return err
	}
	v, err := parseUint(args[2], 32)
	if err != nil {
		return err
	}
	dev.Write(litex.RegAddr(int(reg)), uint32(v))
	return nil
}

func (r *Runner) read(args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return errUsage("read DEV REG [WANT]")
	}
	dev, err := r.device(args[0])
	if err != nil {
		return err
	}
	reg, err := parseUint(args[1], 8)
	if err != nil {
		return err
	}
	v := dev.Read(litex.RegAddr(int(reg)))
	r.last = []byte{byte(v)}
	fmt.Fprintf(r.out, "%s[%d] = %#02x\n", args[0], reg, v)
	if len(args) == 3 {
		return checkWant(args[2], uint64(v), 32)
	}
	return nil
}

func (r *Runner) spiTx(args []string) error {
	if len(args) < 1 {
		return errUsage("spi DEV BYTE... [read N]")
	}
	dev, err := r.device(args[0])
	if err != nil {
		return err
	}
	w, nread, err := parseTx(args[1:])
	if err != nil {
		return err
	}
	host, ok := r.spi[args[0]]
	if !ok {
		host = litex.NewSPIHost(dev)
		r.spi[args[0]] = host
	}
	r.last = make([]byte, nread)
	host.Tx(w, r.last)
	r.printLast(args[0])
	return nil
}

func (r *Runner) i2cTx(args []string) error {
	if len(args) < 2 {
		return errUsage("i2c DEV ADDR BYTE... [read N]")
	}
	dev, err := r.device(args[0])
	if err != nil {
		return err
	}
	addr, err := parseUint(args[1], 7)
	if err != nil {
		return err
	}
	w, nread, err := parseTx(args[2:])
	if err != nil {
		return err
	}
	host, ok := r.i2c[args[0]]
	if !ok {
		host = litex.NewI2CHost(dev)
		r.i2c[args[0]] = host
	}
	r.last = make([]byte, nread)
	if err := host.Tx(uint8(addr), w, r.last); err != nil {
		return errors.Wrapf(err, "i2c address %#02x", addr)
	}
	r.printLast(args[0])
	return nil
}

func (r *Runner) mdioAccess(args []string) error {
	const usage = "mdio DEV read PHY REG [WANT] | mdio DEV write PHY REG VALUE"
	if len(args) < 4 {
		return errUsage(usage)
	}
	dev, err := r.device(args[0])
	if err != nil {
		return err
	}
	sta, ok := r.mdio[args[0]]
	if !ok {
		sta = litex.NewMDIOHost(dev)
		r.mdio[args[0]] = sta
	}
	phyAddr, err := parseUint(args[2], 5)
	if err != nil {
		return err
	}
	reg, err := parseUint(args[3], 5)
	if err != nil {
		return err
	}
	switch {
	case args[1] == "read" && len(args) <= 5:
		v, err := sta.Read(uint8(phyAddr), 0, uint16(reg))
		if err != nil {
			return err
		}
		r.last = []byte{byte(v >> 8), byte(v)}
		fmt.Fprintf(r.out, "%s phy %d reg %d = %#04x\n", args[0], phyAddr, reg, v)
		if len(args) == 5 {
			return checkWant(args[4], uint64(v), 16)
		}
		return nil
	case args[1] == "write" && len(args) == 5:
		v, err := parseUint(args[4], 16)
		if err != nil {
			return err
		}
		return sta.Write(uint8(phyAddr), 0, uint16(reg), uint16(v))
	}
	return errUsage(usage)
}

func (r *Runner) expect(args []string) error {
	want, err := parseBytes(args)
	if err != nil {
		return err
	}
	if string(want) != string(r.last) {
		return errors.Errorf("got % x; want % x", r.last, want)
	}
	return nil
}

func (r *Runner) device(name string) (litex.Device, error) {
	dev, ok := r.devs[name]
	if !ok {
		return nil, errors.Errorf("no device named %q", name)
	}
	return dev, nil
}

func (r *Runner) printLast(name string) {
	fmt.Fprintf(r.out, "%s: % x\n", name, r.last)
}

func errUsage(usage string) error {
	return errors.New("usage: " + usage)
}

func checkWant(s string, got uint64, bits int) error {
	want, err := parseUint(s, bits)
	if err != nil {
		return err
	}
	if got != want {
		return errors.Errorf("got %#x; want %#x", got, want)
	}
	return nil
}

// parseTx parses "BYTE... [read N]".
func parseTx(args []string) (w []byte, nread int, err error) {
	if n := len(args); n >= 2 && args[n-2] == "read" {
		v, err := parseUint(args[n-1], 16)
		if err != nil {
			return nil, 0, err
		}
		nread = int(v)
		args = args[:n-2]
	}
	w, err = parseBytes(args)
	return w, nread, err
}

func parseBytes(args []string) ([]byte, error) {
	b := make([]byte, 0, len(args))
	for _, arg := range args {
		v, err := parseUint(arg, 8)
		if err != nil {
			return nil, err
		}
		b = append(b, byte(v))
	}
	return b, nil
}

func parseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, errors.Errorf("bad %d-bit number %q", bits, s)
	}
	return v, nil
}
