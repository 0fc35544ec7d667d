package ssi_test

import (
	"math/rand"
	"testing"

	"github.com/soypat/bitbang"
	"github.com/soypat/bitbang/internal/ltesto"
	"github.com/soypat/bitbang/ssi"
)

func TestEngineAllModesAllSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for mode := uint8(0); mode < 4; mode++ {
		for size := uint8(1); size <= ssi.MaxTransferSize; size++ {
			var bus ltesto.BusRecorder
			e := ssi.NewEngine(&bus, ssi.ModeConfig(mode, size))
			master := ltesto.SPIMaster{Pins: e, Mode: mode}
			want := rng.Uint32() & (1<<size - 1)
			master.Exchange(want, int(size))
			if len(bus.Transfers) != 1 {
				t.Fatalf("mode=%d size=%d: got %d transfers; want 1", mode, size, len(bus.Transfers))
			}
			got := bus.Transfers[0]
			if got.Word != want || got.Bits != size {
				t.Errorf("mode=%d size=%d: got word %#x/%d; want %#x/%d", mode, size, got.Word, got.Bits, want, size)
			}
			if mode&1 == 1 && e.State() != ssi.StateIdle {
				t.Errorf("mode=%d size=%d: got state %s after transfer; want idle", mode, size, e.State())
			}
		}
	}
}

func TestEngineScenarioB2(t *testing.T) {
	var bus ltesto.BusRecorder
	e := ssi.NewEngine(&bus, ssi.Config{Polarity: ssi.IdleLow, Phase: ssi.SampleFirstEdge, TransferSize: 8})
	for _, bit := range []bool{true, false, true, true, false, false, true, false} {
		e.SetLine(bitbang.LineDataOut, bit)
		e.SetLine(bitbang.LineClock, true)
		e.SetLine(bitbang.LineClock, false)
	}
	if len(bus.Transfers) != 1 {
		t.Fatalf("got %d transfers; want 1", len(bus.Transfers))
	}
	if bus.Transfers[0].Word != 0xB2 {
		t.Errorf("got word %#x; want 0xb2", bus.Transfers[0].Word)
	}
}

func TestEngineQueryIdempotent(t *testing.T) {
	for mode := uint8(0); mode < 4; mode++ {
		var bus ltesto.BusRecorder
		e := ssi.NewEngine(&bus, ssi.ModeConfig(mode, 8))
		master := ltesto.SPIMaster{Pins: e, Mode: mode}
		master.Exchange(0xa5, 8) // Load a response.
		master.Exchange(0x3, 3)  // Leave a transfer half done.
		state, pending, queued := e.State(), e.Pending(), e.Queued()
		clk := e.Config().Polarity == ssi.IdleHigh
		for i := 0; i < 4; i++ {
			e.SetLine(bitbang.LineDataIn, i%2 == 0)
			e.SetLine(bitbang.LineClock, clk)
			e.SetLine(bitbang.LineDataOut, i%2 == 1)
		}
		if e.State() != state || e.Pending() != pending || e.Queued() != queued {
			t.Errorf("mode=%d: queries changed engine: got %s/%d/%d; want %s/%d/%d",
				mode, e.State(), e.Pending(), e.Queued(), state, pending, queued)
		}
		if len(bus.Transfers) != 1 {
			t.Errorf("mode=%d: got %d transfers; want 1", mode, len(bus.Transfers))
		}
	}
}

func TestEngineEchoRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for mode := uint8(0); mode < 4; mode++ {
		for size := uint8(1); size <= ssi.MaxTransferSize; size++ {
			var bus ltesto.BusRecorder
			e := ssi.NewEngine(&bus, ssi.ModeConfig(mode, size))
			master := ltesto.SPIMaster{Pins: e, Mode: mode}
			mask := uint32(1)<<size - 1
			word := rng.Uint32() & mask
			master.Exchange(word, int(size))
			rx := master.Exchange(0, int(size))
			got, want := rx, word
			if mode&1 == 1 {
				// The first cycle of a second-edge transfer only arms the
				// engine so the response arrives one cycle late.
				got = rx >> 1
				want = word & (mask >> 1)
			}
			if got != want {
				t.Errorf("mode=%d size=%d: got echo %#x; want %#x", mode, size, got, want)
			}
		}
	}
}

func TestEngineSecondEdgeArms(t *testing.T) {
	var bus ltesto.BusRecorder
	e := ssi.NewEngine(&bus, ssi.ModeConfig(1, 4))
	e.SetLine(bitbang.LineDataOut, true)
	e.SetLine(bitbang.LineClock, true)
	if e.State() != ssi.StateActive || e.Pending() != 0 {
		t.Fatalf("got %s/%d after first edge; want active/0", e.State(), e.Pending())
	}
	e.SetLine(bitbang.LineClock, false)
	if e.Pending() != 1 {
		t.Fatalf("got %d pending bits after second edge; want 1", e.Pending())
	}
}

func TestEngineReset(t *testing.T) {
	var bus ltesto.BusRecorder
	e := ssi.NewEngine(&bus, ssi.ModeConfig(3, 8))
	master := ltesto.SPIMaster{Pins: e, Mode: 3}
	master.Exchange(0xff, 8)
	master.Exchange(1, 2)
	e.Reset()
	if e.State() != ssi.StateIdle || e.Pending() != 0 || e.Queued() != 0 {
		t.Errorf("got %s/%d/%d after reset; want idle/0/0", e.State(), e.Pending(), e.Queued())
	}
	if e.SetLine(bitbang.LineClock, true) {
		t.Error("clock at idle level should not shift out data")
	}
}

func TestEnginePanics(t *testing.T) {
	var bus ltesto.BusRecorder
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil bus", func() { ssi.NewEngine(nil, ssi.ModeConfig(0, 8)) }},
		{"zero size", func() { ssi.NewEngine(&bus, ssi.ModeConfig(0, 0)) }},
		{"oversize", func() { ssi.NewEngine(&bus, ssi.ModeConfig(0, 32)) }},
		{"polarity", func() { ssi.NewEngine(&bus, ssi.Config{Polarity: 2, TransferSize: 8}) }},
		{"phase", func() { ssi.NewEngine(&bus, ssi.Config{Phase: 2, TransferSize: 8}) }},
		{"mode", func() { ssi.ModeConfig(4, 8) }},
		{"line", func() { ssi.NewEngine(&bus, ssi.ModeConfig(0, 8)).SetLine(bitbang.LineData, true) }},
	}
	for _, test := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", test.name)
				}
			}()
			test.fn()
		}()
	}
}

func TestBridgeSignalsChanges(t *testing.T) {
	bus := ltesto.BusRecorder{Reply: func(uint32, uint8) uint32 { return 0b0101 }}
	e := ssi.NewEngine(&bus, ssi.ModeConfig(0, 4))
	var levels []bool
	br := ssi.NewBridge(e, func(level bool) { levels = append(levels, level) })
	clock := func(out bool) {
		br.SetDataOut(out)
		br.SetClock(true)
		br.SetClock(false)
	}
	for i := 0; i < 7; i++ {
		clock(false)
	}
	// Response 0101 shifted out LSB first: 1,0,1,0. An eighth cycle would
	// complete a second transfer and reload the response.
	want := []bool{true, false, true, false}
	if len(levels) != len(want) {
		t.Fatalf("got %d output changes %v; want %v", len(levels), levels, want)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("change %d: got %v; want %v", i, levels[i], want[i])
		}
	}
	if br.DataIn() != false {
		t.Error("got data-in high after last bit; want low")
	}
}
