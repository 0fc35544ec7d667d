package bitbang_test

import (
	"errors"
	"testing"

	"github.com/soypat/bitbang"
)

func TestEdgeOf(t *testing.T) {
	for _, test := range []struct {
		prev, next bool
		want       bitbang.Edge
	}{
		{false, false, bitbang.EdgeNone},
		{true, true, bitbang.EdgeNone},
		{false, true, bitbang.EdgeRising},
		{true, false, bitbang.EdgeFalling},
	} {
		if got := bitbang.EdgeOf(test.prev, test.next); got != test.want {
			t.Errorf("EdgeOf(%v, %v): got %s; want %s", test.prev, test.next, got, test.want)
		}
	}
}

func TestValidatorFirstErrorOnly(t *testing.T) {
	var v bitbang.Validator
	v.AddBitPosErr(14, 2, bitbang.ErrUnsupported)
	v.AddBitPosErr(0, 2, bitbang.ErrInvalidAddr)
	err := v.Err()
	if err == nil {
		t.Fatal("got nil error")
	}
	const want = "unsupported at bits 14..15"
	if err.Error() != want {
		t.Errorf("got %q; want %q", err.Error(), want)
	}
	var bpe *bitbang.BitPosErr
	if !errors.As(err, &bpe) || bpe.BitStart != 14 || bpe.BitLen != 2 {
		t.Errorf("got %#v; want bit position 14/2", bpe)
	}
	if !errors.Is(err, bitbang.ErrUnsupported) {
		t.Error("error does not unwrap to ErrUnsupported")
	}
	v.ResetErr()
	if v.HasError() || v.Err() != nil {
		t.Error("errors left after reset")
	}
}

func TestValidatorAllErrors(t *testing.T) {
	var v bitbang.Validator
	v.SetFlags(bitbang.ValidateAllErrors)
	v.AddBitPosErr(12, 2, bitbang.ErrUnsupported)
	v.AddError(bitbang.ErrBadCRC)
	err := v.Err()
	if !errors.Is(err, bitbang.ErrUnsupported) || !errors.Is(err, bitbang.ErrBadCRC) {
		t.Errorf("got %v; want both errors joined", err)
	}
}

func TestErrorStrings(t *testing.T) {
	if got := bitbang.ErrNoDevice.Error(); got != "no device at address" {
		t.Errorf("got %q", got)
	}
	if got := bitbang.LineData.String(); got != "data" {
		t.Errorf("got line name %q; want data", got)
	}
}
