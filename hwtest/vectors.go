// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/RPG-coder-intc/rohd"
)

// ErrUnsupportedVectorValue is returned by CheckVectors when a vector
// cell holds a Go value of a kind it cannot convert to a logic value.
var ErrUnsupportedVectorValue = errors.New("hwtest: unsupported vector value")

// A Vector is one step of a test sequence: stimulus applied to named
// input signals and the values expected on named outputs afterwards.
//
// Cells accept int, uint64, bool, rohd.Bit, rohd.LogicValue and Verilog
// style strings like "10xz". In an expected value, X and Z bits are
// wildcards matching anything; 0 and 1 bits must match exactly.
//
type Vector struct {
	In  map[string]any
	Out map[string]any
}

// CheckVectors applies the vectors in order to signals registered with
// sim, looked up by name. After the stimulus of each vector, the
// simulation settles when clk is nil, or runs just past the next rising
// edge of clk otherwise, and the outputs are compared. The first
// mismatch or error stops the run.
//
func CheckVectors(sim *rohd.Simulator, clk *rohd.Signal, vectors []Vector) error {
	for i, vec := range vectors {
		for name, cell := range vec.In {
			sig := sim.Signal(name)
			if sig == nil {
				return errors.Errorf("vector %d: unknown signal %q", i, name)
			}
			v, err := toValue(sig.Width(), cell)
			if err != nil {
				return errors.Wrapf(err, "vector %d: signal %q", i, name)
			}
			sig.PutValue(v)
		}
		var err error
		if clk == nil {
			err = sim.Settle()
		} else {
			err = sim.RunUntilEdge(clk, rohd.Posedge)
		}
		if err != nil {
			return errors.Wrapf(err, "vector %d", i)
		}
		for name, cell := range vec.Out {
			sig := sim.Signal(name)
			if sig == nil {
				return errors.Errorf("vector %d: unknown signal %q", i, name)
			}
			want, err := toValue(sig.Width(), cell)
			if err != nil {
				return errors.Wrapf(err, "vector %d: signal %q", i, name)
			}
			if got := sig.Value(); !matches(want, got) {
				return errors.Errorf("vector %d: %s = %s, want %s", i, name, got, want)
			}
		}
	}
	return nil
}

// RunVectors runs CheckVectors and fails the test on error.
func RunVectors(t *testing.T, sim *rohd.Simulator, clk *rohd.Signal, vectors []Vector) {
	t.Helper()
	if err := CheckVectors(sim, clk, vectors); err != nil {
		t.Fatal(err)
	}
}

// toValue converts a vector cell to a logic value of the given width.
func toValue(width int, cell any) (rohd.LogicValue, error) {
	switch v := cell.(type) {
	case rohd.LogicValue:
		if v.Width() != width {
			return rohd.LogicValue{}, errors.Errorf("width mismatch: value is %d bits, signal is %d", v.Width(), width)
		}
		return v, nil
	case string:
		lv, err := rohd.Parse(v)
		if err != nil {
			return rohd.LogicValue{}, err
		}
		if lv.Width() != width {
			return rohd.LogicValue{}, errors.Errorf("width mismatch: %q is %d bits, signal is %d", v, lv.Width(), width)
		}
		return lv, nil
	case rohd.Bit:
		return rohd.Filled(width, v), nil
	case bool:
		if v {
			return rohd.FromUint64(1, width), nil
		}
		return rohd.FromUint64(0, width), nil
	case uint64:
		return rohd.FromUint64(v, width), nil
	case int:
		if v < 0 {
			return rohd.LogicValue{}, errors.Wrapf(ErrUnsupportedVectorValue, "negative int %d", v)
		}
		return rohd.FromUint64(uint64(v), width), nil
	}
	return rohd.LogicValue{}, errors.Wrapf(ErrUnsupportedVectorValue, "%T", cell)
}

// matches reports whether got fits the expected value want, treating X
// and Z bits of want as wildcards.
func matches(want, got rohd.LogicValue) bool {
	for i := 0; i < want.Width(); i++ {
		switch wb := want.Bit(i); wb {
		case rohd.Undef, rohd.HiZ:
		default:
			if got.Bit(i) != wb {
				return false
			}
		}
	}
	return true
}
