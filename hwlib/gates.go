// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable conditional blocks for
// rohd: gates, flip flops, counters, multiplexers and encoders. Builders
// create the output signals, return them along with the block driving
// them, and leave registration to the caller.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package hwlib

import (
	"github.com/RPG-coder-intc/rohd"
)

// NotGate returns a combinational inverter.
//
//	Inputs: a
//	Outputs: out
//	Function: out = ~a
//
func NotGate(name string, a *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	out := rohd.NewSignal(name, a.Width())
	blk, err := rohd.Combinational(rohd.Assign(out, rohd.Not(a)))
	return out, blk, err
}

// AndGate returns a combinational AND over two equal-width signals.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a & b
//
func AndGate(name string, a, b *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	out := rohd.NewSignal(name, a.Width())
	blk, err := rohd.Combinational(rohd.Assign(out, rohd.And(a, b)))
	return out, blk, err
}

// OrGate returns a combinational OR over two equal-width signals.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a | b
//
func OrGate(name string, a, b *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	out := rohd.NewSignal(name, a.Width())
	blk, err := rohd.Combinational(rohd.Assign(out, rohd.Or(a, b)))
	return out, blk, err
}

// XorGate returns a combinational XOR over two equal-width signals.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a ^ b
//
func XorGate(name string, a, b *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	out := rohd.NewSignal(name, a.Width())
	blk, err := rohd.Combinational(rohd.Assign(out, rohd.Xor(a, b)))
	return out, blk, err
}
