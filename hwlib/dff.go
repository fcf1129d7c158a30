// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/RPG-coder-intc/rohd"
)

// DFF returns a D flip flop. The output samples the input at every
// rising edge of clk and holds it in between.
//
//	Inputs: clk, d
//	Outputs: q
//	Function: q(t+1) = d(t)
//
func DFF(name string, clk, d *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	q := rohd.NewSignal(name, d.Width())
	blk, err := rohd.Sequential(clk, rohd.Assign(q, d))
	return q, blk, err
}

// DFFr returns a D flip flop with synchronous reset. When rst is high at
// a rising edge of clk, the output clears to zero instead of sampling d.
//
//	Inputs: clk, rst, d
//	Outputs: q
//	Function: q(t+1) = rst(t) ? 0 : d(t)
//
func DFFr(name string, clk, rst, d *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	q := rohd.NewSignal(name, d.Width())
	blk, err := rohd.Sequential(clk, rohd.IfChain(
		rohd.Iff(rst, rohd.Assign(q, rohd.Const(0, d.Width()))),
		rohd.Else(rohd.Assign(q, d)),
	))
	return q, blk, err
}

// Toggle returns a single bit that flips at every rising edge of clk
// where en is high. The caller seeds the initial value with Put.
//
//	Inputs: clk, en
//	Outputs: q
//	Function: q(t+1) = en(t) ? ~q(t) : q(t)
//
func Toggle(name string, clk, en *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	q := rohd.NewSignal(name, 1)
	blk, err := rohd.Sequential(clk, rohd.If(en,
		[]rohd.Statement{rohd.Assign(q, rohd.Not(q))},
		nil,
	))
	return q, blk, err
}
