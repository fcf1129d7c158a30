// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/RPG-coder-intc/rohd"
)

// ShiftReg returns a serial-in shift register of the given depth. At
// every rising edge of clk the register shifts the single bit in into
// bit 0 while older bits move up, so bit depth-1 is the oldest sample.
//
//	Inputs: clk, in
//	Outputs: q
//	Function: q(t+1) = {q[depth-2:0](t), in(t)}
//
func ShiftReg(name string, clk, in *rohd.Signal, depth int) (*rohd.Signal, *rohd.Block, error) {
	q := rohd.NewSignal(name, depth)
	var src rohd.Expr = in
	if depth > 1 {
		src = rohd.Concat(q.Range(depth-2, 0), in)
	}
	blk, err := rohd.Sequential(clk, rohd.Assign(q, src))
	return q, blk, err
}
