// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/RPG-coder-intc/rohd"
)

// Counter returns a free running counter of the given width. The count
// advances by one at every rising edge of clk and wraps at 2^width.
// When rst is high at an edge the count clears to zero instead.
//
//	Inputs: clk, rst
//	Outputs: cnt
//	Function: cnt(t+1) = rst(t) ? 0 : cnt(t) + 1
//
func Counter(name string, clk, rst *rohd.Signal, width int) (*rohd.Signal, *rohd.Block, error) {
	cnt := rohd.NewSignal(name, width)
	blk, err := rohd.Sequential(clk, rohd.IfChain(
		rohd.Iff(rst, rohd.Assign(cnt, rohd.Const(0, width))),
		rohd.Else(rohd.Increment(cnt)),
	))
	return cnt, blk, err
}
