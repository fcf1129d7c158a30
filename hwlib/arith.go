// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"math/bits"

	"github.com/RPG-coder-intc/rohd"
)

// PopCount returns the number of set bits in in. The chain of
// conditional increments is built in SSA form so that every step reads
// the running count written by the previous one within a single pass.
// Any X or Z bit in in makes the count X.
//
//	Inputs: in
//	Outputs: cnt
//	Function: cnt = number of 1 bits in in
//
func PopCount(name string, in *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	w := in.Width()
	n := bits.Len(uint(w))
	cnt := rohd.NewSignal(name, n)
	blk, err := rohd.CombinationalSSA(func(s *rohd.SSA) []rohd.Statement {
		stmts := make([]rohd.Statement, 0, w+1)
		stmts = append(stmts, s.Assign(cnt, rohd.Const(0, n)))
		for i := 0; i < w; i++ {
			stmts = append(stmts, rohd.If(in.Index(i),
				[]rohd.Statement{s.Increment(cnt)},
				nil,
			))
		}
		return stmts
	})
	return cnt, blk, err
}
