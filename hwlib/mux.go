// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"math/bits"
	"strings"

	"github.com/RPG-coder-intc/rohd"
)

// Mux2 returns a two way multiplexer over equal-width signals.
//
//	Inputs: sel, a, b
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux2(name string, sel, a, b *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	out := rohd.NewSignal(name, a.Width())
	blk, err := rohd.Combinational(rohd.If(sel,
		[]rohd.Statement{rohd.Assign(out, b)},
		[]rohd.Statement{rohd.Assign(out, a)},
	))
	return out, blk, err
}

// Decoder returns a one-hot decoder. The output is 2^n bits wide for an
// n bit selector and has exactly the bit sel set. A selector carrying X
// or Z bits matches no line and yields an all zero output.
//
//	Inputs: sel
//	Outputs: out
//	Function: out = 1 << sel
//
func Decoder(name string, sel *rohd.Signal) (*rohd.Signal, *rohd.Block, error) {
	n := sel.Width()
	w := 1 << uint(n)
	out := rohd.NewSignal(name, w)
	items := make([]rohd.CaseItem, w)
	for i := range items {
		items[i] = rohd.Item(rohd.FromUint64(uint64(i), n),
			rohd.Assign(out, rohd.Const(uint64(1)<<uint(i), w)))
	}
	blk, err := rohd.Combinational(rohd.Case(sel, items,
		[]rohd.Statement{rohd.Assign(out, rohd.Const(0, w))},
		rohd.CaseUnique,
	))
	return out, blk, err
}

// PriorityEncoder returns the index of the highest set bit of in, along
// with a valid flag that clears when no bit is set. Lower bits are don't
// care once a higher one matches.
//
//	Inputs: in
//	Outputs: idx, valid
//	Function: idx = position of the most significant 1 in in; valid = in != 0
//
func PriorityEncoder(name string, in *rohd.Signal) (idx, valid *rohd.Signal, blk *rohd.Block, err error) {
	w := in.Width()
	n := bits.Len(uint(w - 1))
	if n == 0 {
		n = 1
	}
	idx = rohd.NewSignal(name, n)
	valid = rohd.NewSignal(name+".valid", 1)
	items := make([]rohd.CaseItem, w)
	for i := w - 1; i >= 0; i-- {
		pat := strings.Repeat("0", w-1-i) + "1" + strings.Repeat("z", i)
		items[w-1-i] = rohd.Item(rohd.MustParse(pat),
			rohd.Assign(idx, rohd.Const(uint64(i), n)),
			rohd.Assign(valid, rohd.Const(1, 1)))
	}
	blk, err = rohd.Combinational(rohd.CaseZ(in, items,
		[]rohd.Statement{
			rohd.Assign(idx, rohd.Const(0, n)),
			rohd.Assign(valid, rohd.Const(0, 1)),
		},
		rohd.CasePriority,
	))
	return idx, valid, blk, err
}
