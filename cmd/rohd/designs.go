// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/pkg/errors"

	"github.com/RPG-coder-intc/rohd"
	"github.com/RPG-coder-intc/rohd/hwlib"
)

// A design bundles a ready simulator with the blocks it runs, the
// signals worth tracing and the optional demo stimulus.
type design struct {
	sim    *rohd.Simulator
	clk    *rohd.Signal
	blocks []*rohd.Block
	trace  []*rohd.Signal
	stim   func() error // applied by demo only; nil when self starting
}

func buildDesign(name string) (*design, error) {
	switch name {
	case "counter":
		return buildCounter()
	case "traffic":
		return buildTraffic()
	}
	return nil, errors.Errorf("unknown design %q (want counter or traffic)", name)
}

// buildCounter wires a 4 bit wrapping counter with synchronous reset.
func buildCounter() (*design, error) {
	clk := rohd.NewSignal("clk", 1)
	rst := rohd.NewSignal("rst", 1)
	cnt, blk, err := hwlib.Counter("cnt", clk, rst, 4)
	if err != nil {
		return nil, err
	}

	s := rohd.NewSimulator()
	s.SettleLimit = settleLimit
	if err := s.Register(blk); err != nil {
		return nil, err
	}
	if err := s.AddClock(clk, 10); err != nil {
		return nil, err
	}

	d := &design{
		sim:    s,
		clk:    clk,
		blocks: []*rohd.Block{blk},
		trace:  []*rohd.Signal{rst, cnt},
		stim: func() error {
			// hold reset through the first edge, release before the second
			rst.Put(1)
			return s.PutAt(12, rst, rohd.FromUint64(0, 1))
		},
	}
	return d, nil
}

// buildTraffic wires a self initializing traffic light: a green/yellow/
// red cycle with per-state durations and one-hot lights. The undefined
// power-on state falls through the case default into green.
func buildTraffic() (*design, error) {
	clk := rohd.NewSignal("clk", 1)
	state := rohd.NewSignal("state", 2)
	tmr := rohd.NewSignal("tmr", 2)

	const (
		green  = 0
		yellow = 1
		red    = 2
	)

	next := func(to uint64) []rohd.Statement {
		return []rohd.Statement{
			rohd.Assign(state, rohd.Const(to, 2)),
			rohd.Assign(tmr, rohd.Const(0, 2)),
		}
	}

	fsm, err := rohd.Sequential(clk, rohd.Case(state, []rohd.CaseItem{
		rohd.Item(rohd.FromUint64(green, 2), // 3 cycles
			rohd.If(rohd.Eq(tmr, rohd.Const(2, 2)), next(yellow),
				[]rohd.Statement{rohd.Increment(tmr)})),
		rohd.Item(rohd.FromUint64(yellow, 2), // 1 cycle
			next(red)...),
		rohd.Item(rohd.FromUint64(red, 2), // 2 cycles
			rohd.If(rohd.Eq(tmr, rohd.Const(1, 2)), next(green),
				[]rohd.Statement{rohd.Increment(tmr)})),
	}, next(green), rohd.CaseNone))
	if err != nil {
		return nil, err
	}

	lights := rohd.NewSignal("lights", 3) // {red, yellow, green}
	cmb, err := rohd.Combinational(rohd.Case(state, []rohd.CaseItem{
		rohd.Item(rohd.FromUint64(green, 2), rohd.Assign(lights, rohd.Const(1, 3))),
		rohd.Item(rohd.FromUint64(yellow, 2), rohd.Assign(lights, rohd.Const(2, 3))),
		rohd.Item(rohd.FromUint64(red, 2), rohd.Assign(lights, rohd.Const(4, 3))),
	}, []rohd.Statement{rohd.Assign(lights, rohd.Const(0, 3))}, rohd.CaseNone))
	if err != nil {
		return nil, err
	}

	s := rohd.NewSimulator()
	s.SettleLimit = settleLimit
	if err := s.Register(fsm, cmb); err != nil {
		return nil, err
	}
	if err := s.AddClock(clk, 10); err != nil {
		return nil, err
	}

	d := &design{
		sim:    s,
		clk:    clk,
		blocks: []*rohd.Block{fsm, cmb},
		trace:  []*rohd.Signal{state, tmr, lights},
	}
	return d, nil
}
