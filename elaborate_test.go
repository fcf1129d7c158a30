package rohd_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	rohd "github.com/RPG-coder-intc/rohd"
)

func TestNetlist(t *testing.T) {
	a := rohd.NewSignal("a", 1)
	b := rohd.NewSignal("b", 1)
	en := rohd.NewSignal("en", 1)
	y := rohd.NewSignal("y", 1)
	z := rohd.NewSignal("z", 1)

	blk := mustComb(t,
		rohd.If(en,
			[]rohd.Statement{rohd.Assign(y, a)},
			[]rohd.Statement{rohd.Assign(y, rohd.Const(0, 1))},
		),
		rohd.Assign(z, rohd.And(a, b)),
	)

	want := []rohd.DriverView{
		{Signal: "y", Width: 1, Default: "x", Drivers: []rohd.DriverDesc{
			{Path: "if en", Expr: "a"},
			{Path: "if en else", Expr: "0"},
		}},
		{Signal: "z", Width: 1, Default: "x", Drivers: []rohd.DriverDesc{
			{Path: "", Expr: "(a & b)"},
		}},
	}
	require.Equal(t, want, rohd.Netlist(blk))

	// the rendering is stable across calls
	require.Equal(t, rohd.Netlist(blk), rohd.Netlist(blk))
}

func TestNetlist_nestedPaths(t *testing.T) {
	a := rohd.NewSignal("a", 1)
	b := rohd.NewSignal("b", 1)
	y := rohd.NewSignal("y", 1)

	blk := mustComb(t,
		rohd.If(a, []rohd.Statement{
			rohd.If(b, []rohd.Statement{rohd.Assign(y, rohd.Const(1, 1))}, nil),
		}, nil),
	)
	want := []rohd.DriverView{
		{Signal: "y", Width: 1, Default: "x", Drivers: []rohd.DriverDesc{
			{Path: "if a / if b", Expr: "1"},
		}},
	}
	require.Equal(t, want, rohd.Netlist(blk))
}

func TestNetlist_ifChain(t *testing.T) {
	en := rohd.NewSignal("en", 1)
	up := rohd.NewSignal("up", 1)
	y := rohd.NewSignal("y", 4)

	blk := mustComb(t, rohd.IfChain(
		rohd.Iff(en, rohd.Assign(y, rohd.Const(1, 4))),
		rohd.ElseIf(up, rohd.Assign(y, rohd.Const(2, 4))),
		rohd.Else(rohd.Assign(y, rohd.Const(3, 4))),
	))
	want := []rohd.DriverView{
		{Signal: "y", Width: 4, Default: "x", Drivers: []rohd.DriverDesc{
			{Path: "if en", Expr: "0001"},
			{Path: "if en else / if up", Expr: "0010"},
			{Path: "if en else / if up else", Expr: "0011"},
		}},
	}
	require.Equal(t, want, rohd.Netlist(blk))
}

func TestNetlist_case(t *testing.T) {
	clk := rohd.NewSignal("clk", 1)
	sel := rohd.NewSignal("sel", 2)
	q := rohd.NewSignal("q", 4)

	blk := mustSeq(t, clk,
		rohd.CaseZ(sel, []rohd.CaseItem{
			rohd.Item(rohd.MustParse("1z"), rohd.Assign(q, rohd.Const(1, 4))),
		}, []rohd.Statement{rohd.Assign(q, rohd.Const(0, 4))}, rohd.CaseNone),
	)
	want := []rohd.DriverView{
		{Signal: "q", Width: 4, Default: "hold", Drivers: []rohd.DriverDesc{
			{Path: "casez (sel) 1z", Expr: "0001"},
			{Path: "casez (sel) default", Expr: "0000"},
		}},
	}
	require.Equal(t, want, rohd.Netlist(blk))
}

func TestNetlist_mergedBlocks(t *testing.T) {
	a := rohd.NewSignal("a", 1)
	b := rohd.NewSignal("b", 1)
	y := rohd.NewSignal("y", 1)

	// Netlist does not reject double drivers: it reports them, one view
	// per signal across all listed blocks.
	b1 := mustComb(t, rohd.Assign(y, a))
	b2 := mustComb(t, rohd.Assign(y, b))
	want := []rohd.DriverView{
		{Signal: "y", Width: 1, Default: "x", Drivers: []rohd.DriverDesc{
			{Path: "", Expr: "a"},
			{Path: "", Expr: "b"},
		}},
	}
	require.Equal(t, want, rohd.Netlist(b1, b2))
}
