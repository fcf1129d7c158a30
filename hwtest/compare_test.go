package hwtest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RPG-coder-intc/rohd"
	"github.com/RPG-coder-intc/rohd/hwlib"
	"github.com/RPG-coder-intc/rohd/hwtest"
)

func TestCompareBlocks(t *testing.T) {
	a := rohd.NewSignal("a", 4)
	b := rohd.NewSignal("b", 4)

	x1, blk1, err := hwlib.XorGate("x1", a, b)
	require.NoError(t, err)

	// same function from and/or/not
	x2 := rohd.NewSignal("x2", 4)
	blk2, err := rohd.Combinational(rohd.Assign(x2,
		rohd.Or(
			rohd.And(a, rohd.Not(b)),
			rohd.And(rohd.Not(a), b),
		),
	))
	require.NoError(t, err)

	s := rohd.NewSimulator()
	require.NoError(t, s.Register(blk1, blk2))

	hwtest.CompareBlocks(t, s, []*rohd.Signal{a, b}, x1, x2)
}

func TestCompareBlocks_mux(t *testing.T) {
	sel := rohd.NewSignal("sel", 1)
	a := rohd.NewSignal("a", 8)
	b := rohd.NewSignal("b", 8)

	m1, blk1, err := hwlib.Mux2("m1", sel, a, b)
	require.NoError(t, err)

	// mux as a casez over the selector
	m2 := rohd.NewSignal("m2", 8)
	blk2, err := rohd.Combinational(rohd.CaseZ(sel,
		[]rohd.CaseItem{
			rohd.Item(rohd.MustParse("1"), rohd.Assign(m2, b)),
		},
		[]rohd.Statement{rohd.Assign(m2, a)},
		rohd.CaseNone,
	))
	require.NoError(t, err)

	s := rohd.NewSimulator()
	require.NoError(t, s.Register(blk1, blk2))

	hwtest.CompareBlocks(t, s, []*rohd.Signal{sel, a, b}, m1, m2)
}
