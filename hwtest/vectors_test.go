package hwtest_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/RPG-coder-intc/rohd"
	"github.com/RPG-coder-intc/rohd/hwlib"
	"github.com/RPG-coder-intc/rohd/hwtest"
)

func TestCheckVectors_comb(t *testing.T) {
	a := rohd.NewSignal("a", 4)
	b := rohd.NewSignal("b", 4)
	sum := rohd.NewSignal("sum", 4)
	blk, err := rohd.Combinational(rohd.Assign(sum, rohd.Add(a, b)))
	require.NoError(t, err)

	s := rohd.NewSimulator()
	require.NoError(t, s.Register(blk))

	hwtest.RunVectors(t, s, nil, []hwtest.Vector{
		{In: map[string]any{"a": 3, "b": 5}, Out: map[string]any{"sum": 8}},
		{In: map[string]any{"a": uint64(15), "b": uint64(1)}, Out: map[string]any{"sum": "0000"}},
		{In: map[string]any{"a": "1010", "b": false}, Out: map[string]any{"sum": 10}},
		{In: map[string]any{"a": rohd.MustParse("xxxx")}, Out: map[string]any{"sum": rohd.Undef}},
	})
}

func TestCheckVectors_seq(t *testing.T) {
	clk := rohd.NewSignal("clk", 1)
	d := rohd.NewSignal("d", 4)
	_, blk, err := hwlib.DFF("q", clk, d)
	require.NoError(t, err)

	s := rohd.NewSimulator()
	require.NoError(t, s.Register(blk))
	require.NoError(t, s.AddClock(clk, 10))

	hwtest.RunVectors(t, s, clk, []hwtest.Vector{
		{In: map[string]any{"d": 7}, Out: map[string]any{"q": 7}},
		{In: map[string]any{"d": 0}, Out: map[string]any{"q": 0}},
		{In: map[string]any{"d": "10z1"}, Out: map[string]any{"q": "10z1"}},
	})
}

func TestCheckVectors_wildcard(t *testing.T) {
	en := rohd.NewSignal("en", 1)
	a := rohd.NewSignal("a", 4)
	y := rohd.NewSignal("y", 4)
	blk, err := rohd.Combinational(
		rohd.If(en, []rohd.Statement{rohd.Assign(y, a)}, nil),
	)
	require.NoError(t, err)

	s := rohd.NewSimulator()
	require.NoError(t, s.Register(blk))

	// y is undriven while en is low, so only a wildcard matches it.
	hwtest.RunVectors(t, s, nil, []hwtest.Vector{
		{In: map[string]any{"en": 0, "a": 5}, Out: map[string]any{"y": "xxxx"}},
		{In: map[string]any{"en": 1}, Out: map[string]any{"y": 5}},
		{In: map[string]any{"en": 0}, Out: map[string]any{"y": rohd.HiZ}},
	})
}

func TestCheckVectors_errors(t *testing.T) {
	a := rohd.NewSignal("a", 4)
	y := rohd.NewSignal("y", 4)
	blk, err := rohd.Combinational(rohd.Assign(y, rohd.Not(a)))
	require.NoError(t, err)

	s := rohd.NewSimulator()
	require.NoError(t, s.Register(blk))

	td := []struct {
		name string
		vec  hwtest.Vector
		want string
	}{
		{"unknown_in", hwtest.Vector{In: map[string]any{"nope": 1}}, "unknown signal"},
		{"unknown_out", hwtest.Vector{Out: map[string]any{"nope": 1}}, "unknown signal"},
		{"bad_width", hwtest.Vector{In: map[string]any{"a": "101"}}, "width mismatch"},
		{"mismatch", hwtest.Vector{In: map[string]any{"a": 0}, Out: map[string]any{"y": 0}}, "want"},
	}
	for _, test := range td {
		t.Run(test.name, func(t *testing.T) {
			err := hwtest.CheckVectors(s, nil, []hwtest.Vector{test.vec})
			require.Error(t, err)
			require.Contains(t, err.Error(), test.want)
		})
	}

	t.Run("unsupported_kind", func(t *testing.T) {
		err := hwtest.CheckVectors(s, nil, []hwtest.Vector{
			{In: map[string]any{"a": 1.5}},
		})
		require.Error(t, err)
		require.Equal(t, hwtest.ErrUnsupportedVectorValue, errors.Cause(err))
	})
	t.Run("negative_int", func(t *testing.T) {
		err := hwtest.CheckVectors(s, nil, []hwtest.Vector{
			{In: map[string]any{"a": -1}},
		})
		require.Error(t, err)
		require.Equal(t, hwtest.ErrUnsupportedVectorValue, errors.Cause(err))
	})
}
