package rohd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mapReader feeds fixed values to expression evaluation.
type mapReader map[*Signal]LogicValue

func (m mapReader) read(s *Signal) LogicValue { return m[s] }

func TestExpr_eval(t *testing.T) {
	a := NewSignal("a", 4)
	b := NewSignal("b", 4)
	r := mapReader{
		a: MustParse("0101"),
		b: MustParse("0011"),
	}
	td := []struct {
		e   Expr
		out string
	}{
		{a, "0101"},
		{Const(9, 4), "1001"},
		{ConstValue(MustParse("1x0z")), "1x0z"},
		{Not(a), "1010"},
		{And(a, b), "0001"},
		{Or(a, b), "0111"},
		{Xor(a, b), "0110"},
		{Add(a, b), "1000"},
		{Sub(a, b), "0010"},
		{Mul(a, b), "1111"},
		{Div(a, b), "0001"},
		{Mod(a, b), "0010"},
		{Eq(a, b), "0"},
		{Eq(a, a), "1"},
		{Neq(a, b), "1"},
		{Concat(b, a), "00110101"},
		{Concat(a.Index(0), b), "10011"},
		{And(Not(a), Or(b, Const(8, 4))), "1010"},
	}
	for _, d := range td {
		t.Run(d.e.String(), func(t *testing.T) {
			if got := d.e.eval(exprReader(r)).String(); got != d.out {
				t.Errorf("%s = %s, expected %s", d.e, got, d.out)
			}
		})
	}
}

// exprReader resolves view reads against the root entries of a mapReader,
// the way block passes do.
func exprReader(m mapReader) valueReader {
	return readerFunc(func(s *Signal) LogicValue {
		if s.root != nil {
			return m[s.root].Slice(s.off+s.width-1, s.off)
		}
		return m[s]
	})
}

type readerFunc func(s *Signal) LogicValue

func (f readerFunc) read(s *Signal) LogicValue { return f(s) }

func TestExpr_string(t *testing.T) {
	a := NewSignal("a", 4)
	b := NewSignal("b", 4)
	td := []struct {
		e   Expr
		out string
	}{
		{a, "a"},
		{Const(5, 4), "0101"},
		{Not(a), "~a"},
		{And(a, b), "(a & b)"},
		{Eq(a, Const(3, 4)), "(a == 0011)"},
		{Concat(b, a.Range(2, 1)), "{b, a[2:1]}"},
		{Add(Not(a), b), "(~a + b)"},
	}
	for _, d := range td {
		if got := d.e.String(); got != d.out {
			t.Errorf("String() = %q, expected %q", got, d.out)
		}
	}
}

func TestExpr_width(t *testing.T) {
	a := NewSignal("a", 4)
	b := NewSignal("b", 4)
	td := []struct {
		e Expr
		w int
	}{
		{a, 4},
		{Not(a), 4},
		{And(a, b), 4},
		{Add(a, b), 4},
		{Eq(a, b), 1},
		{Neq(a, b), 1},
		{Concat(a, b), 8},
		{Concat(a.Index(3), b, a), 9},
	}
	for _, d := range td {
		if got := d.e.Width(); got != d.w {
			t.Errorf("%s: Width() = %d, expected %d", d.e, got, d.w)
		}
	}
}

func TestExpr_construction(t *testing.T) {
	a := NewSignal("a", 4)
	c := NewSignal("c", 2)
	require.Panics(t, func() { And(a, c) })
	require.Panics(t, func() { Eq(a, Const(0, 2)) })
	require.Panics(t, func() { Const(4, 2) })
	require.Panics(t, func() { Const(0, 0) })
	require.Panics(t, func() { Concat() })

	parts := make([]Expr, 5)
	for i := range parts {
		parts[i] = NewSignal("w", 16)
	}
	require.Panics(t, func() { Concat(parts...) }) // 80 bits
}

func TestExpr_scan(t *testing.T) {
	a := NewSignal("a", 4)
	b := NewSignal("b", 4)
	var seen []string
	And(Not(a), Concat(b, a, Const(0, 1))).scan(func(s *Signal) {
		seen = append(seen, s.Name())
	})
	require.Equal(t, []string{"a", "b", "a"}, seen)
}
