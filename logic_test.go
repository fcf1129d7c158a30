package rohd_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rohd "github.com/RPG-coder-intc/rohd"
)

func TestParse(t *testing.T) {
	td := []struct {
		in    string
		width int
		out   string
		err   bool
	}{
		{"0", 1, "0", false},
		{"1010", 4, "1010", false},
		{"01xz", 4, "01xz", false},
		{"01XZ", 4, "01xz", false},
		{"1111_0000", 8, "11110000", false},
		{"z", 1, "z", false},
		{"", 0, "", true},
		{"_", 0, "", true},
		{"10a1", 0, "", true},
		{strings.Repeat("10", 32) + "1", 0, "", true}, // 65 bits
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			v, err := rohd.Parse(d.in)
			if d.err {
				if err == nil {
					t.Fatalf("Parse(%q): expected error, got %v", d.in, v)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if v.Width() != d.width {
				t.Errorf("Parse(%q): width = %d, expected %d", d.in, v.Width(), d.width)
			}
			if v.String() != d.out {
				t.Errorf("Parse(%q): String() = %q, expected %q", d.in, v.String(), d.out)
			}
		})
	}
}

func TestLogicValue_Bit(t *testing.T) {
	v := rohd.MustParse("01xz")
	td := []struct {
		i int
		b rohd.Bit
	}{
		{0, rohd.HiZ},
		{1, rohd.Undef},
		{2, rohd.Hi},
		{3, rohd.Lo},
	}
	for _, d := range td {
		if b := v.Bit(d.i); b != d.b {
			t.Errorf("Bit(%d) = %v, expected %v", d.i, b, d.b)
		}
	}
}

func TestLogicValue_bitwise(t *testing.T) {
	td := []struct {
		name string
		f    func(a, b rohd.LogicValue) rohd.LogicValue
		a, b string
		out  string
	}{
		{"and", rohd.LogicValue.And, "0101", "0011", "0001"},
		{"and_x", rohd.LogicValue.And, "1111", "01xz", "01xx"},
		{"and_0", rohd.LogicValue.And, "0000", "01xz", "0000"},
		{"or", rohd.LogicValue.Or, "0101", "0011", "0111"},
		{"or_x", rohd.LogicValue.Or, "0000", "01xz", "01xx"},
		{"or_1", rohd.LogicValue.Or, "1111", "01xz", "1111"},
		{"xor", rohd.LogicValue.Xor, "0101", "0011", "0110"},
		{"xor_x", rohd.LogicValue.Xor, "1111", "01xz", "10xx"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			got := d.f(rohd.MustParse(d.a), rohd.MustParse(d.b))
			if got.String() != d.out {
				t.Errorf("%s(%s, %s) = %s, expected %s", d.name, d.a, d.b, got.String(), d.out)
			}
		})
	}
	if got := rohd.MustParse("01xz").Not(); got.String() != "10xx" {
		t.Errorf("Not(01xz) = %s, expected 10xx", got.String())
	}
}

func TestLogicValue_arith(t *testing.T) {
	tf := func(f func(a, b rohd.LogicValue) rohd.LogicValue, a, b uint64, width int) rohd.LogicValue {
		return f(rohd.FromUint64(a, width), rohd.FromUint64(b, width))
	}
	td := []struct {
		name string
		got  rohd.LogicValue
		out  uint64
	}{
		{"add", tf(rohd.LogicValue.Add, 200, 100, 8), 44},
		{"add_nowrap", tf(rohd.LogicValue.Add, 3, 4, 8), 7},
		{"sub", tf(rohd.LogicValue.Sub, 5, 10, 8), 251},
		{"mul", tf(rohd.LogicValue.Mul, 20, 20, 8), 144},
		{"div", tf(rohd.LogicValue.Div, 42, 5, 8), 8},
		{"mod", tf(rohd.LogicValue.Mod, 42, 5, 8), 2},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			n, ok := d.got.Uint64()
			if !ok {
				t.Fatalf("%s: got %s, expected %d", d.name, d.got.String(), d.out)
			}
			if n != d.out {
				t.Errorf("%s = %d, expected %d", d.name, n, d.out)
			}
		})
	}

	// any X or Z operand, or a zero divisor, yields all-X
	assert := assert.New(t)
	x8 := rohd.NewLogicValue(8)
	assert.True(rohd.MustParse("0000001x").Add(rohd.FromUint64(1, 8)).Equal(x8))
	assert.True(rohd.FromUint64(1, 8).Add(rohd.MustParse("0000z000")).Equal(x8))
	assert.True(rohd.FromUint64(42, 8).Div(rohd.FromUint64(0, 8)).Equal(x8))
	assert.True(rohd.FromUint64(42, 8).Mod(rohd.FromUint64(0, 8)).Equal(x8))
}

func TestLogicValue_compare(t *testing.T) {
	td := []struct {
		name string
		a, b string
		eq   string
		neq  string
	}{
		{"equal", "0101", "0101", "1", "0"},
		{"differ", "0101", "0100", "0", "1"},
		{"undef", "010x", "0101", "x", "x"},
		{"hiz", "0z01", "0101", "x", "x"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			a, b := rohd.MustParse(d.a), rohd.MustParse(d.b)
			if got := a.Eq(b); got.String() != d.eq {
				t.Errorf("Eq(%s, %s) = %s, expected %s", d.a, d.b, got.String(), d.eq)
			}
			if got := a.Neq(b); got.String() != d.neq {
				t.Errorf("Neq(%s, %s) = %s, expected %s", d.a, d.b, got.String(), d.neq)
			}
		})
	}
}

func TestLogicValue_strictEqual(t *testing.T) {
	assert := assert.New(t)
	assert.True(rohd.MustParse("01xz").Equal(rohd.MustParse("01xz")))
	assert.False(rohd.MustParse("01xz").Equal(rohd.MustParse("01xx")))
	assert.False(rohd.MustParse("0101").Equal(rohd.MustParse("101")))
	assert.False(rohd.MustParse("x").Equal(rohd.MustParse("z")))
}

func TestLogicValue_slice(t *testing.T) {
	v := rohd.MustParse("01xz")
	td := []struct {
		hi, lo int
		out    string
	}{
		{3, 0, "01xz"},
		{2, 1, "1x"},
		{0, 0, "z"},
		{3, 3, "0"},
		{3, 2, "01"},
	}
	for _, d := range td {
		if got := v.Slice(d.hi, d.lo); got.String() != d.out {
			t.Errorf("Slice(%d, %d) = %s, expected %s", d.hi, d.lo, got.String(), d.out)
		}
	}
}

func TestLogicValue_uint64(t *testing.T) {
	n, ok := rohd.MustParse("1010").Uint64()
	if !ok || n != 10 {
		t.Errorf("Uint64(1010) = %d, %v", n, ok)
	}
	if _, ok := rohd.MustParse("10x0").Uint64(); ok {
		t.Error("Uint64(10x0): expected ok == false")
	}
	if _, ok := rohd.MustParse("z").Uint64(); ok {
		t.Error("Uint64(z): expected ok == false")
	}
}

func TestLogicValue_constructors(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("xxxx", rohd.NewLogicValue(4).String())
	assert.Equal("111", rohd.Filled(3, rohd.Hi).String())
	assert.Equal("zz", rohd.Filled(2, rohd.HiZ).String())
	assert.Equal("00000000", rohd.FromUint64(0, 8).String())
	assert.Equal("101", rohd.FromUint64(5, 3).String())
	assert.Equal("1x0z", rohd.FromBits(rohd.Hi, rohd.Undef, rohd.Lo, rohd.HiZ).String())
	assert.False(rohd.MustParse("01xz").IsValid())
	assert.True(rohd.MustParse("0110").IsValid())
}

func TestLogicValue_widthChecks(t *testing.T) {
	require.Panics(t, func() { rohd.NewLogicValue(0) })
	require.Panics(t, func() { rohd.NewLogicValue(65) })
	require.Panics(t, func() { rohd.FromUint64(0, 0) })
	require.Panics(t, func() { rohd.MustParse("10a") })
	require.Panics(t, func() { rohd.FromUint64(0, 8).Add(rohd.FromUint64(0, 4)) })

	// values are truncated, not rejected, when n exceeds the width
	assert.Equal(t, "00", rohd.FromUint64(4, 2).String())
}
