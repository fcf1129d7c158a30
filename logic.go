// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rohd

import (
	"strings"

	"github.com/pkg/errors"
)

// A Bit is one of the four logic states a wire bit can take.
//
type Bit byte

// Logic states.
const (
	Lo    Bit = iota // driven low
	Hi               // driven high
	HiZ              // high impedance, unconnected
	Undef            // unknown
)

func (b Bit) String() string {
	switch b {
	case Lo:
		return "0"
	case Hi:
		return "1"
	case HiZ:
		return "z"
	default:
		return "x"
	}
}

// MaxWidth is the widest supported LogicValue and Signal, in bits.
const MaxWidth = 64

// A LogicValue is an immutable fixed-width bit vector over {0, 1, Z, X}.
// Values are replaced wholesale, never mutated: every operation returns a
// new value. The three bit planes encode, for each position, exactly one
// of the four states.
//
type LogicValue struct {
	width int
	bits  uint64 // 1 where driven high
	hiz   uint64 // 1 where high impedance
	undef uint64 // 1 where unknown
}

func vmask(width int) uint64 {
	return ^uint64(0) >> (64 - uint(width))
}

func checkWidth(op string, width int) {
	if width < 1 || width > MaxWidth {
		cerr(op, "width %d out of range [1, %d]", width, MaxWidth)
	}
}

// NewLogicValue returns an all-X value of the given width.
//
func NewLogicValue(width int) LogicValue {
	checkWidth("rohd.NewLogicValue", width)
	return LogicValue{width: width, undef: vmask(width)}
}

// Filled returns a value of the given width with every bit set to b.
//
func Filled(width int, b Bit) LogicValue {
	checkWidth("rohd.Filled", width)
	v := LogicValue{width: width}
	switch b {
	case Hi:
		v.bits = vmask(width)
	case HiZ:
		v.hiz = vmask(width)
	case Undef:
		v.undef = vmask(width)
	}
	return v
}

// FromUint64 returns a fully defined value of the given width holding n
// truncated to width bits.
//
func FromUint64(n uint64, width int) LogicValue {
	checkWidth("rohd.FromUint64", width)
	return LogicValue{width: width, bits: n & vmask(width)}
}

// FromBits builds a value from individual bits, most significant first,
// so that FromBits(Hi, Lo) equals MustParse("10").
//
func FromBits(bits ...Bit) LogicValue {
	checkWidth("rohd.FromBits", len(bits))
	v := LogicValue{width: len(bits)}
	for i, b := range bits {
		pos := uint(len(bits) - 1 - i)
		switch b {
		case Hi:
			v.bits |= 1 << pos
		case HiZ:
			v.hiz |= 1 << pos
		case Undef:
			v.undef |= 1 << pos
		}
	}
	return v
}

// Parse decodes a logic literal like "10xz" or "1010_0110", most
// significant bit first. Underscores are ignored and letters are case
// insensitive.
//
func Parse(s string) (LogicValue, error) {
	var bits []Bit
	for _, r := range s {
		switch r {
		case '0':
			bits = append(bits, Lo)
		case '1':
			bits = append(bits, Hi)
		case 'z', 'Z':
			bits = append(bits, HiZ)
		case 'x', 'X':
			bits = append(bits, Undef)
		case '_':
		default:
			return LogicValue{}, errors.Errorf("invalid logic literal %q", s)
		}
	}
	if len(bits) == 0 || len(bits) > MaxWidth {
		return LogicValue{}, errors.Errorf("logic literal %q: width %d out of range [1, %d]", s, len(bits), MaxWidth)
	}
	return FromBits(bits...), nil
}

// MustParse is like Parse but panics on invalid literals.
//
func MustParse(s string) LogicValue {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Width returns the number of bits in v.
//
func (v LogicValue) Width() int { return v.width }

// Bit returns the state of bit i, bit 0 being the least significant.
//
func (v LogicValue) Bit(i int) Bit {
	if i < 0 || i >= v.width {
		cerr("LogicValue.Bit", "index %d out of range [0, %d]", i, v.width-1)
	}
	m := uint64(1) << uint(i)
	switch {
	case v.undef&m != 0:
		return Undef
	case v.hiz&m != 0:
		return HiZ
	case v.bits&m != 0:
		return Hi
	default:
		return Lo
	}
}

// IsValid reports whether every bit of v is driven 0 or 1.
//
func (v LogicValue) IsValid() bool {
	return v.hiz|v.undef == 0
}

// Uint64 returns the numeric value of v. ok is false if any bit is X or Z.
//
func (v LogicValue) Uint64() (n uint64, ok bool) {
	if !v.IsValid() {
		return 0, false
	}
	return v.bits, true
}

func (v LogicValue) String() string {
	var b strings.Builder
	for i := v.width - 1; i >= 0; i-- {
		b.WriteString(v.Bit(i).String())
	}
	return b.String()
}

// Equal reports strict bit-for-bit equality, X and Z included.
//
func (v LogicValue) Equal(o LogicValue) bool {
	return v.width == o.width && v.bits == o.bits && v.hiz == o.hiz && v.undef == o.undef
}

// Slice returns bits [lo, hi] of v as a new value of width hi-lo+1,
// Verilog style: Slice(3, 0) is v[3:0].
//
func (v LogicValue) Slice(hi, lo int) LogicValue {
	if lo < 0 || hi < lo || hi >= v.width {
		cerr("LogicValue.Slice", "range [%d:%d] invalid for width %d", hi, lo, v.width)
	}
	w := hi - lo + 1
	m := vmask(w)
	return LogicValue{
		width: w,
		bits:  v.bits >> uint(lo) & m,
		hiz:   v.hiz >> uint(lo) & m,
		undef: v.undef >> uint(lo) & m,
	}
}

// withBits returns a copy of v with bits [off, off+sub.width) replaced by
// sub. Used by bus element views.
func (v LogicValue) withBits(off int, sub LogicValue) LogicValue {
	m := vmask(sub.width) << uint(off)
	v.bits = v.bits&^m | sub.bits<<uint(off)
	v.hiz = v.hiz&^m | sub.hiz<<uint(off)
	v.undef = v.undef&^m | sub.undef<<uint(off)
	return v
}

// catValues concatenates parts most significant first into one value.
func catValues(parts []LogicValue) LogicValue {
	w := 0
	for _, p := range parts {
		w += p.width
	}
	checkWidth("rohd.Concat", w)
	v := LogicValue{width: w}
	off := w
	for _, p := range parts {
		off -= p.width
		v = v.withBits(off, p)
	}
	return v
}

func (v LogicValue) binCheck(op string, o LogicValue) {
	if v.width != o.width {
		cerr(op, "width mismatch: %d != %d", v.width, o.width)
	}
}

// xz returns the plane of bits that are either X or Z.
func (v LogicValue) xz() uint64 { return v.hiz | v.undef }

// Not returns the bitwise complement of v. X and Z bits complement to X.
//
func (v LogicValue) Not() LogicValue {
	u := v.xz()
	return LogicValue{
		width: v.width,
		bits:  ^v.bits & vmask(v.width) &^ u,
		undef: u,
	}
}

// And returns the bitwise AND of v and o. A definite 0 on either side
// dominates; any other combination involving X or Z yields X.
//
func (v LogicValue) And(o LogicValue) LogicValue {
	v.binCheck("LogicValue.And", o)
	m := vmask(v.width)
	zero := (^v.bits &^ v.xz() | ^o.bits &^ o.xz()) & m
	return LogicValue{
		width: v.width,
		bits:  v.bits & o.bits,
		undef: (v.xz() | o.xz()) &^ zero,
	}
}

// Or returns the bitwise OR of v and o. A definite 1 on either side
// dominates; any other combination involving X or Z yields X.
//
func (v LogicValue) Or(o LogicValue) LogicValue {
	v.binCheck("LogicValue.Or", o)
	one := v.bits | o.bits
	return LogicValue{
		width: v.width,
		bits:  one,
		undef: (v.xz() | o.xz()) &^ one,
	}
}

// Xor returns the bitwise XOR of v and o. Any X or Z bit yields X.
//
func (v LogicValue) Xor(o LogicValue) LogicValue {
	v.binCheck("LogicValue.Xor", o)
	u := v.xz() | o.xz()
	return LogicValue{
		width: v.width,
		bits:  (v.bits ^ o.bits) &^ u,
		undef: u,
	}
}

// arith applies an unsigned arithmetic op, truncating to the operand
// width. If either operand has any X or Z bit the whole result is X.
func (v LogicValue) arith(op string, o LogicValue, f func(a, b uint64) (uint64, bool)) LogicValue {
	v.binCheck(op, o)
	if v.xz()|o.xz() != 0 {
		return Filled(v.width, Undef)
	}
	n, ok := f(v.bits, o.bits)
	if !ok {
		return Filled(v.width, Undef)
	}
	return LogicValue{width: v.width, bits: n & vmask(v.width)}
}

// Add returns v + o truncated to the common width, all-X if either
// operand contains X or Z bits.
//
func (v LogicValue) Add(o LogicValue) LogicValue {
	return v.arith("LogicValue.Add", o, func(a, b uint64) (uint64, bool) { return a + b, true })
}

// Sub returns v - o truncated to the common width, all-X if either
// operand contains X or Z bits.
//
func (v LogicValue) Sub(o LogicValue) LogicValue {
	return v.arith("LogicValue.Sub", o, func(a, b uint64) (uint64, bool) { return a - b, true })
}

// Mul returns v * o truncated to the common width, all-X if either
// operand contains X or Z bits.
//
func (v LogicValue) Mul(o LogicValue) LogicValue {
	return v.arith("LogicValue.Mul", o, func(a, b uint64) (uint64, bool) { return a * b, true })
}

// Div returns v / o, all-X if either operand contains X or Z bits or o
// is zero.
//
func (v LogicValue) Div(o LogicValue) LogicValue {
	return v.arith("LogicValue.Div", o, func(a, b uint64) (uint64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	})
}

// Mod returns v % o, all-X if either operand contains X or Z bits or o
// is zero.
//
func (v LogicValue) Mod(o LogicValue) LogicValue {
	return v.arith("LogicValue.Mod", o, func(a, b uint64) (uint64, bool) {
		if b == 0 {
			return 0, false
		}
		return a % b, true
	})
}

// Eq returns the 1-bit logical equality of v and o: X if either side
// contains any X or Z bit, else 1 when the values are equal and 0 when
// they are not.
//
func (v LogicValue) Eq(o LogicValue) LogicValue {
	v.binCheck("LogicValue.Eq", o)
	if v.xz()|o.xz() != 0 {
		return Filled(1, Undef)
	}
	if v.bits == o.bits {
		return Filled(1, Hi)
	}
	return Filled(1, Lo)
}

// Neq is the complement of Eq.
//
func (v LogicValue) Neq(o LogicValue) LogicValue {
	return v.Eq(o).Not()
}

// matchPattern reports whether v matches pat. With wildcard set, Z bits
// of pat match any state at that position; all other positions compare
// strictly, X and Z included.
func matchPattern(v, pat LogicValue, wildcard bool) bool {
	if v.width != pat.width {
		return false
	}
	var ign uint64
	if wildcard {
		ign = pat.hiz
	}
	return v.bits&^ign == pat.bits&^ign &&
		v.hiz&^ign == pat.hiz&^ign &&
		v.undef&^ign == pat.undef&^ign
}

// ambiguousMatch reports whether a wildcard match of v against pat relied
// on a wildcard position where v is X or Z.
func ambiguousMatch(v, pat LogicValue) bool {
	return pat.hiz&v.xz() != 0
}
