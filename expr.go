// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rohd

import "strings"

// An Expr is the right hand side of an Assign statement or the condition
// of an If or Case. The set of forms is closed: signal reads, constants,
// Not, the binary operators and Concat. Expressions are built once, are
// immutable, and are evaluated by the block they appear in.
//
type Expr interface {
	// Width returns the width of the expression result in bits.
	Width() int

	String() string

	// eval computes the expression against the given signal reader.
	eval(r valueReader) LogicValue

	// scan calls f for every signal read by the expression.
	scan(f func(*Signal))

	// subst returns the expression with signal reads replaced per m.
	subst(m map[*Signal]Expr) Expr
}

// valueReader supplies signal values during an evaluation pass.
type valueReader interface {
	read(s *Signal) LogicValue
}

// Signal reads.

func (s *Signal) String() string { return s.name }

func (s *Signal) eval(r valueReader) LogicValue { return r.read(s) }

func (s *Signal) scan(f func(*Signal)) { f(s) }

func (s *Signal) subst(m map[*Signal]Expr) Expr {
	if e, ok := m[s]; ok {
		return e
	}
	return s
}

// Constants.

type constExpr struct {
	v LogicValue
}

// Const returns a constant expression of the given width holding n.
// n must fit in width bits.
//
func Const(n uint64, width int) Expr {
	checkWidth("rohd.Const", width)
	if width < MaxWidth && n>>uint(width) != 0 {
		cerr("rohd.Const", "value %d does not fit in %d bits", n, width)
	}
	return constExpr{v: FromUint64(n, width)}
}

// ConstValue returns a constant expression holding v, X and Z bits
// included.
//
func ConstValue(v LogicValue) Expr {
	return constExpr{v: v}
}

func (c constExpr) Width() int                  { return c.v.width }
func (c constExpr) String() string              { return c.v.String() }
func (c constExpr) eval(valueReader) LogicValue { return c.v }
func (c constExpr) scan(func(*Signal))          {}
func (c constExpr) subst(map[*Signal]Expr) Expr { return c }

// Not.

type notExpr struct {
	x Expr
}

// Not returns the bitwise complement of x.
//
func Not(x Expr) Expr {
	return notExpr{x: x}
}

func (e notExpr) Width() int                    { return e.x.Width() }
func (e notExpr) String() string                { return "~" + e.x.String() }
func (e notExpr) eval(r valueReader) LogicValue { return e.x.eval(r).Not() }
func (e notExpr) scan(f func(*Signal))          { e.x.scan(f) }
func (e notExpr) subst(m map[*Signal]Expr) Expr { return notExpr{x: e.x.subst(m)} }

// Binary operators.

type binOp int

const (
	opAnd binOp = iota
	opOr
	opXor
	opAdd
	opSub
	opMul
	opDiv
	opMod
	opEq
	opNeq
)

var binOpNames = [...]string{"&", "|", "^", "+", "-", "*", "/", "%", "==", "!="}

func (o binOp) apply(a, b LogicValue) LogicValue {
	switch o {
	case opAnd:
		return a.And(b)
	case opOr:
		return a.Or(b)
	case opXor:
		return a.Xor(b)
	case opAdd:
		return a.Add(b)
	case opSub:
		return a.Sub(b)
	case opMul:
		return a.Mul(b)
	case opDiv:
		return a.Div(b)
	case opMod:
		return a.Mod(b)
	case opEq:
		return a.Eq(b)
	default:
		return a.Neq(b)
	}
}

type binExpr struct {
	op   binOp
	x, y Expr
}

func newBinExpr(name string, op binOp, x, y Expr) Expr {
	if x.Width() != y.Width() {
		cerr(name, "width mismatch: %s is %d bits, %s is %d bits",
			x, x.Width(), y, y.Width())
	}
	return binExpr{op: op, x: x, y: y}
}

// And returns the bitwise AND of x and y. Operand widths must match.
//
func And(x, y Expr) Expr { return newBinExpr("rohd.And", opAnd, x, y) }

// Or returns the bitwise OR of x and y. Operand widths must match.
//
func Or(x, y Expr) Expr { return newBinExpr("rohd.Or", opOr, x, y) }

// Xor returns the bitwise XOR of x and y. Operand widths must match.
//
func Xor(x, y Expr) Expr { return newBinExpr("rohd.Xor", opXor, x, y) }

// Add returns x + y truncated to the operand width.
//
func Add(x, y Expr) Expr { return newBinExpr("rohd.Add", opAdd, x, y) }

// Sub returns x - y truncated to the operand width.
//
func Sub(x, y Expr) Expr { return newBinExpr("rohd.Sub", opSub, x, y) }

// Mul returns x * y truncated to the operand width.
//
func Mul(x, y Expr) Expr { return newBinExpr("rohd.Mul", opMul, x, y) }

// Div returns x / y, all-X on division by zero.
//
func Div(x, y Expr) Expr { return newBinExpr("rohd.Div", opDiv, x, y) }

// Mod returns x % y, all-X on division by zero.
//
func Mod(x, y Expr) Expr { return newBinExpr("rohd.Mod", opMod, x, y) }

// Eq returns the 1-bit logical equality of x and y: X if either side
// contains X or Z bits.
//
func Eq(x, y Expr) Expr { return newBinExpr("rohd.Eq", opEq, x, y) }

// Neq returns the 1-bit logical inequality of x and y.
//
func Neq(x, y Expr) Expr { return newBinExpr("rohd.Neq", opNeq, x, y) }

func (e binExpr) Width() int {
	if e.op == opEq || e.op == opNeq {
		return 1
	}
	return e.x.Width()
}

func (e binExpr) String() string {
	return "(" + e.x.String() + " " + binOpNames[e.op] + " " + e.y.String() + ")"
}

func (e binExpr) eval(r valueReader) LogicValue {
	return e.op.apply(e.x.eval(r), e.y.eval(r))
}

func (e binExpr) scan(f func(*Signal)) {
	e.x.scan(f)
	e.y.scan(f)
}

func (e binExpr) subst(m map[*Signal]Expr) Expr {
	return binExpr{op: e.op, x: e.x.subst(m), y: e.y.subst(m)}
}

// Concat.

type concatExpr struct {
	parts []Expr
	width int
}

// Concat concatenates parts most significant first, Verilog style:
// Concat(b, a) evaluates to the 2-bit value {b, a} with a as bit 0.
//
func Concat(parts ...Expr) Expr {
	if len(parts) == 0 {
		cerr("rohd.Concat", "empty part list")
	}
	w := 0
	for _, p := range parts {
		w += p.Width()
	}
	if w > MaxWidth {
		cerr("rohd.Concat", "total width %d exceeds %d bits", w, MaxWidth)
	}
	return concatExpr{parts: parts, width: w}
}

func (e concatExpr) Width() int { return e.width }

func (e concatExpr) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range e.parts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (e concatExpr) eval(r valueReader) LogicValue {
	vals := make([]LogicValue, len(e.parts))
	for i, p := range e.parts {
		vals[i] = p.eval(r)
	}
	return catValues(vals)
}

func (e concatExpr) scan(f func(*Signal)) {
	for _, p := range e.parts {
		p.scan(f)
	}
}

func (e concatExpr) subst(m map[*Signal]Expr) Expr {
	parts := make([]Expr, len(e.parts))
	for i, p := range e.parts {
		parts[i] = p.subst(m)
	}
	return concatExpr{parts: parts, width: e.width}
}
