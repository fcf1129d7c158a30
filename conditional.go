// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rohd

// A Statement is one step of a conditional block: an assignment, an if
// tree or a case. Statements are built once by the constructors below,
// validated at construction time, and are immutable afterwards.
//
type Statement interface {
	stmtNode()
}

type assignStmt struct {
	dst *Signal
	src Expr
}

func (*assignStmt) stmtNode() {}

// Assign drives dst from src for the branch path the statement appears
// on. The signal itself is only mutated when the enclosing block commits
// a pass; outside blocks use Signal.Put instead.
//
func Assign(dst *Signal, src Expr) Statement {
	if dst == nil {
		cerr("rohd.Assign", "nil destination signal")
	}
	if src == nil {
		cerr("rohd.Assign", "signal %s: nil source expression", dst.name)
	}
	if src.Width() != dst.width {
		cerr("rohd.Assign", "signal %s: width mismatch: %d != %d", dst.name, dst.width, src.Width())
	}
	return &assignStmt{dst: dst, src: src}
}

// Increment drives s from s + 1.
//
func Increment(s *Signal) Statement {
	if s == nil {
		cerr("rohd.Increment", "nil signal")
	}
	return Assign(s, Add(s, Const(1, s.width)))
}

// Decrement drives s from s - 1.
//
func Decrement(s *Signal) Statement {
	if s == nil {
		cerr("rohd.Decrement", "nil signal")
	}
	return Assign(s, Sub(s, Const(1, s.width)))
}

type ifStmt struct {
	cond Expr
	then []Statement
	els  []Statement
}

func (*ifStmt) stmtNode() {}

// If executes then when cond evaluates to 1 and orElse (which may be
// nil) when it evaluates to 0. A condition evaluating to X or Z drives
// every signal assigned anywhere under the statement to all-X for the
// pass. cond must be 1 bit wide.
//
func If(cond Expr, then, orElse []Statement) Statement {
	if cond == nil {
		cerr("rohd.If", "nil condition")
	}
	if cond.Width() != 1 {
		cerr("rohd.If", "condition %s is %d bits wide, want 1", cond, cond.Width())
	}
	if len(then) == 0 && len(orElse) == 0 {
		cerr("rohd.If", "no statements in either branch")
	}
	return &ifStmt{cond: cond, then: then, els: orElse}
}

// An IfBranch is one arm of an IfChain, built with Iff, ElseIf or Else.
//
type IfBranch struct {
	cond Expr // nil for Else
	body []Statement
}

// Iff opens an if chain with a conditioned branch. The spelling avoids
// colliding with the If statement constructor.
//
func Iff(cond Expr, stmts ...Statement) IfBranch {
	if cond == nil {
		cerr("rohd.Iff", "nil condition")
	}
	if cond.Width() != 1 {
		cerr("rohd.Iff", "condition %s is %d bits wide, want 1", cond, cond.Width())
	}
	if len(stmts) == 0 {
		cerr("rohd.Iff", "empty branch body")
	}
	return IfBranch{cond: cond, body: stmts}
}

// ElseIf adds a conditioned branch to an if chain. It is the same
// construct as Iff under a name that reads better past the first branch.
//
func ElseIf(cond Expr, stmts ...Statement) IfBranch {
	if cond == nil {
		cerr("rohd.ElseIf", "nil condition")
	}
	if cond.Width() != 1 {
		cerr("rohd.ElseIf", "condition %s is %d bits wide, want 1", cond, cond.Width())
	}
	if len(stmts) == 0 {
		cerr("rohd.ElseIf", "empty branch body")
	}
	return IfBranch{cond: cond, body: stmts}
}

// Else adds the unconditioned fallback branch of an if chain. It may
// only appear once, in last position.
//
func Else(stmts ...Statement) IfBranch {
	if len(stmts) == 0 {
		cerr("rohd.Else", "empty branch body")
	}
	return IfBranch{body: stmts}
}

// IfChain folds an ordered list of branches into a single if/else-if/else
// tree. The chain must begin with a conditioned branch (Iff or ElseIf)
// and may end with a single Else: an Else first, in the middle, repeated,
// or alone panics with *ConstructionError before any elaboration.
//
func IfChain(branches ...IfBranch) Statement {
	if len(branches) == 0 {
		cerr("rohd.IfChain", "empty chain")
	}
	if branches[0].cond == nil {
		if len(branches) == 1 {
			cerr("rohd.IfChain", "chain with only an else branch")
		}
		cerr("rohd.IfChain", "chain must begin with a conditioned branch")
	}
	for i, b := range branches[1:] {
		if b.cond == nil && i+1 != len(branches)-1 {
			cerr("rohd.IfChain", "else branch must be last (position %d of %d)", i+2, len(branches))
		}
	}
	// fold right to left into nested if statements
	last := branches[len(branches)-1]
	var els []Statement
	rest := branches
	if last.cond == nil {
		els = last.body
		rest = branches[:len(branches)-1]
	}
	stmt := Statement(nil)
	for i := len(rest) - 1; i >= 0; i-- {
		b := rest[i]
		if stmt == nil {
			stmt = &ifStmt{cond: b.cond, then: b.body, els: els}
		} else {
			stmt = &ifStmt{cond: b.cond, then: b.body, els: []Statement{stmt}}
		}
	}
	return stmt
}

// CaseKind selects the matching discipline of a Case statement.
//
type CaseKind int

// Case kinds.
const (
	// CaseNone takes the first matching item in list order.
	CaseNone CaseKind = iota
	// CaseUnique requires exactly one unambiguous match; any violation
	// drives every signal assigned under the case to all-X for the pass.
	CaseUnique
	// CasePriority takes the first matching item in list order.
	CasePriority
)

// A CaseItem pairs a match pattern with the statements guarded by it.
//
type CaseItem struct {
	match LogicValue
	body  []Statement
}

// Item builds a case item matching the given pattern. In a CaseZ
// statement, Z bits of the pattern are wildcards.
//
func Item(match LogicValue, stmts ...Statement) CaseItem {
	if len(stmts) == 0 {
		cerr("rohd.Item", "empty item body")
	}
	return CaseItem{match: match, body: stmts}
}

type caseStmt struct {
	expr     Expr
	items    []CaseItem
	def      []Statement
	kind     CaseKind
	wildcard bool
}

func (*caseStmt) stmtNode() {}

func newCase(op string, expr Expr, items []CaseItem, def []Statement, kind CaseKind, wildcard bool) Statement {
	if expr == nil {
		cerr(op, "nil case expression")
	}
	if kind != CaseNone && kind != CaseUnique && kind != CasePriority {
		cerr(op, "invalid case kind %d", kind)
	}
	if len(items) == 0 && len(def) == 0 {
		cerr(op, "case with no items and no default")
	}
	for i, it := range items {
		if it.body == nil {
			cerr(op, "item %d not built with Item", i)
		}
		if it.match.width != expr.Width() {
			cerr(op, "item %d: pattern %s is %d bits wide, case expression %s is %d",
				i, it.match, it.match.width, expr, expr.Width())
		}
	}
	return &caseStmt{expr: expr, items: items, def: def, kind: kind, wildcard: wildcard}
}

// Case matches expr against the items in list order. With CaseNone or
// CasePriority the first matching item wins and def (which may be nil)
// fires when nothing matches; matching is strict four-state equality.
// With CaseUnique all items are evaluated and any double match drives
// every signal assigned under the case to all-X for the pass, default
// included.
//
func Case(expr Expr, items []CaseItem, def []Statement, kind CaseKind) Statement {
	return newCase("rohd.Case", expr, items, def, kind, false)
}

// CaseZ is Case with wildcard patterns: Z bits of an item pattern match
// 0, 1, X or Z in the compared value. With CaseUnique, a single match
// that relied on a wildcard position where the compared value is X or Z
// counts as ambiguous and drives the case outputs to all-X.
//
func CaseZ(expr Expr, items []CaseItem, def []Statement, kind CaseKind) Statement {
	return newCase("rohd.CaseZ", expr, items, def, kind, true)
}
