// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rohd

import (
	"strconv"

	"github.com/pkg/errors"
)

// SSA is the substitution proxy handed to a CombinationalSSA builder. It
// marks the block as using static single assignment form: every write
// allocates a fresh intermediate version of the target and every read
// resolves to the most recent version visible at that point, so reading
// a signal after writing it is well defined instead of a
// WriteAfterRead hazard.
//
// The proxy methods are the assignment surface of the builder; If, Case
// and the other statement constructors are used unchanged and are
// rewritten the same way.
//
type SSA struct{}

// Assign drives dst from src through a fresh version of dst.
//
func (*SSA) Assign(dst *Signal, src Expr) Statement {
	return Assign(dst, src)
}

// Increment drives s from s + 1, reading the current version of s.
//
func (*SSA) Increment(s *Signal) Statement {
	return Increment(s)
}

// Decrement drives s from s - 1, reading the current version of s.
//
func (*SSA) Decrement(s *Signal) Statement {
	return Decrement(s)
}

// CombinationalSSA returns a combinational block whose statements are
// rewritten into static single assignment form before elaboration: per
// (signal, write) a fresh intermediate named after the original (q~0,
// q~1, ...) carries that write, branches merge their final versions on
// every path, and each original signal is assigned from its final
// version at the end of the block. Read-modify-write sequences
// elaborate without the write-after-read hazard check and resolve in
// program order within one pass. A true feedback loop through the
// block's own output is still combinational and settles to X or not at
// all.
//
func CombinationalSSA(build func(s *SSA) []Statement) (*Block, error) {
	if build == nil {
		return nil, errors.New("nil builder")
	}
	stmts, err := ssaTransform(build(&SSA{}))
	if err != nil {
		return nil, err
	}
	return newBlock(kindComb, nil, Posedge, true, false, stmts)
}

// ssaState is the substitution table threaded through the rewrite,
// keyed by original signal.
type ssaState struct {
	cur   map[*Signal]*Signal // current version per original
	count map[*Signal]int     // versions allocated per original
	order []*Signal           // originals in first-write order
	err   error
}

func ssaTransform(stmts []Statement) ([]Statement, error) {
	st := &ssaState{
		cur:   make(map[*Signal]*Signal),
		count: make(map[*Signal]int),
	}
	out := st.rewriteList(stmts)
	if st.err != nil {
		return nil, st.err
	}
	for _, orig := range st.order {
		out = append(out, Assign(orig, st.cur[orig]))
	}
	return out, nil
}

// fresh allocates the next version of orig.
func (st *ssaState) fresh(orig *Signal) *Signal {
	if orig.root != nil {
		st.err = errors.Errorf("ssa: cannot assign bit range %s", orig.name)
		return orig
	}
	n := st.count[orig]
	st.count[orig] = n + 1
	if n == 0 {
		st.order = append(st.order, orig)
	}
	v := NewSignal(orig.name+"~"+strconv.Itoa(n), orig.width)
	st.cur[orig] = v
	return v
}

// substExpr resolves every signal read in e to its current version.
// Bit range views cannot track versions, so reading one after its
// parent was assigned is rejected.
func (st *ssaState) substExpr(e Expr) Expr {
	e.scan(func(s *Signal) {
		if st.err == nil && s.root != nil && st.cur[s.rootSig()] != nil {
			st.err = errors.Errorf("ssa: bit range %s read after its parent was assigned", s.name)
		}
	})
	m := make(map[*Signal]Expr, len(st.cur))
	for orig, v := range st.cur {
		m[orig] = v
	}
	return e.subst(m)
}

func (st *ssaState) rewriteList(stmts []Statement) []Statement {
	out := make([]Statement, 0, len(stmts))
	for _, s := range stmts {
		if st.err != nil {
			return out
		}
		out = append(out, st.rewrite(s))
	}
	return out
}

func (st *ssaState) rewrite(s Statement) Statement {
	switch s := s.(type) {
	case *assignStmt:
		src := st.substExpr(s.src)
		if st.err != nil {
			return s
		}
		return &assignStmt{dst: st.fresh(s.dst), src: src}

	case *ifStmt:
		cond := st.substExpr(s.cond)
		base := copyVersions(st.cur)

		then := st.rewriteList(s.then)
		curThen := st.cur
		st.cur = copyVersions(base)
		els := st.rewriteList(s.els)
		curElse := st.cur
		st.cur = copyVersions(base)
		if st.err != nil {
			return s
		}

		// merge: every signal written on either path gets one merge
		// version assigned at the tail of both branches, the untouched
		// path falling back to its pre-branch version. An absent else
		// branch is synthesized from the merges alone.
		for _, orig := range st.order {
			tv, ev := curThen[orig], curElse[orig]
			if tv == base[orig] && ev == base[orig] {
				continue
			}
			m := st.fresh(orig)
			then = append(then, Assign(m, versionOf(tv, base, orig)))
			els = append(els, Assign(m, versionOf(ev, base, orig)))
		}
		return &ifStmt{cond: cond, then: then, els: els}

	case *caseStmt:
		expr := st.substExpr(s.expr)
		base := copyVersions(st.cur)

		bodies := make([][]Statement, len(s.items))
		curs := make([]map[*Signal]*Signal, len(s.items))
		for i, it := range s.items {
			st.cur = copyVersions(base)
			bodies[i] = st.rewriteList(it.body)
			curs[i] = st.cur
		}
		st.cur = copyVersions(base)
		def := st.rewriteList(s.def)
		curDef := st.cur
		st.cur = copyVersions(base)
		if st.err != nil {
			return s
		}

		for _, orig := range st.order {
			touched := curDef[orig] != base[orig]
			for _, c := range curs {
				touched = touched || c[orig] != base[orig]
			}
			if !touched {
				continue
			}
			m := st.fresh(orig)
			for i := range bodies {
				bodies[i] = append(bodies[i], Assign(m, versionOf(curs[i][orig], base, orig)))
			}
			def = append(def, Assign(m, versionOf(curDef[orig], base, orig)))
		}
		items := make([]CaseItem, len(s.items))
		for i, it := range s.items {
			items[i] = CaseItem{match: it.match, body: bodies[i]}
		}
		return &caseStmt{expr: expr, items: items, def: def, kind: s.kind, wildcard: s.wildcard}
	}
	return s
}

func copyVersions(m map[*Signal]*Signal) map[*Signal]*Signal {
	c := make(map[*Signal]*Signal, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// versionOf returns the read of orig on a path whose final version map
// entry is v: v itself, the pre-branch version, or the original.
func versionOf(v *Signal, base map[*Signal]*Signal, orig *Signal) Expr {
	if v != nil {
		return v
	}
	if b, ok := base[orig]; ok {
		return b
	}
	return orig
}
