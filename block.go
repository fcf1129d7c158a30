// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rohd

import "github.com/pkg/errors"

// Edge selects the clock transition a sequential block samples on.
//
type Edge int

// Clock edges. Only strict 0 to 1 and 1 to 0 transitions qualify:
// a clock moving through X or Z never triggers a sequential block.
const (
	Posedge Edge = iota
	Negedge
)

func (e Edge) String() string {
	if e == Negedge {
		return "negedge"
	}
	return "posedge"
}

type blockKind int

const (
	kindComb blockKind = iota
	kindSeq
)

// A Block is an evaluation unit: an elaborated list of conditional
// statements with either combinational semantics (re-evaluated every
// delta cycle to a fixed point, undriven signals become X) or sequential
// semantics (evaluated once per recognized clock edge, reads see
// pre-edge values, undriven signals hold).
//
// Blocks are built with Combinational, CombinationalSSA, Sequential,
// SequentialOn or SequentialMulti, elaborated once at construction, and
// run by a Simulator.
//
type Block struct {
	kind       blockKind
	stmts      []Statement
	clk        *Signal
	edge       Edge
	ssa        bool
	allowMulti bool

	targets []*Signal // driven set, first-assignment order
	reads   []*Signal // root signals read

	lastClk Bit // previous clock sample, maintained by the simulator
}

func newBlock(kind blockKind, clk *Signal, edge Edge, ssa, allowMulti bool, stmts []Statement) (*Block, error) {
	if len(stmts) == 0 {
		return nil, errors.New("empty statement list")
	}
	for _, st := range stmts {
		if st == nil {
			return nil, errors.New("nil statement")
		}
	}
	if kind == kindSeq {
		if clk == nil {
			return nil, errors.New("nil clock signal")
		}
		if clk.width != 1 {
			return nil, errors.Errorf("clock signal %s is %d bits wide, want 1", clk.name, clk.width)
		}
		if edge != Posedge && edge != Negedge {
			return nil, errors.Errorf("invalid edge %d", edge)
		}
	}
	if kind == kindComb && !ssa {
		if err := checkWriteAfterRead(stmts, make(map[*Signal]bool)); err != nil {
			return nil, err
		}
	}
	b := &Block{
		kind:       kind,
		stmts:      stmts,
		clk:        clk,
		edge:       edge,
		ssa:        ssa,
		allowMulti: allowMulti,
		lastClk:    Undef,
	}
	collectTargets(stmts, func(s *Signal) { b.targets = append(b.targets, s) })
	collectReads(stmts, func(s *Signal) { b.reads = append(b.reads, s) })
	return b, nil
}

// Combinational returns a block re-evaluated every delta cycle until its
// outputs are a fixed point of its inputs. A signal undriven on the
// taken branch is driven all-X. Reading a signal after an earlier
// statement of the block may have written it fails with
// ErrWriteAfterRead; use CombinationalSSA for feedback expressions.
//
func Combinational(stmts ...Statement) (*Block, error) {
	return newBlock(kindComb, nil, Posedge, false, false, stmts)
}

// Sequential returns a block evaluated once per rising edge of clk.
// Reads see pre-edge values, writes commit atomically at the edge, and a
// signal undriven on the taken branch holds its previous value. Driving
// a signal from two independent statement groups fails the pass with
// ErrSignalRedriven; use SequentialMulti to opt in to last-wins
// resolution.
//
func Sequential(clk *Signal, stmts ...Statement) (*Block, error) {
	return newBlock(kindSeq, clk, Posedge, false, false, stmts)
}

// SequentialOn is Sequential with an explicit sampling edge.
//
func SequentialOn(clk *Signal, edge Edge, stmts ...Statement) (*Block, error) {
	return newBlock(kindSeq, clk, edge, false, false, stmts)
}

// SequentialMulti is SequentialOn with multiple assignments allowed: when
// independent statement groups drive the same signal in one pass, the
// last group in program order wins.
//
func SequentialMulti(clk *Signal, edge Edge, stmts ...Statement) (*Block, error) {
	return newBlock(kindSeq, clk, edge, false, true, stmts)
}

// A driveRec tracks one driven bit range for the redrive check, at
// top-level statement group granularity.
type driveRec struct {
	root   *Signal
	lo, hi int
	group  int
}

// passCtx is the per-pass scratch state of one block evaluation.
type passCtx struct {
	b      *Block
	over   map[*Signal]LogicValue // pass overlay, keyed by root signal
	driven map[*Signal]bool       // targets driven this pass
	drives []driveRec
	err    error
}

// read implements valueReader. Combinational passes see their own writes
// (the overlay shadows settled values); sequential passes always read
// pre-edge values.
func (p *passCtx) read(s *Signal) LogicValue {
	if p.b.kind == kindComb {
		if ov, ok := p.over[s.rootSig()]; ok {
			if s.root == nil {
				return ov
			}
			return ov.Slice(s.off+s.width-1, s.off)
		}
	}
	return s.Value()
}

// readBack returns the resolved pass value of target t from the overlay.
func (p *passCtx) readBack(t *Signal) LogicValue {
	ov := p.over[t.rootSig()]
	if t.root == nil {
		return ov
	}
	return ov.Slice(t.off+t.width-1, t.off)
}

// write resolves one driver of dst for the current pass.
func (p *passCtx) write(dst *Signal, v LogicValue, group int) {
	if p.err != nil {
		return
	}
	root := dst.rootSig()
	lo, hi := dst.off, dst.off+dst.width-1

	// Drives from independent top-level groups must agree. Within one
	// group, later writes overwrite earlier ones silently.
	for _, rec := range p.drives {
		if rec.root != root || rec.group == group || p.b.allowMulti {
			continue
		}
		olo, ohi := max(lo, rec.lo), min(hi, rec.hi)
		if olo > ohi {
			continue
		}
		live := p.readBack(root.Range(ohi, olo))
		if !live.Equal(v.Slice(ohi-lo, olo-lo)) {
			p.err = errors.Wrap(ErrSignalRedriven, "signal "+dst.name)
			return
		}
	}

	base, ok := p.over[root]
	if !ok {
		base = root.val
	}
	if dst.root == nil {
		p.over[root] = v
	} else {
		p.over[root] = base.withBits(dst.off, v)
	}
	p.driven[dst] = true

	for _, rec := range p.drives {
		if rec.root == root && rec.lo == lo && rec.hi == hi && rec.group == group {
			return
		}
	}
	p.drives = append(p.drives, driveRec{root: root, lo: lo, hi: hi, group: group})
}

// poison drives every assignment destination under st all-X for the
// pass. Used when an if condition evaluates to X or Z and when a unique
// case matches ambiguously.
func (p *passCtx) poison(st Statement, group int) {
	collectTargets([]Statement{st}, func(t *Signal) {
		p.write(t, Filled(t.width, Undef), group)
	})
}

func (p *passCtx) execList(stmts []Statement, group int) {
	for _, st := range stmts {
		if p.err != nil {
			return
		}
		p.exec(st, group)
	}
}

func (p *passCtx) exec(st Statement, group int) {
	switch st := st.(type) {
	case *assignStmt:
		p.write(st.dst, st.src.eval(p), group)
	case *ifStmt:
		switch st.cond.eval(p).Bit(0) {
		case Hi:
			p.execList(st.then, group)
		case Lo:
			p.execList(st.els, group)
		default:
			p.poison(st, group)
		}
	case *caseStmt:
		p.execCase(st, group)
	}
}

func (p *passCtx) execCase(st *caseStmt, group int) {
	v := st.expr.eval(p)
	if st.kind == CaseUnique {
		first := -1
		matches := 0
		for i, it := range st.items {
			if matchPattern(v, it.match, st.wildcard) {
				if first < 0 {
					first = i
				}
				matches++
			}
		}
		ambiguous := matches > 1 ||
			(matches == 1 && st.wildcard && ambiguousMatch(v, st.items[first].match))
		switch {
		case ambiguous:
			p.poison(st, group)
		case matches == 1:
			p.execList(st.items[first].body, group)
		default:
			p.execList(st.def, group)
		}
		return
	}
	// CaseNone, CasePriority: first match in list order wins.
	for _, it := range st.items {
		if matchPattern(v, it.match, st.wildcard) {
			p.execList(it.body, group)
			return
		}
	}
	p.execList(st.def, group)
}

// evaluate runs the block's statements for one pass without committing.
// Splitting evaluation from commit lets the simulator sample every
// sequential block firing on the same edge against one pre-edge view of
// the signals before any of them commits.
func (b *Block) evaluate() (*passCtx, error) {
	p := &passCtx{
		b:      b,
		over:   make(map[*Signal]LogicValue),
		driven: make(map[*Signal]bool),
	}
	for i, st := range b.stmts {
		if p.err != nil {
			break
		}
		p.exec(st, i)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p, nil
}

// commit applies the resolved pass values and reports whether any signal
// changed. Undriven targets go first: combinational defaults to all-X,
// sequential holds. Driven values come from the pass overlay, never from
// the signals themselves, so the commit is atomic relative to the edge
// and aliased bit views resolve consistently.
func (p *passCtx) commit() (changed bool) {
	for _, t := range p.b.targets {
		if !p.driven[t] && p.b.kind == kindComb {
			if t.setValue(Filled(t.width, Undef)) {
				changed = true
			}
		}
	}
	for _, t := range p.b.targets {
		if p.driven[t] {
			if t.setValue(p.readBack(t)) {
				changed = true
			}
		}
	}
	return changed
}

// pass evaluates and commits in one step.
func (b *Block) pass() (changed bool, err error) {
	p, err := b.evaluate()
	if err != nil {
		return false, err
	}
	return p.commit(), nil
}
