// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rohd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Static elaboration: performed once per block at construction time. The
// walk collects the signals a block drives and reads, and runs the
// write-after-read hazard analysis for non-SSA combinational blocks.

// collectTargets calls f once per distinct assignment destination, in
// first-encounter program order, nested branches included.
func collectTargets(stmts []Statement, f func(*Signal)) {
	seen := make(map[*Signal]bool)
	var walk func([]Statement)
	walk = func(stmts []Statement) {
		for _, st := range stmts {
			switch st := st.(type) {
			case *assignStmt:
				if !seen[st.dst] {
					seen[st.dst] = true
					f(st.dst)
				}
			case *ifStmt:
				walk(st.then)
				walk(st.els)
			case *caseStmt:
				for _, it := range st.items {
					walk(it.body)
				}
				walk(st.def)
			}
		}
	}
	walk(stmts)
}

// collectReads calls f once per distinct root signal read anywhere in the
// statement list: assignment sources, if conditions and case expressions.
func collectReads(stmts []Statement, f func(*Signal)) {
	seen := make(map[*Signal]bool)
	scan := func(s *Signal) {
		r := s.rootSig()
		if !seen[r] {
			seen[r] = true
			f(r)
		}
	}
	var walk func([]Statement)
	walk = func(stmts []Statement) {
		for _, st := range stmts {
			switch st := st.(type) {
			case *assignStmt:
				st.src.scan(scan)
			case *ifStmt:
				st.cond.scan(scan)
				walk(st.then)
				walk(st.els)
			case *caseStmt:
				st.expr.scan(scan)
				for _, it := range st.items {
					walk(it.body)
				}
				walk(st.def)
			}
		}
	}
	walk(stmts)
}

// checkWriteAfterRead walks stmts in program order, tracking the set of
// root signals that an earlier statement of the same pass may have
// written. A read of such a signal is ambiguous without SSA: the value
// has not settled yet. Branches fork a copy of the written set and
// rejoin as the union, so the check is conservative across paths. The
// reads of a statement are checked before its own write lands, so a
// plain self-assignment is not a hazard.
func checkWriteAfterRead(stmts []Statement, written map[*Signal]bool) error {
	checkReads := func(e Expr) error {
		var err error
		e.scan(func(s *Signal) {
			if err == nil && written[s.rootSig()] {
				err = errors.Wrap(ErrWriteAfterRead, "signal "+s.rootSig().name)
			}
		})
		return err
	}
	fork := func() map[*Signal]bool {
		m := make(map[*Signal]bool, len(written))
		for k := range written {
			m[k] = true
		}
		return m
	}
	join := func(m map[*Signal]bool) {
		for k := range m {
			written[k] = true
		}
	}
	for _, st := range stmts {
		switch st := st.(type) {
		case *assignStmt:
			if err := checkReads(st.src); err != nil {
				return err
			}
			written[st.dst.rootSig()] = true
		case *ifStmt:
			if err := checkReads(st.cond); err != nil {
				return err
			}
			thenW, elseW := fork(), fork()
			if err := checkWriteAfterRead(st.then, thenW); err != nil {
				return err
			}
			if err := checkWriteAfterRead(st.els, elseW); err != nil {
				return err
			}
			join(thenW)
			join(elseW)
		case *caseStmt:
			if err := checkReads(st.expr); err != nil {
				return err
			}
			forks := make([]map[*Signal]bool, 0, len(st.items)+1)
			for _, it := range st.items {
				m := fork()
				if err := checkWriteAfterRead(it.body, m); err != nil {
					return err
				}
				forks = append(forks, m)
			}
			m := fork()
			if err := checkWriteAfterRead(st.def, m); err != nil {
				return err
			}
			forks = append(forks, m)
			for _, m := range forks {
				join(m)
			}
		}
	}
	return nil
}

// A DriverView describes every driver of one signal in an elaborated
// design: the exportable netlist representation handed to external
// tools. The rendering of paths and expressions is stable across
// identical constructions.
//
type DriverView struct {
	Signal  string
	Width   int
	Default string // "x" for combinational, "hold" for sequential
	Drivers []DriverDesc
}

// A DriverDesc is one driver of a signal: the branch path guarding it
// and the driving expression.
//
type DriverDesc struct {
	Path string // empty for unconditional drivers
	Expr string
}

func joinPath(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + " / " + seg
}

func walkDrivers(stmts []Statement, path string, f func(dst *Signal, path, expr string)) {
	for _, st := range stmts {
		switch st := st.(type) {
		case *assignStmt:
			f(st.dst, path, st.src.String())
		case *ifStmt:
			cond := st.cond.String()
			walkDrivers(st.then, joinPath(path, "if "+cond), f)
			walkDrivers(st.els, joinPath(path, "if "+cond+" else"), f)
		case *caseStmt:
			kw := "case"
			if st.wildcard {
				kw = "casez"
			}
			expr := st.expr.String()
			for _, it := range st.items {
				walkDrivers(it.body, joinPath(path, fmt.Sprintf("%s (%s) %s", kw, expr, it.match)), f)
			}
			walkDrivers(st.def, joinPath(path, fmt.Sprintf("%s (%s) default", kw, expr)), f)
		}
	}
}

// Netlist exports the driver resolution of the given blocks, one entry
// per driven signal in block and first-assignment order.
//
func Netlist(blocks ...*Block) []DriverView {
	var views []DriverView
	idx := make(map[*Signal]int)
	for _, b := range blocks {
		def := "x"
		if b.kind == kindSeq {
			def = "hold"
		}
		walkDrivers(b.stmts, "", func(dst *Signal, path, expr string) {
			i, ok := idx[dst]
			if !ok {
				i = len(views)
				idx[dst] = i
				views = append(views, DriverView{Signal: dst.name, Width: dst.width, Default: def})
			}
			views[i].Drivers = append(views[i].Drivers, DriverDesc{Path: path, Expr: expr})
		})
	}
	return views
}
