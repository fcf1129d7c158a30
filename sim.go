// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rohd

import (
	"github.com/pkg/errors"

	"github.com/RPG-coder-intc/rohd/internal/sched"
)

// DefaultSettleLimit is the default cap on fixed-point sweeps per delta
// cycle.
const DefaultSettleLimit = 1000

// A Simulator is the virtual time authority of a design: it owns the
// event queue, runs delta-cycle settlement over the registered
// combinational blocks, generates clocks, detects edges and fires the
// sequential blocks. It is single threaded; stimulus may be injected
// between runs, never during one.
//
type Simulator struct {
	// SettleLimit caps the fixed-point sweeps of one delta cycle. When
	// exceeded the run fails with ErrNonConvergence.
	SettleLimit int

	q       sched.Queue
	now     uint64
	blocks  []*Block
	combs   []*Block
	seqs    []*Block
	signals map[string]*Signal
	drivers map[*Signal]*Block
	clocks  []*clockGen
	probes  []*probeRec
	clkMark Block // drivers marker for clock generated signals
	dirty   bool
	stopped bool
}

type clockGen struct {
	sig    *Signal
	period uint64
}

type probeRec struct {
	sig  *Signal
	fn   func(t uint64, v LogicValue)
	last LogicValue
}

// NewSimulator returns an empty simulator at time 0.
//
func NewSimulator() *Simulator {
	return &Simulator{
		SettleLimit: DefaultSettleLimit,
		signals:     make(map[string]*Signal),
		drivers:     make(map[*Signal]*Block),
	}
}

// touch flags pending stimulus, picked up by the next run or settle.
func (s *Simulator) touch() { s.dirty = true }

func (s *Simulator) addSignal(root *Signal) error {
	if prev, ok := s.signals[root.name]; ok && prev != root {
		return errors.Errorf("duplicate signal name %s", root.name)
	}
	s.signals[root.name] = root
	root.sim = s
	return nil
}

// Register adds blocks to the simulation. Every signal a block touches
// becomes addressable by name; signal names must be unique within one
// simulator. A signal driven by two different blocks (or by a block and
// a clock generator) is rejected with ErrSignalRedriven.
//
func (s *Simulator) Register(blocks ...*Block) error {
	for _, b := range blocks {
		if b == nil {
			return errors.New("nil block")
		}
		for _, reg := range s.blocks {
			if reg == b {
				return errors.New("block already registered")
			}
		}
		for _, t := range b.targets {
			root := t.rootSig()
			if owner, ok := s.drivers[root]; ok && owner != b {
				return errors.Wrap(ErrSignalRedriven, "signal "+root.name+" driven by two blocks")
			}
		}
		for _, t := range b.targets {
			root := t.rootSig()
			s.drivers[root] = b
			if err := s.addSignal(root); err != nil {
				return err
			}
		}
		for _, r := range b.reads {
			if err := s.addSignal(r); err != nil {
				return err
			}
		}
		s.blocks = append(s.blocks, b)
		if b.kind == kindSeq {
			if err := s.addSignal(b.clk.rootSig()); err != nil {
				return err
			}
			b.lastClk = b.clk.Value().Bit(0)
			s.seqs = append(s.seqs, b)
		} else {
			s.combs = append(s.combs, b)
		}
	}
	s.dirty = true
	return nil
}

// AddClock turns clk into a generated clock: initialized to 0 now and
// toggled every period/2 time units from now on. period must be even
// and nonzero. A clock signal cannot also be driven by a block.
//
func (s *Simulator) AddClock(clk *Signal, period uint64) error {
	if clk == nil {
		return errors.New("nil clock signal")
	}
	if clk.width != 1 {
		return errors.Errorf("clock signal %s is %d bits wide, want 1", clk.name, clk.width)
	}
	if period == 0 || period%2 != 0 {
		return errors.Errorf("clock signal %s: period %d not a positive even number", clk.name, period)
	}
	root := clk.rootSig()
	if _, ok := s.drivers[root]; ok {
		return errors.Wrap(ErrSignalRedriven, "signal "+root.name+" driven by two blocks")
	}
	if err := s.addSignal(root); err != nil {
		return err
	}
	s.drivers[root] = &s.clkMark
	s.clocks = append(s.clocks, &clockGen{sig: root, period: period})
	s.armClock(s.clocks[len(s.clocks)-1])
	s.dirty = true
	return nil
}

func (s *Simulator) armClock(c *clockGen) {
	c.sig.setValue(Filled(1, Lo))
	var tick func()
	tick = func() {
		c.sig.setValue(c.sig.Value().Not())
		s.q.Schedule(s.now+c.period/2, tick)
	}
	s.q.Schedule(s.now+c.period/2, tick)
}

// Probe registers fn to run after any settled timestep in which sig
// changed, with the simulation time and the new value.
//
func (s *Simulator) Probe(sig *Signal, fn func(t uint64, v LogicValue)) {
	s.probes = append(s.probes, &probeRec{sig: sig, fn: fn, last: sig.Value()})
}

func (s *Simulator) fireProbes() {
	for _, p := range s.probes {
		if v := p.sig.Value(); !v.Equal(p.last) {
			p.last = v
			p.fn(s.now, v)
		}
	}
}

// Now returns the current virtual time.
//
func (s *Simulator) Now() uint64 { return s.now }

// Signal returns the registered signal with the given name, or nil.
//
func (s *Simulator) Signal(name string) *Signal { return s.signals[name] }

// At schedules fn to run at virtual time t, which must not be in the
// past.
//
func (s *Simulator) At(t uint64, fn func()) error {
	if t < s.now {
		return errors.Errorf("time %d already passed (now %d)", t, s.now)
	}
	if fn == nil {
		return errors.New("nil event")
	}
	s.q.Schedule(t, fn)
	return nil
}

// PutAt schedules stimulus v on sig at virtual time t.
//
func (s *Simulator) PutAt(t uint64, sig *Signal, v LogicValue) error {
	if sig == nil {
		return errors.New("nil signal")
	}
	if v.width != sig.width {
		return errors.Errorf("signal %s: width mismatch: %d != %d", sig.name, sig.width, v.width)
	}
	return s.At(t, func() { sig.PutValue(v) })
}

// settle re-applies every combinational block until a full sweep changes
// nothing. Exceeding SettleLimit sweeps is an oscillating design and
// fails with ErrNonConvergence.
func (s *Simulator) settle() error {
	limit := s.SettleLimit
	if limit <= 0 {
		limit = DefaultSettleLimit
	}
	for i := 0; ; i++ {
		if i > limit {
			return errors.Wrapf(ErrNonConvergence, "%d sweeps", limit)
		}
		changed := false
		for _, b := range s.combs {
			ch, err := b.pass()
			if err != nil {
				return err
			}
			changed = changed || ch
		}
		if !changed {
			return nil
		}
	}
}

func edgeTriggered(last, cur Bit, e Edge) bool {
	if e == Negedge {
		return last == Hi && cur == Lo
	}
	return last == Lo && cur == Hi
}

// deltaCycle runs one zero-duration settlement: combinational fixed
// point, then recognized clock edges, repeating while commits keep
// producing new edges. Every sequential block firing on one edge samples
// the same pre-edge settled state; their writes commit together.
func (s *Simulator) deltaCycle() error {
	if err := s.settle(); err != nil {
		return err
	}
	limit := s.SettleLimit
	if limit <= 0 {
		limit = DefaultSettleLimit
	}
	for round := 0; ; round++ {
		if round > limit {
			return errors.Wrapf(ErrNonConvergence, "%d edge rounds", limit)
		}
		var fired []*passCtx
		for _, b := range s.seqs {
			cur := b.clk.Value().Bit(0)
			if edgeTriggered(b.lastClk, cur, b.edge) {
				p, err := b.evaluate()
				if err != nil {
					return err
				}
				fired = append(fired, p)
			}
			b.lastClk = cur
		}
		if len(fired) == 0 {
			return nil
		}
		for _, p := range fired {
			p.commit()
		}
		if err := s.settle(); err != nil {
			return err
		}
	}
}

// Settle resolves any pending stimulus now, without advancing time:
// combinational fixed point plus any clock edges the stimulus itself
// produced.
//
func (s *Simulator) Settle() error {
	if err := s.deltaCycle(); err != nil {
		return err
	}
	s.dirty = false
	s.fireProbes()
	return nil
}

// runStep processes all events at the next pending time and settles.
// ok is false when no event is pending.
func (s *Simulator) runStep() (ok bool, err error) {
	t, ok := s.q.NextTime()
	if !ok {
		return false, nil
	}
	s.now = t
	for {
		nt, ok := s.q.NextTime()
		if !ok || nt != t {
			break
		}
		e, _ := s.q.Pop()
		e.Fn()
	}
	if err := s.deltaCycle(); err != nil {
		return true, err
	}
	s.dirty = false
	s.fireProbes()
	return true, nil
}

// Run advances virtual time, processing pending events and settling
// after each timestep, until the queue drains, time would pass
// maxSimTime, or Stop is called. Pending stimulus is settled first.
// Events scheduled exactly at maxSimTime still run.
//
func (s *Simulator) Run(maxSimTime uint64) error {
	s.stopped = false
	if s.dirty {
		if err := s.Settle(); err != nil {
			return err
		}
	}
	for !s.stopped {
		t, ok := s.q.NextTime()
		if !ok || t > maxSimTime {
			break
		}
		if _, err := s.runStep(); err != nil {
			return err
		}
	}
	if s.now < maxSimTime && !s.stopped {
		s.now = maxSimTime
	}
	return nil
}

// RunUntilEdge advances timesteps until clk makes the given transition,
// then returns with that timestep fully settled. It fails if the event
// queue drains first.
//
func (s *Simulator) RunUntilEdge(clk *Signal, edge Edge) error {
	if clk == nil {
		return errors.New("nil clock signal")
	}
	if s.dirty {
		if err := s.Settle(); err != nil {
			return err
		}
	}
	for {
		last := clk.Value().Bit(0)
		ok, err := s.runStep()
		if err != nil {
			return err
		}
		if !ok {
			return errors.Errorf("signal %s: queue drained before %s", clk.name, edge)
		}
		if edgeTriggered(last, clk.Value().Bit(0), edge) {
			return nil
		}
	}
}

// Stop makes a running simulation return after the current delta cycle.
// It never interrupts a settlement in progress.
//
func (s *Simulator) Stop() { s.stopped = true }

// Reset rewinds virtual time to 0, drops all pending events and re-arms
// the clock generators. Signal values other than the clocks are left as
// they are.
//
func (s *Simulator) Reset() {
	s.now = 0
	s.q.Clear()
	s.stopped = false
	for _, c := range s.clocks {
		s.armClock(c)
	}
	s.dirty = true
}
