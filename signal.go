// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rohd

import "strconv"

// A Signal is a named net holding a four-state value. Signals are created
// with NewSignal or NewSignalArray, driven from inside blocks by Assign
// statements, and driven from outside by the Put methods (stimulus).
//
// Range and Index return views: narrower signals sharing the bits of
// their parent, so that writing a view writes the parent bits and vice
// versa.
//
type Signal struct {
	name  string
	width int
	val   LogicValue // authoritative on roots only

	root *Signal // nil on roots
	off  int     // bit offset into root

	sim *Simulator
}

// NewSignal returns a new signal of the given width, initialized all-X.
//
func NewSignal(name string, width int) *Signal {
	checkWidth("rohd.NewSignal", width)
	if name == "" {
		cerr("rohd.NewSignal", "empty signal name")
	}
	return &Signal{name: name, width: width, val: Filled(width, Undef)}
}

// Name returns the signal name. Views are named after their parent, like
// "bus[3]" or "bus[7:4]".
//
func (s *Signal) Name() string { return s.name }

// Width returns the signal width in bits.
//
func (s *Signal) Width() int { return s.width }

// rootSig returns the signal owning the backing value.
func (s *Signal) rootSig() *Signal {
	if s.root != nil {
		return s.root
	}
	return s
}

// Value returns the current value of the signal.
//
func (s *Signal) Value() LogicValue {
	if s.root != nil {
		return s.root.val.Slice(s.off+s.width-1, s.off)
	}
	return s.val
}

// setValue stores v and reports whether the stored value changed.
func (s *Signal) setValue(v LogicValue) bool {
	if v.width != s.width {
		cerr("Signal.setValue", "signal %s: width mismatch: %d != %d", s.name, s.width, v.width)
	}
	r := s.rootSig()
	if s.root != nil {
		v = r.val.withBits(s.off, v)
	}
	if r.val.Equal(v) {
		return false
	}
	r.val = v
	return true
}

// PutValue injects a stimulus value from outside any block. If the signal
// is registered with a simulator, the change is picked up by the next
// settlement.
//
func (s *Signal) PutValue(v LogicValue) {
	if v.width != s.width {
		cerr("Signal.PutValue", "signal %s: width mismatch: %d != %d", s.name, s.width, v.width)
	}
	if s.setValue(v) {
		if sim := s.rootSig().sim; sim != nil {
			sim.touch()
		}
	}
}

// Put injects n, truncated to the signal width, as stimulus.
//
func (s *Signal) Put(n uint64) {
	s.PutValue(FromUint64(n, s.width))
}

// PutBit injects a single-bit stimulus on every bit of the signal.
//
func (s *Signal) PutBit(b Bit) {
	s.PutValue(Filled(s.width, b))
}

// Range returns a view of bits [lo, hi] of s, Verilog style: Range(3, 0)
// is s[3:0]. The view shares storage with s.
//
func (s *Signal) Range(hi, lo int) *Signal {
	if lo < 0 || hi < lo || hi >= s.width {
		cerr("Signal.Range", "signal %s: range [%d:%d] invalid for width %d", s.name, hi, lo, s.width)
	}
	name := s.name + "[" + strconv.Itoa(hi) + ":" + strconv.Itoa(lo) + "]"
	if hi == lo {
		name = s.name + "[" + strconv.Itoa(lo) + "]"
	}
	return &Signal{
		name:  name,
		width: hi - lo + 1,
		root:  s.rootSig(),
		off:   s.off + lo,
	}
}

// Index returns a 1-bit view of bit i of s.
//
func (s *Signal) Index(i int) *Signal {
	return s.Range(i, i)
}

// A SignalArray packs n elements of equal width into one backing signal.
// Elements are views: writing an element writes the packed signal's
// corresponding bits and vice versa.
//
type SignalArray struct {
	packed *Signal
	elems  []*Signal
}

// NewSignalArray returns an array of n signals of elemWidth bits each,
// packed into a single backing signal of n*elemWidth bits. Element i
// covers bits [i*elemWidth, (i+1)*elemWidth) of the packed signal.
//
func NewSignalArray(name string, n, elemWidth int) *SignalArray {
	if n < 1 {
		cerr("rohd.NewSignalArray", "array %s: element count %d out of range", name, n)
	}
	if elemWidth < 1 || n*elemWidth > MaxWidth {
		cerr("rohd.NewSignalArray", "array %s: %d elements of width %d exceed %d bits", name, n, elemWidth, MaxWidth)
	}
	packed := NewSignal(name, n*elemWidth)
	a := &SignalArray{packed: packed, elems: make([]*Signal, n)}
	for i := 0; i < n; i++ {
		e := packed.Range((i+1)*elemWidth-1, i*elemWidth)
		e.name = name + "[" + strconv.Itoa(i) + "]"
		a.elems[i] = e
	}
	return a
}

// Packed returns the backing signal.
//
func (a *SignalArray) Packed() *Signal { return a.packed }

// Len returns the element count.
//
func (a *SignalArray) Len() int { return len(a.elems) }

// At returns element i.
//
func (a *SignalArray) At(i int) *Signal {
	if i < 0 || i >= len(a.elems) {
		cerr("SignalArray.At", "array %s: index %d out of range [0, %d]", a.packed.name, i, len(a.elems)-1)
	}
	return a.elems[i]
}
