// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sched provides the time-ordered event queue backing the
// simulator: callbacks keyed by virtual time, popped in time order with
// stable FIFO order within one timestamp.
//
package sched

import "container/heap"

// An Event is a callback scheduled at a virtual time.
//
type Event struct {
	Time uint64
	Fn   func()
	seq  uint64
}

type evHeap []Event

func (h evHeap) Len() int { return len(h) }

func (h evHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h evHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *evHeap) Push(x any) { *h = append(*h, x.(Event)) }

func (h *evHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = Event{}
	*h = old[:n-1]
	return e
}

// A Queue is a min-heap of events ordered by time, then by insertion
// order. The zero value is ready to use.
//
type Queue struct {
	h   evHeap
	seq uint64
}

// Schedule enqueues fn to run at time t.
//
func (q *Queue) Schedule(t uint64, fn func()) {
	heap.Push(&q.h, Event{Time: t, Fn: fn, seq: q.seq})
	q.seq++
}

// Len returns the number of pending events.
//
func (q *Queue) Len() int { return len(q.h) }

// NextTime returns the time of the earliest pending event. ok is false
// when the queue is empty.
//
func (q *Queue) NextTime() (t uint64, ok bool) {
	if len(q.h) == 0 {
		return 0, false
	}
	return q.h[0].Time, true
}

// Pop removes and returns the earliest pending event. ok is false when
// the queue is empty.
//
func (q *Queue) Pop() (e Event, ok bool) {
	if len(q.h) == 0 {
		return Event{}, false
	}
	return heap.Pop(&q.h).(Event), true
}

// Clear drops all pending events.
//
func (q *Queue) Clear() {
	q.h = q.h[:0]
	q.seq = 0
}
