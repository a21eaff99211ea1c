// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"math"
	"unsafe"
)

// heapWindow is the double-heap engine for windows larger than
// smallWindowMax. The lower half of the window lives in a max heap and the
// upper half in a min heap, so both medians are the heap roots. NaNs never
// enter a heap; they are counted in a separate bucket and their nodes sit in
// the arena tagged tagNaN until replaced.
type heapWindow struct {
	size         int
	currentSize  int
	steps        int
	stepDistance int
	maxHeap      []int // arena indices, max heap by value
	maxLen       int
	minHeap      []int // arena indices, min heap by value
	minLen       int
	tail         int // oldest node, noNode while empty
	head         int // newest node, noNode while empty
	nodes        []heapNode
	nanCount     int
	poison       bool // ignoreNaNWindows
}

func newHeapWindow(size, steps int, ignoreNaNWindows bool) *heapWindow {
	// Both index arrays cover the whole window: replacing a finite value
	// with a NaN shrinks one heap and leaves the other over half full
	// until the root move rebalances, so half-sized arrays would overflow.
	return &heapWindow{
		size:    size,
		steps:   steps,
		maxHeap: make([]int, size),
		minHeap: make([]int, size),
		tail:    noNode,
		head:    noNode,
		nodes:   make([]heapNode, size),
		poison:  ignoreNaNWindows,
	}
}

func (w *heapWindow) full() bool {
	return w.currentSize == w.size
}

// stepsReached counts down the stride; see tinyWindow.stepsReached.
func (w *heapWindow) stepsReached() bool {
	if w.stepDistance == 0 {
		w.stepDistance = w.steps - 1
		return true
	}
	w.stepDistance--
	return false
}

// addNew admits value v while the window is still filling. NaNs go to the
// NaN bucket; everything else goes to whichever heap the balance rule picks
// (min if the max heap is ahead, max otherwise).
func (w *heapWindow) addNew(v float64) {
	n := w.currentSize
	nd := &w.nodes[n]
	nd.value = v
	nd.next = noNode
	nd.nan = isNaN(v)
	if nd.nan {
		nd.tag = tagNaN
		w.nanCount++
	} else if w.maxLen > w.minLen {
		w.minSiftUp(w.minPut(n))
		w.rebalance()
	} else {
		w.maxSiftUp(w.maxPut(n))
		w.rebalance()
	}
	w.ringAppend(n)
	w.currentSize++
	w.verify()
}

// updateOld replaces the oldest window element with v in steady state. The
// evicted node keeps its identity: it is relinked as the newest ring element
// and rebucketed according to the old/new value classes.
func (w *heapWindow) updateOld(v float64) {
	n := w.ringAdvance()
	nd := &w.nodes[n]
	wasNaN := nd.nan
	old := nd.value
	nd.value = v
	nd.nan = isNaN(v)

	switch {
	case wasNaN && nd.nan:
		// NaN replaces NaN; the bucket is unchanged.
	case wasNaN:
		w.nanCount--
		if w.maxLen > w.minLen {
			w.minSiftUp(w.minPut(n))
		} else {
			w.maxSiftUp(w.maxPut(n))
		}
		w.rebalance()
	case nd.nan:
		w.heapRemove(n)
		nd.tag = tagNaN
		w.nanCount++
	default:
		// Value changed in place: sift toward the changed direction
		// within the same heap.
		if nd.tag == tagMax {
			if v > old {
				w.maxSiftUp(nd.pos)
			} else {
				w.maxSiftDown(nd.pos)
			}
		} else {
			if v < old {
				w.minSiftUp(nd.pos)
			} else {
				w.minSiftDown(nd.pos)
			}
		}
		w.rebalance()
	}
	w.verify()
}

// result reads the current median. The poison policy turns any resident NaN
// into a NaN median; under the exclude policy a window holding nothing but
// NaNs also yields NaN. With both heaps populated the median is the max root
// (odd count) or the mean of the two roots (even count); infinities follow
// IEEE-754 addition, so (+Inf + -Inf)/2 is NaN.
func (w *heapWindow) result() float64 {
	if w.poison && w.nanCount > 0 {
		return math.NaN()
	}
	if w.maxLen == 0 {
		return math.NaN()
	}
	if w.maxLen != w.minLen {
		return w.nodes[w.maxHeap[0]].value
	}
	return (w.nodes[w.maxHeap[0]].value + w.nodes[w.minHeap[0]].value) / 2
}

func slidingBig(x []float64, size, steps int, ignoreNaNWindows bool, y []float64) {
	win := newHeapWindow(size, steps, ignoreNaNWindows)
	n := 0
	for _, v := range x {
		if win.full() {
			win.updateOld(v)
		} else {
			win.addNew(v)
		}
		if win.full() && win.stepsReached() {
			y[n] = win.result()
			n++
		}
	}
}

// EstMem estimates the bytes of engine state one large-window call allocates
// for a window of the given size: the window header, both node-index arrays,
// and the node arena.
func EstMem(windowSize int) uintptr {
	indexes := 2 * uintptr(windowSize) * unsafe.Sizeof(int(0))
	arena := uintptr(windowSize) * unsafe.Sizeof(heapNode{})
	return unsafe.Sizeof(heapWindow{}) + indexes + arena
}
