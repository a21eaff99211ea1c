// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

// The two heaps are 8-ary and store arena indices of nodes; each node keeps
// its position in whichever heap holds it. Values entering a heap are never
// NaN, so the strict comparisons below are total.

const heapArity = 8

func heapParent(pos int) int {
	return (pos - 1) / heapArity
}

func heapFirstChild(pos int) int {
	return pos*heapArity + 1
}

// childCount reports how many of the up to eight children of pos exist in a
// heap of heapLen entries.
func childCount(heapLen, pos int) int {
	first := heapFirstChild(pos)
	if first >= heapLen {
		return 0
	}
	if last := first + heapArity - 1; last < heapLen {
		return heapArity
	}
	return heapLen - first
}

// heapSwap exchanges two entries of the index array h and fixes up the
// position backlinks of both nodes.
func (w *heapWindow) heapSwap(h []int, i, j int) {
	h[i], h[j] = h[j], h[i]
	w.nodes[h[i]].pos = i
	w.nodes[h[j]].pos = j
}

// maxPut appends node n to the max heap and returns its slot.
func (w *heapWindow) maxPut(n int) int {
	pos := w.maxLen
	nd := &w.nodes[n]
	nd.pos = pos
	nd.tag = tagMax
	w.maxHeap[pos] = n
	w.maxLen++
	return pos
}

func (w *heapWindow) maxSiftUp(pos int) {
	n := w.maxHeap[pos]
	v := w.nodes[n].value
	for pos > 0 {
		parent := heapParent(pos)
		pn := w.maxHeap[parent]
		if v <= w.nodes[pn].value {
			break
		}
		w.nodes[pn].pos = pos
		w.maxHeap[pos] = pn
		pos = parent
	}
	w.nodes[n].pos = pos
	w.maxHeap[pos] = n
}

func (w *heapWindow) maxSiftDown(pos int) {
	for {
		child := w.maxLargestChild(pos)
		if child == pos {
			return
		}
		w.heapSwap(w.maxHeap, pos, child)
		pos = child
	}
}

// maxLargestChild returns the slot of the largest value among pos and its
// children, resolved by a bounded switch over the number of children present.
func (w *heapWindow) maxLargestChild(pos int) int {
	first := heapFirstChild(pos)
	best := pos
	switch childCount(w.maxLen, pos) {
	case 8:
		if w.nodes[w.maxHeap[first+7]].value > w.nodes[w.maxHeap[best]].value {
			best = first + 7
		}
		fallthrough
	case 7:
		if w.nodes[w.maxHeap[first+6]].value > w.nodes[w.maxHeap[best]].value {
			best = first + 6
		}
		fallthrough
	case 6:
		if w.nodes[w.maxHeap[first+5]].value > w.nodes[w.maxHeap[best]].value {
			best = first + 5
		}
		fallthrough
	case 5:
		if w.nodes[w.maxHeap[first+4]].value > w.nodes[w.maxHeap[best]].value {
			best = first + 4
		}
		fallthrough
	case 4:
		if w.nodes[w.maxHeap[first+3]].value > w.nodes[w.maxHeap[best]].value {
			best = first + 3
		}
		fallthrough
	case 3:
		if w.nodes[w.maxHeap[first+2]].value > w.nodes[w.maxHeap[best]].value {
			best = first + 2
		}
		fallthrough
	case 2:
		if w.nodes[w.maxHeap[first+1]].value > w.nodes[w.maxHeap[best]].value {
			best = first + 1
		}
		fallthrough
	case 1:
		if w.nodes[w.maxHeap[first]].value > w.nodes[w.maxHeap[best]].value {
			best = first
		}
	}
	return best
}

// minPut appends node n to the min heap and returns its slot.
func (w *heapWindow) minPut(n int) int {
	pos := w.minLen
	nd := &w.nodes[n]
	nd.pos = pos
	nd.tag = tagMin
	w.minHeap[pos] = n
	w.minLen++
	return pos
}

func (w *heapWindow) minSiftUp(pos int) {
	n := w.minHeap[pos]
	v := w.nodes[n].value
	for pos > 0 {
		parent := heapParent(pos)
		pn := w.minHeap[parent]
		if v >= w.nodes[pn].value {
			break
		}
		w.nodes[pn].pos = pos
		w.minHeap[pos] = pn
		pos = parent
	}
	w.nodes[n].pos = pos
	w.minHeap[pos] = n
}

func (w *heapWindow) minSiftDown(pos int) {
	for {
		child := w.minSmallestChild(pos)
		if child == pos {
			return
		}
		w.heapSwap(w.minHeap, pos, child)
		pos = child
	}
}

func (w *heapWindow) minSmallestChild(pos int) int {
	first := heapFirstChild(pos)
	best := pos
	switch childCount(w.minLen, pos) {
	case 8:
		if w.nodes[w.minHeap[first+7]].value < w.nodes[w.minHeap[best]].value {
			best = first + 7
		}
		fallthrough
	case 7:
		if w.nodes[w.minHeap[first+6]].value < w.nodes[w.minHeap[best]].value {
			best = first + 6
		}
		fallthrough
	case 6:
		if w.nodes[w.minHeap[first+5]].value < w.nodes[w.minHeap[best]].value {
			best = first + 5
		}
		fallthrough
	case 5:
		if w.nodes[w.minHeap[first+4]].value < w.nodes[w.minHeap[best]].value {
			best = first + 4
		}
		fallthrough
	case 4:
		if w.nodes[w.minHeap[first+3]].value < w.nodes[w.minHeap[best]].value {
			best = first + 3
		}
		fallthrough
	case 3:
		if w.nodes[w.minHeap[first+2]].value < w.nodes[w.minHeap[best]].value {
			best = first + 2
		}
		fallthrough
	case 2:
		if w.nodes[w.minHeap[first+1]].value < w.nodes[w.minHeap[best]].value {
			best = first + 1
		}
		fallthrough
	case 1:
		if w.nodes[w.minHeap[first]].value < w.nodes[w.minHeap[best]].value {
			best = first
		}
	}
	return best
}

// rebalance restores max-root <= min-root by exchanging the two roots and
// sifting both down. It does nothing while either heap is empty.
func (w *heapWindow) rebalance() {
	if w.maxLen == 0 || w.minLen == 0 {
		return
	}
	maxRoot, minRoot := w.maxHeap[0], w.minHeap[0]
	if w.nodes[maxRoot].value < w.nodes[minRoot].value {
		return
	}
	w.maxHeap[0] = minRoot
	w.nodes[minRoot].tag = tagMax
	w.minHeap[0] = maxRoot
	w.nodes[maxRoot].tag = tagMin
	w.maxSiftDown(0)
	w.minSiftDown(0)
}

// heapRemove detaches node n from the heap its tag names, repairs the order
// around the vacated slot, and moves a root across if the removal left the
// sizes out of balance.
func (w *heapWindow) heapRemove(n int) {
	pos := w.nodes[n].pos
	if w.nodes[n].tag == tagMax {
		w.maxLen--
		if pos != w.maxLen {
			last := w.maxHeap[w.maxLen]
			w.maxHeap[pos] = last
			w.nodes[last].pos = pos
			w.maxSiftDown(pos)
			w.maxSiftUp(w.nodes[last].pos)
		}
	} else {
		w.minLen--
		if pos != w.minLen {
			last := w.minHeap[w.minLen]
			w.minHeap[pos] = last
			w.nodes[last].pos = pos
			w.minSiftDown(pos)
			w.minSiftUp(w.nodes[last].pos)
		}
	}
	if w.maxLen > w.minLen+1 {
		w.moveMaxRootToMin()
	} else if w.minLen > w.maxLen {
		w.moveMinRootToMax()
	}
}

// moveMaxRootToMin pops the max root and pushes it into the min heap.
func (w *heapWindow) moveMaxRootToMin() {
	root := w.maxHeap[0]
	w.maxLen--
	if w.maxLen > 0 {
		last := w.maxHeap[w.maxLen]
		w.maxHeap[0] = last
		w.nodes[last].pos = 0
		w.maxSiftDown(0)
	}
	w.minSiftUp(w.minPut(root))
	w.rebalance()
}

// moveMinRootToMax pops the min root and pushes it into the max heap.
func (w *heapWindow) moveMinRootToMax() {
	root := w.minHeap[0]
	w.minLen--
	if w.minLen > 0 {
		last := w.minHeap[w.minLen]
		w.minHeap[0] = last
		w.nodes[last].pos = 0
		w.minSiftDown(0)
	}
	w.maxSiftUp(w.maxPut(root))
	w.rebalance()
}
