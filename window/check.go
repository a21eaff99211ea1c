// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"fmt"
)

// invariantError inspects the whole engine state and returns a description
// of the first violated heap-pair invariant, or nil. It is wired into every
// mutation under the medcheck build tag and used directly by the tests.
func (w *heapWindow) invariantError() error {
	if w.maxLen+w.minLen+w.nanCount != w.currentSize {
		return fmt.Errorf("bucket sizes %d+%d+%d do not cover window size %d",
			w.maxLen, w.minLen, w.nanCount, w.currentSize)
	}
	if d := w.maxLen - w.minLen; d < 0 || d > 1 {
		return fmt.Errorf("heap sizes out of balance: |max|=%d |min|=%d", w.maxLen, w.minLen)
	}
	for i := 1; i < w.maxLen; i++ {
		p := heapParent(i)
		if w.nodes[w.maxHeap[p]].value < w.nodes[w.maxHeap[i]].value {
			return fmt.Errorf("max heap order broken at %d: parent %v < child %v",
				i, w.nodes[w.maxHeap[p]].value, w.nodes[w.maxHeap[i]].value)
		}
	}
	for i := 1; i < w.minLen; i++ {
		p := heapParent(i)
		if w.nodes[w.minHeap[p]].value > w.nodes[w.minHeap[i]].value {
			return fmt.Errorf("min heap order broken at %d: parent %v > child %v",
				i, w.nodes[w.minHeap[p]].value, w.nodes[w.minHeap[i]].value)
		}
	}
	if w.maxLen > 0 && w.minLen > 0 {
		lo, hi := w.nodes[w.maxHeap[0]].value, w.nodes[w.minHeap[0]].value
		if lo > hi {
			return fmt.Errorf("roots out of order: max root %v > min root %v", lo, hi)
		}
	}
	for i := 0; i < w.maxLen; i++ {
		if nd := &w.nodes[w.maxHeap[i]]; nd.pos != i || nd.tag != tagMax || nd.nan {
			return fmt.Errorf("max heap slot %d holds inconsistent node %+v", i, *nd)
		}
	}
	for i := 0; i < w.minLen; i++ {
		if nd := &w.nodes[w.minHeap[i]]; nd.pos != i || nd.tag != tagMin || nd.nan {
			return fmt.Errorf("min heap slot %d holds inconsistent node %+v", i, *nd)
		}
	}
	nan := 0
	for i := 0; i < w.currentSize; i++ {
		nd := &w.nodes[i]
		if nd.tag == tagNaN {
			nan++
			if !nd.nan || !isNaN(nd.value) {
				return fmt.Errorf("node %d tagged NaN holds %v", i, nd.value)
			}
		} else if nd.nan {
			return fmt.Errorf("node %d carries a stale NaN shortcut", i)
		}
	}
	if nan != w.nanCount {
		return fmt.Errorf("NaN bucket count %d, found %d NaN nodes", w.nanCount, nan)
	}
	return nil
}
