// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

// This file holds the fixed compare-exchange sequences used by the
// small-window engine. The median networks leave the middle element(s) of v
// at known positions without fully sorting the rest; the sorting networks
// establish the full order. All comparisons use >, so the caller must remove
// NaNs first: IEEE-754 makes NaN comparisons return false, which would leave
// a NaN stuck wherever it happens to sit.

// cswap orders v[i] and v[j] so that v[i] <= v[j].
func cswap(v []float64, i, j int) {
	if v[i] > v[j] {
		v[i], v[j] = v[j], v[i]
	}
}

// medianNetwork2 sorts both elements. The median is (v[0]+v[1])/2.
func medianNetwork2(v []float64) {
	cswap(v, 0, 1)
}

// medianNetwork3 places the median at index 1.
func medianNetwork3(v []float64) {
	cswap(v, 0, 1)
	cswap(v, 1, 2)
	cswap(v, 0, 1)
}

// medianNetwork4 brackets the median at indices 1 and 2: the two middle
// values of the sorted order land there, though not necessarily in order.
func medianNetwork4(v []float64) {
	cswap(v, 0, 1)
	cswap(v, 2, 3)
	cswap(v, 0, 2)
	cswap(v, 1, 3)
}

// medianNetwork5 places the median at index 2.
func medianNetwork5(v []float64) {
	cswap(v, 0, 1)
	cswap(v, 2, 3)
	cswap(v, 0, 2)
	cswap(v, 1, 3)
	cswap(v, 2, 4)
	cswap(v, 1, 2)
	cswap(v, 2, 4)
}

// medianNetwork6 brackets the median at indices 2 and 3.
func medianNetwork6(v []float64) {
	cswap(v, 0, 1)
	cswap(v, 4, 5)
	cswap(v, 0, 5)
	cswap(v, 1, 3)
	cswap(v, 2, 4)
	cswap(v, 0, 2)
	cswap(v, 1, 4)
	cswap(v, 3, 5)
	cswap(v, 1, 2)
	cswap(v, 3, 4)
}

// medianNetwork7 places the median at index 3.
func medianNetwork7(v []float64) {
	cswap(v, 0, 6)
	cswap(v, 1, 2)
	cswap(v, 3, 4)
	cswap(v, 0, 2)
	cswap(v, 1, 4)
	cswap(v, 3, 5)
	cswap(v, 0, 1)
	cswap(v, 2, 5)
	cswap(v, 4, 6)
	cswap(v, 1, 3)
	cswap(v, 2, 4)
	cswap(v, 3, 4)
	cswap(v, 2, 3)
}

// medianNetwork8 brackets the median at indices 3 and 4.
func medianNetwork8(v []float64) {
	cswap(v, 0, 2)
	cswap(v, 1, 3)
	cswap(v, 4, 6)
	cswap(v, 5, 7)
	cswap(v, 0, 4)
	cswap(v, 1, 5)
	cswap(v, 2, 6)
	cswap(v, 3, 7)
	cswap(v, 0, 1)
	cswap(v, 2, 4)
	cswap(v, 3, 5)
	cswap(v, 6, 7)
	cswap(v, 2, 3)
	cswap(v, 4, 5)
	cswap(v, 1, 4)
	cswap(v, 3, 6)
}

// sortingNetwork6 fully sorts six elements in 12 compare-exchanges.
func sortingNetwork6(v []float64) {
	cswap(v, 0, 5)
	cswap(v, 1, 3)
	cswap(v, 2, 4)
	cswap(v, 1, 2)
	cswap(v, 3, 4)
	cswap(v, 0, 3)
	cswap(v, 2, 5)
	cswap(v, 0, 1)
	cswap(v, 2, 3)
	cswap(v, 4, 5)
	cswap(v, 1, 2)
	cswap(v, 3, 4)
}

// sortingNetwork8 fully sorts eight elements in 19 compare-exchanges.
func sortingNetwork8(v []float64) {
	cswap(v, 0, 2)
	cswap(v, 1, 3)
	cswap(v, 4, 6)
	cswap(v, 5, 7)
	cswap(v, 0, 4)
	cswap(v, 1, 5)
	cswap(v, 2, 6)
	cswap(v, 3, 7)
	cswap(v, 0, 1)
	cswap(v, 2, 3)
	cswap(v, 4, 5)
	cswap(v, 6, 7)
	cswap(v, 2, 4)
	cswap(v, 3, 5)
	cswap(v, 1, 4)
	cswap(v, 3, 6)
	cswap(v, 1, 2)
	cswap(v, 3, 4)
	cswap(v, 5, 6)
}

// runMedianNetwork applies the median network for k elements to the front of
// v. k must be in [2, 8]; k == 1 needs no arranging.
func runMedianNetwork(k int, v []float64) {
	switch k {
	case 2:
		medianNetwork2(v)
	case 3:
		medianNetwork3(v)
	case 4:
		medianNetwork4(v)
	case 5:
		medianNetwork5(v)
	case 6:
		medianNetwork6(v)
	case 7:
		medianNetwork7(v)
	case 8:
		medianNetwork8(v)
	}
}
