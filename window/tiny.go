// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"math"
)

// A tinyKernel computes the median of one full window. src holds exactly the
// window's values, oldest first.
type tinyKernel func(src []float64) float64

// tinyKernels maps policy and window size to the kernel used for every
// emission. Index 0 selects the exclude policy, index 1 the poison policy.
// The kernel is picked once when the window is initialized; the per-element
// loop never branches on size or policy again.
var tinyKernels = [2][smallWindowMax + 1]tinyKernel{
	{2: median2, 3: median3, 4: median4, 5: median5, 6: median6, 7: median7, 8: median8},
	{2: median2Poison, 3: median3Poison, 4: median4Poison, 5: median5Poison,
		6: median6Poison, 7: median7Poison, 8: median8Poison},
}

// tinyWindow slides a window of at most smallWindowMax elements over the
// input. It keeps no copy of the data; the kernel reads the window straight
// out of the input slice.
type tinyWindow struct {
	size         int
	steps        int
	stepDistance int
	tail         int
	head         int
	median       tinyKernel
}

func newTinyWindow(size, steps int, ignoreNaNWindows bool) *tinyWindow {
	policy := 0
	if ignoreNaNWindows {
		policy = 1
	}
	return &tinyWindow{size: size, steps: steps, median: tinyKernels[policy][size]}
}

func (t *tinyWindow) full() bool {
	return t.head-t.tail == t.size
}

// stepsReached counts down the stride. It fires on the first full window
// (the countdown starts at zero) and every steps-th advance after that.
func (t *tinyWindow) stepsReached() bool {
	if t.stepDistance == 0 {
		t.stepDistance = t.steps - 1
		return true
	}
	t.stepDistance--
	return false
}

func slidingTiny(x []float64, size, steps int, ignoreNaNWindows bool, y []float64) {
	win := newTinyWindow(size, steps, ignoreNaNWindows)
	n := 0
	for range x {
		if win.full() {
			win.tail++
		}
		win.head++
		if win.full() && win.stepsReached() {
			y[n] = win.median(x[win.tail:win.head])
			n++
		}
	}
}

// compactValid copies the non-NaN entries of v into valid, preserving their
// order, and returns how many there are.
func compactValid(v, valid []float64) int {
	k := 0
	for _, x := range v {
		if !isNaN(x) {
			valid[k] = x
			k++
		}
	}
	return k
}

// middleOf reads the median off the first k entries of v after the matching
// median network has run: the mean of the two middle entries for even k, the
// middle entry for odd k.
func middleOf(v []float64, k int) float64 {
	m := k / 2
	if k%2 == 0 {
		return (v[m-1] + v[m]) / 2
	}
	return v[m]
}

func hasNaN(v []float64) bool {
	for _, x := range v {
		if isNaN(x) {
			return true
		}
	}
	return false
}

// The exclude kernels classify the window, run the full-width network when
// every value is valid, and otherwise compact the valid values and run the
// network matching their count. A window of only NaNs yields NaN.

func median2(src []float64) float64 {
	var v, valid [2]float64
	copy(v[:], src)
	switch k := compactValid(v[:], valid[:]); k {
	case 2:
		medianNetwork2(v[:])
		return (v[0] + v[1]) / 2
	case 0:
		return math.NaN()
	default:
		return valid[0]
	}
}

func median3(src []float64) float64 {
	var v, valid [3]float64
	copy(v[:], src)
	k := compactValid(v[:], valid[:])
	switch k {
	case 3:
		medianNetwork3(v[:])
		return v[1]
	case 0:
		return math.NaN()
	}
	runMedianNetwork(k, valid[:])
	return middleOf(valid[:], k)
}

func median4(src []float64) float64 {
	var v, valid [4]float64
	copy(v[:], src)
	k := compactValid(v[:], valid[:])
	switch k {
	case 4:
		medianNetwork4(v[:])
		return (v[1] + v[2]) / 2
	case 0:
		return math.NaN()
	}
	runMedianNetwork(k, valid[:])
	return middleOf(valid[:], k)
}

func median5(src []float64) float64 {
	var v, valid [5]float64
	copy(v[:], src)
	k := compactValid(v[:], valid[:])
	switch k {
	case 5:
		medianNetwork5(v[:])
		return v[2]
	case 0:
		return math.NaN()
	}
	runMedianNetwork(k, valid[:])
	return middleOf(valid[:], k)
}

func median6(src []float64) float64 {
	var v, valid [6]float64
	copy(v[:], src)
	k := compactValid(v[:], valid[:])
	switch k {
	case 6:
		medianNetwork6(v[:])
		return (v[2] + v[3]) / 2
	case 0:
		return math.NaN()
	}
	runMedianNetwork(k, valid[:])
	return middleOf(valid[:], k)
}

func median7(src []float64) float64 {
	var v, valid [7]float64
	copy(v[:], src)
	k := compactValid(v[:], valid[:])
	switch k {
	case 7:
		medianNetwork7(v[:])
		return v[3]
	case 0:
		return math.NaN()
	}
	runMedianNetwork(k, valid[:])
	return middleOf(valid[:], k)
}

func median8(src []float64) float64 {
	var v, valid [8]float64
	copy(v[:], src)
	k := compactValid(v[:], valid[:])
	switch k {
	case 8:
		medianNetwork8(v[:])
		return (v[3] + v[4]) / 2
	case 0:
		return math.NaN()
	}
	runMedianNetwork(k, valid[:])
	return middleOf(valid[:], k)
}

// The poison kernels short-circuit to NaN as soon as any NaN is present.

func median2Poison(src []float64) float64 {
	var v [2]float64
	copy(v[:], src)
	if hasNaN(v[:]) {
		return math.NaN()
	}
	medianNetwork2(v[:])
	return (v[0] + v[1]) / 2
}

func median3Poison(src []float64) float64 {
	var v [3]float64
	copy(v[:], src)
	if hasNaN(v[:]) {
		return math.NaN()
	}
	medianNetwork3(v[:])
	return v[1]
}

func median4Poison(src []float64) float64 {
	var v [4]float64
	copy(v[:], src)
	if hasNaN(v[:]) {
		return math.NaN()
	}
	medianNetwork4(v[:])
	return (v[1] + v[2]) / 2
}

func median5Poison(src []float64) float64 {
	var v [5]float64
	copy(v[:], src)
	if hasNaN(v[:]) {
		return math.NaN()
	}
	medianNetwork5(v[:])
	return v[2]
}

func median6Poison(src []float64) float64 {
	var v [6]float64
	copy(v[:], src)
	if hasNaN(v[:]) {
		return math.NaN()
	}
	medianNetwork6(v[:])
	return (v[2] + v[3]) / 2
}

func median7Poison(src []float64) float64 {
	var v [7]float64
	copy(v[:], src)
	if hasNaN(v[:]) {
		return math.NaN()
	}
	medianNetwork7(v[:])
	return v[3]
}

func median8Poison(src []float64) float64 {
	var v [8]float64
	copy(v[:], src)
	if hasNaN(v[:]) {
		return math.NaN()
	}
	medianNetwork8(v[:])
	return (v[3] + v[4]) / 2
}
