// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package window computes streaming medians of float64 sequences under a
// sliding window of fixed size with an independent output stride.
//
// The window always advances one element at a time; the stride only decides
// which of the full windows emit a median. Window sizes up to 8 run on fixed
// median networks, larger sizes on a double-heap engine. IEEE-754 special
// values are handled under two policies: with ignoreNaNWindows set, any NaN
// inside a window poisons that window's median to NaN; otherwise NaNs are
// excluded and the median is taken over the remaining values, where
// infinities still count as ordered values.
package window

// smallWindowMax is the largest window the sorting-network engine handles;
// the dispatcher switches to the double-heap engine above it.
const smallWindowMax = 8

// OutputLen returns how many medians a sequence of length l emits for the
// given window size and stride.
func OutputLen(l, windowSize, steps int) int {
	return (l-windowSize)/steps + 1
}

// validWindow checks the call contract shared by all entry points: a
// non-empty input at least one window long, a window of at least two, a
// stride of at least one, and an output with room for every emitted median.
func validWindow(x []float64, windowSize, steps int, y []float64) bool {
	if len(x) == 0 || windowSize < 2 || steps < 1 || len(x) < windowSize {
		return false
	}
	return len(y) >= OutputLen(len(x), windowSize, steps)
}

// SlidingMedian computes the sliding-window medians of x into y and reports
// whether the arguments were valid. On failure y is left untouched. The
// first OutputLen(len(x), windowSize, steps) entries of y are written,
// oldest window first. x and y must not overlap.
func SlidingMedian(x []float64, windowSize, steps int, ignoreNaNWindows bool, y []float64) bool {
	if !validWindow(x, windowSize, steps, y) {
		return false
	}
	if windowSize <= smallWindowMax {
		slidingTiny(x, windowSize, steps, ignoreNaNWindows, y)
	} else {
		slidingBig(x, windowSize, steps, ignoreNaNWindows, y)
	}
	return true
}

// SlidingMedianBig is SlidingMedian forced onto the double-heap engine
// regardless of window size.
func SlidingMedianBig(x []float64, windowSize, steps int, ignoreNaNWindows bool, y []float64) bool {
	if !validWindow(x, windowSize, steps, y) {
		return false
	}
	slidingBig(x, windowSize, steps, ignoreNaNWindows, y)
	return true
}

// SlidingMedianTiny is SlidingMedian forced onto the sorting-network engine.
// It fails for windows larger than 8.
func SlidingMedianTiny(x []float64, windowSize, steps int, ignoreNaNWindows bool, y []float64) bool {
	if windowSize > smallWindowMax || !validWindow(x, windowSize, steps, y) {
		return false
	}
	slidingTiny(x, windowSize, steps, ignoreNaNWindows, y)
	return true
}
