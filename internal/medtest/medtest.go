// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package medtest provides the sort-based reference median and the seeded
// input generator shared by the window tests and the medbench command.
package medtest

import (
	"math"
	"math/rand"
	"sort"
)

// Seed fixes the random source so generated inputs are reproducible across
// runs and machines.
const Seed = 0xC0FFEE

const epsilon = 1e-9

// SameValue reports whether two median outputs agree: both NaN, the same
// infinity, or finite values within 1e-9 of each other.
func SameValue(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) < epsilon
}

// Oracle computes the sliding medians of x the slow way: for every emitted
// window it copies the values, strips NaNs, sorts what remains, and takes
// the middle. NaNs must be stripped before the sort; the comparator cannot
// order them.
func Oracle(x []float64, windowSize, steps int, ignoreNaNWindows bool) []float64 {
	out := make([]float64, 0, (len(x)-windowSize)/steps+1)
	buf := make([]float64, 0, windowSize)
	for i := windowSize - 1; i < len(x); i += steps {
		buf = buf[:0]
		sawNaN := false
		for _, v := range x[i-windowSize+1 : i+1] {
			if math.IsNaN(v) {
				sawNaN = true
				continue
			}
			buf = append(buf, v)
		}
		if (ignoreNaNWindows && sawNaN) || len(buf) == 0 {
			out = append(out, math.NaN())
			continue
		}
		sort.Float64s(buf)
		m := len(buf) / 2
		if len(buf)%2 == 0 {
			out = append(out, (buf[m-1]+buf[m])/2)
		} else {
			out = append(out, buf[m])
		}
	}
	return out
}

// Generate produces a sequence of l values drawn uniformly from [lo, hi) and
// then plants nNaN NaNs and nInf infinities at positions chosen by a
// Fisher-Yates permutation of the index space. Half of the infinities
// (rounded down) are +Inf, the remainder -Inf. nNaN+nInf must not exceed l.
func Generate(rng *rand.Rand, l, nNaN, nInf int, lo, hi float64) []float64 {
	x := make([]float64, l)
	for i := range x {
		x[i] = lo + (hi-lo)*rng.Float64()
	}
	idx := rng.Perm(l)
	for i := 0; i < nNaN; i++ {
		x[idx[i]] = math.NaN()
	}
	pos := nInf / 2
	for i := 0; i < nInf; i++ {
		if i < pos {
			x[idx[nNaN+i]] = math.Inf(1)
		} else {
			x[idx[nNaN+i]] = math.Inf(-1)
		}
	}
	return x
}
