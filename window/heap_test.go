// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"golang.org/x/medianwindow/internal/medtest"
)

func TestChildCount(t *testing.T) {
	t.Parallel()
	cases := []struct {
		heapLen, pos, want int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{2, 0, 1},
		{9, 0, 8},
		{10, 0, 8},
		{10, 1, 1},
		{17, 1, 8},
		{12, 1, 3},
		{12, 2, 0},
	}
	for _, c := range cases {
		if got := childCount(c.heapLen, c.pos); got != c.want {
			t.Errorf("childCount(%d, %d) = %d, want %d", c.heapLen, c.pos, got, c.want)
		}
	}
}

// feed drives a heap window over x the way slidingBig does and checks the
// structural invariants after every single mutation.
func feed(t *testing.T, x []float64, size int, poison bool) *heapWindow {
	t.Helper()
	win := newHeapWindow(size, 1, poison)
	for i, v := range x {
		if win.full() {
			win.updateOld(v)
		} else {
			win.addNew(v)
		}
		if err := win.invariantError(); err != nil {
			t.Fatalf("after element %d (%v): %v", i, v, err)
		}
	}
	return win
}

func TestHeapWindowInvariants(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(medtest.Seed))
	inputs := map[string][]float64{
		"finite":    medtest.Generate(rng, 500, 0, 0, -1000, 1000),
		"sparseNaN": medtest.Generate(rng, 500, 50, 0, -1000, 1000),
		"denseNaN":  medtest.Generate(rng, 500, 400, 0, -1000, 1000),
		"specials":  medtest.Generate(rng, 500, 150, 150, -1000, 1000),
		"allNaN":    medtest.Generate(rng, 100, 100, 0, -1000, 1000),
	}
	for name, x := range inputs {
		for _, size := range []int{2, 3, 9, 16, 63} {
			if len(x) < size {
				continue
			}
			t.Run(fmt.Sprintf("%s-w%d", name, size), func(t *testing.T) {
				feed(t, x, size, false)
				feed(t, x, size, true)
			})
		}
	}
}

// TestHeapWindowTransitions drives the engine through all four class
// transitions of a steady-state update: NaN→NaN, NaN→finite, finite→NaN,
// and finite→finite in both sift directions.
func TestHeapWindowTransitions(t *testing.T) {
	t.Parallel()
	nan := math.NaN()
	x := []float64{
		5, nan, 3, nan, 8, 1, 9, 4, 2, // filling: mixed admits
		nan, // 5 → NaN
		7,   // nan → finite
		nan, // 3 → NaN
		nan, // nan → NaN
		6,   // 8 → finite, shrinking
		12,  // 1 → finite, growing
		11, 13, 0, 5, 5, 5,
	}
	win := feed(t, x, 9, false)
	want := medtest.Oracle(x, 9, 1, false)
	if got := win.result(); !medtest.SameValue(got, want[len(want)-1]) {
		t.Errorf("final median = %v, want %v", got, want[len(want)-1])
	}
}

func TestHeapWindowResultRules(t *testing.T) {
	t.Parallel()
	nan := math.NaN()

	// Poison: one resident NaN forces NaN.
	win := feed(t, []float64{1, 2, nan, 4, 5, 6, 7, 8, 9}, 9, true)
	if got := win.result(); !math.IsNaN(got) {
		t.Errorf("poisoned window median = %v, want NaN", got)
	}

	// Exclude with only NaNs left.
	all := make([]float64, 9)
	for i := range all {
		all[i] = nan
	}
	win = feed(t, all, 9, false)
	if got := win.result(); !math.IsNaN(got) {
		t.Errorf("all-NaN window median = %v, want NaN", got)
	}

	// Odd valid count: the max root is the median.
	win = feed(t, []float64{9, 1, 8, 2, 7, 3, 6, 4, 5}, 9, false)
	if got := win.result(); got != 5 {
		t.Errorf("odd window median = %v, want 5", got)
	}

	// Even valid count: mean of the roots.
	win = feed(t, []float64{9, 1, 8, 2, nan, 3, 6, 4, 5}, 9, false)
	if got := win.result(); got != 4.5 {
		t.Errorf("even valid-count median = %v, want 4.5", got)
	}

	// Opposite infinities meeting in an even median yield NaN.
	win = feed(t, []float64{math.Inf(1), math.Inf(-1), nan, nan, nan, nan, nan, nan, nan}, 9, false)
	if got := win.result(); !math.IsNaN(got) {
		t.Errorf("(+Inf + -Inf)/2 median = %v, want NaN", got)
	}
}

// TestHeapWindowRingReuse checks that steady state allocates nothing and
// keeps cycling the same node slots. It does not run in parallel:
// testing.AllocsPerRun refuses to run inside a parallel test.
func TestHeapWindowRingReuse(t *testing.T) {
	win := newHeapWindow(9, 1, false)
	for i := 0; i < 9; i++ {
		win.addNew(float64(i))
	}
	allocs := testing.AllocsPerRun(100, func() {
		win.updateOld(3.5)
	})
	if allocs != 0 {
		t.Errorf("steady-state updateOld allocates %v times per call", allocs)
	}
	seen := make(map[int]bool)
	n := win.tail
	for i := 0; i < 9; i++ {
		if seen[n] {
			t.Fatalf("ring revisits node %d after %d hops", n, i)
		}
		seen[n] = true
		if i < 8 {
			n = win.nodes[n].next
		}
	}
	if n != win.head {
		t.Errorf("ring walk from tail ends at node %d, head is %d", n, win.head)
	}
}

func TestEstMem(t *testing.T) {
	t.Parallel()
	if small, big := EstMem(16), EstMem(4096); small == 0 || big <= small {
		t.Errorf("EstMem(16) = %d, EstMem(4096) = %d; want growing positive sizes", small, big)
	}
}
