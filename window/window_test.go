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

var (
	nan    = math.NaN()
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

func checkOutputs(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d outputs, want %d", len(got), len(want))
	}
	for i := range want {
		if !medtest.SameValue(got[i], want[i]) {
			t.Errorf("y[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSlidingMedianScenarios(t *testing.T) {
	t.Parallel()
	sevens := func(n int) []float64 {
		v := make([]float64, n)
		for i := range v {
			v[i] = 7
		}
		return v
	}
	nans := func(n int) []float64 {
		v := make([]float64, n)
		for i := range v {
			v[i] = nan
		}
		return v
	}
	cases := []struct {
		name             string
		x                []float64
		windowSize       int
		steps            int
		ignoreNaNWindows bool
		want             []float64
	}{
		{"constant-exclude", sevens(10), 5, 1, false, sevens(6)},
		{"constant-poison", sevens(10), 5, 1, true, sevens(6)},
		{"all-nan-exclude", nans(10), 5, 1, false, nans(6)},
		{"all-nan-poison", nans(10), 5, 1, true, nans(6)},
		{
			"single-finite-exclude",
			[]float64{nan, nan, nan, nan, nan, 42.5, nan, nan, nan, nan},
			5, 1, false,
			[]float64{nan, 42.5, 42.5, 42.5, 42.5, 42.5},
		},
		{
			"single-finite-poison",
			[]float64{nan, nan, nan, nan, nan, 42.5, nan, nan, nan, nan},
			5, 1, true,
			nans(6),
		},
		{
			"infinities-participate",
			[]float64{nan, nan, nan, posInf, 42.5, 50, negInf, nan, nan, nan},
			5, 1, false,
			[]float64{posInf, 50, 46.25, 46.25, 42.5, negInf},
		},
		{"large-window-constant", sevens(20), 10, 1, false, sevens(11)},
		{"large-window-stride", sevens(20), 10, 3, false, sevens(4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			y := make([]float64, OutputLen(len(c.x), c.windowSize, c.steps))
			if !SlidingMedian(c.x, c.windowSize, c.steps, c.ignoreNaNWindows, y) {
				t.Fatal("rejected valid arguments")
			}
			checkOutputs(t, y, c.want)
		})
	}
}

func TestOutputLen(t *testing.T) {
	t.Parallel()
	cases := []struct {
		l, windowSize, steps, want int
	}{
		{10, 5, 1, 6},
		{10, 10, 1, 1},
		{10, 10, 7, 1},
		{20, 10, 1, 11},
		{20, 10, 3, 4},
		{16, 8, 1, 9},
		{16, 9, 1, 8},
		{100000, 9999, 1, 90002},
		{12000, 12000, 9991, 1},
	}
	for _, c := range cases {
		if got := OutputLen(c.l, c.windowSize, c.steps); got != c.want {
			t.Errorf("OutputLen(%d, %d, %d) = %d, want %d", c.l, c.windowSize, c.steps, got, c.want)
		}
	}
}

// TestEngineEquivalence checks both engines against the sort-based reference
// over a grid of window sizes, strides, policies, and special-value mixes.
func TestEngineEquivalence(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(medtest.Seed))
	inputs := map[string][]float64{
		"finite":   medtest.Generate(rng, 400, 0, 0, -1000, 1000),
		"nan20":    medtest.Generate(rng, 400, 80, 0, -1000, 1000),
		"specials": medtest.Generate(rng, 400, 100, 100, -1000, 1000),
		"nan90":    medtest.Generate(rng, 400, 360, 0, -1000, 1000),
	}
	for name, x := range inputs {
		for _, windowSize := range []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 16, 31, 64} {
			for _, steps := range []int{1, 2, 3, 7, windowSize} {
				for _, poison := range []bool{false, true} {
					want := medtest.Oracle(x, windowSize, steps, poison)
					name := fmt.Sprintf("%s-w%d-s%d-poison%v", name, windowSize, steps, poison)

					y := make([]float64, OutputLen(len(x), windowSize, steps))
					if !SlidingMedian(x, windowSize, steps, poison, y) {
						t.Fatalf("%s: rejected valid arguments", name)
					}
					for i := range want {
						if !medtest.SameValue(y[i], want[i]) {
							t.Fatalf("%s: y[%d] = %v, want %v", name, i, y[i], want[i])
						}
					}

					// The double-heap engine must agree at every size,
					// including the sizes normally routed to the networks.
					big := make([]float64, len(y))
					if !SlidingMedianBig(x, windowSize, steps, poison, big) {
						t.Fatalf("%s: big engine rejected valid arguments", name)
					}
					for i := range want {
						if !medtest.SameValue(big[i], want[i]) {
							t.Fatalf("%s: big y[%d] = %v, want %v", name, i, big[i], want[i])
						}
					}

					if windowSize <= smallWindowMax {
						tiny := make([]float64, len(y))
						if !SlidingMedianTiny(x, windowSize, steps, poison, tiny) {
							t.Fatalf("%s: tiny engine rejected valid arguments", name)
						}
						for i := range want {
							if !medtest.SameValue(tiny[i], want[i]) {
								t.Fatalf("%s: tiny y[%d] = %v, want %v", name, i, tiny[i], want[i])
							}
						}
					}
				}
			}
		}
	}
}

// TestDispatcherBounds pins the engine split at the threshold: size 8 runs
// on the networks, size 9 on the heaps, and both agree with the reference.
func TestDispatcherBounds(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(medtest.Seed))
	x := medtest.Generate(rng, 16, 2, 2, -100, 100)

	for _, windowSize := range []int{smallWindowMax, smallWindowMax + 1} {
		want := medtest.Oracle(x, windowSize, 1, false)
		y := make([]float64, OutputLen(len(x), windowSize, 1))
		if !SlidingMedian(x, windowSize, 1, false, y) {
			t.Fatalf("w=%d: rejected valid arguments", windowSize)
		}
		checkOutputs(t, y, want)

		forced := make([]float64, len(y))
		ok := false
		if windowSize <= smallWindowMax {
			ok = SlidingMedianTiny(x, windowSize, 1, false, forced)
		} else {
			ok = SlidingMedianBig(x, windowSize, 1, false, forced)
		}
		if !ok {
			t.Fatalf("w=%d: forced engine rejected valid arguments", windowSize)
		}
		checkOutputs(t, forced, y)
	}

	if SlidingMedianTiny(make([]float64, 16), smallWindowMax+1, 1, false, make([]float64, 8)) {
		t.Error("tiny engine accepted a window above the threshold")
	}
}

// TestPrefixConsistency verifies tail handover: the medians of any prefix
// are the leading medians of the full sequence.
func TestPrefixConsistency(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(medtest.Seed))
	x := medtest.Generate(rng, 200, 30, 10, -50, 50)
	for _, windowSize := range []int{5, 9, 32} {
		for _, steps := range []int{1, 4} {
			full := make([]float64, OutputLen(len(x), windowSize, steps))
			if !SlidingMedian(x, windowSize, steps, false, full) {
				t.Fatal("rejected valid arguments")
			}
			for _, prefix := range []int{windowSize, windowSize + 1, len(x) / 2, len(x) - 1} {
				part := make([]float64, OutputLen(prefix, windowSize, steps))
				if !SlidingMedian(x[:prefix], windowSize, steps, false, part) {
					t.Fatalf("prefix %d: rejected valid arguments", prefix)
				}
				checkOutputs(t, part, full[:len(part)])
			}
		}
	}
}

func TestSlidingMedianRejectsBadArguments(t *testing.T) {
	t.Parallel()
	x := []float64{1, 2, 3, 4, 5}
	cases := []struct {
		name       string
		x          []float64
		windowSize int
		steps      int
		y          []float64
	}{
		{"empty input", nil, 2, 1, make([]float64, 4)},
		{"window too small", x, 1, 1, make([]float64, 5)},
		{"zero steps", x, 2, 0, make([]float64, 4)},
		{"input shorter than window", x, 6, 1, make([]float64, 1)},
		{"output too short", x, 2, 1, make([]float64, 3)},
		{"nil output", x, 2, 1, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for i := range c.y {
				c.y[i] = -123
			}
			if SlidingMedian(c.x, c.windowSize, c.steps, false, c.y) {
				t.Fatal("accepted invalid arguments")
			}
			if SlidingMedianBig(c.x, c.windowSize, c.steps, false, c.y) {
				t.Fatal("big engine accepted invalid arguments")
			}
			if SlidingMedianTiny(c.x, c.windowSize, c.steps, false, c.y) {
				t.Fatal("tiny engine accepted invalid arguments")
			}
			for i := range c.y {
				if c.y[i] != -123 {
					t.Fatalf("failed call wrote to y[%d]", i)
				}
			}
		})
	}
}
