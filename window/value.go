// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"math"
)

// isNaN reports whether v is an IEEE-754 NaN. Per IEEE-754 a NaN is the only
// value that compares unequal to itself.
func isNaN(v float64) bool {
	return v != v
}

// isInf reports whether v is +Inf or -Inf. Infinities are ordered values and
// take part in median comparisons; only NaNs are excluded.
func isInf(v float64) bool {
	return math.IsInf(v, 0)
}

// isFinite reports whether v is an ordinary double: neither NaN nor infinite.
// Zero and subnormals are finite.
func isFinite(v float64) bool {
	return !isNaN(v) && !isInf(v)
}
