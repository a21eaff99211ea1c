// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build medcheck

package window

// verify panics on the first broken invariant. Built only under the
// medcheck tag; release builds compile the call away.
func (w *heapWindow) verify() {
	if err := w.invariantError(); err != nil {
		panic("window: " + err.Error())
	}
}
